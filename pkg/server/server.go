package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/session"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for word completions
type Server struct {
	session      *session.Session
	completer    suggest.ICompleter
	config       *config.Config
	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	writer       *bufio.Writer
	requestCount int
	log          *log.Logger
}

// NewServer creates a server reading requests from r and writing responses to w.
func NewServer(sess *session.Session, completer suggest.ICompleter, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	writer := bufio.NewWriter(w)
	return &Server{
		session:   sess,
		completer: completer,
		config:    cfg,
		decoder:   msgpack.NewDecoder(bufio.NewReader(r)),
		encoder:   msgpack.NewEncoder(writer),
		writer:    writer,
		log:       logger.New("ipc"),
	}
}

// Start processes requests until the reader is exhausted.
// A request that cannot be decoded ends the stream since framing is lost.
func (s *Server) Start() error {
	s.log.Debug("Starting IPC server")

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("Input closed", "requests", s.requestCount)
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			s.sendError("", "invalid msgpack request", 400)
			return fmt.Errorf("decode request: %w", err)
		}
		s.requestCount++
		s.handleRequest(req)
	}
}

// RequestCount returns the number of decoded requests.
func (s *Server) RequestCount() int {
	return s.requestCount
}

func (s *Server) handleRequest(req Request) {
	switch req.Action {
	case "", ActionComplete:
		s.handleComplete(req)
	case ActionAccept:
		accepted, err := s.session.Accept(req.Word)
		if err != nil {
			s.sendSessionError(req.ID, err)
			return
		}
		s.send(ActionResponse{ID: req.ID, Status: "ok", Word: accepted.Word, Frequency: accepted.Frequency})
	case ActionReject:
		if err := s.session.Reject(req.Word); err != nil {
			s.sendSessionError(req.ID, err)
			return
		}
		s.send(ActionResponse{ID: req.ID, Status: "ok", Word: utils.NormalizeWord(req.Word)})
	case ActionAdd:
		if err := s.session.Add(req.Word); err != nil {
			s.sendSessionError(req.ID, err)
			return
		}
		s.send(ActionResponse{ID: req.ID, Status: "ok", Word: utils.NormalizeWord(req.Word), Frequency: 1})
	case ActionRecent:
		start := time.Now()
		s.sendSuggestions(req.ID, s.completer.Recent(req.Prefix, req.Limit), start)
	case ActionStats:
		s.send(StatsResponse{ID: req.ID, Snapshot: s.session.Snapshot()})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleComplete(req Request) {
	prefix := req.Prefix
	n := utf8.RuneCountInString(prefix)

	if n == 0 {
		s.sendError(req.ID, "missing prefix", 400)
		return
	}
	if n < s.config.Server.MinPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix must be at least %d characters", s.config.Server.MinPrefix), 400)
		return
	}
	if n > s.config.Server.MaxPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix exceeds maximum length of %d characters", s.config.Server.MaxPrefix), 400)
		return
	}

	start := time.Now()
	if s.config.Server.EnableFilter && !utils.IsValidInput(utils.NormalizeWord(prefix)) {
		s.log.Debug("Filtered prefix", "prefix", prefix)
		s.sendSuggestions(req.ID, nil, start)
		return
	}

	rankBy := s.config.Dict.Rank()
	if req.RankBy != "" {
		rankBy = dictionary.ParseRankBy(req.RankBy)
	}
	s.sendSuggestions(req.ID, s.session.SuggestN(prefix, req.Limit, rankBy), start)
}

func (s *Server) sendSuggestions(id string, suggestions []suggest.Suggestion, start time.Time) {
	ranks := utils.CreateRankList(len(suggestions))
	out := make([]CompletionSuggestion, len(suggestions))
	for i, sg := range suggestions {
		out[i] = CompletionSuggestion{Word: sg.Word, Rank: ranks[i], Frequency: sg.Frequency}
	}
	s.send(CompletionResponse{
		ID:          id,
		Suggestions: out,
		Count:       len(out),
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

func (s *Server) sendSessionError(id string, err error) {
	code := 400
	switch {
	case errors.Is(err, session.ErrUnknownWord):
		code = 404
	case errors.Is(err, session.ErrWordExists):
		code = 409
	}
	s.sendError(id, err.Error(), code)
}

func (s *Server) sendError(id, message string, code int) {
	s.send(CompletionError{ID: id, Error: message, Code: code})
}

// send encodes and flushes one response.
func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.log.Errorf("Flushing response: %v", err)
	}
}
