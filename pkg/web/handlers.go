package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/session"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/gorilla/mux"
)

// SuggestionJSON is one ranked word.
type SuggestionJSON struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
	Rank      int    `json:"rank"`
}

// SuggestResponse is returned by /api/suggest and /api/recent.
type SuggestResponse struct {
	Prefix      string           `json:"prefix"`
	Suggestions []SuggestionJSON `json:"suggestions"`
	Count       int              `json:"count"`
	TimeTaken   int64            `json:"time_us"`
}

// WordResponse describes a single word.
type WordResponse struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

type addRequest struct {
	Word string `json:"word"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	prefix := q.Get("prefix")
	n := utf8.RuneCountInString(prefix)
	if n == 0 {
		writeError(w, "missing 'prefix' parameter", http.StatusBadRequest)
		return
	}
	if n < s.config.Server.MinPrefix || n > s.config.Server.MaxPrefix {
		writeError(w, "prefix length out of range", http.StatusBadRequest)
		return
	}

	limit, ok := parseLimit(w, q.Get("limit"))
	if !ok {
		return
	}
	rankBy := s.config.Dict.Rank()
	if raw := q.Get("rank"); raw != "" {
		rankBy = dictionary.ParseRankBy(raw)
	}

	start := time.Now()
	var suggestions []suggest.Suggestion
	if !s.config.Server.EnableFilter || utils.IsValidInput(utils.NormalizeWord(prefix)) {
		suggestions = s.session.SuggestN(prefix, limit, rankBy)
	}
	writeJSON(w, http.StatusOK, newSuggestResponse(prefix, suggestions, start))
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, ok := parseLimit(w, q.Get("limit"))
	if !ok {
		return
	}
	start := time.Now()
	prefix := q.Get("prefix")
	writeJSON(w, http.StatusOK, newSuggestResponse(prefix, s.completer.Recent(prefix, limit), start))
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]
	entry, ok := s.lookup(word)
	if !ok {
		writeError(w, "word not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, WordResponse{Word: entry.Word, Frequency: entry.Frequency})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if err := s.session.Add(req.Word); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, WordResponse{Word: utils.NormalizeWord(req.Word), Frequency: 1})
}

func (s *Server) handleAccept(w http.ResponseWriter, r *http.Request) {
	accepted, err := s.session.Accept(mux.Vars(r)["word"])
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, WordResponse{Word: accepted.Word, Frequency: accepted.Frequency})
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]
	if err := s.session.Reject(word); err != nil {
		writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Activities())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// lookup goes through the concrete completer when available.
func (s *Server) lookup(word string) (dictionary.Entry, bool) {
	if l, ok := s.completer.(interface {
		Lookup(string) (dictionary.Entry, bool)
	}); ok {
		return l.Lookup(word)
	}
	if !s.completer.Contains(word) {
		return dictionary.Entry{}, false
	}
	return dictionary.Entry{Word: utils.NormalizeWord(word)}, true
}

func parseLimit(w http.ResponseWriter, raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		writeError(w, "invalid 'limit' parameter", http.StatusBadRequest)
		return 0, false
	}
	return limit, true
}

func newSuggestResponse(prefix string, suggestions []suggest.Suggestion, start time.Time) SuggestResponse {
	out := make([]SuggestionJSON, len(suggestions))
	for i, sg := range suggestions {
		out[i] = SuggestionJSON{Word: sg.Word, Frequency: sg.Frequency, Rank: i + 1}
	}
	return SuggestResponse{
		Prefix:      prefix,
		Suggestions: out,
		Count:       len(out),
		TimeTaken:   time.Since(start).Microseconds(),
	}
}

func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrUnknownWord):
		writeError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, session.ErrWordExists):
		writeError(w, err.Error(), http.StatusConflict)
	default:
		writeError(w, err.Error(), http.StatusBadRequest)
	}
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, ErrorResponse{Error: message, Status: status})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
