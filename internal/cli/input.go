// Package cli is an interactive prompt for trying suggestions and reactions by hand.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/session"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	wordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// Options controls prompt behavior.
type Options struct {
	MinPrefix int
	MaxPrefix int
	Limit     int
	RankBy    dictionary.RankBy
	NoFilter  bool
}

// InputHandler reads lines and answers with suggestions.
// Lines starting with ':' are commands:
//
//	:accept <word>  :reject <word>  :add <word>  :recent [prefix]  :stats  :help
type InputHandler struct {
	session      *session.Session
	completer    suggest.ICompleter
	opts         Options
	in           io.Reader
	out          io.Writer
	requestCount int
	log          *log.Logger
}

// NewInputHandler wires the prompt to sess. Output goes to out.
func NewInputHandler(sess *session.Session, completer suggest.ICompleter, opts Options, in io.Reader, out io.Writer) *InputHandler {
	if opts.MaxPrefix <= 0 {
		opts.MaxPrefix = 60
	}
	if opts.RankBy == "" {
		opts.RankBy = dictionary.RankByFrequency
	}
	return &InputHandler{
		session:   sess,
		completer: completer,
		opts:      opts,
		in:        in,
		out:       out,
		log:       logger.New("cli"),
	}
}

// Start runs the prompt until the input ends.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, "WordTrie CLI")
	fmt.Fprintln(h.out, mutedStyle.Render("type a prefix and press Enter, :help for commands (Ctrl+D to exit)"))

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.handleLine(line)
	}
}

// RequestCount returns how many non-empty lines were handled.
func (h *InputHandler) RequestCount() int {
	return h.requestCount
}

func (h *InputHandler) handleLine(line string) {
	h.requestCount++
	if strings.HasPrefix(line, ":") {
		h.handleCommand(line[1:])
		return
	}
	h.handleInput(line)
}

func (h *InputHandler) handleCommand(cmd string) {
	name, arg, _ := strings.Cut(cmd, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "accept", "a":
		accepted, err := h.session.Accept(arg)
		if err != nil {
			h.reportError(err, arg)
			return
		}
		fmt.Fprintf(h.out, "accepted %s (freq: %s)\n", wordStyle.Render(accepted.Word), utils.FormatWithCommas(accepted.Frequency))
	case "reject", "r":
		if err := h.session.Reject(arg); err != nil {
			h.reportError(err, arg)
			return
		}
		fmt.Fprintf(h.out, "rejected %s\n", wordStyle.Render(utils.NormalizeWord(arg)))
	case "add":
		if err := h.session.Add(arg); err != nil {
			h.reportError(err, arg)
			return
		}
		fmt.Fprintf(h.out, "added %s\n", wordStyle.Render(utils.NormalizeWord(arg)))
	case "recent":
		h.printSuggestions(arg, h.completer.Recent(arg, h.opts.Limit))
	case "stats":
		h.printStats()
	case "help", "h":
		fmt.Fprintln(h.out, ":accept <word>  :reject <word>  :add <word>  :recent [prefix]  :stats")
	default:
		fmt.Fprintf(h.out, "unknown command %q, try :help\n", name)
	}
}

// handleInput validates a prefix and prints its suggestions.
func (h *InputHandler) handleInput(prefix string) {
	n := utf8.RuneCountInString(prefix)
	if n < h.opts.MinPrefix {
		fmt.Fprintf(h.out, "prefix too short: %s\n", prefix)
		return
	}
	if n > h.opts.MaxPrefix {
		fmt.Fprintf(h.out, "prefix too long: %s\n", prefix)
		return
	}

	if !h.opts.NoFilter && !utils.IsValidInput(utils.NormalizeWord(prefix)) {
		fmt.Fprintf(h.out, "no suggestions for '%s'\n", prefix)
		return
	}

	start := time.Now()
	suggestions := h.session.SuggestN(prefix, h.opts.Limit, h.opts.RankBy)
	h.log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	h.printSuggestions(prefix, suggestions)
}

func (h *InputHandler) printSuggestions(prefix string, suggestions []suggest.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintf(h.out, "no suggestions for '%s'\n", prefix)
		return
	}
	for i, s := range suggestions {
		word := wordStyle.Width(30).Render(s.Word)
		fmt.Fprintf(h.out, "%2d. %s %s\n", i+1, word, mutedStyle.Render("freq: "+utils.FormatWithCommas(s.Frequency)))
	}
}

func (h *InputHandler) printStats() {
	snap := h.session.Snapshot()
	fmt.Fprintf(h.out, "words: %s  nodes: %s  depth: %d\n",
		utils.FormatWithCommas(snap.Stats.TotalWords),
		utils.FormatWithCommas(snap.Stats.TotalNodes),
		snap.Stats.MaxDepth)
	fmt.Fprintf(h.out, "accepted: %d  rejected: %d  added: %d\n",
		snap.Counters.Accepted, snap.Counters.Rejected, snap.Counters.Added)
	for _, a := range snap.Activities {
		fmt.Fprintf(h.out, "  %s %-8s %s\n", mutedStyle.Render(a.Timestamp.Format(time.Kitchen)), a.Type, a.Word)
	}
}

func (h *InputHandler) reportError(err error, word string) {
	switch {
	case errors.Is(err, session.ErrEmptyWord):
		fmt.Fprintln(h.out, "missing word")
	case errors.Is(err, session.ErrUnknownWord):
		fmt.Fprintf(h.out, "'%s' is not in the dictionary, use :add\n", word)
	case errors.Is(err, session.ErrWordExists):
		fmt.Fprintf(h.out, "'%s' is already in the dictionary\n", word)
	default:
		fmt.Fprintln(h.out, err)
	}
}
