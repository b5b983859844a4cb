/*
Package server implements msgpack IPC for word completion services.

The server reads a stream of msgpack encoded requests from an io.Reader
(stdin in production) and writes one msgpack response per request to an
io.Writer (stdout). Requests are processed synchronously in arrival order.

# IPC

Every request carries an ID that is echoed back. Without an action the
request is a completion:

	{"id": "req_001", "p": "ja", "l": 5, "r": "frequency"}

The server responds with suggestions ranked by frequency:

	{"id": "req_001", "s": [{"w": "javascript", "r": 1, "f": 150}, {"w": "java", "r": 2, "f": 120}], "c": 2, "t": 41}

User reactions and diagnostics use the action field:

	{"id": "a1", "action": "accept", "w": "java"}
	{"id": "a2", "action": "reject", "w": "javascript"}
	{"id": "a3", "action": "add", "w": "golang"}
	{"id": "a4", "action": "recent", "p": "ja"}
	{"id": "a5", "action": "stats"}

Failures are reported as {"id": ..., "e": message, "c": code} with HTTP-like
codes: 400 bad request, 404 unknown word, 409 word exists.
*/
package server

import "github.com/bastiangx/wordtrie/pkg/session"

// Actions understood by the server.
const (
	ActionComplete = "complete"
	ActionAccept   = "accept"
	ActionReject   = "reject"
	ActionAdd      = "add"
	ActionRecent   = "recent"
	ActionStats    = "stats"
)

// Request is the single inbound message shape.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`
	Prefix string `msgpack:"p,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
	RankBy string `msgpack:"r,omitempty"`
	Word   string `msgpack:"w,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word      string `msgpack:"w"`
	Rank      uint16 `msgpack:"r"`
	Frequency int    `msgpack:"f"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// ActionResponse answers accept, reject and add.
type ActionResponse struct {
	ID        string `msgpack:"id"`
	Status    string `msgpack:"status"`
	Word      string `msgpack:"w,omitempty"`
	Frequency int    `msgpack:"f,omitempty"`
}

// StatsResponse carries a session snapshot.
type StatsResponse struct {
	ID       string           `msgpack:"id"`
	Snapshot session.Snapshot `msgpack:"stats"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
