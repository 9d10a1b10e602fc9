package api

import "encoding/json"

// Answer is the backend's response to a dataset-scoped question.
type Answer struct {
	Result    string   `json:"result"`
	Followups []string `json:"followups"`
}

// FreeformAnswer is the backend's response to a question with no
// backing dataset.
type FreeformAnswer struct {
	Summary string          `json:"summary"`
	Raw     json.RawMessage `json:"raw"`
}

// TableSnapshot is a generic rows+columns view of a candidate dataset.
// The backend provides no schema; columns are matched by name downstream.
type TableSnapshot struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"data"`
}

// QA is a single question/answer pair from a stored transcript.
type QA struct {
	Question string
	Answer   string
}

// tablesResponse wraps GET /gettables.
type tablesResponse struct {
	Tables []string `json:"tables"`
}

// newChatResponse wraps POST /newChat.
type newChatResponse struct {
	Result struct {
		Message string `json:"message"`
	} `json:"result"`
}

// chatsResponse wraps GET /get-chats. Each entry is a [question, answer] pair.
type chatsResponse struct {
	Chats [][]string `json:"chats"`
}

// authResponse wraps POST /register and /login.
type authResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// errorResponse is the generic error body the backend attaches to
// non-success statuses.
type errorResponse struct {
	Error string `json:"error"`
}
