package chat

import "time"

// Kind distinguishes sessions backed by a server-side dataset from
// sessions that exist only locally.
type Kind string

const (
	// KindTableBound sessions answer questions against a backend table.
	KindTableBound Kind = "table-bound"
	// KindFreeform sessions have no backing dataset and persist only in
	// the local transcript store.
	KindFreeform Kind = "freeform"
)

// Role identifies who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single chat message. A user message is immutable once
// created. An assistant message starts as a pending placeholder and is
// either filled in place on success or removed on failure; no other
// mutation paths exist.
type Message struct {
	ID        string   `json:"id"`
	Role      Role     `json:"role"`
	Content   string   `json:"content"`
	Pending   bool     `json:"pending,omitempty"`
	Followups []string `json:"followups,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// Session is one conversation. Messages are append-only except for the
// removal of a failed send's placeholder.
type Session struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Kind       Kind      `json:"kind"`
	DatasetRef string    `json:"dataset_ref,omitempty"`
	Messages   []Message `json:"messages"`
	Processed  bool      `json:"processed"`
	CreatedAt  time.Time `json:"created_at"`

	// historyLoaded marks that the remote transcript hydration ran for
	// this activation, so switching back never clobbers an in-progress
	// conversation.
	historyLoaded bool
}
