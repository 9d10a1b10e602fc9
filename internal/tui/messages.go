package tui

import (
	"github.com/sohamshirke10/recruiter-bandhu/internal/insights"
)

// SessionsRefreshedMsg carries the result of a backend table listing.
type SessionsRefreshedMsg struct {
	Err error
}

// SessionOpenedMsg is sent after a session has been activated and its
// history hydrated.
type SessionOpenedMsg struct {
	SessionID string
	Err       error
}

// SessionCreatedMsg is sent after a new freeform session was created.
type SessionCreatedMsg struct {
	SessionID string
	Err       error
}

// AnswerMsg carries the outcome of sending a chat message.
type AnswerMsg struct {
	SessionID string
	Followups []string
	Err       error
}

// InsightsMsg carries derived charts for a dataset.
type InsightsMsg struct {
	DatasetRef string
	Charts     []insights.Chart
	Err        error
}

// CtrlCResetMsg resets the double Ctrl+C confirmation after a timeout.
type CtrlCResetMsg struct{}
