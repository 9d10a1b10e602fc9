// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sohamshirke10/recruiter-bandhu/internal/api"
	"github.com/sohamshirke10/recruiter-bandhu/internal/chat"
	"github.com/sohamshirke10/recruiter-bandhu/internal/insights"
	"github.com/sohamshirke10/recruiter-bandhu/internal/tui"
)

// RefreshSessionsCmd reloads the session list from the backend.
func RefreshSessionsCmd(store *chat.Store) tea.Cmd {
	return func() tea.Msg {
		err := store.Bootstrap(context.Background())
		return tui.SessionsRefreshedMsg{Err: err}
	}
}

// OpenSessionCmd activates a session, fetching its history if needed.
func OpenSessionCmd(store *chat.Store, sessionID string) tea.Cmd {
	return func() tea.Msg {
		err := store.SetActive(context.Background(), sessionID)
		return tui.SessionOpenedMsg{SessionID: sessionID, Err: err}
	}
}

// NewFreeformCmd creates a freeform session with the given name.
func NewFreeformCmd(store *chat.Store, name string) tea.Cmd {
	return func() tea.Msg {
		s, err := store.NewFreeformSession(name)
		if err != nil {
			return tui.SessionCreatedMsg{Err: err}
		}
		return tui.SessionCreatedMsg{SessionID: s.ID}
	}
}

// SendCmd dispatches a chat message through the store. The optimistic
// user and pending assistant messages appear on the session before the
// network call completes, so views re-render from the store when the
// AnswerMsg arrives.
func SendCmd(store *chat.Store, sessionID, text string) tea.Cmd {
	return func() tea.Msg {
		followups, err := store.Send(context.Background(), sessionID, text)
		return tui.AnswerMsg{SessionID: sessionID, Followups: followups, Err: err}
	}
}

// LoadInsightsCmd fetches a dataset snapshot and derives its charts.
func LoadInsightsCmd(client *api.Client, datasetRef string) tea.Cmd {
	return func() tea.Msg {
		snap, err := client.TableSnapshot(context.Background(), datasetRef)
		if err != nil {
			return tui.InsightsMsg{DatasetRef: datasetRef, Err: err}
		}
		return tui.InsightsMsg{DatasetRef: datasetRef, Charts: insights.Derive(snap)}
	}
}
