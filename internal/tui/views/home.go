// Package views provides TUI view components for the bandhu application.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sohamshirke10/recruiter-bandhu/internal/chat"
	"github.com/sohamshirke10/recruiter-bandhu/internal/tui"
)

// OpenSessionRequestMsg is sent when the user selects a session to open.
type OpenSessionRequestMsg struct {
	SessionID string
}

// InsightsRequestMsg is sent when the user asks for a dataset's charts.
type InsightsRequestMsg struct {
	DatasetRef string
}

// CreateFreeformMsg is sent when the user submits a new freeform
// session name.
type CreateFreeformMsg struct {
	Name string
}

// sessionItem implements list.Item for the session list.
type sessionItem struct {
	session *chat.Session
}

func (i sessionItem) Title() string { return i.session.Title }

func (i sessionItem) Description() string {
	kind := "screening"
	if i.session.Kind == chat.KindFreeform {
		kind = "freeform"
	}
	return fmt.Sprintf("%s - %s (%d messages)",
		kind,
		i.session.CreatedAt.Format("Jan 02, 2006 15:04"),
		len(i.session.Messages),
	)
}

func (i sessionItem) FilterValue() string { return i.session.Title }

// HomeModel is the view model for the session list screen.
type HomeModel struct {
	sessionList list.Model
	nameInput   textinput.Model
	naming      bool
	statusLine  string
	width       int
	height      int
}

// NewHomeModel creates a HomeModel showing the given sessions.
func NewHomeModel(sessions []*chat.Session, width, height int) HomeModel {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("#7C3AED")).
		BorderForeground(lipgloss.Color("#7C3AED"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("#9CA3AF"))

	l := list.New(sessionItems(sessions), delegate, width-8, height-12)
	l.Title = "Hiring Sessions"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Placeholder = "Session name..."
	ti.CharLimit = 120
	ti.Width = width - 12

	return HomeModel{
		sessionList: l,
		nameInput:   ti,
		width:       width,
		height:      height,
	}
}

// SetSessions replaces the list contents.
func (m *HomeModel) SetSessions(sessions []*chat.Session) {
	m.sessionList.SetItems(sessionItems(sessions))
}

// SetStatus sets the one-line status message under the list.
func (m *HomeModel) SetStatus(s string) {
	m.statusLine = s
}

func sessionItems(sessions []*chat.Session) []list.Item {
	items := make([]list.Item, len(sessions))
	for i, s := range sessions {
		items[i] = sessionItem{session: s}
	}
	return items
}

// Update handles messages for the home view.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.naming {
			switch msg.String() {
			case tui.KeyEnter:
				name := strings.TrimSpace(m.nameInput.Value())
				if name != "" {
					m.naming = false
					m.nameInput.Reset()
					return m, func() tea.Msg {
						return CreateFreeformMsg{Name: name}
					}
				}
				return m, nil
			case tui.KeyEsc:
				m.naming = false
				m.nameInput.Reset()
				return m, nil
			}
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}

		// Filtering owns the keyboard while active.
		if m.sessionList.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case tui.KeyEnter:
			if item, ok := m.sessionList.SelectedItem().(sessionItem); ok {
				return m, func() tea.Msg {
					return OpenSessionRequestMsg{SessionID: item.session.ID}
				}
			}
			return m, nil

		case "i":
			if item, ok := m.sessionList.SelectedItem().(sessionItem); ok {
				if item.session.Kind == chat.KindTableBound {
					ref := item.session.DatasetRef
					return m, func() tea.Msg {
						return InsightsRequestMsg{DatasetRef: ref}
					}
				}
				m.statusLine = "Insights need a screening session with a dataset"
			}
			return m, nil

		case "f":
			m.naming = true
			m.nameInput.Focus()
			return m, textinput.Blink
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sessionList.SetSize(msg.Width-8, msg.Height-12)
		m.nameInput.Width = msg.Width - 12
		return m, nil
	}

	m.sessionList, cmd = m.sessionList.Update(msg)
	return m, cmd
}

// View renders the home view.
func (m HomeModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Recruiter Bandhu"))
	b.WriteString("\n\n")

	if m.naming {
		b.WriteString("Name the new freeform session:\n\n")
		b.WriteString(m.nameInput.View())
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("Enter: Create · Esc: Cancel"))
	} else {
		if len(m.sessionList.Items()) == 0 {
			b.WriteString(tui.DimStyle.Render("No sessions yet. Upload a dataset with 'bandhu new' or press 'f' for freeform chat."))
			b.WriteString("\n")
		} else {
			b.WriteString(m.sessionList.View())
			b.WriteString("\n")
		}
		if m.statusLine != "" {
			b.WriteString("\n")
			b.WriteString(tui.WarningStyle.Render(m.statusLine))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render("Enter: Open · i: Insights · f: New freeform · /: Filter · Ctrl+C: Exit"))
	}

	boxed := tui.BoxStyle.
		Width(m.width - 4).
		Render(b.String())

	contentHeight := lipgloss.Height(boxed)
	if m.height > contentHeight {
		padding := (m.height - contentHeight) / 3
		if padding > 0 {
			boxed = strings.Repeat("\n", padding) + boxed
		}
	}

	return boxed
}
