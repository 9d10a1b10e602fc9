// Package app provides the main TUI application that wires all views together.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sohamshirke10/recruiter-bandhu/internal/api"
	"github.com/sohamshirke10/recruiter-bandhu/internal/chat"
	"github.com/sohamshirke10/recruiter-bandhu/internal/tui"
	"github.com/sohamshirke10/recruiter-bandhu/internal/tui/commands"
	"github.com/sohamshirke10/recruiter-bandhu/internal/tui/views"
)

// state identifies the active screen.
type state int

const (
	stateHome state = iota
	stateChat
	stateInsights
)

// App is the main TUI application.
type App struct {
	store  *chat.Store
	client *api.Client

	state        state
	width        int
	height       int
	ctrlCPending bool

	activeSession string
	homeView      views.HomeModel
	chatView      views.ChatModel
	insightsView  views.InsightsModel
}

// New creates the App around an already-constructed session store.
func New(store *chat.Store, client *api.Client) *App {
	return &App{
		store:    store,
		client:   client,
		state:    stateHome,
		width:    80,
		height:   24,
		homeView: views.NewHomeModel(store.Sessions(), 80, 24),
	}
}

// Init loads the session list from the backend.
func (a *App) Init() tea.Cmd {
	return commands.RefreshSessionsCmd(a.store)
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var cmd tea.Cmd
		switch a.state {
		case stateHome:
			a.homeView, cmd = a.homeView.Update(msg)
		case stateChat:
			a.chatView, cmd = a.chatView.Update(msg)
		case stateInsights:
			a.insightsView, cmd = a.insightsView.Update(msg)
		}
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == tui.KeyCtrlC {
			if a.ctrlCPending {
				return a, tea.Quit
			}
			a.ctrlCPending = true
			return a, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})
		}

	case tui.CtrlCResetMsg:
		a.ctrlCPending = false
		return a, nil

	case tui.SessionsRefreshedMsg:
		if msg.Err != nil {
			a.homeView.SetStatus("Could not reach backend: " + msg.Err.Error())
		} else {
			a.homeView.SetSessions(a.store.Sessions())
			a.homeView.SetStatus("")
		}
		return a, nil

	case views.OpenSessionRequestMsg:
		return a, commands.OpenSessionCmd(a.store, msg.SessionID)

	case views.CreateFreeformMsg:
		return a, commands.NewFreeformCmd(a.store, msg.Name)

	case tui.SessionCreatedMsg:
		if msg.Err != nil {
			a.homeView.SetStatus("Could not create session: " + msg.Err.Error())
			return a, nil
		}
		a.homeView.SetSessions(a.store.Sessions())
		return a, commands.OpenSessionCmd(a.store, msg.SessionID)

	case tui.SessionOpenedMsg:
		if msg.Err != nil {
			a.homeView.SetStatus("Could not open session: " + msg.Err.Error())
			return a, nil
		}
		s := a.store.Get(msg.SessionID)
		if s == nil {
			return a, nil
		}
		a.activeSession = msg.SessionID
		a.state = stateChat
		a.chatView = views.NewChatModel(s.Title, s.Messages, a.width, a.height)
		return a, a.chatView.Init()

	case views.SendRequestMsg:
		return a, tea.Batch(
			commands.SendCmd(a.store, a.activeSession, msg.Content),
			a.chatView.Init(),
		)

	case tui.AnswerMsg:
		if msg.SessionID != a.activeSession {
			return a, nil
		}
		s := a.store.Get(a.activeSession)
		if s == nil {
			return a, nil
		}
		a.chatView.SetMessages(s.Messages, msg.Followups)
		if msg.Err != nil {
			a.chatView.SetError(msg.Err.Error())
		}
		return a, nil

	case views.ExitChatMsg:
		a.state = stateHome
		a.homeView.SetSessions(a.store.Sessions())
		return a, nil

	case views.InsightsRequestMsg:
		a.state = stateInsights
		a.insightsView = views.NewInsightsModel(msg.DatasetRef, a.width, a.height)
		return a, commands.LoadInsightsCmd(a.client, msg.DatasetRef)

	case tui.InsightsMsg:
		if msg.Err != nil {
			a.insightsView.SetError("Could not load dataset: " + msg.Err.Error())
		} else {
			a.insightsView.SetCharts(msg.Charts)
		}
		return a, nil

	case views.ExitInsightsMsg:
		a.state = stateHome
		return a, nil
	}

	var cmd tea.Cmd
	switch a.state {
	case stateHome:
		a.homeView, cmd = a.homeView.Update(msg)
	case stateChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case stateInsights:
		a.insightsView, cmd = a.insightsView.Update(msg)
	}
	return a, cmd
}

// View renders the current screen.
func (a *App) View() string {
	var content string
	switch a.state {
	case stateChat:
		content = a.chatView.View()
	case stateInsights:
		content = a.insightsView.View()
	default:
		content = a.homeView.View()
	}
	if a.ctrlCPending {
		content += "\n" + tui.WarningStyle.Render("Press Ctrl+C again to exit")
	}
	return content
}
