package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sohamshirke10/recruiter-bandhu/internal/chat"
	"github.com/sohamshirke10/recruiter-bandhu/internal/tui"
)

// SendRequestMsg is sent when the user submits a chat message.
type SendRequestMsg struct {
	Content string
}

// ExitChatMsg signals that the user wants to leave the chat view.
type ExitChatMsg struct{}

// ChatModel is the view model for a conversation screen.
type ChatModel struct {
	messages  []chat.Message
	followups []string
	textarea  textarea.Model
	viewport  viewport.Model
	title     string
	isLoading bool
	errLine   string
	spinner   spinner.Model
	width     int
	height    int
}

// NewChatModel creates a ChatModel for the given session.
func NewChatModel(title string, messages []chat.Message, width, height int) ChatModel {
	ta := textarea.New()
	ta.Placeholder = "Ask about your candidates... (Enter to send)"
	ta.CharLimit = 5000
	ta.SetWidth(width - 8)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	// Shift+Enter / Ctrl+J for newline, Enter submits.
	keyMap := ta.KeyMap
	keyMap.InsertNewline = key.NewBinding(
		key.WithKeys("shift+enter", "ctrl+j"),
		key.WithHelp("shift+enter", "new line"),
	)
	ta.KeyMap = keyMap

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))

	vpHeight := height - 14
	if vpHeight < 5 {
		vpHeight = 5
	}
	vpWidth := width - 8
	if vpWidth < 20 {
		vpWidth = 20
	}

	vp := viewport.New(vpWidth, vpHeight)
	vp.SetContent(formatMessages(messages))
	vp.GotoBottom()

	return ChatModel{
		messages: messages,
		textarea: ta,
		viewport: vp,
		title:    title,
		spinner:  sp,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the chat view.
func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// SetMessages replaces the rendered transcript, typically after the
// session store changed underneath the view.
func (m *ChatModel) SetMessages(messages []chat.Message, followups []string) {
	m.messages = messages
	m.followups = followups
	m.isLoading = false
	for _, msg := range messages {
		if msg.Pending {
			m.isLoading = true
		}
	}
	m.viewport.SetContent(formatMessages(messages))
	m.viewport.GotoBottom()
}

// SetError shows a one-line error under the transcript.
func (m *ChatModel) SetError(s string) {
	m.errLine = s
}

// Update handles messages for the chat view.
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEnter:
			if m.isLoading {
				return m, nil
			}
			content := strings.TrimSpace(m.textarea.Value())
			if content == "" {
				return m, nil
			}
			// Echo the message locally right away; the store's copy
			// replaces this when the answer (or failure) arrives.
			m.messages = append(m.messages, chat.Message{Role: chat.RoleUser, Content: content})
			m.viewport.SetContent(formatMessages(m.messages))
			m.viewport.GotoBottom()

			m.textarea.Reset()
			m.errLine = ""
			m.followups = nil
			m.isLoading = true
			return m, func() tea.Msg {
				return SendRequestMsg{Content: content}
			}

		case tui.KeyEsc:
			return m, func() tea.Msg {
				return ExitChatMsg{}
			}
		}

	case spinner.TickMsg:
		if m.isLoading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := msg.Height - 14
		if vpHeight < 5 {
			vpHeight = 5
		}
		vpWidth := msg.Width - 8
		if vpWidth < 20 {
			vpWidth = 20
		}

		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
		m.textarea.SetWidth(vpWidth)
		m.viewport.SetContent(formatMessages(m.messages))
		return m, nil
	}

	if !m.isLoading {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the chat view.
func (m ChatModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render(fmt.Sprintf("Chat: %s", m.title)))
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if len(m.followups) > 0 && !m.isLoading {
		b.WriteString(tui.DimStyle.Render("Suggested: " + strings.Join(m.followups, " | ")))
		b.WriteString("\n")
	}
	if m.errLine != "" {
		b.WriteString(tui.ErrorStyle.Render(m.errLine))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.isLoading {
		b.WriteString(fmt.Sprintf("%s Thinking...", m.spinner.View()))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render(m.textarea.View()))
	} else {
		b.WriteString(m.textarea.View())
	}

	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("Enter: Send · Shift+Enter: New line · Esc: Back"))

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

// formatMessages renders the transcript for the viewport.
func formatMessages(messages []chat.Message) string {
	if len(messages) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).
			Render("No messages yet. Start the conversation!")
	}

	var b strings.Builder

	for i, msg := range messages {
		var prefix string
		var style lipgloss.Style

		switch msg.Role {
		case chat.RoleUser:
			prefix = "You: "
			style = tui.UserStyle
		case chat.RoleAssistant:
			prefix = "Bandhu: "
			style = tui.AssistantStyle
		default:
			prefix = string(msg.Role) + ": "
			style = tui.DimStyle
		}

		b.WriteString(style.Render(prefix))
		if msg.Pending {
			b.WriteString(tui.DimStyle.Render("..."))
		} else {
			b.WriteString(msg.Content)
		}

		if i < len(messages)-1 {
			b.WriteString("\n\n")
		}
	}

	return b.String()
}
