// Package tui implements the interactive terminal surface. Each view phase
// maps to one screen: the auth form while locked, the file prompt while
// idle, a spinner while an upload is in flight and a scrollable dashboard
// once an analysis arrives. All service calls run as asynchronous commands;
// the view state machine remains the single source of truth for which
// screen is shown.
package tui

import (
	"context"
	"fmt"
	"strings"

	"careerscope/internal/common"
	"careerscope/internal/config"
	"careerscope/internal/errors"
	"careerscope/internal/render"
	"careerscope/internal/session"
	"careerscope/internal/types"
	"careerscope/internal/view"
	"careerscope/internal/workflow"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Field indices for the auth form
const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldCount
)

// Deps carries the wired application components into the TUI
type Deps struct {
	Config  *config.Config
	Machine *view.Machine
	Session *session.Session
	Auth    *workflow.Auth
	Upload  *workflow.Upload
	Loader  *common.CandidateLoader
	Logger  *errors.Logger
	Version string
}

// Messages for async operations
type authDoneMsg struct {
	err error
}

type uploadDoneMsg struct {
	err error
}

// Model is the bubbletea model for the careerscope TUI
type Model struct {
	deps   Deps
	styles *Styles

	state view.State

	// Auth form
	mode   workflow.Mode
	inputs []textinput.Model
	focus  int

	// Upload prompt
	pathInput textinput.Model

	spinner  spinner.Model
	viewport viewport.Model

	// notice shows local failures the view state machine does not carry,
	// such as an unreadable file path
	notice string

	dashboardGen uint64 // generation the viewport content was rendered for
	width        int
	height       int
}

// NewModel creates the TUI model in the locked phase
func NewModel(deps Deps) Model {
	inputs := make([]textinput.Model, fieldCount)

	name := textinput.New()
	name.Placeholder = "Jane Doe"
	name.Prompt = ""
	name.CharLimit = 120
	inputs[fieldName] = name

	email := textinput.New()
	email.Placeholder = "jane@example.com"
	email.Prompt = ""
	email.CharLimit = 254
	inputs[fieldEmail] = email

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	inputs[fieldPassword] = password

	path := textinput.New()
	path.Placeholder = "path/to/resume.pdf"
	path.Prompt = ""

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))

	m := Model{
		deps:      deps,
		styles:    NewStyles(),
		state:     deps.Machine.State(),
		mode:      workflow.ModeLogin,
		inputs:    inputs,
		pathInput: path,
		spinner:   s,
		width:     80,
		height:    24,
	}
	m.focusField(fieldEmail)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(msg.Width, max(msg.Height-6, 5))
		m.syncDashboard()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		// The workflow goroutine mutates the machine; resync on every tick
		// so phase changes surface without a dedicated notification.
		m.state = m.deps.Machine.State()
		m.syncDashboard()
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case authDoneMsg:
		m.state = m.deps.Machine.State()
		if msg.err != nil {
			m.notice = noticeText(msg.err)
		} else {
			m.notice = ""
			m.clearAuthForm()
			m.pathInput.Focus()
		}
		return m, nil

	case uploadDoneMsg:
		m.state = m.deps.Machine.State()
		m.syncDashboard()
		// Workflow failures land in the view state banner; only local
		// failures (unreadable file, in-flight rejection) need the notice.
		if msg.err != nil && !m.state.ErrorVisible() {
			m.notice = noticeText(msg.err)
		}
		return m, nil
	}

	cmds = append(cmds, m.updateInputs(msg)...)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.state.Phase {
	case view.PhaseLocked:
		return m.handleLockedKey(msg)
	case view.PhaseIdle:
		return m.handleIdleKey(msg)
	case view.PhaseUploading:
		if msg.Type == tea.KeyCtrlL {
			return m.logout()
		}
		return m, nil
	case view.PhaseDashboard:
		return m.handleDashboardKey(msg)
	}
	return m, nil
}

func (m Model) handleLockedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		m.cycleFocus(1)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.cycleFocus(-1)
		return m, nil
	case tea.KeyCtrlT:
		if m.mode == workflow.ModeLogin {
			m.mode = workflow.ModeSignup
			m.focusField(fieldName)
		} else {
			m.mode = workflow.ModeLogin
			m.focusField(fieldEmail)
		}
		m.notice = ""
		return m, nil
	case tea.KeyEnter:
		if m.deps.Auth.Submitting() {
			return m, nil
		}
		m.notice = ""
		return m, m.submitAuth()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleIdleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlL:
		return m.logout()
	case tea.KeyEnter:
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			return m, nil
		}
		m.notice = ""
		m.pathInput.Reset()
		return m, tea.Batch(m.spinner.Tick, m.submitUpload(path))
	}

	if !m.pathInput.Focused() {
		m.pathInput.Focus()
	}
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlL:
		return m.logout()
	case msg.String() == "q":
		return m, tea.Quit
	case msg.String() == "n":
		m.state = m.deps.Upload.Reset()
		m.notice = ""
		m.pathInput.Reset()
		m.pathInput.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) logout() (tea.Model, tea.Cmd) {
	m.state = m.deps.Auth.Logout()
	m.notice = ""
	m.clearAuthForm()
	m.focusField(fieldEmail)
	return *m, textinput.Blink
}

// submitAuth runs the auth workflow off the UI loop
func (m Model) submitAuth() tea.Cmd {
	creds := m.credentials()
	mode := m.mode
	auth := m.deps.Auth
	return func() tea.Msg {
		_, err := auth.Submit(context.Background(), mode, creds)
		return authDoneMsg{err: err}
	}
}

// submitUpload loads the file and runs the upload workflow off the UI loop.
// The machine flips to Uploading as soon as the file is accepted, which the
// spinner tick resync picks up.
func (m Model) submitUpload(path string) tea.Cmd {
	loader := m.deps.Loader
	upload := m.deps.Upload
	return func() tea.Msg {
		candidate, err := loader.Load(path)
		if err != nil {
			return uploadDoneMsg{err: err}
		}
		_, err = upload.Submit(context.Background(), candidate)
		return uploadDoneMsg{err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch m.state.Phase {
	case view.PhaseLocked:
		b.WriteString(m.lockedView())
	case view.PhaseIdle:
		b.WriteString(m.idleView())
	case view.PhaseUploading:
		b.WriteString(m.uploadingView())
	case view.PhaseDashboard:
		b.WriteString(m.dashboardView())
	}

	return b.String()
}

func (m Model) header() string {
	title := m.styles.Title.Render("CareerScope")
	meta := m.styles.Dim.Render(m.deps.Version)
	if user := m.deps.Session.User(); user != nil {
		meta = m.styles.Dim.Render(fmt.Sprintf("%s · %s", user.Email, m.deps.Version))
	}
	return title + "  " + meta
}

func (m Model) lockedView() string {
	var b strings.Builder

	if m.mode == workflow.ModeSignup {
		b.WriteString(m.styles.Accent.Render("Create an account") + "\n\n")
		b.WriteString(m.styles.Label.Render("Name     ") + m.inputs[fieldName].View() + "\n")
	} else {
		b.WriteString(m.styles.Accent.Render("Sign in") + "\n\n")
	}
	b.WriteString(m.styles.Label.Render("Email    ") + m.inputs[fieldEmail].View() + "\n")
	b.WriteString(m.styles.Label.Render("Password ") + m.inputs[fieldPassword].View() + "\n\n")

	if m.deps.Auth.Submitting() {
		b.WriteString(m.spinner.View() + " Submitting…\n")
	} else if m.notice != "" {
		b.WriteString(m.styles.Banner.Render(m.notice) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter submit · tab next field · ctrl+t switch login/signup · ctrl+c quit"))
	return b.String()
}

func (m Model) idleView() string {
	var b strings.Builder

	b.WriteString(m.styles.Accent.Render("Upload a resume") + "\n\n")
	b.WriteString(m.styles.Label.Render("File ") + m.pathInput.View() + "\n\n")

	if m.state.ErrorVisible() {
		b.WriteString(m.styles.Banner.Render(m.state.ErrorMessage) + "\n\n")
	} else if m.notice != "" {
		b.WriteString(m.styles.Banner.Render(m.notice) + "\n\n")
	}

	exts := strings.Join(m.deps.Config.Upload.AllowedExtensions, ", ")
	b.WriteString(m.styles.Dim.Render("Accepted: "+exts) + "\n\n")
	b.WriteString(m.styles.Help.Render("enter analyze · ctrl+l sign out · ctrl+c quit"))
	return b.String()
}

func (m Model) uploadingView() string {
	var b strings.Builder
	b.WriteString(m.spinner.View() + " Analyzing resume…\n\n")
	b.WriteString(m.styles.Help.Render("ctrl+l sign out · ctrl+c quit"))
	return b.String()
}

func (m Model) dashboardView() string {
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("↑/↓ scroll · n new analysis · ctrl+l sign out · q quit"))
	return b.String()
}

// syncDashboard renders the analysis into the viewport when a new result
// arrives. Keyed on generation so scrolling survives unrelated resyncs.
func (m *Model) syncDashboard() {
	if m.state.Phase != view.PhaseDashboard || m.state.Result == nil {
		return
	}
	if m.dashboardGen == m.state.Generation && m.viewport.TotalLineCount() > 0 {
		return
	}

	content, err := render.GlobalRegistry.Format(*m.state.Result, "text")
	if err != nil {
		content = fmt.Sprintf("Failed to render dashboard: %v", err)
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
	m.dashboardGen = m.state.Generation
}

// updateInputs forwards non-key messages (blink ticks) to the active inputs
func (m *Model) updateInputs(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	for i := range m.inputs {
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	m.pathInput, cmd = m.pathInput.Update(msg)
	cmds = append(cmds, cmd)

	return cmds
}

func (m Model) credentials() types.Credentials {
	return types.Credentials{
		Name:     strings.TrimSpace(m.inputs[fieldName].Value()),
		Email:    strings.TrimSpace(m.inputs[fieldEmail].Value()),
		Password: m.inputs[fieldPassword].Value(),
	}
}

// activeFields lists the focusable auth fields for the current mode
func (m Model) activeFields() []int {
	if m.mode == workflow.ModeSignup {
		return []int{fieldName, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (m *Model) cycleFocus(dir int) {
	fields := m.activeFields()
	pos := 0
	for i, f := range fields {
		if f == m.focus {
			pos = i
			break
		}
	}
	pos = (pos + dir + len(fields)) % len(fields)
	m.focusField(fields[pos])
}

func (m *Model) focusField(field int) {
	m.focus = field
	for i := range m.inputs {
		if i == field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *Model) clearAuthForm() {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
}

// noticeText extracts the user-visible text from a workflow error
func noticeText(err error) string {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr.Message
	}
	return err.Error()
}

// Run starts the TUI program and blocks until it exits
func Run(deps Deps) error {
	deps.Logger.Info("Starting terminal UI")
	p := tea.NewProgram(NewModel(deps), tea.WithAltScreen())
	_, err := p.Run()
	if err == nil {
		deps.Logger.Info("Terminal UI closed")
	}
	return err
}
