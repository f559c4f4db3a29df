package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/janisto/meal-planner/internal/identity"
	"github.com/janisto/meal-planner/internal/profilesync"
)

// Mode is what the keyboard currently drives.
type Mode int

const (
	ModeView Mode = iota
	ModeEdit
	ModeSwitchUser
)

const (
	fieldFirstName = iota
	fieldLastName
	fieldEmail
	fieldCount
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Session   *profilesync.Session
	Identity  *identity.Source
	ThemeName string
}

// Model is the profile screen state.
type Model struct {
	ctx      context.Context
	session  *profilesync.Session
	identity *identity.Source

	keys   keyMap
	theme  Theme
	styles Styles
	width  int

	state profilesync.State
	mode  Mode

	inputs [fieldCount]textinput.Model
	focus  int
	prompt textinput.Model
	saving bool

	status     string
	statusKind statusKind

	changes     <-chan struct{}
	stopChanges func()
}

// New creates the profile screen for an already mounted session.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	theme := GetTheme(opts.ThemeName)
	changes, stop := opts.Session.Store().Changes()

	m := Model{
		ctx:         ctx,
		session:     opts.Session,
		identity:    opts.Identity,
		keys:        defaultKeyMap(),
		theme:       theme,
		styles:      theme.Styles(),
		state:       opts.Session.State(),
		changes:     changes,
		stopChanges: stop,
	}

	placeholders := [fieldCount]string{"First name", "Last name", "Email"}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 128
		in.Prompt = ""
		m.inputs[i] = in
	}

	m.prompt = textinput.New()
	m.prompt.Placeholder = "user id (empty signs out)"
	m.prompt.CharLimit = 128
	m.prompt.Prompt = ""
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.ctx, m.changes)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case changeMsg:
		prev := m.state.Snapshot
		m.state = m.session.State()
		if m.mode == ModeEdit && m.state.Snapshot != prev {
			m.seedDraft()
		}
		return m, waitForChange(m.ctx, m.changes)

	case refreshedMsg:
		m.state = m.session.State()
		return m, nil

	case saveResultMsg:
		return m.handleSaveResult(profilesync.SaveResult(msg)), nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	switch m.mode {
	case ModeEdit:
		return m.handleEditKey(msg)
	case ModeSwitchUser:
		return m.handlePromptKey(msg)
	default:
		return m.handleViewKey(msg)
	}
}

func (m Model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()

	case key.Matches(msg, m.keys.Refresh):
		if !m.session.Identity().Authenticated() {
			m.setStatus(statusWarning, "Not signed in.")
			return m, nil
		}
		m.setStatus(statusInfo, "")
		return m, refreshCmd(m.ctx, m.session)

	case key.Matches(msg, m.keys.SwitchID):
		if m.identity == nil {
			return m, nil
		}
		m.mode = ModeSwitchUser
		m.prompt.SetValue(m.identity.Current().UID)
		m.prompt.CursorEnd()
		return m, m.prompt.Focus()
	}
	return m, nil
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	m.seedDraft()
	m.mode = ModeEdit
	m.setStatus(statusInfo, "")
	return m, m.focusField(fieldFirstName)
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.blurAll()
		m.mode = ModeView
		m.setStatus(statusInfo, "")
		return m, nil

	case key.Matches(msg, m.keys.Save):
		if m.saving {
			return m, nil
		}
		m.saving = true
		m.setStatus(statusInfo, "Saving...")
		return m, saveCmd(m.ctx, m.session, m.draft())

	case key.Matches(msg, m.keys.Next):
		return m, m.focusField((m.focus + 1) % fieldCount)

	case key.Matches(msg, m.keys.Previous):
		return m, m.focusField((m.focus + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.prompt.Blur()
		m.mode = ModeView
		return m, nil

	case key.Matches(msg, m.keys.Save):
		uid := strings.TrimSpace(m.prompt.Value())
		m.prompt.Blur()
		m.mode = ModeView
		m.identity.Set(identity.Identity{UID: uid})
		m.state = m.session.State()
		if uid == "" {
			m.setStatus(statusInfo, "Signed out.")
		} else {
			m.setStatus(statusInfo, "Switched to "+uid+".")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) handleSaveResult(res profilesync.SaveResult) Model {
	m.saving = false
	m.state = m.session.State()

	switch res.Outcome {
	case profilesync.Saved:
		m.blurAll()
		m.mode = ModeView
		m.setStatus(statusSuccess, "Saved.")
	case profilesync.Unchanged:
		m.blurAll()
		m.mode = ModeView
		m.setStatus(statusInfo, "No changes to save.")
	case profilesync.NotAuthenticated:
		m.setStatus(statusWarning, "Sign in to save changes.")
	case profilesync.WriteFailed:
		msg := "Save failed."
		if res.Err != nil {
			msg = "Save failed: " + res.Err.Error()
		}
		m.setStatus(statusError, msg)
	}
	return m
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.stopChanges != nil {
		m.stopChanges()
	}
	return m, tea.Quit
}

// seedDraft resets the inputs to the current snapshot.
func (m *Model) seedDraft() {
	draft := profilesync.DraftFrom(m.state.Snapshot)
	m.inputs[fieldFirstName].SetValue(draft.FirstName)
	m.inputs[fieldLastName].SetValue(draft.LastName)
	m.inputs[fieldEmail].SetValue(draft.Email)
	for i := range m.inputs {
		m.inputs[i].CursorEnd()
	}
}

func (m *Model) focusField(i int) tea.Cmd {
	m.blurAll()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) blurAll() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

func (m Model) draft() profilesync.Draft {
	return profilesync.Draft{
		FirstName: m.inputs[fieldFirstName].Value(),
		LastName:  m.inputs[fieldLastName].Value(),
		Email:     m.inputs[fieldEmail].Value(),
	}
}

// Mode reports what the keyboard currently drives.
func (m Model) Mode() Mode { return m.mode }

// Messages

type changeMsg struct{}

type refreshedMsg struct{}

type saveResultMsg profilesync.SaveResult

// Commands

// waitForChange blocks until the store signals a change or ctx ends.
func waitForChange(ctx context.Context, ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ch:
			return changeMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func refreshCmd(ctx context.Context, s *profilesync.Session) tea.Cmd {
	return func() tea.Msg {
		s.Refresh(ctx)
		return refreshedMsg{}
	}
}

func saveCmd(ctx context.Context, s *profilesync.Session, d profilesync.Draft) tea.Cmd {
	return func() tea.Msg {
		return saveResultMsg(s.Save(ctx, d))
	}
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	m := New(opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	_, err := tea.NewProgram(m, progOpts...).Run()
	return err
}
