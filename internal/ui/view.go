package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/janisto/meal-planner/internal/profilesync"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if line := m.renderState(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Panel.Render(m.renderBody()))
	b.WriteString("\n")

	if m.mode == ModeSwitchUser {
		b.WriteString(m.styles.Label.Render("User ID"))
		b.WriteString(m.prompt.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.renderStatus())
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("Profile")
	id := m.session.Identity()
	who := m.styles.MutedText.Render("signed out")
	if id.Authenticated() {
		who = m.styles.Value.Render(id.UID)
	}
	return title + "  " + who
}

// renderState shows loading and failure above the data; the snapshot stays visible
// underneath so an error never hides the last good values.
func (m Model) renderState() string {
	switch {
	case !m.session.Identity().Authenticated():
		return m.styles.WarningText.Render("Not signed in. Press u to choose a user.")
	case m.state.Err != nil:
		return m.styles.DangerText.Render("Error: " + m.state.Err.Error())
	case m.state.Loading:
		return m.styles.WarningText.Render("Loading...")
	}
	return ""
}

func (m Model) renderBody() string {
	labels := [fieldCount]string{"First name", "Last name", "Email"}

	rows := make([]string, 0, fieldCount)
	if m.mode == ModeEdit {
		for i, in := range m.inputs {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Label.Render(labels[i]), in.View()))
		}
		return strings.Join(rows, "\n")
	}

	values := snapshotValues(m.state.Snapshot)
	for i, v := range values {
		rendered := m.styles.Value.Render(v)
		if v == "" {
			rendered = m.styles.MutedText.Render("not set")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Label.Render(labels[i]), rendered))
	}
	return strings.Join(rows, "\n")
}

func snapshotValues(s profilesync.Snapshot) [fieldCount]string {
	return [fieldCount]string{s.FirstName, s.LastName, s.Email}
}

func (m Model) renderStatus() string {
	switch m.statusKind {
	case statusSuccess:
		return m.styles.SuccessText.Render(m.status)
	case statusWarning:
		return m.styles.WarningText.Render(m.status)
	case statusError:
		return m.styles.DangerText.Render(m.status)
	default:
		return m.styles.MutedText.Render(m.status)
	}
}

func (m Model) renderHelp() string {
	var bindings []key.Binding
	switch m.mode {
	case ModeEdit:
		bindings = m.keys.editHelp()
	case ModeSwitchUser:
		bindings = m.keys.promptHelp()
	default:
		bindings = m.keys.viewHelp()
	}

	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, m.styles.HelpKey.Render(h.Key)+" "+m.styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
