package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDashboard:
		content = docStyle.Render(m.dashboard.View())
	case StateHabits:
		content = docStyle.Render(m.habitList.View())
	case StateActivities:
		content = docStyle.Render(m.activityList.View())
	case StateSettings:
		content = docStyle.Render(m.viewSettings())
	case StateAddHabit, StateAddActivity:
		content = docStyle.Render(m.form.View())
	case StateConfirm:
		content = m.viewConfirm()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		statusStyle.Render(m.status),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.tab == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirm() string {
	var question string
	switch m.pending.kind {
	case confirmDeleteHabit:
		question = fmt.Sprintf("Delete habit %q?", m.pending.name)
	case confirmDeleteActivity:
		question = fmt.Sprintf("Delete activity %q?", m.pending.name)
	case confirmClearData:
		question = "Clear ALL habits and activities? This cannot be undone."
	}

	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(question),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
