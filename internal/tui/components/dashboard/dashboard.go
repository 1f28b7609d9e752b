package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/stats"
)

var (
	greetingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(20)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(8)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)
)

type Model struct {
	viewport   viewport.Model
	bar        progress.Model
	now        time.Time
	stats      stats.DashboardStats
	habits     []models.Habit
	activities []models.Activity
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetData recomputes the dashboard. today holds the activities dated today.
func (m *Model) SetData(now time.Time, habits []models.Habit, all, today []models.Activity) {
	m.now = now
	m.habits = habits
	m.activities = today
	m.stats = stats.Dashboard(habits, all, now)
	m.Render()
}

// SetClock updates the header clock without recomputing stats
func (m *Model) SetClock(now time.Time) {
	m.now = now
	m.Render()
}

func (m *Model) Render() {
	var b strings.Builder

	b.WriteString(greetingStyle.Render(stats.Greeting(m.now)))
	b.WriteString("\n")
	b.WriteString(m.now.Format("Monday, January 2  15:04:05"))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("Habits today", fmt.Sprintf("%d/%d  %s", m.stats.CompletedToday, m.stats.ActiveHabits,
		m.bar.ViewAs(float64(m.stats.TodayRate)/100)))
	row("This week", fmt.Sprintf("%d%%", m.stats.WeeklyRate))
	row("Best streak", fmt.Sprintf("%d days", m.stats.BestStreak))
	row("Productive time", stats.FormatMinutes(m.stats.ProductiveMinutes))
	row("Activities today", fmt.Sprintf("%d", m.stats.TodayActivities))

	b.WriteString(sectionStyle.Render("Habits"))
	b.WriteString("\n")
	shown := 0
	for _, h := range m.habits {
		if !h.IsActive {
			continue
		}
		shown++
		mark := "○"
		if h.CompletedToday {
			mark = "✓"
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color)).Render("●")
		fmt.Fprintf(&b, "%s %s %s  streak %d\n", mark, swatch, h.Name, h.CurrentStreak)
	}
	if shown == 0 {
		b.WriteString("No habits yet.\n")
	}

	b.WriteString(sectionStyle.Render("Schedule"))
	b.WriteString("\n")
	if len(m.activities) == 0 {
		b.WriteString("Nothing scheduled today.\n")
	}
	for _, a := range m.activities {
		name := nameStyle.Render(a.Name)
		if a.IsCompleted {
			name = doneStyle.Render(a.Name)
		}
		fmt.Fprintf(&b, "%s %s %s\n", timeStyle.Render(a.Time), name,
			lipgloss.NewStyle().Foreground(lipgloss.Color(models.ActivityTypeColor(a.Type))).Render(models.ActivityTypeLabel(a.Type)))
	}

	m.viewport.SetContent(b.String())
}
