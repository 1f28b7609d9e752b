package activitylist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/stats"
)

type AddActivityMsg struct {
	Day time.Time
}

type ToggleActivityMsg struct {
	ID string
}

type DeleteActivityMsg struct {
	ID   string
	Name string
}

// DayChangedMsg asks the parent to reload the list for another day
type DayChangedMsg struct {
	Day time.Time
}

type Item struct {
	Activity models.Activity
}

func (i Item) Title() string {
	mark := "[ ]"
	if i.Activity.IsCompleted {
		mark = "[x]"
	}
	return fmt.Sprintf("%s %s  %s", mark, i.Activity.Time, i.Activity.Name)
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %s", models.ActivityTypeLabel(i.Activity.Type), stats.FormatMinutes(i.Activity.Duration))
	if i.Activity.Notes != "" {
		desc += " | " + i.Activity.Notes
	}
	return desc
}

func (i Item) FilterValue() string { return i.Activity.Name }

type KeyMap struct {
	Add     key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	PrevDay key.Binding
	NextDay key.Binding
	Today   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "complete"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
	}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	day   time.Time
	today time.Time
	stats stats.ActivityStats
}

func New(day time.Time, activities []models.Activity, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete, keys.PrevDay, keys.NextDay}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete, keys.PrevDay, keys.NextDay, keys.Today}
	}

	m := Model{list: l, keys: keys, day: day, today: day}
	m.SetActivities(day, activities)
	return m
}

// SetActivities replaces the list with the activities of day
func (m *Model) SetActivities(day time.Time, activities []models.Activity) {
	items := make([]list.Item, len(activities))
	for i, a := range activities {
		items[i] = Item{Activity: a}
	}
	m.day = day
	m.stats = stats.Activities(activities)
	m.list.SetItems(items)
}

// SetToday moves the anchor used by the 't' key
func (m *Model) SetToday(today time.Time) {
	m.today = today
}

func (m Model) Day() time.Time {
	return m.day
}

func (m Model) Selected() (models.Activity, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Activity, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			day := m.day
			return m, func() tea.Msg { return AddActivityMsg{Day: day} }
		case key.Matches(msg, m.keys.Toggle):
			if a, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleActivityMsg{ID: a.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if a, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteActivityMsg{ID: a.ID, Name: a.Name} }
			}
			return m, nil
		case key.Matches(msg, m.keys.PrevDay):
			return m, dayChanged(m.day.AddDate(0, 0, -1))
		case key.Matches(msg, m.keys.NextDay):
			return m, dayChanged(m.day.AddDate(0, 0, 1))
		case key.Matches(msg, m.keys.Today):
			return m, dayChanged(m.today)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func dayChanged(day time.Time) tea.Cmd {
	return func() tea.Msg { return DayChangedMsg{Day: day} }
}

func (m Model) View() string {
	header := fmt.Sprintf("  %s | %d/%d done (%d%%) | productive %s\n",
		m.day.Format("Mon Jan 2, 2006"), m.stats.Completed, m.stats.Total, m.stats.CompletionRate,
		stats.FormatMinutes(m.stats.ProductiveMinutes))
	if len(m.list.Items()) == 0 {
		return header + "\n  Nothing scheduled.\n  Press 'a' to add an activity."
	}
	return header + m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, max(height-1, 0))
}
