package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/store"
	"github.com/julianstephens/habit-tracker/internal/tui/components/activitylist"
	"github.com/julianstephens/habit-tracker/internal/tui/components/dashboard"
	"github.com/julianstephens/habit-tracker/internal/tui/components/habitlist"
	"github.com/julianstephens/habit-tracker/internal/tui/forms"
)

type SessionState int

// The first four states are the tabs, in display order
const (
	StateDashboard SessionState = iota
	StateHabits
	StateActivities
	StateSettings
	StateAddHabit
	StateAddActivity
	StateConfirm
)

const tabCount = 4

var tabTitles = [tabCount]string{"Dashboard", "Habits", "Activities", "Settings"}

// StoreChangedMsg carries a store event into the program
type StoreChangedMsg struct {
	Event store.Event
}

// ReloadFailedMsg reports a failed reload after an external change
type ReloadFailedMsg struct {
	Err error
}

type tickMsg time.Time

type confirmKind int

const (
	confirmDeleteHabit confirmKind = iota
	confirmDeleteActivity
	confirmClearData
)

type pendingConfirm struct {
	kind confirmKind
	id   string
	name string
}

type Model struct {
	store       *store.Store
	now         func() time.Time
	afterChange func()

	state    SessionState
	tab      SessionState
	keys     KeyMap
	help     help.Model
	quitting bool
	width    int
	height   int
	status   string
	lastDay  time.Time
	// seen is the state the views were last built from
	seen models.State

	dashboard    dashboard.Model
	habitList    habitlist.Model
	activityList activitylist.Model

	settingsCursor int

	form         *huh.Form
	habitForm    *forms.HabitFormModel
	activityForm *forms.ActivityFormModel
	formDay      time.Time

	pending pendingConfirm
}

type Option func(*Model)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithAfterChange runs fn after every successful mutation made from the UI
func WithAfterChange(fn func()) Option {
	return func(m *Model) { m.afterChange = fn }
}

func NewModel(s *store.Store, opts ...Option) Model {
	m := Model{
		store:       s,
		now:         time.Now,
		afterChange: func() {},
		state:       StateDashboard,
		tab:         StateDashboard,
		keys:        DefaultKeyMap(),
		help:        help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	now := m.now()
	today := startOfDay(now)
	m.dashboard = dashboard.New(0, 0)
	m.habitList = habitlist.New(s.Habits(), 0, 0)
	m.activityList = activitylist.New(today, s.ActivitiesForDate(today), 0, 0)
	m.refresh()
	return m
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// refresh reloads every view from the store
func (m *Model) refresh() {
	now := m.now()
	m.lastDay = startOfDay(now)
	m.seen = m.store.State()

	m.dashboard.SetData(now, m.store.Habits(), m.store.Activities(), m.store.ActivitiesForDate(now))
	m.habitList.SetHabits(m.store.FilterHabits(store.HabitFilter{Status: m.habitList.Status()}))

	m.activityList.SetToday(m.lastDay)
	day := m.activityList.Day()
	m.activityList.SetActivities(day, m.store.ActivitiesForDate(day))
}

func (m *Model) resize() {
	// tabs, margins, status line and help
	w, h := max(m.width-4, 0), max(m.height-6, 0)
	m.dashboard.SetSize(w, h)
	m.habitList.SetSize(w, h)
	m.activityList.SetSize(w, h)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateHabits:
		hk := habitlist.DefaultKeyMap()
		keys = append(keys, hk.Add, hk.Toggle, hk.Delete, hk.Filter)
	case StateActivities:
		ak := activitylist.DefaultKeyMap()
		keys = append(keys, ak.Add, ak.Toggle, ak.Delete, ak.PrevDay, ak.NextDay)
	case StateSettings:
		keys = append(keys, m.keys.Toggle, m.keys.ClearData)
	case StateConfirm:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateHabits:
		hk := habitlist.DefaultKeyMap()
		actions = []key.Binding{hk.Add, hk.Toggle, hk.Delete, hk.Filter}
	case StateActivities:
		ak := activitylist.DefaultKeyMap()
		actions = []key.Binding{ak.Add, ak.Toggle, ak.Delete, ak.PrevDay, ak.NextDay, ak.Today}
	case StateSettings:
		actions = []key.Binding{m.keys.Toggle, m.keys.ClearData}
	}

	return [][]key.Binding{global, navigation, actions}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}
