package tui

import (
	"fmt"
	"reflect"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habit-tracker/internal/logger"
	"github.com/julianstephens/habit-tracker/internal/store"
	"github.com/julianstephens/habit-tracker/internal/tui/components/activitylist"
	"github.com/julianstephens/habit-tracker/internal/tui/components/habitlist"
	"github.com/julianstephens/habit-tracker/internal/tui/forms"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		if m.form != nil {
			form, cmd := m.form.Update(msg)
			if f, ok := form.(*huh.Form); ok {
				m.form = f
			}
			return m, cmd
		}
		return m, nil

	case tickMsg:
		now := m.now()
		if !startOfDay(now).Equal(m.lastDay) {
			m.refresh()
		} else {
			m.dashboard.SetClock(now)
		}
		return m, tick()

	case StoreChangedMsg:
		// our own writes come back through the file watcher as reloads
		external := msg.Event.Kind == store.EventReloaded && !reflect.DeepEqual(m.seen, msg.Event.State)
		m.refresh()
		if external {
			m.status = "Reloaded changes from another process"
		}
		return m, nil

	case ReloadFailedMsg:
		m.status = fmt.Sprintf("Error: failed to reload: %v", msg.Err)
		return m, nil
	}

	switch m.state {
	case StateAddHabit, StateAddActivity:
		return m.updateForm(msg)
	case StateConfirm:
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case habitlist.AddHabitMsg:
		m.habitForm = forms.NewHabitFormModel()
		m.form = forms.NewHabitForm(m.habitForm)
		m.state = StateAddHabit
		return m, m.form.Init()

	case habitlist.ToggleHabitMsg:
		m.applied(m.store.ToggleHabit(msg.ID), "")
		if h, ok := m.store.Habit(msg.ID); ok && m.status == "" {
			if h.CompletedToday {
				m.status = fmt.Sprintf("✓ %s done today (streak %d)", h.Name, h.CurrentStreak)
			} else {
				m.status = fmt.Sprintf("%s marked not done", h.Name)
			}
		}
		return m, nil

	case habitlist.DeleteHabitMsg:
		m.askConfirm(pendingConfirm{kind: confirmDeleteHabit, id: msg.ID, name: msg.Name})
		return m, nil

	case habitlist.FilterChangedMsg:
		m.refresh()
		return m, nil

	case activitylist.AddActivityMsg:
		m.formDay = msg.Day
		m.activityForm = forms.NewActivityFormModel(m.now())
		m.form = forms.NewActivityForm(m.activityForm)
		m.state = StateAddActivity
		return m, m.form.Init()

	case activitylist.ToggleActivityMsg:
		m.applied(m.store.ToggleActivity(msg.ID), "Activity updated")
		return m, nil

	case activitylist.DeleteActivityMsg:
		m.askConfirm(pendingConfirm{kind: confirmDeleteActivity, id: msg.ID, name: msg.Name})
		return m, nil

	case activitylist.DayChangedMsg:
		m.activityList.SetActivities(msg.Day, m.store.ActivitiesForDate(msg.Day))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.switchTab((m.tab + 1) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.switchTab((m.tab - 1 + tabCount) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		m.status = ""
	}

	var cmd tea.Cmd
	switch m.state {
	case StateDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case StateHabits:
		m.habitList, cmd = m.habitList.Update(msg)
	case StateActivities:
		m.activityList, cmd = m.activityList.Update(msg)
	case StateSettings:
		cmd = m.updateSettings(msg)
	}
	return m, cmd
}

func (m *Model) switchTab(tab SessionState) {
	m.tab = tab
	m.state = tab
	m.status = ""
}

// applied reports the outcome of a store mutation
func (m *Model) applied(err error, success string) {
	if err != nil {
		logger.Error("Change failed", "error", err)
		m.status = fmt.Sprintf("Error: %v", err)
		return
	}
	m.status = success
	m.refresh()
	m.afterChange()
}

func (m *Model) askConfirm(p pendingConfirm) {
	m.pending = p
	m.state = StateConfirm
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		m.state = m.tab
		switch m.pending.kind {
		case confirmDeleteHabit:
			m.applied(m.store.DeleteHabit(m.pending.id), fmt.Sprintf("Deleted habit %s", m.pending.name))
		case confirmDeleteActivity:
			m.applied(m.store.DeleteActivity(m.pending.id), fmt.Sprintf("Deleted activity %s", m.pending.name))
		case confirmClearData:
			m.applied(m.store.ClearAllData(), "All habits and activities cleared")
		}
		m.pending = pendingConfirm{}
	case key.Matches(keyMsg, m.keys.Cancel), keyMsg.String() == "ctrl+c":
		m.state = m.tab
		m.pending = pendingConfirm{}
		m.status = "Cancelled"
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.closeForm()
		m.status = "Cancelled"
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		adding := m.state
		m.closeForm()
		if adding == StateAddHabit {
			fields, err := m.habitForm.Fields()
			if err == nil {
				_, err = m.store.AddHabit(fields)
			}
			m.applied(err, fmt.Sprintf("Added habit %s", fields.Name))
		} else {
			fields, err := m.activityForm.Fields(m.formDay)
			if err == nil {
				_, err = m.store.AddActivity(fields)
			}
			m.applied(err, fmt.Sprintf("Added activity %s", fields.Name))
		}
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		m.status = "Cancelled"
		return m, nil
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.state = m.tab
}

func (m *Model) updateSettings(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.settingsCursor < len(settingsRows)-1 {
			m.settingsCursor++
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		m.applied(m.changeSetting(), "Settings saved")
	case key.Matches(keyMsg, m.keys.ClearData):
		m.askConfirm(pendingConfirm{kind: confirmClearData})
	}
	return nil
}
