package store

import (
	"sort"
	"sync"

	"github.com/julianstephens/habit-tracker/internal/models"
)

type EventKind string

const (
	EventHabitAdded      EventKind = "habit_added"
	EventHabitToggled    EventKind = "habit_toggled"
	EventHabitDeleted    EventKind = "habit_deleted"
	EventActivityAdded   EventKind = "activity_added"
	EventActivityToggled EventKind = "activity_toggled"
	EventActivityDeleted EventKind = "activity_deleted"
	EventImported        EventKind = "imported"
	EventCleared         EventKind = "cleared"
	EventReloaded        EventKind = "reloaded"
	EventSettingsChanged EventKind = "settings_changed"
)

// Event describes one committed change. State is a copy of the collections as
// of the change, owned by the receiving listener.
type Event struct {
	Kind  EventKind
	ID    string
	State models.State
}

// Listener runs synchronously on the goroutine that made the change
type Listener func(Event)

type broadcaster struct {
	mu        sync.Mutex
	next      int
	listeners map[int]Listener
}

func (b *broadcaster) subscribe(l Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.listeners == nil {
		b.listeners = make(map[int]Listener)
	}
	id := b.next
	b.next++
	b.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// emit calls listeners in subscription order
func (b *broadcaster) emit(e Event) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	ls := make([]Listener, 0, len(ids))
	for _, id := range ids {
		ls = append(ls, b.listeners[id])
	}
	b.mu.Unlock()

	for _, l := range ls {
		l(Event{Kind: e.Kind, ID: e.ID, State: e.State.Clone()})
	}
}
