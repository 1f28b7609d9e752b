// Package scheduler places activities within a day and detects overlaps
package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/models"
)

// ErrNoFreeSlot is returned when no gap in the window fits the requested duration
var ErrNoFreeSlot = errors.New("no free slot left in the day")

// Slot is a span of minutes from midnight occupied by an activity
type Slot struct {
	Start    int
	End      int
	Activity models.Activity
}

type timeBlock struct {
	start int // minutes from midnight
	end   int // minutes from midnight
}

func parseTime(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Occupied returns the slots taken by activities, sorted by start. Activities
// with an unparseable time are skipped; zero-length ones still occupy a minute.
func Occupied(activities []models.Activity) []Slot {
	slots := make([]Slot, 0, len(activities))
	for _, a := range activities {
		start, err := parseTime(a.Time)
		if err != nil {
			continue
		}
		slots = append(slots, Slot{Start: start, End: start + max(a.Duration, 1), Activity: a})
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start < slots[j].Start
	})
	return slots
}

func findFreeBlocks(dayStart, dayEnd int, slots []Slot) []timeBlock {
	var blocks []timeBlock

	currentStart := dayStart
	for _, slot := range slots {
		if currentStart < slot.Start {
			blocks = append(blocks, timeBlock{start: currentStart, end: min(slot.Start, dayEnd)})
		}
		currentStart = max(currentStart, slot.End)
		if currentStart >= dayEnd {
			break
		}
	}

	if currentStart < dayEnd {
		blocks = append(blocks, timeBlock{start: currentStart, end: dayEnd})
	}
	return blocks
}

// NextFreeSlot returns the earliest HH:MM start, no earlier than notBefore and
// rounded up to the slot granularity, at which an activity of duration minutes
// fits between dayStart and dayEnd without overlapping activities.
func NextFreeSlot(activities []models.Activity, duration int, notBefore, dayStart, dayEnd string) (string, error) {
	startMin, err := parseTime(dayStart)
	if err != nil {
		return "", fmt.Errorf("invalid day start time: %w", err)
	}
	endMin, err := parseTime(dayEnd)
	if err != nil {
		return "", fmt.Errorf("invalid day end time: %w", err)
	}
	if notBefore != "" {
		nb, err := parseTime(notBefore)
		if err != nil {
			return "", fmt.Errorf("invalid start bound: %w", err)
		}
		startMin = max(startMin, nb)
	}

	for _, block := range findFreeBlocks(startMin, endMin, Occupied(activities)) {
		start := roundUp(block.start, constants.SlotGranularityMin)
		if start+duration <= block.end {
			return formatTime(start), nil
		}
	}
	return "", ErrNoFreeSlot
}

func roundUp(minutes, step int) int {
	if r := minutes % step; r != 0 {
		return minutes + step - r
	}
	return minutes
}

// Overlaps returns the activities that intersect [start, start+duration)
func Overlaps(activities []models.Activity, start string, duration int) ([]models.Activity, error) {
	s, err := parseTime(start)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	e := s + max(duration, 1)

	var out []models.Activity
	for _, slot := range Occupied(activities) {
		if slot.Start < e && s < slot.End {
			out = append(out, slot.Activity)
		}
	}
	return out, nil
}
