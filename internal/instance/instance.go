package instance

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/habit-tracker/internal/constants"
)

var (
	processesFunc = ps.Processes
	selfPIDFunc   = os.Getpid
)

// Process is another running habit-tracker
type Process struct {
	PID        int
	Executable string
}

func isHabitTracker(executable string) bool {
	name := strings.TrimSuffix(filepath.Base(executable), ".exe")
	return name == constants.AppName
}

// Others lists habit-tracker processes other than the current one
func Others() ([]Process, error) {
	procs, err := processesFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	self := selfPIDFunc()
	var others []Process
	for _, p := range procs {
		if p == nil || p.Pid() == self {
			continue
		}
		if isHabitTracker(p.Executable()) {
			others = append(others, Process{PID: p.Pid(), Executable: p.Executable()})
		}
	}
	return others, nil
}

// EnsureExclusive fails when another habit-tracker is running, unless force is set.
// Process listing errors are not fatal.
func EnsureExclusive(operation string, force bool) error {
	if force {
		return nil
	}
	others, err := Others()
	if err != nil || len(others) == 0 {
		return nil
	}

	pids := make([]string, len(others))
	for i, p := range others {
		pids[i] = fmt.Sprint(p.PID)
	}
	return fmt.Errorf("another habit-tracker process is running (pid %s); close it before %s or pass --force", strings.Join(pids, ", "), operation)
}
