package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/logger"
	"github.com/julianstephens/habit-tracker/internal/storage"
	"github.com/julianstephens/habit-tracker/internal/store"
	"github.com/julianstephens/habit-tracker/internal/tui"
	"github.com/julianstephens/habit-tracker/internal/watch"
)

type TuiCmd struct {
	NoWatch bool `help:"Do not reload when another process changes the storage file."`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	model := tui.NewModel(ctx.Store, tui.WithClock(ctx.Today), tui.WithAfterChange(ctx.AfterChange))
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Listeners run on the goroutine that made the change, which may be the
	// program's own event loop, so messages are sent asynchronously.
	unsubscribe := ctx.Store.Subscribe(func(e store.Event) {
		go p.Send(tui.StoreChangedMsg{Event: e})
	})
	defer unsubscribe()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if fb, ok := ctx.Provider.(storage.FileBacked); ok && !c.NoWatch {
		w, err := watch.New(fb.FilePath(), ctx.Store, watch.OnReload(func(err error) {
			if err != nil {
				go p.Send(tui.ReloadFailedMsg{Err: err})
			}
		}))
		if err == nil {
			err = w.Start(appCtx)
		}
		if err != nil {
			logger.Warn("External change detection disabled", "error", err)
		} else {
			defer w.Stop()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
