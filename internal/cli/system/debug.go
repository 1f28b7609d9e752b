package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/keyring"
	"github.com/julianstephens/habit-tracker/internal/storage"
)

type DebugCmd struct {
	DBPath       DebugDBPathCmd       `cmd:"" name:"db-path" help:"Show the storage location."`
	DumpHabit    DebugDumpHabitCmd    `cmd:"" help:"Dump a habit as JSON."`
	DumpActivity DebugDumpActivityCmd `cmd:"" help:"Dump an activity as JSON."`
	DumpSettings DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
}

func printJSON(ctx *cli.Context, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(data))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	path := ctx.Provider.GetConfigPath()
	if storage.IsPostgres(path) {
		path = keyring.Redact(path)
	}
	return printJSON(ctx, map[string]string{
		"path":    path,
		"backups": ctx.Backups.GetBackupDir(),
	})
}

type DebugDumpHabitCmd struct {
	ID string `arg:"" help:"Habit ID."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *cli.Context) error {
	h, ok := ctx.Store.Habit(cmd.ID)
	if !ok {
		return fmt.Errorf("no habit with ID %s", cmd.ID)
	}
	return printJSON(ctx, h)
}

type DebugDumpActivityCmd struct {
	ID string `arg:"" help:"Activity ID."`
}

func (cmd *DebugDumpActivityCmd) Run(ctx *cli.Context) error {
	a, ok := ctx.Store.Activity(cmd.ID)
	if !ok {
		return fmt.Errorf("no activity with ID %s", cmd.ID)
	}
	return printJSON(ctx, a)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, ctx.Store.Settings())
}
