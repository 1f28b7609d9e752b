package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/config"
	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/instance"
	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/storage"
	"github.com/julianstephens/habit-tracker/internal/store"
)

type InitCmd struct {
	Force bool `help:"Reset existing data to a fresh start (a backup is taken first)."`
	Empty bool `help:"Start without the sample habits and activities."`
	Yes   bool `short:"y" help:"Skip the confirmation prompt for --force."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Provider.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	location := ctx.Provider.GetConfigPath()
	if storage.IsPostgres(location) {
		location = "PostgreSQL"
	}

	existing, err := hasData(ctx.Provider)
	if err != nil {
		return err
	}

	if existing && c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
		existing = false
	}

	if c.Empty {
		ctx.StoreOptions = append(ctx.StoreOptions, store.WithSeed(models.State{}))
	}
	if err := ctx.Open(); err != nil {
		return err
	}
	if err := ctx.Store.EnsurePersisted(); err != nil {
		return fmt.Errorf("failed to write initial data: %w", err)
	}

	if existing {
		ctx.Printf("Storage already initialized at: %s\n", location)
	} else {
		ctx.Printf("Initialized habit-tracker storage at: %s\n", location)
	}

	if err := c.writeConfig(ctx); err != nil {
		return err
	}
	return nil
}

// reset snapshots the current data and removes the stored records
func (c *InitCmd) reset(ctx *cli.Context) error {
	if err := instance.EnsureExclusive("resetting storage", false); err != nil {
		return err
	}
	if !c.Yes {
		ok, err := ctx.Confirm("This will replace all habits, activities and settings. Continue?")
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("init cancelled")
		}
	}

	if err := ctx.Open(); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	for _, key := range []string{constants.StorageKey, constants.SettingsKey} {
		if err := ctx.Provider.RemoveItem(key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to reset %s: %w", key, err)
		}
	}
	ctx.Println("Existing data removed.")
	return nil
}

func (c *InitCmd) writeConfig(ctx *cli.Context) error {
	if ctx.ConfigPath == "" || ctx.Config.File != "" {
		return nil
	}
	path, err := storage.ExpandPath(ctx.ConfigPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := config.Write(path, ctx.Config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	ctx.Printf("Wrote default config to: %s\n", path)
	return nil
}

func hasData(p storage.Provider) (bool, error) {
	_, err := p.GetItem(constants.StorageKey)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("failed to inspect storage: %w", err)
	}
}
