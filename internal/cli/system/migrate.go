package system

import (
	"fmt"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/storage"
)

type MigrateCmd struct {
	Status bool `help:"Only report the schema version and pending migrations."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Provider.(storage.Migrator)
	if !ok {
		return fmt.Errorf("migrate only supports SQL storage (sqlite or postgres)")
	}
	if err := ctx.Provider.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if c.Status {
		st, err := m.SchemaStatus()
		if err != nil {
			return fmt.Errorf("failed to read schema status: %w", err)
		}
		ctx.Printf("Schema version: %d (latest %d)\n", st.Current, st.Latest)
		for _, p := range st.Pending {
			ctx.Printf("  pending %03d_%s\n", p.Version, p.Name)
		}
		return nil
	}

	count, err := m.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
