package system

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/instance"
	"github.com/julianstephens/habit-tracker/internal/keyring"
	"github.com/julianstephens/habit-tracker/internal/storage"
)

// errSkipped marks a check that does not apply to the current setup
var errSkipped = errors.New("not applicable")

type check struct {
	name string
	// needsStore checks are skipped when storage could not be opened
	needsStore bool
	// warnOnly failures do not fail the command
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsStore: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsStore: true, run: checkMigrationsComplete},
	{name: "Data validation", needsStore: true, run: checkValidation},
	{name: "Backups present", needsStore: true, warnOnly: true, run: checkBackupsPresent},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Keyring", run: checkKeyring},
	{name: "Other instances", warnOnly: true, run: checkOtherInstances},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true
	if err := checkStorageReachable(ctx); err != nil {
		ctx.Printf("❌ Storage reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		reachable = false
	} else {
		ctx.Printf("✓ Storage reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsStore && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errSkipped):
			ctx.Printf("⊘ %s: SKIPPED (%v)\n", c.name, err)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

type dbProvider interface {
	GetDB() *sql.DB
}

func checkStorageReachable(ctx *cli.Context) error {
	if ctx.Store == nil {
		if err := ctx.Open(); err != nil {
			return err
		}
	}

	if p, ok := ctx.Provider.(dbProvider); ok {
		db := p.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Provider.(storage.Migrator)
	if !ok {
		return fmt.Errorf("%w: storage has no schema", errSkipped)
	}
	st, err := m.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Provider.(storage.Migrator)
	if !ok {
		return fmt.Errorf("%w: storage has no schema", errSkipped)
	}
	st, err := m.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if !st.UpToDate() {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'habit-tracker migrate')", st.Current, st.Latest)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	res := checkStored(ctx)
	if res.HasIssues() {
		return fmt.Errorf("%d issue(s) found (run 'habit-tracker validate' for details)", len(res.Issues))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.Backups.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'habit-tracker backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Today()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if ctx.Config.StoragePath != constants.KeyringStoragePath {
		return fmt.Errorf("%w: storage does not use the keyring", errSkipped)
	}
	st := keyring.GetStatus()
	switch {
	case !st.Available:
		return keyring.ErrKeyringUnavailable
	case !st.Stored:
		return fmt.Errorf("no connection string stored (run 'habit-tracker keyring set')")
	}
	return nil
}

func checkOtherInstances(ctx *cli.Context) error {
	others, err := instance.Others()
	if err != nil {
		return fmt.Errorf("%w: %v", errSkipped, err)
	}
	if len(others) > 0 {
		return fmt.Errorf("%d other habit-tracker process(es) running; changes they make are picked up on reload", len(others))
	}
	return nil
}
