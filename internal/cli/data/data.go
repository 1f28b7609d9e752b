package data

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habit-tracker/internal/cli"
	apperrors "github.com/julianstephens/habit-tracker/internal/errors"
	"github.com/julianstephens/habit-tracker/internal/instance"
	"github.com/julianstephens/habit-tracker/internal/store"
	"github.com/julianstephens/habit-tracker/internal/transfer"
	"github.com/julianstephens/habit-tracker/internal/validation"
)

type ExportCmd struct {
	Output string `short:"o" help:"Output file; defaults to habit-tracker-backup-YYYY-MM-DD in the current directory. Use - for stdout."`
	Format string `short:"f" help:"Output format (json|yaml); inferred from the output extension when omitted."`
}

func (c *ExportCmd) format() (transfer.Format, error) {
	if c.Format != "" {
		return transfer.ParseFormat(c.Format)
	}
	if c.Output != "" && c.Output != "-" {
		return transfer.FormatFromPath(c.Output), nil
	}
	return transfer.FormatJSON, nil
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := c.format()
	if err != nil {
		return err
	}

	exported := ctx.Store.ExportData()

	if c.Output == "-" {
		return transfer.Encode(ctx.Out, exported, format)
	}

	path := c.Output
	if path == "" {
		path = transfer.FileName(ctx.Today(), format)
	}

	if err := transfer.WriteFile(path, exported, format, 0644); err != nil {
		return err
	}

	ctx.Printf("✓ Exported %d habits and %d activities to %s\n", len(exported.Habits), len(exported.Activities), path)
	return nil
}

type ImportCmd struct {
	File   string `arg:"" type:"existingfile" help:"JSON or YAML file to import."`
	Format string `short:"f" help:"Input format (json|yaml); inferred from the extension when omitted."`
	Mode   string `help:"Validation mode (sanitize|strict); defaults to the configured mode."`
	Yes    bool   `short:"y" help:"Skip the confirmation prompt."`
	Force  bool   `help:"Import even while another habit-tracker is running."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	if err := instance.EnsureExclusive("importing", c.Force); err != nil {
		return err
	}

	format := transfer.FormatFromPath(c.File)
	if c.Format != "" {
		f, err := transfer.ParseFormat(c.Format)
		if err != nil {
			return err
		}
		format = f
	}
	if c.Mode != "" {
		mode, err := validation.ParseMode(c.Mode)
		if err != nil {
			return err
		}
		ctx.Store.SetImportMode(mode)
	}

	file, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.File, err)
	}
	defer file.Close()

	doc, err := transfer.Decode(file, format)
	if err != nil {
		return apperrors.NewNotice("failed to import data", err)
	}
	if doc.Empty() {
		ctx.Println("Nothing to import: the file has neither habits nor activities.")
		return nil
	}

	if !c.Yes {
		ctx.Printf("This will replace your current %s with the contents of %s.\n", describe(doc.Habits != nil, doc.Activities != nil), filepath.Base(c.File))
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Import cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	res, err := ctx.Store.Import(doc)
	if err != nil {
		if errors.Is(err, store.ErrInvalidImport) {
			ctx.Println(res.FormatReport())
		}
		return err
	}
	ctx.AfterChange()

	if fixed := res.Fixed(); len(fixed) > 0 {
		ctx.Printf("Repaired %d issue(s) while importing:\n", len(fixed))
		for _, is := range fixed {
			ctx.Printf("  - %s\n", is)
		}
	}

	ctx.Printf("✓ Imported data: %d habits, %d activities\n", len(ctx.Store.Habits()), len(ctx.Store.Activities()))
	return nil
}

func describe(habits, activities bool) string {
	switch {
	case habits && activities:
		return "habits and activities"
	case habits:
		return "habits"
	default:
		return "activities"
	}
}

type ClearCmd struct {
	Yes   bool `short:"y" help:"Skip the confirmation prompt."`
	Force bool `help:"Clear even while another habit-tracker is running."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	if err := instance.EnsureExclusive("clearing data", c.Force); err != nil {
		return err
	}

	if !c.Yes {
		ctx.Println("⚠️  This deletes every habit and activity. A backup is taken first.")
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Clear cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.ClearAllData(); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	ctx.Println("✓ All habits and activities deleted")
	return nil
}
