package backups

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/instance"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	backupPath, err := ctx.Backups.CreateBackup(ctx.Store.ExportData())
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Backups
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	now := ctx.Today()
	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), mgr.MaxBackups())
	for _, b := range backups {
		ctx.Printf("  %s  %s  (%s, %s)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"),
			b.Name(),
			humanize.Bytes(uint64(b.Size)),
			humanize.RelTime(b.Timestamp, now, "ago", "from now"))
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" optional:"" default:"latest" help:"Path or filename of the backup to restore, or 'latest'."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
	Force      bool   `help:"Restore even while another habit-tracker is running."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	if err := instance.EnsureExclusive("restoring", c.Force); err != nil {
		return err
	}

	mgr := ctx.Backups
	backupPath, err := mgr.Resolve(c.BackupFile)
	if err != nil {
		return err
	}

	if !c.Yes {
		ctx.Println("⚠️  WARNING: This will replace your current habits and activities with the backup.")
		ctx.Println("A backup of your current data will be created before restoring.")
		ctx.Printf("\nRestore from: %s\n", backupPath)
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	preRestore, err := mgr.RestoreBackup(ctx.Store, backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.Println("✓ Data restored successfully!")
	ctx.Printf("  Previous data saved as %s\n", filepath.Base(preRestore))
	return nil
}
