package system

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habit-tracker/internal/backup"
	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/cli/clitest"
	"github.com/julianstephens/habit-tracker/internal/config"
	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/storage"
	"github.com/julianstephens/habit-tracker/internal/store"
)

// unopenedContext mirrors what main hands to commands that open storage themselves
func unopenedContext(t *testing.T, p storage.Provider) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	ctx := cli.New(cfg, p)
	ctx.Backups = backup.NewManager(t.TempDir())
	ctx.Now = func() time.Time { return clitest.Now }
	ctx.In = strings.NewReader("")
	ctx.StoreOptions = []store.Option{store.WithIDGenerator(clitest.SequentialIDs())}
	out := &bytes.Buffer{}
	ctx.Out = out
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx, out
}

// storeExport opens ctx and returns its export document
func storeExport(t *testing.T, ctx *cli.Context) models.ExportData {
	t.Helper()
	if ctx.Store == nil {
		if err := ctx.Open(); err != nil {
			t.Fatal(err)
		}
	}
	return ctx.Store.ExportData()
}
