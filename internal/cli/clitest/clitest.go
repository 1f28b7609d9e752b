// Package clitest builds command contexts over in-memory storage for tests
package clitest

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habit-tracker/internal/backup"
	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/config"
	"github.com/julianstephens/habit-tracker/internal/storage"
	"github.com/julianstephens/habit-tracker/internal/store"
)

// Now is the fixed clock every test context runs on
var Now = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

// Env is a ready-to-run command context plus handles on its output
type Env struct {
	Ctx     *cli.Context
	Out     *bytes.Buffer
	Storage *storage.MemoryStore
}

// SequentialIDs yields id-1, id-2, ...
func SequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// New opens a context over a MemoryStore. Without options the store starts
// from the default seed data.
func New(t testing.TB, opts ...store.Option) *Env {
	t.Helper()

	mem := storage.NewMemoryStore()
	cfg := config.Default()
	cfg.StoragePath = "memory"

	ctx := cli.New(cfg, mem)
	ctx.Backups = backup.NewManager(t.TempDir())
	ctx.Now = func() time.Time { return Now }
	ctx.In = strings.NewReader("")
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.StoreOptions = append([]store.Option{store.WithIDGenerator(SequentialIDs())}, opts...)

	if err := ctx.Open(); err != nil {
		t.Fatalf("failed to open test context: %v", err)
	}
	return &Env{Ctx: ctx, Out: out, Storage: mem}
}

// Answer makes the next confirmation prompts read input
func (e *Env) Answer(input string) {
	e.Ctx.In = strings.NewReader(input)
}
