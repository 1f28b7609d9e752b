package system

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/validation"
)

// ValidateCmd checks stored data against the rules imports are held to
type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	res := checkStored(ctx)
	ctx.Println(strings.TrimRight(res.FormatReport(), "\n"))
	if !res.HasIssues() {
		return nil
	}
	ctx.Println()
	ctx.Println("Export your data and re-import it with --mode sanitize to repair fixable issues.")
	return fmt.Errorf("validation found %d issue(s)", len(res.Issues))
}

func checkStored(ctx *cli.Context) *validation.Result {
	v := validation.New(validation.ModeStrict)
	v.Now = ctx.Today
	return v.CheckState(ctx.Store.State())
}
