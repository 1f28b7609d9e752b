package main

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habit-tracker/internal/constants"
)

func newParser(t *testing.T, grammar any) *kong.Kong {
	t.Helper()
	parser, err := kong.New(grammar,
		kong.Name(constants.AppName),
		kong.Exit(func(int) { t.Fatal("parser tried to exit") }),
		kong.Vars{
			"version":    constants.Version,
			"configFile": constants.DefaultConfigFile,
		},
	)
	require.NoError(t, err)
	return parser
}

func TestCommandGrammar(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, "tui"},
		{[]string{"today"}, "today"},
		{[]string{"habit", "add", "Read"}, "habit add <name>"},
		{[]string{"activity", "add", "Gym", "--time", "18:00"}, "activity add <name>"},
		{[]string{"activity", "add", "Gym"}, "activity add <name>"},
		{[]string{"backup"}, "backup create"},
		{[]string{"keyring"}, "keyring status"},
		{[]string{"--debug", "doctor"}, "doctor"},
	}

	for _, tt := range tests {
		grammar := CLI
		kctx, err := newParser(t, &grammar).Parse(tt.args)
		require.NoError(t, err, "args %v", tt.args)
		require.Equal(t, tt.want, kctx.Command(), "args %v", tt.args)
	}
}

func TestCommandGrammarRejectsUnknown(t *testing.T) {
	grammar := CLI
	_, err := newParser(t, &grammar).Parse([]string{"frobnicate"})
	require.Error(t, err)
}
