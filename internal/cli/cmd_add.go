package cli

import (
	"context"
	"errors"

	"github.com/guojun21/wetype-hotwords/internal/wetype"

	flag "github.com/spf13/pflag"
)

var errAddArgsRequired = errors.New("add requires <key> and <text>")

// AddCmd returns the add command.
func AddCmd(cfg wetype.Config) *Command {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.Bool("no-restart", false, "Skip the input method restart signal")

	return &Command{
		Flags: fs,
		Usage: "add <key> <text>",
		Short: "Add a hotword",
		Long: "Prepend a new hotword and append the updated list to the store.\n" +
			"Duplicate trigger keys are permitted; the store does not enforce uniqueness.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			noRestart, _ := fs.GetBool("no-restart")

			return execAdd(ctx, o, cfg, args, noRestart)
		},
	}
}

func execAdd(ctx context.Context, o *IO, cfg wetype.Config, args []string, noRestart bool) error {
	if len(args) < 2 {
		return errAddArgsRequired
	}

	key, text := args[0], args[1]

	list, err := loadHotwords(cfg)
	if err != nil && !isNotFound(err) {
		// An unrecoverable existing list is fatal here: writing just the
		// new entry would clobber whatever the store still holds.
		return err
	}

	list = list.Insert(key, text)

	if err := saveHotwords(cfg, list); err != nil {
		return err
	}

	o.Printf("added hotword: %s\n", key)

	signalRestart(ctx, o, cfg, noRestart)

	return nil
}
