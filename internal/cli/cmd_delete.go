package cli

import (
	"context"
	"errors"

	"github.com/guojun21/wetype-hotwords/internal/wetype"

	flag "github.com/spf13/pflag"
)

var errDeleteKeyRequired = errors.New("delete requires <key>")

// DeleteCmd returns the delete command.
func DeleteCmd(cfg wetype.Config) *Command {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.Bool("no-restart", false, "Skip the input method restart signal")

	return &Command{
		Flags: fs,
		Usage: "delete <key>",
		Short: "Delete hotwords by trigger key",
		Long: "Remove every hotword whose trigger key (whitespace-stripped) equals <key>\n" +
			"and append the filtered list to the store.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			noRestart, _ := fs.GetBool("no-restart")

			return execDelete(ctx, o, cfg, args, noRestart)
		},
	}
}

func execDelete(ctx context.Context, o *IO, cfg wetype.Config, args []string, noRestart bool) error {
	if len(args) == 0 {
		return errDeleteKeyRequired
	}

	key := args[0]

	list, err := loadHotwords(cfg)
	if isNotFound(err) {
		o.Println("no hotword data found")

		return nil
	}

	if err != nil {
		return err
	}

	filtered, removed := list.Remove(key)
	if removed == 0 {
		o.Printf("no hotword with trigger %q\n", key)

		return nil
	}

	if err := saveHotwords(cfg, filtered); err != nil {
		return err
	}

	o.Printf("deleted %d hotword(s)\n", removed)

	signalRestart(ctx, o, cfg, noRestart)

	return nil
}
