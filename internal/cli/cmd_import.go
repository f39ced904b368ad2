package cli

import (
	"context"
	"errors"

	"github.com/guojun21/wetype-hotwords/internal/hotword"
	"github.com/guojun21/wetype-hotwords/internal/wetype"

	flag "github.com/spf13/pflag"
)

var errImportPathRequired = errors.New("import requires <path>")

// ImportCmd returns the import command.
func ImportCmd(cfg wetype.Config) *Command {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.Bool("no-restart", false, "Skip the input method restart signal")

	return &Command{
		Flags: fs,
		Usage: "import <path>",
		Short: "Import hotwords from a JSON file",
		Long: "Replace the stored hotword list wholesale with the contents of <path>.\n" +
			"Accepts an export file or a bare JSON array.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			noRestart, _ := fs.GetBool("no-restart")

			return execImport(ctx, o, cfg, args, noRestart)
		},
	}
}

func execImport(ctx context.Context, o *IO, cfg wetype.Config, args []string, noRestart bool) error {
	if len(args) == 0 {
		return errImportPathRequired
	}

	path := args[0]

	list, err := hotword.ReadImport(path)
	if err != nil {
		return err
	}

	if err := saveHotwords(cfg, list); err != nil {
		return err
	}

	o.Printf("imported %d hotwords\n", len(list))

	signalRestart(ctx, o, cfg, noRestart)

	return nil
}
