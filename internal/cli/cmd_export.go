package cli

import (
	"context"
	"errors"

	"github.com/guojun21/wetype-hotwords/internal/hotword"
	"github.com/guojun21/wetype-hotwords/internal/wetype"

	flag "github.com/spf13/pflag"
)

var errExportPathRequired = errors.New("export requires <path>")

// ExportCmd returns the export command.
func ExportCmd(cfg wetype.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("export", flag.ContinueOnError),
		Usage: "export <path>",
		Short: "Export hotwords to a JSON file",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execExport(o, cfg, args)
		},
	}
}

func execExport(o *IO, cfg wetype.Config, args []string) error {
	if len(args) == 0 {
		return errExportPathRequired
	}

	path := args[0]

	list, err := loadHotwords(cfg)
	if isNotFound(err) {
		o.Println("no hotword data found")

		return nil
	}

	if err != nil {
		return err
	}

	if err := hotword.WriteExport(path, list); err != nil {
		return err
	}

	o.Printf("exported %d hotwords to %s\n", len(list), path)

	return nil
}
