package cli

import (
	"context"

	"github.com/guojun21/wetype-hotwords/internal/wetype"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg wetype.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execPrintConfig(o, cfg)
		},
	}
}

func execPrintConfig(o *IO, cfg wetype.Config) error {
	formatted, err := wetype.FormatConfig(cfg)
	if err != nil {
		return err
	}

	o.Println(formatted)

	// Print sources
	o.Println("")
	o.Println("# Sources:")

	if cfg.Sources.Global != "" {
		o.Println("#   global:", cfg.Sources.Global)
	}

	if cfg.Sources.Explicit != "" {
		o.Println("#   config flag:", cfg.Sources.Explicit)
	}

	if cfg.Sources.Global == "" && cfg.Sources.Explicit == "" {
		o.Println("#   (using defaults only)")
	}

	return nil
}
