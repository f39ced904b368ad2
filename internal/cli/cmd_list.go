package cli

import (
	"context"

	"github.com/guojun21/wetype-hotwords/internal/wetype"

	flag "github.com/spf13/pflag"
)

// ListCmd returns the list command.
func ListCmd(cfg wetype.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("list", flag.ContinueOnError),
		Usage: "list",
		Short: "List all hotwords",
		Long:  "Recover the current hotword list from the store and print it, most recent first.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execList(o, cfg)
		},
	}
}

func execList(o *IO, cfg wetype.Config) error {
	list, err := loadHotwords(cfg)
	if isNotFound(err) {
		o.Println("no hotword data found")

		return nil
	}

	if err != nil {
		return err
	}

	o.Printf("%d hotwords\n", len(list))
	printHotwords(o, list)

	return nil
}
