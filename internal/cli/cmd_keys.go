package cli

import (
	"context"

	"github.com/guojun21/wetype-hotwords/internal/wetype"

	flag "github.com/spf13/pflag"
)

// KeysCmd returns the keys command.
func KeysCmd(cfg wetype.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("keys", flag.ContinueOnError),
		Usage: "keys",
		Short: "List all store keys",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execKeys(o, cfg)
		},
	}
}

func execKeys(o *IO, cfg wetype.Config) error {
	store := openStore(cfg)

	keys, err := store.Keys()
	if isNotFound(err) {
		o.Println("store file not found:", store.Path())

		return nil
	}

	if err != nil {
		return err
	}

	o.Printf("%d keys\n", len(keys))

	for _, key := range keys {
		o.Println(" -", key)
	}

	return nil
}
