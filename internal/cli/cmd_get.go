package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/guojun21/wetype-hotwords/internal/mmkv"
	"github.com/guojun21/wetype-hotwords/internal/wetype"

	flag "github.com/spf13/pflag"
	"github.com/tidwall/pretty"
)

var errGetKeyRequired = errors.New("get requires <key>")

// GetCmd returns the get command.
func GetCmd(cfg wetype.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("get", flag.ContinueOnError),
		Usage: "get <key>",
		Short: "Print the current string value of a store key",
		Long: "Walk the container records and print the latest string value for <key>.\n" +
			"JSON values are pretty-printed.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execGet(o, cfg, args)
		},
	}
}

func execGet(o *IO, cfg wetype.Config, args []string) error {
	if len(args) == 0 {
		return errGetKeyRequired
	}

	key := args[0]

	value, err := openStore(cfg).GetString(key)
	if isNotFound(err) || errors.Is(err, mmkv.ErrKeyNotFound) {
		o.Println("key not found:", key)

		return nil
	}

	if err != nil {
		return err
	}

	raw := []byte(value)
	if json.Valid(raw) {
		formatted := pretty.PrettyOptions(raw, &pretty.Options{Indent: "  "})
		o.Printf("%s\n", bytes.TrimRight(formatted, "\n"))

		return nil
	}

	o.Println(value)

	return nil
}
