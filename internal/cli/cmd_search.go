package cli

import (
	"context"
	"errors"

	"github.com/guojun21/wetype-hotwords/internal/hotword"
	"github.com/guojun21/wetype-hotwords/internal/wetype"

	flag "github.com/spf13/pflag"
)

var errSearchTermRequired = errors.New("search term is required")

// SearchCmd returns the search command.
func SearchCmd(cfg wetype.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("search", flag.ContinueOnError),
		Usage: "search <term>",
		Short: "Search hotwords by key or text",
		Long:  "Case-insensitive substring search over trigger keys and expansion text.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execSearch(o, cfg, args)
		},
	}
}

func execSearch(o *IO, cfg wetype.Config, args []string) error {
	if len(args) == 0 {
		return errSearchTermRequired
	}

	term := args[0]

	list, err := loadHotwords(cfg)
	if isNotFound(err) {
		o.Println("no hotword data found")

		return nil
	}

	if err != nil {
		return err
	}

	var matches hotword.List
	for hw := range list.Find(term) {
		matches = append(matches, hw)
	}

	if len(matches) == 0 {
		o.Printf("no hotwords matching %q\n", term)

		return nil
	}

	o.Printf("%d hotwords matching %q\n", len(matches), term)
	printHotwords(o, matches)

	return nil
}
