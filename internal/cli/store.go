package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/guojun21/wetype-hotwords/internal/hotword"
	"github.com/guojun21/wetype-hotwords/internal/mmkv"
	"github.com/guojun21/wetype-hotwords/internal/wetype"
)

// openStore returns the container handle for the configured location.
func openStore(cfg wetype.Config) *mmkv.Store {
	return mmkv.Open(cfg.StoreDir, cfg.StoreID)
}

// loadHotwords re-derives the authoritative hotword list from the store.
// Called fresh on every command; nothing is cached across invocations.
func loadHotwords(cfg wetype.Config) (hotword.List, error) {
	cand, err := openStore(cfg).CurrentValue(hotword.StoreKey, mmkv.LongestList{
		Fields: hotword.RecognizedFields,
	})
	if err != nil {
		return nil, err
	}

	list, err := hotword.Decode(cand.Raw)
	if err != nil {
		// The selector only hands back spans that decoded as arrays of
		// objects, so this indicates a recognized-but-unusable value.
		return nil, fmt.Errorf("%w: %v", mmkv.ErrUnrecoverable, err)
	}

	return list, nil
}

// saveHotwords encodes the list and appends it as the new current value.
func saveHotwords(cfg wetype.Config, list hotword.List) error {
	data, err := list.Encode()
	if err != nil {
		return err
	}

	return openStore(cfg).SetString(hotword.StoreKey, string(data))
}

// isNotFound reports the non-fatal "nothing there" outcomes: missing store
// file, or a key with no occurrence at all.
func isNotFound(err error) bool {
	return errors.Is(err, mmkv.ErrNoValue) || errors.Is(err, fs.ErrNotExist)
}

// signalRestart fires the best-effort restart signal. Failures degrade to
// a warning; the store mutation this follows is already committed.
func signalRestart(ctx context.Context, o *IO, cfg wetype.Config, skip bool) {
	if skip {
		return
	}

	if err := wetype.Restart(ctx, cfg); err != nil {
		o.Warn(fmt.Sprintf("%v (restart the input method manually to pick up changes)", err))

		return
	}

	o.Println("input method restarted")
}

// previewLimit is the rune budget for one-line text previews.
const previewLimit = 80

// printHotwords writes the numbered hotword listing.
func printHotwords(o *IO, list hotword.List) {
	for idx, hw := range list {
		o.Printf("%d. key: %s\n", idx+1, hw.DisplayKey())
		o.Printf("   text: %s\n", hw.Preview(previewLimit))
	}
}
