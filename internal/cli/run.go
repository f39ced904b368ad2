package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/guojun21/wetype-hotwords/internal/wetype"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Run is the main entry point. Returns exit code.
func Run(_ io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string) int {
	if len(args) < minArgs {
		// Config is irrelevant for the usage listing.
		printUsage(out, commands(wetype.Config{}))

		return 0
	}

	// Parse global flags
	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	// Load and validate config
	cfg, err := wetype.LoadConfig(wetype.LoadInput{
		ConfigPath: flags.configPath,
		Overrides: wetype.Config{
			StoreDir: flags.storeDir,
			StoreID:  flags.storeID,
		},
		Env: env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	cmds := commands(cfg)

	if len(flags.remaining) == 0 {
		printUsage(out, cmds)

		return 0
	}

	name := flags.remaining[0]

	// Handle help flags
	if name == "-h" || name == helpFlag {
		printUsage(out, cmds)

		return 0
	}

	ioCtx := NewIO(out, errOut)

	for _, cmd := range cmds {
		if cmd.Name() != name {
			continue
		}

		code := cmd.Run(context.Background(), ioCtx, flags.remaining[1:])
		if code != 0 {
			return code
		}

		return ioCtx.Finish()
	}

	fprintln(errOut, "error: unknown command:", name)
	printUsage(errOut, cmds)

	return 1
}

// commands builds the command registry for one invocation.
func commands(cfg wetype.Config) []*Command {
	return []*Command{
		ListCmd(cfg),
		SearchCmd(cfg),
		AddCmd(cfg),
		DeleteCmd(cfg),
		ExportCmd(cfg),
		ImportCmd(cfg),
		GetCmd(cfg),
		KeysCmd(cfg),
		PrintConfigCmd(cfg),
	}
}

type globalFlags struct {
	configPath string
	storeDir   string
	storeID    string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// --store-dir flag
	if arg == "--store-dir" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", wetype.ErrFlagRequiresArg, arg)
		}

		flags.storeDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--store-dir="); ok {
		flags.storeDir = after

		return consumedOne, nil
	}

	// --store-id flag
	if arg == "--store-id" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", wetype.ErrFlagRequiresArg, arg)
		}

		flags.storeID = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--store-id="); ok {
		flags.storeID = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", wetype.ErrFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", wetype.ErrUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(writer io.Writer, cmds []*Command) {
	fprintln(writer, `wetype - WeType hotword tool

Reads and edits the input method's shortcut phrases directly in its
key-value store file.

Usage: wetype [options] <command> [args]

Global flags:
  --store-dir <dir>      Store directory (default: WeType data dir)
  --store-id <id>        Store file name (default: wetype.settings)
  -c, --config <file>    Use specified config file
  -h, --help             Show this help

Commands:`)

	for _, cmd := range cmds {
		fprintln(writer, cmd.HelpLine())
	}
}
