// Package main provides wetype, a CLI for reading and editing the WeType
// input method's hotword list directly in its key-value store file.
package main

import (
	"os"
	"strings"

	"github.com/guojun21/wetype-hotwords/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	exitCode := cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env)

	os.Exit(exitCode)
}
