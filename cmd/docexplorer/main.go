package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"docexplorer/internal/cli"
)

var version = "dev"

func rewriteDirectLookupArgs(root *cobra.Command, argv []string) []string {
	// Convenience: `docexplorer <path>` works like `docexplorer show <path>`.
	//
	// Cobra treats the first non-flag token as a subcommand, so argv is
	// rewritten before parsing. Persistent flags may come first, so look for
	// the first positional token rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	commands := map[string]bool{"help": true, "completion": true, "__complete": true, "__completeNoDesc": true}
	for _, c := range root.Commands() {
		commands[c.Name()] = true
		for _, a := range c.Aliases {
			commands[a] = true
		}
	}
	valueFlags := map[string]bool{
		"--catalog":   true,
		"--config":    true,
		"--format":    true,
		"--log-level": true,
		"--log-file":  true,
	}

	insertShow := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "show")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			// Everything after -- is positional, so show goes in front of it.
			if i+1 < len(argv) && !commands[argv[i+1]] {
				return insertShow(i)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if commands[a] {
			return argv
		}
		return insertShow(i)
	}
	return argv
}

func main() {
	cmd := cli.NewRootCmd()
	os.Args = rewriteDirectLookupArgs(cmd, os.Args)
	cmd.SetArgs(os.Args[1:])

	if err := fang.Execute(
		context.Background(),
		cmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
