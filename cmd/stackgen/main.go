package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/urfave/cli/v2"
)

var (
	// Build-time variables set via ldflags
	// Example: go build -ldflags "-X main.Version=1.0.0"
	Version = "v0.1.0"
)

// reorderArgs moves flags after positional arguments to before them within subcommands
// This allows: stackgen generate db --project acme
// To work like: stackgen generate --project acme db
func reorderArgs(args []string) []string {
	if len(args) <= 1 {
		return args
	}

	commands := map[string]bool{
		"generate": true, "gen": true, "summary": true, "secrets": true,
		"kinds": true, "init": true, "form": true, "check": true,
		"help": true, "h": true,
	}

	result := make([]string, 0, len(args))
	result = append(result, args[0]) // Keep program name

	// Global flags stay in front of the command name
	cmdPathEnd := 1
	skipNext := false
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if skipNext {
			result = append(result, arg)
			cmdPathEnd = i + 1
			skipNext = false
			continue
		}
		if strings.HasPrefix(arg, "-") {
			name, _, inline := strings.Cut(arg, "=")
			if !globalValuedFlags[name] {
				break
			}
			result = append(result, arg)
			cmdPathEnd = i + 1
			skipNext = !inline
			continue
		}
		if !commands[arg] {
			return args
		}
		result = append(result, arg)
		cmdPathEnd = i + 1
		break
	}

	// Now reorder the rest: flags before positional args
	var flags []string
	var positional []string
	valued := valuedFlags()
	skipNext = false

	for i := cmdPathEnd; i < len(args); i++ {
		arg := args[i]

		if skipNext {
			flags = append(flags, arg)
			skipNext = false
			continue
		}

		if arg == "--" {
			positional = append(positional, args[i:]...)
			break
		}

		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			// Check if this flag takes a value
			if valued[arg] && i+1 < len(args) {
				skipNext = true
			}
		} else {
			positional = append(positional, arg)
		}
	}

	// Reconstruct: command path + flags + positional
	result = append(result, flags...)
	result = append(result, positional...)

	return result
}

var globalValuedFlags = map[string]bool{
	"--config": true, "-c": true, "--log-level": true,
}

// valuedFlags lists every command flag that consumes the following argument.
func valuedFlags() map[string]bool {
	valued := map[string]bool{"--out": true, "-o": true}
	for _, f := range inputFlags() {
		for _, name := range f.Names() {
			if len(name) == 1 {
				valued["-"+name] = true
			} else {
				valued["--"+name] = true
			}
		}
	}
	return valued
}

func newApp() *cli.App {
	return &cli.App{
		Name:                 "stackgen",
		Usage:                "Generate Easypanel templates for the n8n, Dify, Evolution API and MinIO stack",
		Version:              Version,
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "stackgen.hcl",
				Usage:   "Path to configuration file",
				EnvVars: []string{"STACKGEN_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (trace, debug, info, warn, error)",
				EnvVars: []string{"STACKGEN_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			// Artifact commands
			generateCommand(),
			summaryCommand(),
			checkCommand(),
			kindsCommand(),

			// Input commands
			secretsCommand(),
			initCommand(),
			formCommand(),
		},
		Before: func(c *cli.Context) error {
			// Setup logger
			level := hclog.LevelFromString(c.String("log-level"))
			if level == hclog.NoLevel {
				return fmt.Errorf("invalid log level %q", c.String("log-level"))
			}
			logger := hclog.New(&hclog.LoggerOptions{
				Name:   "stackgen",
				Level:  level,
				Output: c.App.ErrWriter,
				Color:  hclog.AutoColor,
			})
			hclog.SetDefault(logger)

			return nil
		},
	}
}

func main() {
	app := newApp()

	// Reorder args to allow flags after positional arguments
	// e.g., "stackgen generate n8n --copy" works like "stackgen generate --copy n8n"
	args := reorderArgs(os.Args)

	if err := app.Run(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
