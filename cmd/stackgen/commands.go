package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/google/renameio/v2"
	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/thecloudstation/stackgen/internal/config"
	"github.com/thecloudstation/stackgen/internal/stack"
	"github.com/thecloudstation/stackgen/internal/tui"
	"github.com/urfave/cli/v2"
)

// artifactFileMode keeps written credentials private to the owner.
const artifactFileMode = 0o600

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Aliases:   []string{"gen"},
		Usage:     "Print an artifact, or write every artifact with --out",
		ArgsUsage: "<kind>",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Copy the artifact to the clipboard",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Write artifacts into this directory instead of printing",
			},
		}, inputFlags()...),
		Action: func(c *cli.Context) error {
			a, err := newAssembler(c)
			if err != nil {
				return err
			}

			if dir := c.String("out"); dir != "" {
				return writeOut(c, a, dir)
			}

			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one artifact kind, see 'stackgen kinds'")
			}
			kind, err := stack.ParseKind(c.Args().First())
			if err != nil {
				return err
			}
			return emit(c, a, kind)
		},
	}
}

func summaryCommand() *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Print the Markdown summary of inputs and credentials",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Copy the summary to the clipboard",
			},
		}, inputFlags()...),
		Action: func(c *cli.Context) error {
			a, err := newAssembler(c)
			if err != nil {
				return err
			}
			return emit(c, a, stack.KindSummary)
		},
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Verify that the combined manifest references only services it defines",
		Flags: inputFlags(),
		Action: func(c *cli.Context) error {
			a, err := newAssembler(c)
			if err != nil {
				return err
			}

			manifest, err := a.Produce(stack.KindCombined)
			if err != nil {
				return err
			}
			findings, err := stack.Check(manifest)
			if err != nil {
				return err
			}

			stderr := c.App.ErrWriter
			if len(findings) == 0 {
				fmt.Fprintln(stderr, tui.RenderSuccess("combined manifest is consistent"))
				return nil
			}
			for _, f := range findings {
				fmt.Fprintln(stderr, tui.RenderError(f.String()))
			}
			return fmt.Errorf("%d cross-reference problem(s) found", len(findings))
		},
	}
}

func kindsCommand() *cli.Command {
	return &cli.Command{
		Name:  "kinds",
		Usage: "List artifact kinds and their aliases",
		Action: func(c *cli.Context) error {
			return printKinds(c.App.Writer)
		},
	}
}

func printKinds(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tALIASES\tFILE\tDESCRIPTION")
	for _, ki := range stack.Kinds() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ki.Kind, strings.Join(ki.Aliases, ","), ki.Filename, ki.Description)
	}
	return tw.Flush()
}

func secretsCommand() *cli.Command {
	return &cli.Command{
		Name:  "secrets",
		Usage: "Print a freshly generated credential set",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			in, err := stack.NewInputSet(nil)
			if err != nil {
				return err
			}
			return printSecrets(c.App.Writer, in, c.Bool("json"))
		},
	}
}

// printSecrets writes the secret fields of in, either as a JSON object keyed
// by field name or as dotenv lines using the STACKGEN_ variables the input
// flags read.
func printSecrets(w io.Writer, in stack.InputSet, asJSON bool) error {
	byField := make(map[string]string)
	byEnv := make(map[string]string)
	for _, fv := range in.Fields() {
		if !fv.Secret {
			continue
		}
		byField[fv.Name] = fv.Value
		byEnv[envName(fv.Name)] = fv.Value
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(byField)
	}

	out, err := godotenv.Marshal(byEnv)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a starter configuration file with generated credentials",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration file",
			},
		}, inputFlags()...),
		Action: func(c *cli.Context) error {
			logger := hclog.Default()
			configPath := c.String("config")

			if _, err := os.Stat(configPath); err == nil {
				if !c.Bool("force") {
					return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
				}
				fmt.Fprintln(c.App.ErrWriter, tui.RenderWarning("Overwriting "+configPath+" with new credentials"))
			}

			in, err := stack.NewInputSet(nil)
			if err != nil {
				return err
			}
			dir := filepath.Dir(configPath)
			if in, err = in.SetField(stack.FieldProjectName, config.DetectProjectName(dir)); err != nil {
				return err
			}
			if in, err = applyOverrides(c, in); err != nil {
				return err
			}

			if err := renameio.WriteFile(configPath, config.Render(in), artifactFileMode); err != nil {
				return fmt.Errorf("failed to write %s: %w", configPath, err)
			}
			logger.Info("configuration written", "path", configPath, "project", in.ProjectName)

			fmt.Fprintln(c.App.ErrWriter, tui.RenderSuccess("Created "+configPath))
			fmt.Fprintln(c.App.ErrWriter, tui.RenderMuted("Fill in the domains block, then run 'stackgen generate all'."))
			return nil
		},
	}
}

func formCommand() *cli.Command {
	return &cli.Command{
		Name:      "form",
		Usage:     "Edit the inputs interactively, then print an artifact",
		ArgsUsage: "[kind]",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Copy the artifact to the clipboard",
			},
		}, inputFlags()...),
		Action: func(c *cli.Context) error {
			a, err := newAssembler(c)
			if err != nil {
				return err
			}

			values, err := tui.RunForm(fieldSpecs(a.Inputs()),
				tui.WithTitle("Stack inputs"),
				tui.WithRegenerator(func() (map[string]string, error) {
					return freshSecrets(a)
				}),
			)
			if err != nil {
				return err
			}
			if values == nil {
				return errors.New("cancelled")
			}
			for _, fi := range stack.FieldInfos() {
				if err := a.SetField(fi.Name, values[fi.Name]); err != nil {
					return err
				}
			}

			var kind stack.Kind
			if c.NArg() > 0 {
				if kind, err = stack.ParseKind(c.Args().First()); err != nil {
					return err
				}
			} else if kind, err = selectKind(); err != nil {
				return err
			}
			return emit(c, a, kind)
		},
	}
}

// fieldSpecs converts the current inputs into form fields.
func fieldSpecs(in stack.InputSet) []tui.FieldSpec {
	fields := in.Fields()
	specs := make([]tui.FieldSpec, len(fields))
	for i, fv := range fields {
		specs[i] = tui.FieldSpec{
			Name:   fv.Name,
			Label:  fv.Label,
			Value:  fv.Value,
			Secret: fv.Secret,
		}
	}
	return specs
}

// freshSecrets regenerates the assembler's secrets and returns them keyed by
// field name.
func freshSecrets(a *stack.Assembler) (map[string]string, error) {
	if err := a.RegenerateSecrets(); err != nil {
		return nil, err
	}
	values := make(map[string]string)
	for _, fv := range a.Inputs().Fields() {
		if fv.Secret {
			values[fv.Name] = fv.Value
		}
	}
	return values, nil
}

func selectKind() (stack.Kind, error) {
	kinds := stack.Kinds()
	choices := make([]string, len(kinds))
	for i, ki := range kinds {
		choices[i] = fmt.Sprintf("%s - %s", ki.Kind, ki.Description)
	}

	idx, err := tui.RunSelect("Select an artifact", choices)
	if err != nil {
		return "", err
	}
	if idx < 0 {
		return "", errors.New("cancelled")
	}
	return kinds[idx].Kind, nil
}

// emit prints one artifact to stdout and optionally copies it.
func emit(c *cli.Context, a *stack.Assembler, kind stack.Kind) error {
	out, err := a.Produce(kind)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, out)

	if c.Bool("copy") {
		if err := clipboard.WriteAll(out); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(c.App.ErrWriter, tui.RenderSuccess(fmt.Sprintf("Copied %s to clipboard", kind)))
	}
	return nil
}

// writeOut writes the artifact named by the argument, or every artifact when
// none is given, into dir.
func writeOut(c *cli.Context, a *stack.Assembler, dir string) error {
	var artifacts []stack.Artifact
	if c.NArg() > 0 {
		kind, err := stack.ParseKind(c.Args().First())
		if err != nil {
			return err
		}
		content, err := a.Produce(kind)
		if err != nil {
			return err
		}
		artifacts = []stack.Artifact{{Kind: kind, Content: content}}
	} else {
		var err error
		if artifacts, err = a.ProduceAll(); err != nil {
			return err
		}
	}

	paths, err := writeArtifacts(dir, artifacts)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(c.App.ErrWriter, tui.RenderSuccess("Wrote "+p))
	}
	return nil
}

// writeArtifacts atomically replaces one file per artifact in dir and
// returns the paths written.
func writeArtifacts(dir string, artifacts []stack.Artifact) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	paths := make([]string, 0, len(artifacts))
	for _, art := range artifacts {
		info, ok := art.Kind.Info()
		if !ok {
			return paths, fmt.Errorf("%w: %q", stack.ErrUnknownKind, art.Kind)
		}
		path := filepath.Join(dir, info.Filename)
		if err := renameio.WriteFile(path, []byte(art.Content+"\n"), artifactFileMode); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		hclog.Default().Debug("artifact written", "kind", art.Kind, "path", path)
		paths = append(paths, path)
	}
	return paths, nil
}
