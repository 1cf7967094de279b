package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hashicorp/go-hclog"
	"github.com/thecloudstation/stackgen/internal/config"
	"github.com/thecloudstation/stackgen/internal/stack"
	"github.com/urfave/cli/v2"
)

// flagName converts a field name such as n8nEditorDomain to n8n-editor-domain.
func flagName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// envName converts a field name to its STACKGEN_ environment variable.
func envName(field string) string {
	return "STACKGEN_" + strings.ToUpper(strings.ReplaceAll(flagName(field), "-", "_"))
}

// inputFlags returns one override flag per InputSet field.
func inputFlags() []cli.Flag {
	infos := stack.FieldInfos()
	flags := make([]cli.Flag, 0, len(infos))
	for _, fi := range infos {
		f := &cli.StringFlag{
			Name:     flagName(fi.Name),
			Usage:    fi.Label,
			EnvVars:  []string{envName(fi.Name)},
			Category: "Inputs",
		}
		if fi.Name == stack.FieldProjectName {
			f.Aliases = []string{"project", "p"}
		}
		if fi.Secret {
			f.Category = "Credentials"
		}
		flags = append(flags, f)
	}
	return flags
}

// loadInputs builds the InputSet for a command: fresh secrets, then the
// config file, then flag and environment overrides.
func loadInputs(c *cli.Context) (stack.InputSet, error) {
	logger := hclog.Default()

	in, err := stack.NewInputSet(nil)
	if err != nil {
		return stack.InputSet{}, err
	}

	path := c.String("config")
	cfg, err := config.LoadOptional(path, c.IsSet("config"))
	if err != nil {
		return stack.InputSet{}, err
	}
	if in, err = cfg.Apply(in); err != nil {
		return stack.InputSet{}, fmt.Errorf("failed to apply %s: %w", path, err)
	}
	logger.Debug("configuration loaded", "path", path, "values", len(cfg.Values()))

	return applyOverrides(c, in)
}

// applyOverrides sets every field whose flag or environment variable is set.
func applyOverrides(c *cli.Context, in stack.InputSet) (stack.InputSet, error) {
	for _, fi := range stack.FieldInfos() {
		name := flagName(fi.Name)
		if !c.IsSet(name) {
			continue
		}
		next, err := in.SetField(fi.Name, c.String(name))
		if err != nil {
			return in, err
		}
		in = next
		hclog.Default().Trace("input overridden", "field", fi.Name)
	}
	return in, nil
}

// newAssembler wraps loadInputs in an Assembler logging under the default logger.
func newAssembler(c *cli.Context) (*stack.Assembler, error) {
	in, err := loadInputs(c)
	if err != nil {
		return nil, err
	}
	return stack.NewAssembler(
		stack.WithInputs(in),
		stack.WithLogger(hclog.Default().Named("assembler")),
	)
}
