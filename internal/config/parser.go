package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/thecloudstation/stackgen/internal/hclfunc"
)

// DefaultFilename is the input file looked up when none is given.
const DefaultFilename = "stackgen.hcl"

// ErrNotFound is returned when the input file does not exist.
var ErrNotFound = errors.New("configuration file not found")

// ParseFile parses an HCL input file.
func ParseFile(path string) (*File, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, absPath)
		}
		return nil, fmt.Errorf("failed to read %s: %w", absPath, err)
	}

	return ParseBytes(data, absPath)
}

// ParseBytes parses HCL input from a byte slice.
func ParseBytes(data []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	// PASS 1: collect variable definitions without touching other attributes
	var vars variablesOnly
	diags = gohcl.DecodeBody(file.Body, hclfunc.NewEvalContext(nil), &vars)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode variables: %s", diags.Error())
	}

	resolved := resolveVariables(vars.Variables)

	// PASS 2: decode everything with var.* available
	var cfg File
	diags = gohcl.DecodeBody(file.Body, hclfunc.NewEvalContext(resolved), &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode configuration: %s", diags.Error())
	}

	return &cfg, nil
}

// resolveVariables resolves variable values from their definitions.
// The first non-empty environment variable in Env wins, then Default.
func resolveVariables(variables []*VariableConfig) map[string]string {
	resolved := make(map[string]string)

	for _, v := range variables {
		if v == nil {
			continue
		}

		var value string
		for _, envName := range v.Env {
			if envVal := os.Getenv(envName); envVal != "" {
				value = envVal
				break
			}
		}

		if value == "" {
			value = v.Default
		}

		resolved[v.Name] = value
	}

	return resolved
}

// LoadOptional parses path when it exists. A missing file yields an empty
// File unless required is set.
func LoadOptional(path string, required bool) (*File, error) {
	cfg, err := ParseFile(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, ErrNotFound) && !required {
		return &File{}, nil
	}
	return nil, err
}
