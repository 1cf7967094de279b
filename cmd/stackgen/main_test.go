package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReorderArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "flags after kind",
			args: []string{"stackgen", "generate", "db", "--project", "acme", "--copy"},
			want: []string{"stackgen", "generate", "--project", "acme", "--copy", "db"},
		},
		{
			name: "global flags kept in front",
			args: []string{"stackgen", "-c", "x.hcl", "--log-level=debug", "gen", "n8n", "-o", "out"},
			want: []string{"stackgen", "-c", "x.hcl", "--log-level=debug", "gen", "-o", "out", "n8n"},
		},
		{
			name: "already ordered",
			args: []string{"stackgen", "form", "--minio-domain", "s3.acme.dev", "summary"},
			want: []string{"stackgen", "form", "--minio-domain", "s3.acme.dev", "summary"},
		},
		{
			name: "double dash ends flags",
			args: []string{"stackgen", "generate", "--", "-weird"},
			want: []string{"stackgen", "generate", "--", "-weird"},
		},
		{
			name: "unknown command untouched",
			args: []string{"stackgen", "bogus", "x", "--project", "acme"},
			want: []string{"stackgen", "bogus", "x", "--project", "acme"},
		},
		{
			name: "program only",
			args: []string{"stackgen"},
			want: []string{"stackgen"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, reorderArgs(tt.args)); diff != "" {
				t.Errorf("reorderArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlagAndEnvNames(t *testing.T) {
	tests := []struct {
		field string
		flag  string
		env   string
	}{
		{"projectName", "project-name", "STACKGEN_PROJECT_NAME"},
		{"n8nEditorDomain", "n8n-editor-domain", "STACKGEN_N8N_EDITOR_DOMAIN"},
		{"minioConsoleDomain", "minio-console-domain", "STACKGEN_MINIO_CONSOLE_DOMAIN"},
		{"evolutionApiKey", "evolution-api-key", "STACKGEN_EVOLUTION_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := flagName(tt.field); got != tt.flag {
				t.Errorf("flagName(%q) = %q, want %q", tt.field, got, tt.flag)
			}
			if got := envName(tt.field); got != tt.env {
				t.Errorf("envName(%q) = %q, want %q", tt.field, got, tt.env)
			}
		})
	}
}

func TestInputFlagsCoverEveryField(t *testing.T) {
	valued := valuedFlags()
	for _, name := range []string{"--project", "-p", "--project-name", "--redis-password", "--minio-root-user", "--out"} {
		if !valued[name] {
			t.Errorf("%s not registered as a valued flag", name)
		}
	}
	if valued["--copy"] {
		t.Error("--copy takes no value")
	}
}
