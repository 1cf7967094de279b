package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/thecloudstation/stackgen/internal/stack"
)

// File is the decoded form of a stackgen.hcl input file.
type File struct {
	// Project is the Easypanel project name
	Project string `hcl:"project,optional"`

	// Domains holds the public host names of the stacks
	Domains *DomainsConfig `hcl:"domains,block"`

	// Credentials overrides generated secrets and the MinIO root user
	Credentials *CredentialsConfig `hcl:"credentials,block"`

	// Variables contains variable definitions
	Variables []*VariableConfig `hcl:"variable,block"`
}

// VariableConfig represents an HCL variable block definition
type VariableConfig struct {
	// Name is the variable name (block label)
	Name string `hcl:"name,label"`

	// Default is the value used when none of Env is set
	Default string `hcl:"default,optional"`

	// Env is a list of environment variable names to check for value
	Env []string `hcl:"env,optional"`

	// Description documents the variable purpose
	Description string `hcl:"description,optional"`
}

// DomainsConfig holds one host per public endpoint.
type DomainsConfig struct {
	N8nEditor    string `hcl:"n8n_editor,optional"`
	N8nWebhook   string `hcl:"n8n_webhook,optional"`
	Dify         string `hcl:"dify,optional"`
	Evolution    string `hcl:"evolution,optional"`
	Minio        string `hcl:"minio,optional"`
	MinioConsole string `hcl:"minio_console,optional"`
}

// CredentialsConfig holds credential overrides. Empty values keep the
// generated secret.
type CredentialsConfig struct {
	RedisPassword     string `hcl:"redis_password,optional"`
	PostgresPassword  string `hcl:"postgres_password,optional"`
	EncryptionKey     string `hcl:"encryption_key,optional"`
	MinioRootUser     string `hcl:"minio_root_user,optional"`
	MinioRootPassword string `hcl:"minio_root_password,optional"`
	EvolutionAPIKey   string `hcl:"evolution_api_key,optional"`
}

// variablesOnly is decoded in the first pass to collect variable blocks
// before any expression referencing var.* is evaluated.
type variablesOnly struct {
	Variables []*VariableConfig `hcl:"variable,block"`
	Remain    hcl.Body          `hcl:",remain"`
}

// Values returns the configured values keyed by InputSet field name.
// Unset values are omitted.
func (f *File) Values() map[string]string {
	values := make(map[string]string)
	set := func(name, value string) {
		if value != "" {
			values[name] = value
		}
	}

	set(stack.FieldProjectName, f.Project)
	if d := f.Domains; d != nil {
		set(stack.FieldN8nEditorDomain, d.N8nEditor)
		set(stack.FieldN8nWebhookDomain, d.N8nWebhook)
		set(stack.FieldDifyDomain, d.Dify)
		set(stack.FieldEvolutionDomain, d.Evolution)
		set(stack.FieldMinioDomain, d.Minio)
		set(stack.FieldMinioConsoleDomain, d.MinioConsole)
	}
	if c := f.Credentials; c != nil {
		set(stack.FieldRedisPassword, c.RedisPassword)
		set(stack.FieldPostgresPassword, c.PostgresPassword)
		set(stack.FieldEncryptionKey, c.EncryptionKey)
		set(stack.FieldMinioRootUser, c.MinioRootUser)
		set(stack.FieldMinioRootPassword, c.MinioRootPassword)
		set(stack.FieldEvolutionAPIKey, c.EvolutionAPIKey)
	}
	return values
}

// Apply overlays every configured value onto in.
func (f *File) Apply(in stack.InputSet) (stack.InputSet, error) {
	values := f.Values()
	out := in
	for _, fi := range stack.FieldInfos() {
		value, ok := values[fi.Name]
		if !ok {
			continue
		}
		var err error
		if out, err = out.SetField(fi.Name, value); err != nil {
			return in, err
		}
	}
	return out, nil
}
