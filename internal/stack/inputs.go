// Package stack assembles Easypanel stack manifests and a Markdown summary
// from a set of deployment inputs.
package stack

import (
	"errors"
	"fmt"
)

// Field names as used by forms, config files and flags.
const (
	FieldProjectName        = "projectName"
	FieldN8nEditorDomain    = "n8nEditorDomain"
	FieldN8nWebhookDomain   = "n8nWebhookDomain"
	FieldDifyDomain         = "difyDomain"
	FieldEvolutionDomain    = "evolutionDomain"
	FieldMinioDomain        = "minioDomain"
	FieldMinioConsoleDomain = "minioConsoleDomain"
	FieldRedisPassword      = "redisPassword"
	FieldPostgresPassword   = "postgresPassword"
	FieldEncryptionKey      = "encryptionKey"
	FieldMinioRootUser      = "minioRootUser"
	FieldMinioRootPassword  = "minioRootPassword"
	FieldEvolutionAPIKey    = "evolutionApiKey"
)

// DefaultMinioRootUser is the root user assigned to a fresh InputSet.
const DefaultMinioRootUser = "admin"

// ErrUnknownField is returned when a field name is not part of the InputSet.
var ErrUnknownField = errors.New("unknown field")

// FieldInfo describes one InputSet entry.
type FieldInfo struct {
	Name   string
	Label  string
	Secret bool
}

// fieldInfos is the canonical field order.
var fieldInfos = []FieldInfo{
	{Name: FieldProjectName, Label: "Project Name"},
	{Name: FieldN8nEditorDomain, Label: "N8n Editor Domain"},
	{Name: FieldN8nWebhookDomain, Label: "N8n Webhook Domain"},
	{Name: FieldDifyDomain, Label: "Dify Domain"},
	{Name: FieldEvolutionDomain, Label: "Evolution Domain"},
	{Name: FieldMinioDomain, Label: "MinIO Domain"},
	{Name: FieldMinioConsoleDomain, Label: "MinIO Console Domain"},
	{Name: FieldRedisPassword, Label: "Redis Password", Secret: true},
	{Name: FieldPostgresPassword, Label: "PostgreSQL Password", Secret: true},
	{Name: FieldEncryptionKey, Label: "N8N Encryption Key", Secret: true},
	{Name: FieldMinioRootUser, Label: "MinIO Root User"},
	{Name: FieldMinioRootPassword, Label: "MinIO Root Password", Secret: true},
	{Name: FieldEvolutionAPIKey, Label: "Evolution API Key", Secret: true},
}

// FieldInfos returns the InputSet fields in canonical order.
func FieldInfos() []FieldInfo {
	out := make([]FieldInfo, len(fieldInfos))
	copy(out, fieldInfos)
	return out
}

// InputSet holds every value the artifact producers read. It is a value
// type: updates return a modified copy.
type InputSet struct {
	ProjectName        string
	N8nEditorDomain    string
	N8nWebhookDomain   string
	DifyDomain         string
	EvolutionDomain    string
	MinioDomain        string
	MinioConsoleDomain string

	RedisPassword     string
	PostgresPassword  string
	EncryptionKey     string
	MinioRootUser     string
	MinioRootPassword string
	EvolutionAPIKey   string
}

// NewInputSet returns an InputSet with empty user fields, the default
// MinIO root user and a freshly generated secret group.
func NewInputSet(gen *SecretGenerator) (InputSet, error) {
	in := InputSet{MinioRootUser: DefaultMinioRootUser}
	return in.RegenerateSecrets(gen)
}

// RegenerateSecrets replaces all five generated secrets. On error the
// receiver is returned unchanged so a partial group is never observed.
func (in InputSet) RegenerateSecrets(gen *SecretGenerator) (InputSet, error) {
	if gen == nil {
		gen = NewSecretGenerator(nil)
	}

	var group [5]string
	for i := range group {
		s, err := gen.Generate()
		if err != nil {
			return in, fmt.Errorf("failed to generate secret: %w", err)
		}
		group[i] = s
	}

	in.RedisPassword = group[0]
	in.PostgresPassword = group[1]
	in.EncryptionKey = group[2]
	in.MinioRootPassword = group[3]
	in.EvolutionAPIKey = group[4]
	return in, nil
}

// ref returns a pointer to the struct field backing name.
func (in *InputSet) ref(name string) (*string, error) {
	switch name {
	case FieldProjectName:
		return &in.ProjectName, nil
	case FieldN8nEditorDomain:
		return &in.N8nEditorDomain, nil
	case FieldN8nWebhookDomain:
		return &in.N8nWebhookDomain, nil
	case FieldDifyDomain:
		return &in.DifyDomain, nil
	case FieldEvolutionDomain:
		return &in.EvolutionDomain, nil
	case FieldMinioDomain:
		return &in.MinioDomain, nil
	case FieldMinioConsoleDomain:
		return &in.MinioConsoleDomain, nil
	case FieldRedisPassword:
		return &in.RedisPassword, nil
	case FieldPostgresPassword:
		return &in.PostgresPassword, nil
	case FieldEncryptionKey:
		return &in.EncryptionKey, nil
	case FieldMinioRootUser:
		return &in.MinioRootUser, nil
	case FieldMinioRootPassword:
		return &in.MinioRootPassword, nil
	case FieldEvolutionAPIKey:
		return &in.EvolutionAPIKey, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// SetField returns a copy of the InputSet with one field replaced. The
// value is stored verbatim.
func (in InputSet) SetField(name, value string) (InputSet, error) {
	p, err := in.ref(name)
	if err != nil {
		return in, err
	}
	*p = value
	return in, nil
}

// Field returns the current value of a field.
func (in InputSet) Field(name string) (string, error) {
	p, err := in.ref(name)
	if err != nil {
		return "", err
	}
	return *p, nil
}

// FieldValue pairs a field with its current value.
type FieldValue struct {
	FieldInfo
	Value string
}

// Fields returns every field with its value in canonical order.
func (in InputSet) Fields() []FieldValue {
	out := make([]FieldValue, 0, len(fieldInfos))
	for _, fi := range fieldInfos {
		v, _ := in.Field(fi.Name)
		out = append(out, FieldValue{FieldInfo: fi, Value: v})
	}
	return out
}

// Redacted returns the field map with secret values masked, for logging.
func (in InputSet) Redacted() map[string]string {
	out := make(map[string]string, len(fieldInfos))
	for _, f := range in.Fields() {
		if f.Secret && f.Value != "" {
			out[f.Name] = "[REDACTED]"
			continue
		}
		out[f.Name] = f.Value
	}
	return out
}
