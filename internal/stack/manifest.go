package stack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Service types understood by Easypanel.
const (
	ServiceTypePostgres = "postgres"
	ServiceTypeRedis    = "redis"
	ServiceTypeApp      = "app"
	ServiceTypeCompose  = "compose"
)

// Manifest is the top-level Easypanel stack document.
type Manifest struct {
	Services []Service `json:"services"`
}

// Service is one entry of a manifest. Data holds one of DatabaseData,
// AppData, GatewayAppData, StorageAppData or ComposeData.
type Service struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// DatabaseData describes a managed postgres or redis service.
type DatabaseData struct {
	ProjectName string `json:"projectName"`
	ServiceName string `json:"serviceName"`
	Image       string `json:"image"`
	Password    string `json:"password"`
}

// AppData describes an n8n app service. Workers carry no domains.
type AppData struct {
	ProjectName string   `json:"projectName"`
	ServiceName string   `json:"serviceName"`
	Source      Source   `json:"source"`
	Env         string   `json:"env"`
	Deploy      *Deploy  `json:"deploy,omitempty"`
	Domains     []Domain `json:"domains,omitempty"`
	Mounts      []Mount  `json:"mounts,omitempty"`
}

// GatewayAppData is the evolution-api layout: no project, no deploy
// settings, env ahead of source.
type GatewayAppData struct {
	ServiceName string   `json:"serviceName"`
	Env         string   `json:"env"`
	Source      Source   `json:"source"`
	Domains     []Domain `json:"domains"`
	Mounts      []Mount  `json:"mounts"`
}

// StorageAppData is the MinIO layout, with mounts ahead of domains and the
// deploy command last.
type StorageAppData struct {
	ServiceName string   `json:"serviceName"`
	Env         string   `json:"env"`
	Source      Source   `json:"source"`
	Mounts      []Mount  `json:"mounts"`
	Domains     []Domain `json:"domains"`
	Deploy      Deploy   `json:"deploy"`
}

// ComposeData describes a compose service built from a git checkout.
type ComposeData struct {
	ServiceName string   `json:"serviceName"`
	Source      Source   `json:"source"`
	Env         string   `json:"env"`
	Domains     []Domain `json:"domains"`
}

// Source is either an image reference or a git checkout.
type Source struct {
	Type        string `json:"type"`
	Image       string `json:"image,omitempty"`
	Repo        string `json:"repo,omitempty"`
	Ref         string `json:"ref,omitempty"`
	RootPath    string `json:"rootPath,omitempty"`
	ComposeFile string `json:"composeFile,omitempty"`
}

// ImageSource returns a Source pulling image.
func ImageSource(image string) Source {
	return Source{Type: "image", Image: image}
}

// Domain binds a public host to a container port.
type Domain struct {
	Host    string `json:"host"`
	HTTPS   bool   `json:"https,omitempty"`
	Port    int    `json:"port"`
	Service string `json:"service,omitempty"`
}

// Mount is a persistent volume.
type Mount struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	MountPath string `json:"mountPath"`
}

// VolumeMount returns a named volume mount.
func VolumeMount(name, path string) Mount {
	return Mount{Type: "volume", Name: name, MountPath: path}
}

// Deploy holds the deploy settings of an app.
type Deploy struct {
	Replicas     int    `json:"replicas,omitempty"`
	Command      string `json:"command"`
	ZeroDowntime bool   `json:"zeroDowntime,omitempty"`
}

// EnvVar is one KEY=VALUE line of an env block.
type EnvVar struct {
	Key   string
	Value string
}

// EnvBlock is an ordered list of environment variables.
type EnvBlock []EnvVar

// String renders the block as newline separated KEY=VALUE lines.
func (e EnvBlock) String() string {
	lines := make([]string, len(e))
	for i, v := range e {
		lines[i] = v.Key + "=" + v.Value
	}
	return strings.Join(lines, "\n")
}

// Render encodes v as two-space indented JSON without HTML escaping and
// without a trailing newline.
func Render(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// RawManifest is a manifest whose services are kept as undecoded JSON.
type RawManifest struct {
	Services []json.RawMessage `json:"services"`
}

// ParseRawManifest decodes a rendered manifest.
func ParseRawManifest(text string) (*RawManifest, error) {
	var m RawManifest
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// ServiceRecord is a decoded service entry with the fields used for
// cross-reference checks. Password is only set on database services.
type ServiceRecord struct {
	Type string `json:"type"`
	Data struct {
		ServiceName string `json:"serviceName"`
		Password    string `json:"password"`
		Env         string `json:"env"`
	} `json:"data"`
}

// ParseServices decodes the name, type and env of every service in a
// rendered manifest.
func ParseServices(text string) ([]ServiceRecord, error) {
	var m struct {
		Services []ServiceRecord `json:"services"`
	}
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return m.Services, nil
}
