package stack

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWorkflowStack(t *testing.T) {
	in := testInputs()
	m := WorkflowStack(in)

	if len(m.Services) != 3 {
		t.Fatalf("got %d services, want 3", len(m.Services))
	}

	wantCommands := map[string]string{
		"n8n_editor":  "n8n start",
		"n8n_webhook": "n8n webhook",
		"n8n_worker":  "n8n worker --concurrency=5",
	}
	wantHosts := map[string]string{
		"n8n_editor":  in.N8nEditorDomain,
		"n8n_webhook": in.N8nWebhookDomain,
	}

	var sharedEnv string
	for i, svc := range m.Services {
		data, ok := svc.Data.(AppData)
		if !ok {
			t.Fatalf("service %d data is %T, want AppData", i, svc.Data)
		}
		if svc.Type != ServiceTypeApp {
			t.Errorf("%s type = %q, want app", data.ServiceName, svc.Type)
		}
		if data.Deploy == nil || data.Deploy.Command != wantCommands[data.ServiceName] {
			t.Errorf("%s deploy = %+v", data.ServiceName, data.Deploy)
		}

		host, public := wantHosts[data.ServiceName]
		switch {
		case public && (len(data.Domains) != 1 || data.Domains[0].Host != host || !data.Domains[0].HTTPS):
			t.Errorf("%s domains = %+v, want https %s", data.ServiceName, data.Domains, host)
		case !public && len(data.Domains) != 0:
			t.Errorf("%s should not expose a domain, got %+v", data.ServiceName, data.Domains)
		}

		if i == 0 {
			sharedEnv = data.Env
		} else if data.Env != sharedEnv {
			t.Errorf("%s env differs from editor env", data.ServiceName)
		}
	}

	env, err := ParseEnv(sharedEnv)
	if err != nil {
		t.Fatalf("ParseEnv() error = %v", err)
	}

	wantEnv := map[string]string{
		"DB_POSTGRESDB_DATABASE":    "acme",
		"DB_POSTGRESDB_HOST":        "acme_postgres",
		"DB_POSTGRESDB_PASSWORD":    "P1",
		"QUEUE_BULL_REDIS_HOST":     "acme_redis",
		"QUEUE_BULL_REDIS_PASSWORD": "R1",
		"N8N_ENCRYPTION_KEY":        "E1",
		"N8N_EDITOR_BASE_URL":       "https://n8n.acme.dev/",
		"N8N_HOST":                  "n8n.acme.dev/",
		"WEBHOOK_URL":               "https://hooks.acme.dev/",
		"S3_ACCESS_KEY":             "admin",
		"S3_SECRET_KEY":             "M1",
		"S3_BUCKET":                 "n8n",
		"S3_ENDPOINT":               "s3.acme.dev",
	}
	for k, want := range wantEnv {
		if got := env[k]; got != want {
			t.Errorf("env %s = %q, want %q", k, got, want)
		}
	}
}

func TestGatewayStack(t *testing.T) {
	in := testInputs()
	m := GatewayStack(in)

	if len(m.Services) != 1 {
		t.Fatalf("got %d services, want 1", len(m.Services))
	}
	data := m.Services[0].Data.(GatewayAppData)
	if diff := cmp.Diff([]Domain{{Host: "evo.acme.dev", Port: 8080}}, data.Domains); diff != "" {
		t.Errorf("domains mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Mount{VolumeMount("evolution-instances", "/evolution/instances")}, data.Mounts); diff != "" {
		t.Errorf("mounts mismatch (-want +got):\n%s", diff)
	}

	env, err := ParseEnv(data.Env)
	if err != nil {
		t.Fatalf("ParseEnv() error = %v", err)
	}
	wantEnv := map[string]string{
		"SERVER_URL":              "https://evo.acme.dev",
		"DATABASE_CONNECTION_URI": "postgres://postgres:P1@evolution_postgres:5432/acme",
		"CACHE_REDIS_URI":         "redis://default:R1@evolution_redis:6379",
		"S3_BUCKET":               "evolution",
		"AUTHENTICATION_API_KEY":  "K1",
	}
	for k, want := range wantEnv {
		if got := env[k]; got != want {
			t.Errorf("env %s = %q, want %q", k, got, want)
		}
	}
}

func TestAIOrchestrationStack(t *testing.T) {
	m := AIOrchestrationStack(testInputs())

	svc := m.Services[0]
	if svc.Type != ServiceTypeCompose {
		t.Errorf("type = %q, want compose", svc.Type)
	}
	data := svc.Data.(ComposeData)

	wantSource := Source{
		Type:        "git",
		Repo:        "https://github.com/easypanel-io/compose.git",
		Ref:         "30-01-2025",
		RootPath:    "/dify/code",
		ComposeFile: "docker-compose.yaml",
	}
	if diff := cmp.Diff(wantSource, data.Source); diff != "" {
		t.Errorf("source mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Domain{{Host: "dify.acme.dev", Port: 80, Service: "nginx"}}, data.Domains); diff != "" {
		t.Errorf("domains mismatch (-want +got):\n%s", diff)
	}

	env, _ := ParseEnv(data.Env)
	if env["S3_ENDPOINT"] != "https://s3.acme.dev" || env["S3_BUCKET"] != "dify" {
		t.Errorf("unexpected S3 env: %v", env)
	}
}

func TestObjectStorageStack(t *testing.T) {
	data := ObjectStorageStack(testInputs()).Services[0].Data.(StorageAppData)

	wantDomains := []Domain{
		{Host: "console.acme.dev", Port: 9001},
		{Host: "s3.acme.dev", Port: 9000},
	}
	if diff := cmp.Diff(wantDomains, data.Domains); diff != "" {
		t.Errorf("domains mismatch (-want +got):\n%s", diff)
	}
	if data.Deploy.Command != `minio server /data --console-address ":9001"` {
		t.Errorf("deploy = %+v", data.Deploy)
	}
	if diff := cmp.Diff([]Mount{VolumeMount("minio-data", "/data")}, data.Mounts); diff != "" {
		t.Errorf("mounts mismatch (-want +got):\n%s", diff)
	}

	env, _ := ParseEnv(data.Env)
	want := map[string]string{
		"MINIO_SERVER_URL":    "https://s3.acme.dev",
		"MINIO_ROOT_USER":     "admin",
		"MINIO_ROOT_PASSWORD": "M1",
	}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Errorf("env mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvBlock_String(t *testing.T) {
	env := EnvBlock{{"A", "1"}, {"B", ""}, {"C", "x=y"}}
	if got, want := env.String(), "A=1\nB=\nC=x=y"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := (EnvBlock{}).String(); got != "" {
		t.Errorf("empty block = %q", got)
	}
}

func TestAppKeyOrder(t *testing.T) {
	tests := []struct {
		name     string
		manifest Manifest
		keys     []string
		absent   []string
	}{
		{
			name:     "workflow",
			manifest: WorkflowStack(testInputs()),
			keys:     []string{`"projectName"`, `"serviceName"`, `"source"`, `"env"`, `"deploy"`, `"domains"`, `"mounts"`},
		},
		{
			name:     "gateway",
			manifest: GatewayStack(testInputs()),
			keys:     []string{`"serviceName"`, `"env"`, `"source"`, `"domains"`, `"mounts"`},
			absent:   []string{`"projectName"`, `"deploy"`},
		},
		{
			name:     "object storage",
			manifest: ObjectStorageStack(testInputs()),
			keys:     []string{`"serviceName"`, `"env"`, `"source"`, `"mounts"`, `"domains"`, `"deploy"`},
			absent:   []string{`"projectName"`, `"replicas"`, `"zeroDowntime"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.manifest)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			last := -1
			for _, key := range tt.keys {
				idx := strings.Index(out, key)
				if idx <= last {
					t.Errorf("key %s out of order (at %d, previous at %d):\n%s", key, idx, last, out)
				}
				last = idx
			}
			for _, key := range tt.absent {
				if strings.Contains(out, key) {
					t.Errorf("unexpected key %s:\n%s", key, out)
				}
			}
		})
	}
}
