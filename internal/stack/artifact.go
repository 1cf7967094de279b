package stack

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one rendered artifact.
type Kind string

const (
	KindDatabase        Kind = "database"
	KindGatewayDatabase Kind = "gateway-database"
	KindWorkflow        Kind = "workflow"
	KindAIOrchestration Kind = "ai-orchestration"
	KindGateway         Kind = "gateway"
	KindObjectStorage   Kind = "object-storage"
	KindCombined        Kind = "combined"
	KindSummary         Kind = "summary"
)

// ErrUnknownKind is returned for an artifact kind that has no producer.
var ErrUnknownKind = errors.New("unknown artifact kind")

// KindInfo describes an artifact kind.
type KindInfo struct {
	Kind        Kind
	Aliases     []string
	Description string
	// Filename is used when artifacts are written to a directory.
	Filename string
}

var kindInfos = []KindInfo{
	{KindDatabase, []string{"db"}, "PostgreSQL and Redis for the project", "database.json"},
	{KindGatewayDatabase, []string{"db-evolution"}, "PostgreSQL and Redis reserved for Evolution API", "gateway-database.json"},
	{KindWorkflow, []string{"n8n"}, "n8n editor, webhook and worker", "workflow.json"},
	{KindAIOrchestration, []string{"dify"}, "Dify compose stack", "ai-orchestration.json"},
	{KindGateway, []string{"evolution"}, "Evolution API", "gateway.json"},
	{KindObjectStorage, []string{"minio"}, "MinIO object storage", "object-storage.json"},
	{KindCombined, []string{"all"}, "every service above in one manifest", "combined.json"},
	{KindSummary, []string{"markdown"}, "Markdown summary of inputs and credentials", "summary.md"},
}

// Kinds returns every artifact kind in display order.
func Kinds() []KindInfo {
	out := make([]KindInfo, len(kindInfos))
	copy(out, kindInfos)
	return out
}

// ParseKind resolves a kind name or alias, case-insensitively.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, ki := range kindInfos {
		if name == string(ki.Kind) {
			return ki.Kind, nil
		}
		for _, a := range ki.Aliases {
			if name == a {
				return ki.Kind, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Info returns the descriptor of k.
func (k Kind) Info() (KindInfo, bool) {
	for _, ki := range kindInfos {
		if ki.Kind == k {
			return ki, true
		}
	}
	return KindInfo{}, false
}

// IsJSON reports whether the artifact is a JSON manifest.
func (k Kind) IsJSON() bool {
	return k != KindSummary
}

// builders maps every manifest kind except combined to its builder.
var builders = map[Kind]func(InputSet) Manifest{
	KindDatabase:        DatabaseStack,
	KindGatewayDatabase: GatewayDatabaseStack,
	KindWorkflow:        WorkflowStack,
	KindAIOrchestration: AIOrchestrationStack,
	KindGateway:         GatewayStack,
	KindObjectStorage:   ObjectStorageStack,
}

// CombinedOrder lists the manifests merged into the combined artifact.
var CombinedOrder = []Kind{
	KindDatabase,
	KindGatewayDatabase,
	KindWorkflow,
	KindAIOrchestration,
	KindGateway,
	KindObjectStorage,
}

// Produce renders the artifact of the given kind.
func Produce(in InputSet, kind Kind) (string, error) {
	switch kind {
	case KindSummary:
		return Summary(in), nil
	case KindCombined:
		return combined(in)
	}

	build, ok := builders[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return Render(build(in))
}

// combined parses each constituent manifest and concatenates the service
// lists in CombinedOrder.
func combined(in InputSet) (string, error) {
	var all RawManifest
	for _, k := range CombinedOrder {
		text, err := Produce(in, k)
		if err != nil {
			return "", fmt.Errorf("rendering %s: %w", k, err)
		}
		m, err := ParseRawManifest(text)
		if err != nil {
			return "", fmt.Errorf("merging %s: %w", k, err)
		}
		all.Services = append(all.Services, m.Services...)
	}
	return Render(all)
}
