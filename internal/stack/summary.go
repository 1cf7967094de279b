package stack

import (
	"fmt"
	"strings"
)

// Summary renders the Markdown overview of the inputs, the credentials and
// the components that make up the full deployment.
func Summary(in InputSet) string {
	var b strings.Builder

	b.WriteString("# Stack Configuration Summary\n\n")

	b.WriteString("## Project Details\n")
	for _, f := range in.Fields() {
		if f.Secret || f.Name == FieldMinioRootUser {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", f.Label, f.Value)
	}

	b.WriteString("\n## Credentials\n")
	for _, f := range in.Fields() {
		if !f.Secret && f.Name != FieldMinioRootUser {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", f.Label, f.Value)
	}

	b.WriteString("\n## Stack Components\n")
	components := []string{
		fmt.Sprintf("PostgreSQL Database (%s)", postgresImage),
		fmt.Sprintf("Redis (%s)", redisImage),
		"N8n Stack (Editor, Webhook, Worker)",
		"Dify Stack",
		"Evolution API",
		"MinIO S3 Storage",
	}
	for i, c := range components {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c)
	}

	b.WriteString("\n## S3 Integration\n")
	b.WriteString("- All services configured to use MinIO as S3 storage\n")
	fmt.Fprintf(&b, "- Buckets: %s", strings.Join(Buckets, ", "))

	return b.String()
}
