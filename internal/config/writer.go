package config

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/thecloudstation/stackgen/internal/stack"
	"github.com/zclconf/go-cty/cty"
)

// Render writes in as a stackgen.hcl document that ParseBytes reads back
// to the same values.
func Render(in stack.InputSet) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	root.SetAttributeValue("project", cty.StringVal(in.ProjectName))
	root.AppendNewline()

	domains := root.AppendNewBlock("domains", nil).Body()
	domains.SetAttributeValue("n8n_editor", cty.StringVal(in.N8nEditorDomain))
	domains.SetAttributeValue("n8n_webhook", cty.StringVal(in.N8nWebhookDomain))
	domains.SetAttributeValue("dify", cty.StringVal(in.DifyDomain))
	domains.SetAttributeValue("evolution", cty.StringVal(in.EvolutionDomain))
	domains.SetAttributeValue("minio", cty.StringVal(in.MinioDomain))
	domains.SetAttributeValue("minio_console", cty.StringVal(in.MinioConsoleDomain))
	root.AppendNewline()

	creds := root.AppendNewBlock("credentials", nil).Body()
	creds.SetAttributeValue("redis_password", cty.StringVal(in.RedisPassword))
	creds.SetAttributeValue("postgres_password", cty.StringVal(in.PostgresPassword))
	creds.SetAttributeValue("encryption_key", cty.StringVal(in.EncryptionKey))
	creds.SetAttributeValue("minio_root_user", cty.StringVal(in.MinioRootUser))
	creds.SetAttributeValue("minio_root_password", cty.StringVal(in.MinioRootPassword))
	creds.SetAttributeValue("evolution_api_key", cty.StringVal(in.EvolutionAPIKey))

	return hclwrite.Format(f.Bytes())
}
