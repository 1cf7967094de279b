package stack

const (
	postgresImage  = "postgres:16"
	redisImage     = "redis:7"
	n8nImage       = "n8nio/n8n:latest"
	evolutionImage = "atendai/evolution-api:v2.2.3"
	minioImage     = "minio/minio:latest"

	// Service names used by the isolated gateway database stack.
	GatewayPostgresService = "evolution_postgres"
	GatewayRedisService    = "evolution_redis"

	difyRepo        = "https://github.com/easypanel-io/compose.git"
	difyRef         = "30-01-2025"
	difyRootPath    = "/dify/code"
	difyComposeFile = "docker-compose.yaml"

	timezone = "America/Sao_Paulo"
	s3Region = "us-east-1"
	s3Port   = "9000"
)

// Buckets lists the object storage buckets the stacks write to.
var Buckets = []string{"n8n", "dify", "evolution"}

// PostgresService returns the project scoped postgres service name.
func PostgresService(project string) string { return project + "_postgres" }

// RedisService returns the project scoped redis service name.
func RedisService(project string) string { return project + "_redis" }

func databaseServices(in InputSet, postgresName, redisName string) Manifest {
	return Manifest{Services: []Service{
		{
			Type: ServiceTypePostgres,
			Data: DatabaseData{
				ProjectName: in.ProjectName,
				ServiceName: postgresName,
				Image:       postgresImage,
				Password:    in.PostgresPassword,
			},
		},
		{
			Type: ServiceTypeRedis,
			Data: DatabaseData{
				ProjectName: in.ProjectName,
				ServiceName: redisName,
				Image:       redisImage,
				Password:    in.RedisPassword,
			},
		},
	}}
}

// DatabaseStack builds the project scoped postgres and redis services.
func DatabaseStack(in InputSet) Manifest {
	return databaseServices(in, PostgresService(in.ProjectName), RedisService(in.ProjectName))
}

// GatewayDatabaseStack builds the postgres and redis services reserved for
// the Evolution API. Their names do not depend on the project.
func GatewayDatabaseStack(in InputSet) Manifest {
	return databaseServices(in, GatewayPostgresService, GatewayRedisService)
}

// s3Env returns the S3 variables shared by n8n and Evolution.
func s3Env(in InputSet, bucket string) EnvBlock {
	return EnvBlock{
		{"S3_ENABLED", "true"},
		{"S3_ACCESS_KEY", in.MinioRootUser},
		{"S3_SECRET_KEY", in.MinioRootPassword},
		{"S3_BUCKET", bucket},
		{"S3_PORT", s3Port},
		{"S3_ENDPOINT", in.MinioDomain},
		{"S3_REGION", s3Region},
		{"S3_USE_SSL", "true"},
	}
}

// WorkflowEnv is the env block shared by every n8n process.
func WorkflowEnv(in InputSet) EnvBlock {
	env := EnvBlock{
		{"DB_POSTGRESDB_DATABASE", in.ProjectName},
		{"DB_POSTGRESDB_HOST", PostgresService(in.ProjectName)},
		{"DB_POSTGRESDB_PASSWORD", in.PostgresPassword},
		{"DB_POSTGRESDB_PORT", "5432"},
		{"DB_POSTGRESDB_USER", "postgres"},
		{"DB_TYPE", "postgresdb"},
		{"QUEUE_BULL_REDIS_HOST", RedisService(in.ProjectName)},
		{"QUEUE_BULL_REDIS_PASSWORD", in.RedisPassword},
		{"QUEUE_BULL_REDIS_PORT", "6379"},
		{"EXECUTIONS_MODE", "queue"},
		{"EXECUTIONS_DATA_MAX_AGE", "336"},
		{"EXECUTIONS_DATA_PRUNE", "true"},
		{"GENERIC_TIMEZONE", timezone},
		{"N8N_DIAGNOSTICS_ENABLED", "false"},
		{"N8N_EDITOR_BASE_URL", "https://" + in.N8nEditorDomain + "/"},
		{"N8N_ENCRYPTION_KEY", in.EncryptionKey},
		{"N8N_HOST", in.N8nEditorDomain + "/"},
		{"N8N_PROTOCOL", "https"},
		{"NODE_ENV", "production"},
		{"NODE_FUNCTION_ALLOW_EXTERNAL", "moment,lodash,moment-with-locales"},
		{"N8N_LOG_LEVEL", "debug"},
		{"N8N_LOG_OUTPUT", "file,console"},
		{"N8N_LOG_FILE_LOCATION", "/home/node/.n8n/logs/n8n-01.log"},
		{"TZ", timezone},
		{"WEBHOOK_URL", "https://" + in.N8nWebhookDomain + "/"},
	}
	return append(env, s3Env(in, "n8n")...)
}

// WorkflowStack builds the n8n editor, webhook and worker services.
func WorkflowStack(in InputSet) Manifest {
	env := WorkflowEnv(in).String()

	n8n := func(name, command string, domains []Domain) Service {
		return Service{
			Type: ServiceTypeApp,
			Data: AppData{
				ProjectName: in.ProjectName,
				ServiceName: name,
				Source:      ImageSource(n8nImage),
				Env:         env,
				Deploy:      &Deploy{Replicas: 1, Command: command, ZeroDowntime: true},
				Domains:     domains,
				Mounts:      []Mount{VolumeMount("n8n-data", "/home/node/.n8n")},
			},
		}
	}

	return Manifest{Services: []Service{
		n8n("n8n_editor", "n8n start", []Domain{{Host: in.N8nEditorDomain, HTTPS: true, Port: 5678}}),
		n8n("n8n_webhook", "n8n webhook", []Domain{{Host: in.N8nWebhookDomain, HTTPS: true, Port: 5678}}),
		n8n("n8n_worker", "n8n worker --concurrency=5", nil),
	}}
}

// AIOrchestrationStack builds the Dify compose service.
func AIOrchestrationStack(in InputSet) Manifest {
	env := EnvBlock{
		{"S3_ENABLED", "true"},
		{"S3_ACCESS_KEY", in.MinioRootUser},
		{"S3_SECRET_KEY", in.MinioRootPassword},
		{"S3_BUCKET", "dify"},
		{"S3_ENDPOINT", "https://" + in.MinioDomain},
		{"S3_REGION", s3Region},
	}

	return Manifest{Services: []Service{{
		Type: ServiceTypeCompose,
		Data: ComposeData{
			ServiceName: "dify",
			Source: Source{
				Type:        "git",
				Repo:        difyRepo,
				Ref:         difyRef,
				RootPath:    difyRootPath,
				ComposeFile: difyComposeFile,
			},
			Env:     env.String(),
			Domains: []Domain{{Host: in.DifyDomain, Port: 80, Service: "nginx"}},
		},
	}}}
}

// GatewayEnv is the Evolution API env block. It points at the services of
// GatewayDatabaseStack.
func GatewayEnv(in InputSet) EnvBlock {
	env := EnvBlock{
		{"SERVER_TYPE", "http"},
		{"SERVER_PORT", "8080"},
		{"SERVER_URL", "https://" + in.EvolutionDomain},
		{"DATABASE_PROVIDER", "postgresql"},
		{"DATABASE_CONNECTION_URI", "postgres://postgres:" + in.PostgresPassword + "@" + GatewayPostgresService + ":5432/" + in.ProjectName},
		{"CACHE_REDIS_ENABLED", "true"},
		{"CACHE_REDIS_URI", "redis://default:" + in.RedisPassword + "@" + GatewayRedisService + ":6379"},
	}
	env = append(env, s3Env(in, "evolution")...)
	return append(env, EnvVar{"AUTHENTICATION_API_KEY", in.EvolutionAPIKey})
}

// GatewayStack builds the Evolution API service.
func GatewayStack(in InputSet) Manifest {
	return Manifest{Services: []Service{{
		Type: ServiceTypeApp,
		Data: GatewayAppData{
			ServiceName: "evolution-api",
			Env:         GatewayEnv(in).String(),
			Source:      ImageSource(evolutionImage),
			Domains:     []Domain{{Host: in.EvolutionDomain, Port: 8080}},
			Mounts:      []Mount{VolumeMount("evolution-instances", "/evolution/instances")},
		},
	}}}
}

// ObjectStorageStack builds the MinIO service.
func ObjectStorageStack(in InputSet) Manifest {
	env := EnvBlock{
		{"MINIO_SERVER_URL", "https://" + in.MinioDomain},
		{"MINIO_ROOT_USER", in.MinioRootUser},
		{"MINIO_ROOT_PASSWORD", in.MinioRootPassword},
	}

	return Manifest{Services: []Service{{
		Type: ServiceTypeApp,
		Data: StorageAppData{
			ServiceName: "minio",
			Env:         env.String(),
			Source:      ImageSource(minioImage),
			Mounts:      []Mount{VolumeMount("minio-data", "/data")},
			Domains: []Domain{
				{Host: in.MinioConsoleDomain, Port: 9001},
				{Host: in.MinioDomain, Port: 9000},
			},
			Deploy: Deploy{Command: `minio server /data --console-address ":9001"`},
		},
	}}}
}
