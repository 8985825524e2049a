package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Secrets  SecretsConfig  `yaml:"secrets"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Queue    QueueConfig    `yaml:"queue"`
	Form     FormConfig     `yaml:"form"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Secret providers.
const (
	SecretsProviderAWS = "aws"
	SecretsProviderEnv = "env"
)

// SecretsConfig tells the resolver where the collaborator connection
// strings live. Only the names are configuration; values never are.
type SecretsConfig struct {
	Provider string `yaml:"provider"  env:"SECRETS_PROVIDER"  env-default:"aws"`
	// VaultURL overrides the secrets manager endpoint. Empty uses the SDK default for Region.
	VaultURL string      `yaml:"vault_url" env:"SECRETS_VAULT_URL"`
	Region   string      `yaml:"region"    env:"SECRETS_REGION"    env-default:"us-east-1"`
	Names    SecretNames `yaml:"names"`
}

// SecretNames are the secret identifiers of the three connection strings.
type SecretNames struct {
	Storage  string `yaml:"storage"  env:"SECRET_NAME_STORAGE"  env-default:"storage-connection-string"`
	Database string `yaml:"database" env:"SECRET_NAME_DATABASE" env-default:"postgres-connection-string"`
	Queue    string `yaml:"queue"    env:"SECRET_NAME_QUEUE"    env-default:"queue-connection-string"`
}

// StorageConfig holds upload settings. The bucket and credentials come
// from the storage connection string secret.
type StorageConfig struct {
	KeyPrefix         string `yaml:"key_prefix"          env:"STORAGE_KEY_PREFIX"`
	MaxUploadBytes    int64  `yaml:"max_upload_bytes"    env:"STORAGE_MAX_UPLOAD_BYTES"    env-default:"10485760"`
	ContentTypePrefix string `yaml:"content_type_prefix" env:"STORAGE_CONTENT_TYPE_PREFIX" env-default:"image/"`
	DefaultExtension  string `yaml:"default_extension"   env:"STORAGE_DEFAULT_EXTENSION"   env-default:"jpg"`
}

// DatabaseConfig holds PostgreSQL pool settings. The DSN comes from the
// database connection string secret.
type DatabaseConfig struct {
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// QueueConfig holds NATS JetStream settings. The server URL comes from the
// queue connection string secret.
type QueueConfig struct {
	Stream     string `yaml:"stream"      env:"QUEUE_STREAM"      env-default:"FORM_SUBMISSIONS"`
	Subject    string `yaml:"subject"     env:"QUEUE_SUBJECT"     env-default:"form-submission-job"`
	ClientName string `yaml:"client_name" env:"QUEUE_CLIENT_NAME" env-default:"formsubmit-backend"`
}

// FormConfig describes the submitted form.
type FormConfig struct {
	Title             string `yaml:"title"              env:"FORM_TITLE"              env-default:"Form Submission"`
	RequiredFieldsRaw string `yaml:"required_fields"    env:"FORM_REQUIRED_FIELDS"    env-default:"name,address,id_number"`
	FileField         string `yaml:"file_field"         env:"FORM_FILE_FIELD"         env-default:"photograph"`
	MaxFieldLength    int    `yaml:"max_field_length"   env:"FORM_MAX_FIELD_LENGTH"   env-default:"2000"`

	// RequiredFields is parsed from RequiredFieldsRaw during validation.
	RequiredFields []string `yaml:"-" env:"-"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

// ParseFieldList parses a comma-separated list of form field names.
// Blank entries are dropped and duplicates collapse to their first occurrence.
func ParseFieldList(raw string) []string {
	var fields []string
	seen := make(map[string]struct{})
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		fields = append(fields, p)
	}
	return fields
}
