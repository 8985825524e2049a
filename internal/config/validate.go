package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Secrets.validate(); err != nil {
		return fmt.Errorf("secrets: %w", err)
	}

	if c.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("storage.max_upload_bytes must be > 0 (got %d)", c.Storage.MaxUploadBytes)
	}

	if c.Database.MinConns < 0 || c.Database.MaxConns <= 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database: invalid pool size (min %d, max %d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if strings.TrimSpace(c.Queue.Stream) == "" || strings.TrimSpace(c.Queue.Subject) == "" {
		return fmt.Errorf("queue: stream and subject are required")
	}

	if err := c.Form.validate(); err != nil {
		return fmt.Errorf("form: %w", err)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/' (got %q)", c.Metrics.Path)
	}

	return nil
}

func (s *SecretsConfig) validate() error {
	switch s.Provider {
	case SecretsProviderAWS:
		if strings.TrimSpace(s.Region) == "" {
			return fmt.Errorf("region is required for provider %q", s.Provider)
		}
	case SecretsProviderEnv:
	default:
		return fmt.Errorf("unknown provider %q (want %q or %q)", s.Provider, SecretsProviderAWS, SecretsProviderEnv)
	}

	if s.Names.Storage == "" || s.Names.Database == "" || s.Names.Queue == "" {
		return fmt.Errorf("names: storage, database and queue secret names are required")
	}

	return nil
}

func (f *FormConfig) validate() error {
	if strings.TrimSpace(f.FileField) == "" {
		return fmt.Errorf("file_field is required")
	}
	if f.MaxFieldLength <= 0 {
		return fmt.Errorf("max_field_length must be > 0 (got %d)", f.MaxFieldLength)
	}

	f.RequiredFields = ParseFieldList(f.RequiredFieldsRaw)
	if len(f.RequiredFields) == 0 {
		return fmt.Errorf("required_fields must name at least one field")
	}
	for _, name := range f.RequiredFields {
		if name == f.FileField {
			return fmt.Errorf("required_fields: %q is the file field", name)
		}
	}

	return nil
}
