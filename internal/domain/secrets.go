package domain

import "log/slog"

// SecretBundle holds the connection strings of the three collaborators.
// It is resolved once at startup and only read afterwards.
type SecretBundle struct {
	StorageConnString string
	DatabaseDSN       string
	QueueURL          string
}

// String never prints secret values.
func (SecretBundle) String() string {
	return "SecretBundle{storage:[redacted] database:[redacted] queue:[redacted]}"
}

// LogValue keeps secret values out of slog output.
func (b SecretBundle) LogValue() slog.Value {
	return slog.StringValue(b.String())
}
