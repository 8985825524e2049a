// Package envsecrets reads secrets from environment variables. It is meant
// for local development and is only used when selected explicitly.
package envsecrets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/heartmarshall/formsubmit-backend/internal/domain"
)

// Getter looks secrets up in the process environment.
type Getter struct {
	lookup func(string) (string, bool)
}

// New returns a Getter backed by os.LookupEnv.
func New() *Getter {
	return &Getter{lookup: os.LookupEnv}
}

// VarName maps a secret name to its environment variable:
// "postgres-connection-string" becomes "POSTGRES_CONNECTION_STRING".
func VarName(name string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_", "/", "_").Replace(name))
}

// GetSecret returns the value of the variable derived from name.
func (g *Getter) GetSecret(_ context.Context, name string) (string, error) {
	key := VarName(name)
	value, ok := g.lookup(key)
	if !ok {
		return "", fmt.Errorf("envsecrets: %s: %w", key, domain.ErrNotFound)
	}
	return value, nil
}
