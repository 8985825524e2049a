// Package secrets resolves the collaborator connection strings at startup.
package secrets

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/formsubmit-backend/internal/config"
	"github.com/heartmarshall/formsubmit-backend/internal/domain"
)

// Getter fetches a single secret value by name.
type Getter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// Resolve fetches the storage, database and queue connection strings, in that
// order. The first failure or empty value aborts resolution; a partial bundle
// is never returned. Errors name the secret, never its value.
func Resolve(ctx context.Context, getter Getter, names config.SecretNames) (domain.SecretBundle, error) {
	storage, err := fetch(ctx, getter, names.Storage)
	if err != nil {
		return domain.SecretBundle{}, err
	}

	database, err := fetch(ctx, getter, names.Database)
	if err != nil {
		return domain.SecretBundle{}, err
	}

	queue, err := fetch(ctx, getter, names.Queue)
	if err != nil {
		return domain.SecretBundle{}, err
	}

	return domain.SecretBundle{
		StorageConnString: storage,
		DatabaseDSN:       database,
		QueueURL:          queue,
	}, nil
}

func fetch(ctx context.Context, getter Getter, name string) (string, error) {
	value, err := getter.GetSecret(ctx, name)
	if err != nil {
		return "", fmt.Errorf("%w: secret %q: %w", domain.ErrSecretResolution, name, err)
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: secret %q is empty", domain.ErrSecretResolution, name)
	}
	return value, nil
}
