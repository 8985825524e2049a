package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	s := SeedSubmission(t, pool)

	var key string
	err := pool.QueryRow(
		context.Background(),
		`SELECT image_key FROM form_submissions WHERE id = $1`,
		s.ID,
	).Scan(&key)
	if err != nil {
		t.Fatalf("expected submission in DB, got error: %v", err)
	}

	if key != s.ImageKey {
		t.Fatalf("expected image_key %q, got %q", s.ImageKey, key)
	}
}
