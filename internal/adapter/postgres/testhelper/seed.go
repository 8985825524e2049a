package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/formsubmit-backend/internal/domain"
)

// SeedSubmission inserts a form_submissions row with unique values and
// returns it as stored.
func SeedSubmission(t *testing.T, pool *pgxpool.Pool) domain.Submission {
	t.Helper()
	ctx := context.Background()

	key := uuid.New().String() + ".png"
	s := domain.Submission{
		Fields:         map[string]string{"name": "Seed " + key[:8]},
		FileName:       "seed.png",
		ContentType:    "image/png",
		ImageKey:       key,
		ImageReference: "https://storage.example.com/forms/" + key,
	}

	fields, err := json.Marshal(s.Fields)
	if err != nil {
		t.Fatalf("testhelper: SeedSubmission marshal fields: %v", err)
	}

	err = pool.QueryRow(ctx,
		`INSERT INTO form_submissions (fields, file_name, content_type, image_key, image_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		fields, s.FileName, s.ContentType, s.ImageKey, s.ImageReference,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedSubmission insert: %v", err)
	}
	s.CreatedAt = s.CreatedAt.UTC().Truncate(time.Microsecond)

	return s
}
