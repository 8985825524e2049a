// Package submission implements the form submission repository using PostgreSQL.
package submission

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/heartmarshall/formsubmit-backend/internal/adapter/postgres"
	"github.com/heartmarshall/formsubmit-backend/internal/domain"
)

const table = "form_submissions"

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	columns = []string{"id", "fields", "file_name", "content_type", "image_key", "image_url", "created_at"}
)

// Repo provides submission persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new submission repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// Insert stores s and returns the id assigned by the database.
// s.ID and s.CreatedAt are filled in on success.
func (r *Repo) Insert(ctx context.Context, s *domain.Submission) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("submission: %w: nil record", domain.ErrValidation)
	}

	fields := s.Fields
	if fields == nil {
		fields = map[string]string{}
	}

	query, args, err := psql.Insert(table).
		Columns("fields", "file_name", "content_type", "image_key", "image_url").
		Values(fields, s.FileName, s.ContentType, s.ImageKey, s.ImageReference).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	var (
		id        int64
		createdAt time.Time
	)
	if err := r.q.QueryRow(ctx, query, args...).Scan(&id, &createdAt); err != nil {
		return 0, postgres.MapError(err, "submission", 0)
	}

	s.ID = id
	s.CreatedAt = createdAt.UTC()
	return id, nil
}

// GetByID returns the submission with the given id.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Submission, error) {
	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var s domain.Submission
	err = r.q.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.Fields, &s.FileName, &s.ContentType, &s.ImageKey, &s.ImageReference, &s.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "submission", id)
	}

	s.CreatedAt = s.CreatedAt.UTC()
	return &s, nil
}
