package submission

import (
	"context"

	"github.com/heartmarshall/formsubmit-backend/internal/domain"
)

// Get returns a stored submission. Returns domain.ErrNotFound when no row
// has the given id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Submission, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id", "must be positive")
	}
	return s.repo.GetByID(ctx, id)
}
