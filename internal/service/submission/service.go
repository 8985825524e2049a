// Package submission accepts a form submission and drives it through
// upload, persist and notify, in that order, exactly once each.
package submission

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/formsubmit-backend/internal/config"
	"github.com/heartmarshall/formsubmit-backend/internal/domain"
)

// blobStore uploads the attached file and returns its public reference.
type blobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// submissionRepo persists submission metadata.
type submissionRepo interface {
	Insert(ctx context.Context, s *domain.Submission) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Submission, error)
}

// notifier enqueues the notification for a persisted submission.
type notifier interface {
	Publish(ctx context.Context, n domain.SubmissionNotification) error
}

// outcomeRecorder is told about every terminal outcome.
type outcomeRecorder interface {
	ObserveSubmission(outcome domain.Stage, took time.Duration)
}

// Service implements submission operations.
type Service struct {
	log      *slog.Logger
	blobs    blobStore
	repo     submissionRepo
	queue    notifier
	recorder outcomeRecorder
	storage  config.StorageConfig
	form     config.FormConfig
	now      func() time.Time
}

// NewService creates a new submission service instance.
// form.RequiredFields must already be parsed (config.Validate does it).
func NewService(
	logger *slog.Logger,
	blobs blobStore,
	repo submissionRepo,
	queue notifier,
	recorder outcomeRecorder,
	storage config.StorageConfig,
	form config.FormConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "submission"),
		blobs:    blobs,
		repo:     repo,
		queue:    queue,
		recorder: recorder,
		storage:  storage,
		form:     form,
		now:      time.Now,
	}
}

func (s *Service) rules() Rules {
	return Rules{
		RequiredFields:    s.form.RequiredFields,
		FileField:         s.form.FileField,
		MaxFieldLength:    s.form.MaxFieldLength,
		ContentTypePrefix: s.storage.ContentTypePrefix,
	}
}
