package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/formsubmit-backend/internal/domain"
)

var (
	errEmptyReference = errors.New("storage returned an empty reference")
	errNoID           = errors.New("database returned no id")
)

// Submit uploads the file, persists the record and enqueues a notification.
// Steps run in that order and are never retried. A failed step stops the
// pipeline and earlier effects stay in place: a persist failure leaves the
// uploaded object behind, a notify failure leaves the row behind.
//
// Failures are returned as *domain.StageError wrapping ErrUploadFailed,
// ErrPersistFailed or ErrNotifyFailed. Invalid input returns a
// *domain.ValidationError before any collaborator is called.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*Result, error) {
	start := s.now()

	if err := in.Validate(s.rules()); err != nil {
		return nil, err
	}

	rec := &domain.Submission{
		Fields:      maps.Clone(in.Fields),
		FileName:    in.FileName,
		ContentType: in.ContentType,
		ImageKey:    s.objectKey(in.FileName),
	}
	stage := domain.StageReceived

	fail := func(err error) (*Result, error) {
		stage = stage.Fail()
		s.finish(ctx, rec, stage, start, err)
		return nil, &domain.StageError{Stage: stage, Err: err}
	}

	// Upload.
	stage = stage.Next()
	ref, err := s.blobs.Put(ctx, rec.ImageKey, rec.ContentType, in.File)
	if err != nil {
		return fail(fmt.Errorf("put %s: %w", rec.ImageKey, err))
	}
	if ref == "" {
		return fail(errEmptyReference)
	}
	rec.ImageReference = ref
	stage = stage.Next()

	// Persist.
	stage = stage.Next()
	id, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return fail(fmt.Errorf("insert: %w", err))
	}
	if id <= 0 {
		return fail(errNoID)
	}
	rec.ID = id
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now().UTC()
	}
	stage = stage.Next()

	// Notify.
	stage = stage.Next()
	if err := s.queue.Publish(ctx, domain.NewSubmissionNotification(rec, s.now())); err != nil {
		return fail(fmt.Errorf("publish: %w", err))
	}
	stage = stage.Next()

	s.finish(ctx, rec, stage, start, nil)

	return &Result{
		ID:             rec.ID,
		ImageReference: rec.ImageReference,
		ImageKey:       rec.ImageKey,
		CreatedAt:      rec.CreatedAt,
	}, nil
}

// finish records and logs a terminal outcome. Field values are never logged.
func (s *Service) finish(ctx context.Context, rec *domain.Submission, stage domain.Stage, start time.Time, err error) {
	took := s.now().Sub(start)
	if s.recorder != nil {
		s.recorder.ObserveSubmission(stage, took)
	}

	attrs := []any{
		slog.String("stage", string(stage)),
		slog.String("image_key", rec.ImageKey),
		slog.Duration("took", took),
	}
	if rec.Persisted() {
		attrs = append(attrs, slog.Int64("submission_id", rec.ID))
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.log.ErrorContext(ctx, "submission failed", attrs...)
		return
	}
	s.log.InfoContext(ctx, "submission accepted", attrs...)
}

// objectKey builds "<prefix><uuid>.<ext>". The extension is taken from the
// client file name when it is a plain alphanumeric suffix, otherwise the
// configured default is used.
func (s *Service) objectKey(fileName string) string {
	ext := strings.ToLower(extension(fileName))
	if ext == "" {
		ext = s.storage.DefaultExtension
	}
	key := s.storage.KeyPrefix + uuid.New().String()
	if ext != "" {
		key += "." + ext
	}
	return key
}

func extension(fileName string) string {
	i := strings.LastIndexByte(fileName, '.')
	if i < 0 || i == len(fileName)-1 {
		return ""
	}
	ext := fileName[i+1:]
	if len(ext) > 10 {
		return ""
	}
	for _, r := range ext {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return ext
}
