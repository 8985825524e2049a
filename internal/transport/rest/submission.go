package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/formsubmit-backend/internal/config"
	"github.com/heartmarshall/formsubmit-backend/internal/domain"
	"github.com/heartmarshall/formsubmit-backend/internal/service/submission"
	"github.com/heartmarshall/formsubmit-backend/pkg/ctxutil"
)

const (
	// multipartMemory is the part of a multipart body kept in memory;
	// the rest is spooled to temporary files.
	multipartMemory = 8 << 20
	// fieldsOverhead is the body allowance for text fields and multipart
	// framing on top of the upload limit.
	fieldsOverhead = 1 << 20
)

// submissionService defines the minimal interface needed by SubmissionHandler.
type submissionService interface {
	Submit(ctx context.Context, in submission.SubmitInput) (*submission.Result, error)
	Get(ctx context.Context, id int64) (*domain.Submission, error)
}

// SubmissionHandler serves the form page, form submission and lookup.
type SubmissionHandler struct {
	svc       submissionService
	form      config.FormConfig
	maxUpload int64
	log       *slog.Logger
}

// NewSubmissionHandler creates a SubmissionHandler.
func NewSubmissionHandler(svc submissionService, form config.FormConfig, maxUpload int64, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		svc:       svc,
		form:      form,
		maxUpload: maxUpload,
		log:       logger.With("handler", "submission"),
	}
}

type submitResponse struct {
	Message      string `json:"message"`
	SubmissionID int64  `json:"submission_id"`
	BlobURL      string `json:"blob_url"`
	ImageKey     string `json:"image_key"`
}

type submissionResponse struct {
	ID          int64             `json:"id"`
	Fields      map[string]string `json:"fields"`
	FileName    string            `json:"file_name"`
	ContentType string            `json:"content_type"`
	ImageKey    string            `json:"image_key"`
	ImageURL    string            `json:"image_url"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Submit handles POST /submit (multipart/form-data).
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+fieldsOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codePayloadTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	in := submission.SubmitInput{Fields: make(map[string]string, len(r.MultipartForm.Value))}
	for name, values := range r.MultipartForm.Value {
		if name == h.form.FileField || len(values) == 0 {
			continue
		}
		in.Fields[name] = values[0]
	}

	file, header, err := r.FormFile(h.form.FileField)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// Left empty; the service reports the missing file with the other field errors.
	case err != nil:
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid file upload")
		return
	default:
		defer file.Close()

		if header.Size > h.maxUpload {
			writeError(w, http.StatusRequestEntityTooLarge, codePayloadTooLarge, "file too large")
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid file upload")
			return
		}

		in.File = data
		in.FileName = header.Filename
		in.ContentType = header.Header.Get("Content-Type")
		if in.ContentType == "" || in.ContentType == "application/octet-stream" {
			in.ContentType = http.DetectContentType(data)
		}
	}

	// A client disconnect must not abort collaborator calls half-way.
	res, err := h.svc.Submit(ctxutil.Detach(r.Context()), in)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		Message:      "Form submitted successfully",
		SubmissionID: res.ID,
		BlobURL:      res.ImageReference,
		ImageKey:     res.ImageKey,
	})
}

// Get handles GET /submissions/{id}.
func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid submission id")
		return
	}

	s, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, submissionResponse{
		ID:          s.ID,
		Fields:      s.Fields,
		FileName:    s.FileName,
		ContentType: s.ContentType,
		ImageKey:    s.ImageKey,
		ImageURL:    s.ImageReference,
		CreatedAt:   s.CreatedAt,
	})
}

func (h *SubmissionHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeValidationError(w, ve)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, codeInvalidInput, err.Error())
	case errors.Is(err, domain.ErrUploadFailed):
		writeError(w, http.StatusBadGateway, codeUploadFailed, "failed to store the uploaded file")
	case errors.Is(err, domain.ErrPersistFailed):
		writeError(w, http.StatusInternalServerError, codePersistFailed, "failed to save the submission")
	case errors.Is(err, domain.ErrNotifyFailed):
		writeError(w, http.StatusBadGateway, codeNotifyFailed, "submission saved but notification failed")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "submission not found")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}
