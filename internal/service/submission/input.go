package submission

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/formsubmit-backend/internal/domain"
)

// SubmitInput is one form submission as received from the client.
type SubmitInput struct {
	Fields      map[string]string
	FileName    string
	ContentType string
	File        []byte
}

// Rules are the configurable constraints a SubmitInput must satisfy.
type Rules struct {
	RequiredFields []string
	FileField      string
	MaxFieldLength int
	// ContentTypePrefix, when set, must prefix the file's content type.
	ContentTypePrefix string
}

// Validate validates the submit input.
func (i SubmitInput) Validate(r Rules) error {
	var errs []domain.FieldError

	if len(i.Fields) == 0 {
		errs = append(errs, domain.FieldError{Field: "fields", Message: "at least one field is required"})
	}

	for _, name := range r.RequiredFields {
		if strings.TrimSpace(i.Fields[name]) == "" {
			errs = append(errs, domain.FieldError{Field: name, Message: "required"})
		}
	}

	names := make([]string, 0, len(i.Fields))
	for name := range i.Fields {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		value := i.Fields[name]
		if !storableText(name) || !storableText(value) {
			errs = append(errs, domain.FieldError{Field: name, Message: "invalid characters"})
			continue
		}
		if r.MaxFieldLength > 0 && utf8.RuneCountInString(value) > r.MaxFieldLength {
			errs = append(errs, domain.FieldError{Field: name, Message: "too long"})
		}
	}

	fileField := r.FileField
	if fileField == "" {
		fileField = "file"
	}

	if len(i.File) == 0 {
		errs = append(errs, domain.FieldError{Field: fileField, Message: "required"})
	}
	if strings.TrimSpace(i.FileName) == "" {
		errs = append(errs, domain.FieldError{Field: fileField, Message: "file name required"})
	} else if !storableText(i.FileName) {
		errs = append(errs, domain.FieldError{Field: fileField, Message: "file name has invalid characters"})
	}
	if r.ContentTypePrefix != "" && !strings.HasPrefix(strings.ToLower(i.ContentType), r.ContentTypePrefix) {
		errs = append(errs, domain.FieldError{Field: fileField, Message: "must be of type " + r.ContentTypePrefix + "*"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// storableText reports whether s is valid UTF-8 without NUL bytes, which
// PostgreSQL TEXT and JSONB columns reject.
func storableText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}
