package domain

import "time"

// Submission is one form submission. It is built by the transport layer,
// filled in step by step by the submission service and then discarded;
// the database row is the only durable copy.
type Submission struct {
	ID             int64
	Fields         map[string]string
	FileName       string
	ContentType    string
	ImageKey       string
	ImageReference string
	CreatedAt      time.Time
}

// Persisted reports whether the database has assigned an ID.
func (s *Submission) Persisted() bool {
	return s.ID > 0
}

// Uploaded reports whether the storage step produced a reference.
func (s *Submission) Uploaded() bool {
	return s.ImageReference != ""
}

// SubmissionNotification is the queue message sent after a submission is persisted.
type SubmissionNotification struct {
	SubmissionID int64             `json:"submission_id"`
	Fields       map[string]string `json:"fields"`
	FileName     string            `json:"file_name"`
	ImageKey     string            `json:"image_key"`
	ImageURL     string            `json:"image_url"`
	Timestamp    time.Time         `json:"timestamp"`
}

// NewSubmissionNotification builds the notification for a persisted submission.
func NewSubmissionNotification(s *Submission, now time.Time) SubmissionNotification {
	return SubmissionNotification{
		SubmissionID: s.ID,
		Fields:       s.Fields,
		FileName:     s.FileName,
		ImageKey:     s.ImageKey,
		ImageURL:     s.ImageReference,
		Timestamp:    now.UTC(),
	}
}
