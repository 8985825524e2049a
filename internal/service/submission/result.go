package submission

import "time"

// Result is returned by a successful Submit.
type Result struct {
	ID             int64
	ImageReference string
	ImageKey       string
	CreatedAt      time.Time
}
