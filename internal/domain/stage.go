package domain

import "fmt"

// Stage is the position of a single submission in the upload → persist →
// notify pipeline. Stages only move forward; the three *Failed stages and
// StageSubmitted are terminal.
type Stage string

const (
	StageReceived   Stage = "received"
	StageUploading  Stage = "uploading"
	StageUploaded   Stage = "uploaded"
	StagePersisting Stage = "persisting"
	StagePersisted  Stage = "persisted"
	StageNotifying  Stage = "notifying"
	StageSubmitted  Stage = "submitted"

	StageUploadFailed  Stage = "upload_failed"
	StagePersistFailed Stage = "persist_failed"
	StageNotifyFailed  Stage = "notify_failed"
)

var stageNext = map[Stage]Stage{
	StageReceived:   StageUploading,
	StageUploading:  StageUploaded,
	StageUploaded:   StagePersisting,
	StagePersisting: StagePersisted,
	StagePersisted:  StageNotifying,
	StageNotifying:  StageSubmitted,
}

var stageFail = map[Stage]Stage{
	StageReceived:   StageUploadFailed,
	StageUploading:  StageUploadFailed,
	StageUploaded:   StagePersistFailed,
	StagePersisting: StagePersistFailed,
	StagePersisted:  StageNotifyFailed,
	StageNotifying:  StageNotifyFailed,
}

var stageErr = map[Stage]error{
	StageUploadFailed:  ErrUploadFailed,
	StagePersistFailed: ErrPersistFailed,
	StageNotifyFailed:  ErrNotifyFailed,
}

// Next returns the stage that follows s on the success path.
// Panics when s is terminal: re-entering the pipeline is a programming error.
func (s Stage) Next() Stage {
	next, ok := stageNext[s]
	if !ok {
		panic(fmt.Sprintf("domain: no transition from terminal stage %q", s))
	}
	return next
}

// Fail returns the terminal failure stage reachable from s.
// Panics when s is terminal.
func (s Stage) Fail() Stage {
	failed, ok := stageFail[s]
	if !ok {
		panic(fmt.Sprintf("domain: no failure transition from terminal stage %q", s))
	}
	return failed
}

// Terminal reports whether no further transition is possible from s.
func (s Stage) Terminal() bool {
	_, hasNext := stageNext[s]
	return !hasNext
}

// Failed reports whether s is one of the terminal failure stages.
func (s Stage) Failed() bool {
	_, ok := stageErr[s]
	return ok
}

// Err returns the sentinel error for a failure stage, or nil.
func (s Stage) Err() error {
	return stageErr[s]
}

// StageError is returned when a submission ends in a failure stage.
// It unwraps to both the stage sentinel (ErrUploadFailed, ...) and the
// collaborator error that caused it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() []error {
	return []error{e.Stage.Err(), e.Err}
}
