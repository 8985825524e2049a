package submission

import (
	"sync"
	"time"

	"github.com/heartmarshall/formsubmit-backend/internal/domain"
)

var _ outcomeRecorder = &outcomeRecorderMock{}

type outcomeRecorderMock struct {
	ObserveSubmissionFunc func(outcome domain.Stage, took time.Duration)

	calls struct {
		ObserveSubmission []struct {
			Outcome domain.Stage
			Took    time.Duration
		}
	}
	lockObserveSubmission sync.RWMutex
}

func (mock *outcomeRecorderMock) ObserveSubmission(outcome domain.Stage, took time.Duration) {
	if mock.ObserveSubmissionFunc == nil {
		panic("outcomeRecorderMock.ObserveSubmissionFunc: method is nil but outcomeRecorder.ObserveSubmission was just called")
	}
	callInfo := struct {
		Outcome domain.Stage
		Took    time.Duration
	}{Outcome: outcome, Took: took}
	mock.lockObserveSubmission.Lock()
	mock.calls.ObserveSubmission = append(mock.calls.ObserveSubmission, callInfo)
	mock.lockObserveSubmission.Unlock()
	mock.ObserveSubmissionFunc(outcome, took)
}

func (mock *outcomeRecorderMock) ObserveSubmissionCalls() []struct {
	Outcome domain.Stage
	Took    time.Duration
} {
	mock.lockObserveSubmission.RLock()
	calls := mock.calls.ObserveSubmission
	mock.lockObserveSubmission.RUnlock()
	return calls
}
