package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/formsubmit-backend/internal/domain"
	"github.com/heartmarshall/formsubmit-backend/internal/service/submission"
)

var _ submissionService = &submissionServiceMock{}

type submissionServiceMock struct {
	GetFunc    func(ctx context.Context, id int64) (*domain.Submission, error)
	SubmitFunc func(ctx context.Context, in submission.SubmitInput) (*submission.Result, error)

	calls struct {
		Get []struct {
			Ctx context.Context
			ID  int64
		}
		Submit []struct {
			Ctx context.Context
			In  submission.SubmitInput
		}
	}
	lockGet    sync.RWMutex
	lockSubmit sync.RWMutex
}

func (mock *submissionServiceMock) Get(ctx context.Context, id int64) (*domain.Submission, error) {
	if mock.GetFunc == nil {
		panic("submissionServiceMock.GetFunc: method is nil but submissionService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *submissionServiceMock) GetCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *submissionServiceMock) Submit(ctx context.Context, in submission.SubmitInput) (*submission.Result, error) {
	if mock.SubmitFunc == nil {
		panic("submissionServiceMock.SubmitFunc: method is nil but submissionService.Submit was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  submission.SubmitInput
	}{Ctx: ctx, In: in}
	mock.lockSubmit.Lock()
	mock.calls.Submit = append(mock.calls.Submit, callInfo)
	mock.lockSubmit.Unlock()
	return mock.SubmitFunc(ctx, in)
}

func (mock *submissionServiceMock) SubmitCalls() []struct {
	Ctx context.Context
	In  submission.SubmitInput
} {
	mock.lockSubmit.RLock()
	calls := mock.calls.Submit
	mock.lockSubmit.RUnlock()
	return calls
}
