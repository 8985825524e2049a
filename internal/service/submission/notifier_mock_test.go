package submission

import (
	"context"
	"sync"

	"github.com/heartmarshall/formsubmit-backend/internal/domain"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	PublishFunc func(ctx context.Context, n domain.SubmissionNotification) error

	calls struct {
		Publish []struct {
			Ctx context.Context
			N   domain.SubmissionNotification
		}
	}
	lockPublish sync.RWMutex
}

func (mock *notifierMock) Publish(ctx context.Context, n domain.SubmissionNotification) error {
	if mock.PublishFunc == nil {
		panic("notifierMock.PublishFunc: method is nil but notifier.Publish was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   domain.SubmissionNotification
	}{Ctx: ctx, N: n}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, n)
}

func (mock *notifierMock) PublishCalls() []struct {
	Ctx context.Context
	N   domain.SubmissionNotification
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
