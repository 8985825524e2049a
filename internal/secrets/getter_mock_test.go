package secrets

import (
	"context"
	"sync"
)

var _ Getter = &GetterMock{}

type GetterMock struct {
	GetSecretFunc func(ctx context.Context, name string) (string, error)

	calls struct {
		GetSecret []struct {
			Ctx  context.Context
			Name string
		}
	}
	lockGetSecret sync.RWMutex
}

func (mock *GetterMock) GetSecret(ctx context.Context, name string) (string, error) {
	if mock.GetSecretFunc == nil {
		panic("GetterMock.GetSecretFunc: method is nil but Getter.GetSecret was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Name string
	}{
		Ctx:  ctx,
		Name: name,
	}
	mock.lockGetSecret.Lock()
	mock.calls.GetSecret = append(mock.calls.GetSecret, callInfo)
	mock.lockGetSecret.Unlock()
	return mock.GetSecretFunc(ctx, name)
}

func (mock *GetterMock) GetSecretCalls() []struct {
	Ctx  context.Context
	Name string
} {
	mock.lockGetSecret.RLock()
	calls := mock.calls.GetSecret
	mock.lockGetSecret.RUnlock()
	return calls
}
