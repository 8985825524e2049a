package submission

import (
	"context"
	"sync"

	"github.com/heartmarshall/formsubmit-backend/internal/domain"
)

var _ submissionRepo = &submissionRepoMock{}

type submissionRepoMock struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Submission, error)
	InsertFunc  func(ctx context.Context, s *domain.Submission) (int64, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  int64
		}
		Insert []struct {
			Ctx context.Context
			S   *domain.Submission
		}
	}
	lockGetByID sync.RWMutex
	lockInsert  sync.RWMutex
}

func (mock *submissionRepoMock) GetByID(ctx context.Context, id int64) (*domain.Submission, error) {
	if mock.GetByIDFunc == nil {
		panic("submissionRepoMock.GetByIDFunc: method is nil but submissionRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *submissionRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *submissionRepoMock) Insert(ctx context.Context, s *domain.Submission) (int64, error) {
	if mock.InsertFunc == nil {
		panic("submissionRepoMock.InsertFunc: method is nil but submissionRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   *domain.Submission
	}{Ctx: ctx, S: s}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, s)
}

func (mock *submissionRepoMock) InsertCalls() []struct {
	Ctx context.Context
	S   *domain.Submission
} {
	mock.lockInsert.RLock()
	calls := mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}
