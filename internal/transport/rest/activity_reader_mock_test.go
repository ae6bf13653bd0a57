package rest

import (
	"context"
	"sync"

	"github.com/leadflow/leadflow-backend/internal/domain"
)

var _ activityReader = &activityReaderMock{}

type activityReaderMock struct {
	RecentFunc func(ctx context.Context, caller domain.Caller) ([]domain.ActivityLog, error)

	calls struct {
		Recent []struct {
			Ctx    context.Context
			Caller domain.Caller
		}
	}
	lockRecent sync.RWMutex
}

func (mock *activityReaderMock) Recent(ctx context.Context, caller domain.Caller) ([]domain.ActivityLog, error) {
	if mock.RecentFunc == nil {
		panic("activityReaderMock.RecentFunc: method is nil but activityReader.Recent was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Caller domain.Caller
	}{Ctx: ctx, Caller: caller}
	mock.lockRecent.Lock()
	mock.calls.Recent = append(mock.calls.Recent, callInfo)
	mock.lockRecent.Unlock()
	return mock.RecentFunc(ctx, caller)
}

func (mock *activityReaderMock) RecentCalls() []struct {
	Ctx    context.Context
	Caller domain.Caller
} {
	mock.lockRecent.RLock()
	calls := mock.calls.Recent
	mock.lockRecent.RUnlock()
	return calls
}
