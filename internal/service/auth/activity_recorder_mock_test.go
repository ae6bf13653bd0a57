package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

var _ activityRecorder = &activityRecorderMock{}

type activityRecorderMock struct {
	RecordFunc func(ctx context.Context, actorID uuid.UUID, action domain.ActivityAction, details string)

	calls struct {
		Record []struct {
			Ctx     context.Context
			ActorID uuid.UUID
			Action  domain.ActivityAction
			Details string
		}
	}
	lockRecord sync.RWMutex
}

func (mock *activityRecorderMock) Record(ctx context.Context, actorID uuid.UUID, action domain.ActivityAction, details string) {
	if mock.RecordFunc == nil {
		panic("activityRecorderMock.RecordFunc: method is nil but activityRecorder.Record was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ActorID uuid.UUID
		Action  domain.ActivityAction
		Details string
	}{Ctx: ctx, ActorID: actorID, Action: action, Details: details}
	mock.lockRecord.Lock()
	mock.calls.Record = append(mock.calls.Record, callInfo)
	mock.lockRecord.Unlock()
	mock.RecordFunc(ctx, actorID, action, details)
}

func (mock *activityRecorderMock) RecordCalls() []struct {
	Ctx     context.Context
	ActorID uuid.UUID
	Action  domain.ActivityAction
	Details string
} {
	mock.lockRecord.RLock()
	calls := mock.calls.Record
	mock.lockRecord.RUnlock()
	return calls
}
