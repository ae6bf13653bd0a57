package user

import (
	"context"
	"sync"
)

var _ statsInvalidator = &statsInvalidatorMock{}

type statsInvalidatorMock struct {
	InvalidateFunc func(ctx context.Context) error

	calls struct {
		Invalidate []struct {
			Ctx context.Context
		}
	}
	lockInvalidate sync.RWMutex
}

func (mock *statsInvalidatorMock) Invalidate(ctx context.Context) error {
	if mock.InvalidateFunc == nil {
		panic("statsInvalidatorMock.InvalidateFunc: method is nil but statsInvalidator.Invalidate was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockInvalidate.Lock()
	mock.calls.Invalidate = append(mock.calls.Invalidate, callInfo)
	mock.lockInvalidate.Unlock()
	return mock.InvalidateFunc(ctx)
}

func (mock *statsInvalidatorMock) InvalidateCalls() []struct {
	Ctx context.Context
} {
	mock.lockInvalidate.RLock()
	calls := mock.calls.Invalidate
	mock.lockInvalidate.RUnlock()
	return calls
}
