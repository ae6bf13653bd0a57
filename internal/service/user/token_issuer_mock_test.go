package user

import (
	"sync"

	"github.com/google/uuid"
)

var _ tokenIssuer = &tokenIssuerMock{}

type tokenIssuerMock struct {
	GenerateTokenFunc func(userID uuid.UUID, role string) (string, error)

	calls struct {
		GenerateToken []struct {
			UserID uuid.UUID
			Role   string
		}
	}
	lockGenerateToken sync.RWMutex
}

func (mock *tokenIssuerMock) GenerateToken(userID uuid.UUID, role string) (string, error) {
	if mock.GenerateTokenFunc == nil {
		panic("tokenIssuerMock.GenerateTokenFunc: method is nil but tokenIssuer.GenerateToken was just called")
	}
	callInfo := struct {
		UserID uuid.UUID
		Role   string
	}{UserID: userID, Role: role}
	mock.lockGenerateToken.Lock()
	mock.calls.GenerateToken = append(mock.calls.GenerateToken, callInfo)
	mock.lockGenerateToken.Unlock()
	return mock.GenerateTokenFunc(userID, role)
}

func (mock *tokenIssuerMock) GenerateTokenCalls() []struct {
	UserID uuid.UUID
	Role   string
} {
	mock.lockGenerateToken.RLock()
	calls := mock.calls.GenerateToken
	mock.lockGenerateToken.RUnlock()
	return calls
}
