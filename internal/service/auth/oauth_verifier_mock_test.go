package auth

import (
	"context"
	"sync"

	"github.com/leadflow/leadflow-backend/internal/auth"
)

var _ oauthVerifier = &oauthVerifierMock{}

type oauthVerifierMock struct {
	VerifyIDTokenFunc func(ctx context.Context, idToken string) (*auth.OAuthIdentity, error)

	calls struct {
		VerifyIDToken []struct {
			Ctx     context.Context
			IDToken string
		}
	}
	lockVerifyIDToken sync.RWMutex
}

func (mock *oauthVerifierMock) VerifyIDToken(ctx context.Context, idToken string) (*auth.OAuthIdentity, error) {
	if mock.VerifyIDTokenFunc == nil {
		panic("oauthVerifierMock.VerifyIDTokenFunc: method is nil but oauthVerifier.VerifyIDToken was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		IDToken string
	}{Ctx: ctx, IDToken: idToken}
	mock.lockVerifyIDToken.Lock()
	mock.calls.VerifyIDToken = append(mock.calls.VerifyIDToken, callInfo)
	mock.lockVerifyIDToken.Unlock()
	return mock.VerifyIDTokenFunc(ctx, idToken)
}

func (mock *oauthVerifierMock) VerifyIDTokenCalls() []struct {
	Ctx     context.Context
	IDToken string
} {
	mock.lockVerifyIDToken.RLock()
	calls := mock.calls.VerifyIDToken
	mock.lockVerifyIDToken.RUnlock()
	return calls
}
