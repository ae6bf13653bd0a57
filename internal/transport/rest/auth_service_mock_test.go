package rest

import (
	"context"
	"sync"

	"github.com/leadflow/leadflow-backend/internal/service/auth"
)

var _ authService = &authServiceMock{}

type authServiceMock struct {
	LoginFunc           func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	LoginWithGoogleFunc func(ctx context.Context, input auth.GoogleInput) (*auth.AuthResult, error)
	RegisterFunc        func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)

	calls struct {
		Login []struct {
			Ctx   context.Context
			Input auth.LoginInput
		}
		LoginWithGoogle []struct {
			Ctx   context.Context
			Input auth.GoogleInput
		}
		Register []struct {
			Ctx   context.Context
			Input auth.RegisterInput
		}
	}
	lockLogin           sync.RWMutex
	lockLoginWithGoogle sync.RWMutex
	lockRegister        sync.RWMutex
}

func (mock *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	if mock.LoginFunc == nil {
		panic("authServiceMock.LoginFunc: method is nil but authService.Login was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input auth.LoginInput
	}{Ctx: ctx, Input: input}
	mock.lockLogin.Lock()
	mock.calls.Login = append(mock.calls.Login, callInfo)
	mock.lockLogin.Unlock()
	return mock.LoginFunc(ctx, input)
}

func (mock *authServiceMock) LoginCalls() []struct {
	Ctx   context.Context
	Input auth.LoginInput
} {
	mock.lockLogin.RLock()
	calls := mock.calls.Login
	mock.lockLogin.RUnlock()
	return calls
}

func (mock *authServiceMock) LoginWithGoogle(ctx context.Context, input auth.GoogleInput) (*auth.AuthResult, error) {
	if mock.LoginWithGoogleFunc == nil {
		panic("authServiceMock.LoginWithGoogleFunc: method is nil but authService.LoginWithGoogle was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input auth.GoogleInput
	}{Ctx: ctx, Input: input}
	mock.lockLoginWithGoogle.Lock()
	mock.calls.LoginWithGoogle = append(mock.calls.LoginWithGoogle, callInfo)
	mock.lockLoginWithGoogle.Unlock()
	return mock.LoginWithGoogleFunc(ctx, input)
}

func (mock *authServiceMock) LoginWithGoogleCalls() []struct {
	Ctx   context.Context
	Input auth.GoogleInput
} {
	mock.lockLoginWithGoogle.RLock()
	calls := mock.calls.LoginWithGoogle
	mock.lockLoginWithGoogle.RUnlock()
	return calls
}

func (mock *authServiceMock) Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
	if mock.RegisterFunc == nil {
		panic("authServiceMock.RegisterFunc: method is nil but authService.Register was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input auth.RegisterInput
	}{Ctx: ctx, Input: input}
	mock.lockRegister.Lock()
	mock.calls.Register = append(mock.calls.Register, callInfo)
	mock.lockRegister.Unlock()
	return mock.RegisterFunc(ctx, input)
}

func (mock *authServiceMock) RegisterCalls() []struct {
	Ctx   context.Context
	Input auth.RegisterInput
} {
	mock.lockRegister.RLock()
	calls := mock.calls.Register
	mock.lockRegister.RUnlock()
	return calls
}
