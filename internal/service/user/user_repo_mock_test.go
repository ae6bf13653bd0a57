package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	CreateFunc          func(ctx context.Context, u *domain.User) (*domain.User, error)
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListFunc            func(ctx context.Context) ([]domain.User, error)
	TouchLastActiveFunc func(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdateFunc          func(ctx context.Context, u *domain.User) (*domain.User, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			U   *domain.User
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx context.Context
		}
		TouchLastActive []struct {
			Ctx context.Context
			ID  uuid.UUID
			At  time.Time
		}
		Update []struct {
			Ctx context.Context
			U   *domain.User
		}
	}
	lockCreate          sync.RWMutex
	lockDelete          sync.RWMutex
	lockGetByID         sync.RWMutex
	lockList            sync.RWMutex
	lockTouchLastActive sync.RWMutex
	lockUpdate          sync.RWMutex
}

func (mock *userRepoMock) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if mock.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   *domain.User
	}{Ctx: ctx, U: u}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, u)
}

func (mock *userRepoMock) CreateCalls() []struct {
	Ctx context.Context
	U   *domain.User
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *userRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("userRepoMock.DeleteFunc: method is nil but userRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *userRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *userRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *userRepoMock) List(ctx context.Context) ([]domain.User, error) {
	if mock.ListFunc == nil {
		panic("userRepoMock.ListFunc: method is nil but userRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *userRepoMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *userRepoMock) TouchLastActive(ctx context.Context, id uuid.UUID, at time.Time) error {
	if mock.TouchLastActiveFunc == nil {
		panic("userRepoMock.TouchLastActiveFunc: method is nil but userRepo.TouchLastActive was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		At  time.Time
	}{Ctx: ctx, ID: id, At: at}
	mock.lockTouchLastActive.Lock()
	mock.calls.TouchLastActive = append(mock.calls.TouchLastActive, callInfo)
	mock.lockTouchLastActive.Unlock()
	return mock.TouchLastActiveFunc(ctx, id, at)
}

func (mock *userRepoMock) TouchLastActiveCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	At  time.Time
} {
	mock.lockTouchLastActive.RLock()
	calls := mock.calls.TouchLastActive
	mock.lockTouchLastActive.RUnlock()
	return calls
}

func (mock *userRepoMock) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	if mock.UpdateFunc == nil {
		panic("userRepoMock.UpdateFunc: method is nil but userRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   *domain.User
	}{Ctx: ctx, U: u}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, u)
}

func (mock *userRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	U   *domain.User
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
