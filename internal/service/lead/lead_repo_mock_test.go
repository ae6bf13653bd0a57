package lead

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

var _ leadRepo = &leadRepoMock{}

type leadRepoMock struct {
	AddNoteFunc       func(ctx context.Context, n domain.Note) error
	AgentCountsFunc   func(ctx context.Context, f domain.LeadFilter) ([]domain.AgentCount, error)
	CreateFunc        func(ctx context.Context, l *domain.Lead) (*domain.Lead, error)
	CreateManyFunc    func(ctx context.Context, leads []domain.Lead) (int, error)
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
	DeleteNoteFunc    func(ctx context.Context, leadID uuid.UUID, noteID uuid.UUID) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	ListFunc          func(ctx context.Context, q domain.LeadQuery) ([]domain.Lead, int, error)
	ListForExportFunc func(ctx context.Context, f domain.LeadFilter, limit int) ([]domain.Lead, error)
	RecentFunc        func(ctx context.Context, f domain.LeadFilter, limit int) ([]domain.RecentLead, error)
	StatusCountsFunc  func(ctx context.Context, f domain.LeadFilter) ([]domain.StatusCount, error)
	UpdateFunc        func(ctx context.Context, l *domain.Lead) (*domain.Lead, error)

	calls struct {
		AddNote []struct {
			Ctx context.Context
			N   domain.Note
		}
		AgentCounts []struct {
			Ctx context.Context
			F   domain.LeadFilter
		}
		Create []struct {
			Ctx context.Context
			L   *domain.Lead
		}
		CreateMany []struct {
			Ctx   context.Context
			Leads []domain.Lead
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		DeleteNote []struct {
			Ctx    context.Context
			LeadID uuid.UUID
			NoteID uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx context.Context
			Q   domain.LeadQuery
		}
		ListForExport []struct {
			Ctx   context.Context
			F     domain.LeadFilter
			Limit int
		}
		Recent []struct {
			Ctx   context.Context
			F     domain.LeadFilter
			Limit int
		}
		StatusCounts []struct {
			Ctx context.Context
			F   domain.LeadFilter
		}
		Update []struct {
			Ctx context.Context
			L   *domain.Lead
		}
	}
	lockAddNote       sync.RWMutex
	lockAgentCounts   sync.RWMutex
	lockCreate        sync.RWMutex
	lockCreateMany    sync.RWMutex
	lockDelete        sync.RWMutex
	lockDeleteNote    sync.RWMutex
	lockGetByID       sync.RWMutex
	lockList          sync.RWMutex
	lockListForExport sync.RWMutex
	lockRecent        sync.RWMutex
	lockStatusCounts  sync.RWMutex
	lockUpdate        sync.RWMutex
}

func (mock *leadRepoMock) AddNote(ctx context.Context, n domain.Note) error {
	if mock.AddNoteFunc == nil {
		panic("leadRepoMock.AddNoteFunc: method is nil but leadRepo.AddNote was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   domain.Note
	}{Ctx: ctx, N: n}
	mock.lockAddNote.Lock()
	mock.calls.AddNote = append(mock.calls.AddNote, callInfo)
	mock.lockAddNote.Unlock()
	return mock.AddNoteFunc(ctx, n)
}

func (mock *leadRepoMock) AddNoteCalls() []struct {
	Ctx context.Context
	N   domain.Note
} {
	mock.lockAddNote.RLock()
	calls := mock.calls.AddNote
	mock.lockAddNote.RUnlock()
	return calls
}

func (mock *leadRepoMock) AgentCounts(ctx context.Context, f domain.LeadFilter) ([]domain.AgentCount, error) {
	if mock.AgentCountsFunc == nil {
		panic("leadRepoMock.AgentCountsFunc: method is nil but leadRepo.AgentCounts was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.LeadFilter
	}{Ctx: ctx, F: f}
	mock.lockAgentCounts.Lock()
	mock.calls.AgentCounts = append(mock.calls.AgentCounts, callInfo)
	mock.lockAgentCounts.Unlock()
	return mock.AgentCountsFunc(ctx, f)
}

func (mock *leadRepoMock) AgentCountsCalls() []struct {
	Ctx context.Context
	F   domain.LeadFilter
} {
	mock.lockAgentCounts.RLock()
	calls := mock.calls.AgentCounts
	mock.lockAgentCounts.RUnlock()
	return calls
}

func (mock *leadRepoMock) Create(ctx context.Context, l *domain.Lead) (*domain.Lead, error) {
	if mock.CreateFunc == nil {
		panic("leadRepoMock.CreateFunc: method is nil but leadRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		L   *domain.Lead
	}{Ctx: ctx, L: l}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, l)
}

func (mock *leadRepoMock) CreateCalls() []struct {
	Ctx context.Context
	L   *domain.Lead
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *leadRepoMock) CreateMany(ctx context.Context, leads []domain.Lead) (int, error) {
	if mock.CreateManyFunc == nil {
		panic("leadRepoMock.CreateManyFunc: method is nil but leadRepo.CreateMany was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Leads []domain.Lead
	}{Ctx: ctx, Leads: leads}
	mock.lockCreateMany.Lock()
	mock.calls.CreateMany = append(mock.calls.CreateMany, callInfo)
	mock.lockCreateMany.Unlock()
	return mock.CreateManyFunc(ctx, leads)
}

func (mock *leadRepoMock) CreateManyCalls() []struct {
	Ctx   context.Context
	Leads []domain.Lead
} {
	mock.lockCreateMany.RLock()
	calls := mock.calls.CreateMany
	mock.lockCreateMany.RUnlock()
	return calls
}

func (mock *leadRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("leadRepoMock.DeleteFunc: method is nil but leadRepo.Delete was just called")
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

func (mock *leadRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *leadRepoMock) DeleteNote(ctx context.Context, leadID uuid.UUID, noteID uuid.UUID) error {
	if mock.DeleteNoteFunc == nil {
		panic("leadRepoMock.DeleteNoteFunc: method is nil but leadRepo.DeleteNote was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		LeadID uuid.UUID
		NoteID uuid.UUID
	}{Ctx: ctx, LeadID: leadID, NoteID: noteID}
	mock.lockDeleteNote.Lock()
	mock.calls.DeleteNote = append(mock.calls.DeleteNote, callInfo)
	mock.lockDeleteNote.Unlock()
	return mock.DeleteNoteFunc(ctx, leadID, noteID)
}

func (mock *leadRepoMock) DeleteNoteCalls() []struct {
	Ctx    context.Context
	LeadID uuid.UUID
	NoteID uuid.UUID
} {
	mock.lockDeleteNote.RLock()
	calls := mock.calls.DeleteNote
	mock.lockDeleteNote.RUnlock()
	return calls
}

func (mock *leadRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	if mock.GetByIDFunc == nil {
		panic("leadRepoMock.GetByIDFunc: method is nil but leadRepo.GetByID was just called")
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

func (mock *leadRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *leadRepoMock) List(ctx context.Context, q domain.LeadQuery) ([]domain.Lead, int, error) {
	if mock.ListFunc == nil {
		panic("leadRepoMock.ListFunc: method is nil but leadRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Q   domain.LeadQuery
	}{Ctx: ctx, Q: q}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, q)
}

func (mock *leadRepoMock) ListCalls() []struct {
	Ctx context.Context
	Q   domain.LeadQuery
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *leadRepoMock) ListForExport(ctx context.Context, f domain.LeadFilter, limit int) ([]domain.Lead, error) {
	if mock.ListForExportFunc == nil {
		panic("leadRepoMock.ListForExportFunc: method is nil but leadRepo.ListForExport was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		F     domain.LeadFilter
		Limit int
	}{Ctx: ctx, F: f, Limit: limit}
	mock.lockListForExport.Lock()
	mock.calls.ListForExport = append(mock.calls.ListForExport, callInfo)
	mock.lockListForExport.Unlock()
	return mock.ListForExportFunc(ctx, f, limit)
}

func (mock *leadRepoMock) ListForExportCalls() []struct {
	Ctx   context.Context
	F     domain.LeadFilter
	Limit int
} {
	mock.lockListForExport.RLock()
	calls := mock.calls.ListForExport
	mock.lockListForExport.RUnlock()
	return calls
}

func (mock *leadRepoMock) Recent(ctx context.Context, f domain.LeadFilter, limit int) ([]domain.RecentLead, error) {
	if mock.RecentFunc == nil {
		panic("leadRepoMock.RecentFunc: method is nil but leadRepo.Recent was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		F     domain.LeadFilter
		Limit int
	}{Ctx: ctx, F: f, Limit: limit}
	mock.lockRecent.Lock()
	mock.calls.Recent = append(mock.calls.Recent, callInfo)
	mock.lockRecent.Unlock()
	return mock.RecentFunc(ctx, f, limit)
}

func (mock *leadRepoMock) RecentCalls() []struct {
	Ctx   context.Context
	F     domain.LeadFilter
	Limit int
} {
	mock.lockRecent.RLock()
	calls := mock.calls.Recent
	mock.lockRecent.RUnlock()
	return calls
}

func (mock *leadRepoMock) StatusCounts(ctx context.Context, f domain.LeadFilter) ([]domain.StatusCount, error) {
	if mock.StatusCountsFunc == nil {
		panic("leadRepoMock.StatusCountsFunc: method is nil but leadRepo.StatusCounts was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.LeadFilter
	}{Ctx: ctx, F: f}
	mock.lockStatusCounts.Lock()
	mock.calls.StatusCounts = append(mock.calls.StatusCounts, callInfo)
	mock.lockStatusCounts.Unlock()
	return mock.StatusCountsFunc(ctx, f)
}

func (mock *leadRepoMock) StatusCountsCalls() []struct {
	Ctx context.Context
	F   domain.LeadFilter
} {
	mock.lockStatusCounts.RLock()
	calls := mock.calls.StatusCounts
	mock.lockStatusCounts.RUnlock()
	return calls
}

func (mock *leadRepoMock) Update(ctx context.Context, l *domain.Lead) (*domain.Lead, error) {
	if mock.UpdateFunc == nil {
		panic("leadRepoMock.UpdateFunc: method is nil but leadRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		L   *domain.Lead
	}{Ctx: ctx, L: l}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, l)
}

func (mock *leadRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	L   *domain.Lead
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
