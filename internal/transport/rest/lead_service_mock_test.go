package rest

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/leadflow/leadflow-backend/internal/access"
	"github.com/leadflow/leadflow-backend/internal/domain"
	"github.com/leadflow/leadflow-backend/internal/service/lead"
)

var _ leadService = &leadServiceMock{}

type leadServiceMock struct {
	AddNoteFunc    func(ctx context.Context, caller domain.Caller, leadID uuid.UUID, input lead.NoteInput) (*domain.Lead, error)
	CreateFunc     func(ctx context.Context, caller domain.Caller, input lead.CreateLeadInput) (*domain.Lead, error)
	DeleteFunc     func(ctx context.Context, caller domain.Caller, id uuid.UUID) error
	DeleteNoteFunc func(ctx context.Context, caller domain.Caller, leadID uuid.UUID, noteID uuid.UUID) (*domain.Lead, error)
	ExportFunc     func(ctx context.Context, caller domain.Caller, req access.ListRequest) (*lead.ExportResult, error)
	GetFunc        func(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Lead, error)
	ImportFunc     func(ctx context.Context, caller domain.Caller, file io.Reader) (*lead.ImportResult, error)
	ListFunc       func(ctx context.Context, caller domain.Caller, req access.ListRequest) (*domain.LeadPage, error)
	StatsFunc      func(ctx context.Context, caller domain.Caller) (*domain.LeadStats, error)
	UpdateFunc     func(ctx context.Context, caller domain.Caller, id uuid.UUID, input lead.UpdateLeadInput) (*domain.Lead, error)

	calls struct {
		AddNote []struct {
			Ctx    context.Context
			Caller domain.Caller
			LeadID uuid.UUID
			Input  lead.NoteInput
		}
		Create []struct {
			Ctx    context.Context
			Caller domain.Caller
			Input  lead.CreateLeadInput
		}
		Delete []struct {
			Ctx    context.Context
			Caller domain.Caller
			ID     uuid.UUID
		}
		DeleteNote []struct {
			Ctx    context.Context
			Caller domain.Caller
			LeadID uuid.UUID
			NoteID uuid.UUID
		}
		Export []struct {
			Ctx    context.Context
			Caller domain.Caller
			Req    access.ListRequest
		}
		Get []struct {
			Ctx    context.Context
			Caller domain.Caller
			ID     uuid.UUID
		}
		Import []struct {
			Ctx    context.Context
			Caller domain.Caller
			File   io.Reader
		}
		List []struct {
			Ctx    context.Context
			Caller domain.Caller
			Req    access.ListRequest
		}
		Stats []struct {
			Ctx    context.Context
			Caller domain.Caller
		}
		Update []struct {
			Ctx    context.Context
			Caller domain.Caller
			ID     uuid.UUID
			Input  lead.UpdateLeadInput
		}
	}
	lockAddNote    sync.RWMutex
	lockCreate     sync.RWMutex
	lockDelete     sync.RWMutex
	lockDeleteNote sync.RWMutex
	lockExport     sync.RWMutex
	lockGet        sync.RWMutex
	lockImport     sync.RWMutex
	lockList       sync.RWMutex
	lockStats      sync.RWMutex
	lockUpdate     sync.RWMutex
}

func (mock *leadServiceMock) AddNote(ctx context.Context, caller domain.Caller, leadID uuid.UUID, input lead.NoteInput) (*domain.Lead, error) {
	if mock.AddNoteFunc == nil {
		panic("leadServiceMock.AddNoteFunc: method is nil but leadService.AddNote was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Caller domain.Caller
		LeadID uuid.UUID
		Input  lead.NoteInput
	}{Ctx: ctx, Caller: caller, LeadID: leadID, Input: input}
	mock.lockAddNote.Lock()
	mock.calls.AddNote = append(mock.calls.AddNote, callInfo)
	mock.lockAddNote.Unlock()
	return mock.AddNoteFunc(ctx, caller, leadID, input)
}

func (mock *leadServiceMock) AddNoteCalls() []struct {
	Ctx    context.Context
	Caller domain.Caller
	LeadID uuid.UUID
	Input  lead.NoteInput
} {
	mock.lockAddNote.RLock()
	calls := mock.calls.AddNote
	mock.lockAddNote.RUnlock()
	return calls
}

func (mock *leadServiceMock) Create(ctx context.Context, caller domain.Caller, input lead.CreateLeadInput) (*domain.Lead, error) {
	if mock.CreateFunc == nil {
		panic("leadServiceMock.CreateFunc: method is nil but leadService.Create was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Caller domain.Caller
		Input  lead.CreateLeadInput
	}{Ctx: ctx, Caller: caller, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, caller, input)
}

func (mock *leadServiceMock) CreateCalls() []struct {
	Ctx    context.Context
	Caller domain.Caller
	Input  lead.CreateLeadInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *leadServiceMock) Delete(ctx context.Context, caller domain.Caller, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("leadServiceMock.DeleteFunc: method is nil but leadService.Delete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Caller domain.Caller
		ID     uuid.UUID
	}{Ctx: ctx, Caller: caller, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, caller, id)
}

func (mock *leadServiceMock) DeleteCalls() []struct {
	Ctx    context.Context
	Caller domain.Caller
	ID     uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *leadServiceMock) DeleteNote(ctx context.Context, caller domain.Caller, leadID uuid.UUID, noteID uuid.UUID) (*domain.Lead, error) {
	if mock.DeleteNoteFunc == nil {
		panic("leadServiceMock.DeleteNoteFunc: method is nil but leadService.DeleteNote was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Caller domain.Caller
		LeadID uuid.UUID
		NoteID uuid.UUID
	}{Ctx: ctx, Caller: caller, LeadID: leadID, NoteID: noteID}
	mock.lockDeleteNote.Lock()
	mock.calls.DeleteNote = append(mock.calls.DeleteNote, callInfo)
	mock.lockDeleteNote.Unlock()
	return mock.DeleteNoteFunc(ctx, caller, leadID, noteID)
}

func (mock *leadServiceMock) DeleteNoteCalls() []struct {
	Ctx    context.Context
	Caller domain.Caller
	LeadID uuid.UUID
	NoteID uuid.UUID
} {
	mock.lockDeleteNote.RLock()
	calls := mock.calls.DeleteNote
	mock.lockDeleteNote.RUnlock()
	return calls
}

func (mock *leadServiceMock) Export(ctx context.Context, caller domain.Caller, req access.ListRequest) (*lead.ExportResult, error) {
	if mock.ExportFunc == nil {
		panic("leadServiceMock.ExportFunc: method is nil but leadService.Export was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Caller domain.Caller
		Req    access.ListRequest
	}{Ctx: ctx, Caller: caller, Req: req}
	mock.lockExport.Lock()
	mock.calls.Export = append(mock.calls.Export, callInfo)
	mock.lockExport.Unlock()
	return mock.ExportFunc(ctx, caller, req)
}

func (mock *leadServiceMock) ExportCalls() []struct {
	Ctx    context.Context
	Caller domain.Caller
	Req    access.ListRequest
} {
	mock.lockExport.RLock()
	calls := mock.calls.Export
	mock.lockExport.RUnlock()
	return calls
}

func (mock *leadServiceMock) Get(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Lead, error) {
	if mock.GetFunc == nil {
		panic("leadServiceMock.GetFunc: method is nil but leadService.Get was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Caller domain.Caller
		ID     uuid.UUID
	}{Ctx: ctx, Caller: caller, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, caller, id)
}

func (mock *leadServiceMock) GetCalls() []struct {
	Ctx    context.Context
	Caller domain.Caller
	ID     uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *leadServiceMock) Import(ctx context.Context, caller domain.Caller, file io.Reader) (*lead.ImportResult, error) {
	if mock.ImportFunc == nil {
		panic("leadServiceMock.ImportFunc: method is nil but leadService.Import was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Caller domain.Caller
		File   io.Reader
	}{Ctx: ctx, Caller: caller, File: file}
	mock.lockImport.Lock()
	mock.calls.Import = append(mock.calls.Import, callInfo)
	mock.lockImport.Unlock()
	return mock.ImportFunc(ctx, caller, file)
}

func (mock *leadServiceMock) ImportCalls() []struct {
	Ctx    context.Context
	Caller domain.Caller
	File   io.Reader
} {
	mock.lockImport.RLock()
	calls := mock.calls.Import
	mock.lockImport.RUnlock()
	return calls
}

func (mock *leadServiceMock) List(ctx context.Context, caller domain.Caller, req access.ListRequest) (*domain.LeadPage, error) {
	if mock.ListFunc == nil {
		panic("leadServiceMock.ListFunc: method is nil but leadService.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Caller domain.Caller
		Req    access.ListRequest
	}{Ctx: ctx, Caller: caller, Req: req}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, caller, req)
}

func (mock *leadServiceMock) ListCalls() []struct {
	Ctx    context.Context
	Caller domain.Caller
	Req    access.ListRequest
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *leadServiceMock) Stats(ctx context.Context, caller domain.Caller) (*domain.LeadStats, error) {
	if mock.StatsFunc == nil {
		panic("leadServiceMock.StatsFunc: method is nil but leadService.Stats was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Caller domain.Caller
	}{Ctx: ctx, Caller: caller}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, callInfo)
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx, caller)
}

func (mock *leadServiceMock) StatsCalls() []struct {
	Ctx    context.Context
	Caller domain.Caller
} {
	mock.lockStats.RLock()
	calls := mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}

func (mock *leadServiceMock) Update(ctx context.Context, caller domain.Caller, id uuid.UUID, input lead.UpdateLeadInput) (*domain.Lead, error) {
	if mock.UpdateFunc == nil {
		panic("leadServiceMock.UpdateFunc: method is nil but leadService.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Caller domain.Caller
		ID     uuid.UUID
		Input  lead.UpdateLeadInput
	}{Ctx: ctx, Caller: caller, ID: id, Input: input}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, caller, id, input)
}

func (mock *leadServiceMock) UpdateCalls() []struct {
	Ctx    context.Context
	Caller domain.Caller
	ID     uuid.UUID
	Input  lead.UpdateLeadInput
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
