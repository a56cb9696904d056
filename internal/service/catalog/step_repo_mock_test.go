package catalog

import (
	"context"
	"sync"

	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

var _ stepRepo = &stepRepoMock{}

type stepRepoMock struct {
	TableFunc      func() string
	FlagColumnFunc func() string
	ListFunc       func(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Step], error)
	GetFunc        func(ctx context.Context, id int64) (domain.Step, error)
	CreateFunc     func(ctx context.Context, in domain.CreateStepInput) (domain.Step, error)
	UpdateFunc     func(ctx context.Context, id int64, patch domain.StepPatch) (domain.Step, domain.Step, error)
	SetActiveFunc  func(ctx context.Context, id int64, active bool) (bool, domain.Step, error)
	DeleteFunc     func(ctx context.Context, id int64) (domain.Step, error)
	ListByIDsFunc  func(ctx context.Context, ids []int64) ([]domain.Step, error)

	calls struct {
		Table      []struct{}
		FlagColumn []struct{}
		List       []struct {
			Ctx context.Context
			Q   domain.ListQuery
		}
		Get []struct {
			Ctx context.Context
			ID  int64
		}
		Create []struct {
			Ctx context.Context
			In  domain.CreateStepInput
		}
		Update []struct {
			Ctx   context.Context
			ID    int64
			Patch domain.StepPatch
		}
		SetActive []struct {
			Ctx    context.Context
			ID     int64
			Active bool
		}
		Delete []struct {
			Ctx context.Context
			ID  int64
		}
		ListByIDs []struct {
			Ctx context.Context
			Ids []int64
		}
	}
	lockTable      sync.RWMutex
	lockFlagColumn sync.RWMutex
	lockList       sync.RWMutex
	lockGet        sync.RWMutex
	lockCreate     sync.RWMutex
	lockUpdate     sync.RWMutex
	lockSetActive  sync.RWMutex
	lockDelete     sync.RWMutex
	lockListByIDs  sync.RWMutex
}

func (mock *stepRepoMock) Table() string {
	if mock.TableFunc == nil {
		panic("stepRepoMock.TableFunc: method is nil but stepRepo.Table was just called")
	}
	callInfo := struct{}{}
	mock.lockTable.Lock()
	mock.calls.Table = append(mock.calls.Table, callInfo)
	mock.lockTable.Unlock()
	return mock.TableFunc()
}

func (mock *stepRepoMock) TableCalls() []struct{} {
	mock.lockTable.RLock()
	calls := mock.calls.Table
	mock.lockTable.RUnlock()
	return calls
}

func (mock *stepRepoMock) FlagColumn() string {
	if mock.FlagColumnFunc == nil {
		panic("stepRepoMock.FlagColumnFunc: method is nil but stepRepo.FlagColumn was just called")
	}
	callInfo := struct{}{}
	mock.lockFlagColumn.Lock()
	mock.calls.FlagColumn = append(mock.calls.FlagColumn, callInfo)
	mock.lockFlagColumn.Unlock()
	return mock.FlagColumnFunc()
}

func (mock *stepRepoMock) FlagColumnCalls() []struct{} {
	mock.lockFlagColumn.RLock()
	calls := mock.calls.FlagColumn
	mock.lockFlagColumn.RUnlock()
	return calls
}

func (mock *stepRepoMock) List(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Step], error) {
	if mock.ListFunc == nil {
		panic("stepRepoMock.ListFunc: method is nil but stepRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Q   domain.ListQuery
	}{Ctx: ctx, Q: q}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, q)
}

func (mock *stepRepoMock) ListCalls() []struct {
	Ctx context.Context
	Q   domain.ListQuery
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *stepRepoMock) Get(ctx context.Context, id int64) (domain.Step, error) {
	if mock.GetFunc == nil {
		panic("stepRepoMock.GetFunc: method is nil but stepRepo.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *stepRepoMock) GetCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *stepRepoMock) Create(ctx context.Context, in domain.CreateStepInput) (domain.Step, error) {
	if mock.CreateFunc == nil {
		panic("stepRepoMock.CreateFunc: method is nil but stepRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  domain.CreateStepInput
	}{Ctx: ctx, In: in}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, in)
}

func (mock *stepRepoMock) CreateCalls() []struct {
	Ctx context.Context
	In  domain.CreateStepInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *stepRepoMock) Update(ctx context.Context, id int64, patch domain.StepPatch) (domain.Step, domain.Step, error) {
	if mock.UpdateFunc == nil {
		panic("stepRepoMock.UpdateFunc: method is nil but stepRepo.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    int64
		Patch domain.StepPatch
	}{Ctx: ctx, ID: id, Patch: patch}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, patch)
}

func (mock *stepRepoMock) UpdateCalls() []struct {
	Ctx   context.Context
	ID    int64
	Patch domain.StepPatch
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *stepRepoMock) SetActive(ctx context.Context, id int64, active bool) (bool, domain.Step, error) {
	if mock.SetActiveFunc == nil {
		panic("stepRepoMock.SetActiveFunc: method is nil but stepRepo.SetActive was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     int64
		Active bool
	}{Ctx: ctx, ID: id, Active: active}
	mock.lockSetActive.Lock()
	mock.calls.SetActive = append(mock.calls.SetActive, callInfo)
	mock.lockSetActive.Unlock()
	return mock.SetActiveFunc(ctx, id, active)
}

func (mock *stepRepoMock) SetActiveCalls() []struct {
	Ctx    context.Context
	ID     int64
	Active bool
} {
	mock.lockSetActive.RLock()
	calls := mock.calls.SetActive
	mock.lockSetActive.RUnlock()
	return calls
}

func (mock *stepRepoMock) Delete(ctx context.Context, id int64) (domain.Step, error) {
	if mock.DeleteFunc == nil {
		panic("stepRepoMock.DeleteFunc: method is nil but stepRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *stepRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *stepRepoMock) ListByIDs(ctx context.Context, ids []int64) ([]domain.Step, error) {
	if mock.ListByIDsFunc == nil {
		panic("stepRepoMock.ListByIDsFunc: method is nil but stepRepo.ListByIDs was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ids []int64
	}{Ctx: ctx, Ids: ids}
	mock.lockListByIDs.Lock()
	mock.calls.ListByIDs = append(mock.calls.ListByIDs, callInfo)
	mock.lockListByIDs.Unlock()
	return mock.ListByIDsFunc(ctx, ids)
}

func (mock *stepRepoMock) ListByIDsCalls() []struct {
	Ctx context.Context
	Ids []int64
} {
	mock.lockListByIDs.RLock()
	calls := mock.calls.ListByIDs
	mock.lockListByIDs.RUnlock()
	return calls
}
