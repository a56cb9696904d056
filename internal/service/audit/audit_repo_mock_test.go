package audit

import (
	"context"
	"sync"

	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

var _ auditRepo = &auditRepoMock{}

type auditRepoMock struct {
	AppendFunc     func(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error)
	ListFunc       func(ctx context.Context, q domain.AuditQuery) (domain.Page[domain.AuditEntry], error)
	GetFunc        func(ctx context.Context, id int64) (domain.AuditEntry, error)
	TableStatsFunc func(ctx context.Context) ([]domain.AuditTableStats, error)
	ActorStatsFunc func(ctx context.Context) ([]domain.AuditActorStats, error)

	calls struct {
		Append []struct {
			Ctx context.Context
			E   domain.AuditEntry
		}
		List []struct {
			Ctx context.Context
			Q   domain.AuditQuery
		}
		Get []struct {
			Ctx context.Context
			ID  int64
		}
		TableStats []struct {
			Ctx context.Context
		}
		ActorStats []struct {
			Ctx context.Context
		}
	}
	lockAppend     sync.RWMutex
	lockList       sync.RWMutex
	lockGet        sync.RWMutex
	lockTableStats sync.RWMutex
	lockActorStats sync.RWMutex
}

func (mock *auditRepoMock) Append(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error) {
	if mock.AppendFunc == nil {
		panic("auditRepoMock.AppendFunc: method is nil but auditRepo.Append was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.AuditEntry
	}{Ctx: ctx, E: e}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, e)
}

func (mock *auditRepoMock) AppendCalls() []struct {
	Ctx context.Context
	E   domain.AuditEntry
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *auditRepoMock) List(ctx context.Context, q domain.AuditQuery) (domain.Page[domain.AuditEntry], error) {
	if mock.ListFunc == nil {
		panic("auditRepoMock.ListFunc: method is nil but auditRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Q   domain.AuditQuery
	}{Ctx: ctx, Q: q}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, q)
}

func (mock *auditRepoMock) ListCalls() []struct {
	Ctx context.Context
	Q   domain.AuditQuery
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *auditRepoMock) Get(ctx context.Context, id int64) (domain.AuditEntry, error) {
	if mock.GetFunc == nil {
		panic("auditRepoMock.GetFunc: method is nil but auditRepo.Get was just called")
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

func (mock *auditRepoMock) GetCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *auditRepoMock) TableStats(ctx context.Context) ([]domain.AuditTableStats, error) {
	if mock.TableStatsFunc == nil {
		panic("auditRepoMock.TableStatsFunc: method is nil but auditRepo.TableStats was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockTableStats.Lock()
	mock.calls.TableStats = append(mock.calls.TableStats, callInfo)
	mock.lockTableStats.Unlock()
	return mock.TableStatsFunc(ctx)
}

func (mock *auditRepoMock) TableStatsCalls() []struct {
	Ctx context.Context
} {
	mock.lockTableStats.RLock()
	calls := mock.calls.TableStats
	mock.lockTableStats.RUnlock()
	return calls
}

func (mock *auditRepoMock) ActorStats(ctx context.Context) ([]domain.AuditActorStats, error) {
	if mock.ActorStatsFunc == nil {
		panic("auditRepoMock.ActorStatsFunc: method is nil but auditRepo.ActorStats was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockActorStats.Lock()
	mock.calls.ActorStats = append(mock.calls.ActorStats, callInfo)
	mock.lockActorStats.Unlock()
	return mock.ActorStatsFunc(ctx)
}

func (mock *auditRepoMock) ActorStatsCalls() []struct {
	Ctx context.Context
} {
	mock.lockActorStats.RLock()
	calls := mock.calls.ActorStats
	mock.lockActorStats.RUnlock()
	return calls
}
