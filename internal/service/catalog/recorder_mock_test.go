package catalog

import (
	"context"
	"sync"

	"github.com/heartmarshall/orbis-catalog/internal/service/audit"
)

var _ recorder = &recorderMock{}

type recorderMock struct {
	RecordFunc func(ctx context.Context, ev audit.Event) error

	calls struct {
		Record []struct {
			Ctx context.Context
			Ev  audit.Event
		}
	}
	lockRecord sync.RWMutex
}

func (mock *recorderMock) Record(ctx context.Context, ev audit.Event) error {
	if mock.RecordFunc == nil {
		panic("recorderMock.RecordFunc: method is nil but recorder.Record was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ev  audit.Event
	}{Ctx: ctx, Ev: ev}
	mock.lockRecord.Lock()
	mock.calls.Record = append(mock.calls.Record, callInfo)
	mock.lockRecord.Unlock()
	return mock.RecordFunc(ctx, ev)
}

func (mock *recorderMock) RecordCalls() []struct {
	Ctx context.Context
	Ev  audit.Event
} {
	mock.lockRecord.RLock()
	calls := mock.calls.Record
	mock.lockRecord.RUnlock()
	return calls
}
