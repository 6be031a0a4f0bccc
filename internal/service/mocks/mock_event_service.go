package mocks

import (
	"context"

	"logscope/internal/export"
	"logscope/internal/model"
	"logscope/internal/repository"
	"logscope/internal/service"
	"logscope/internal/sink"

	"github.com/stretchr/testify/mock"
)

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) Ingest(ctx context.Context, ev *model.Event) (*model.Event, error) {
	args := m.Called(ctx, ev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Get(ctx context.Context, id string) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Search(ctx context.Context, q repository.SearchQuery) (*service.EventListResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EventListResult), args.Error(1)
}

func (m *MockEventService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventService) Export(ctx context.Context, format string, q repository.SearchQuery) (*export.Document, error) {
	args := m.Called(ctx, format, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*export.Document), args.Error(1)
}

func (m *MockEventService) ExportAndStore(ctx context.Context, format string, q repository.SearchQuery) (*sink.Artifact, error) {
	args := m.Called(ctx, format, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sink.Artifact), args.Error(1)
}
