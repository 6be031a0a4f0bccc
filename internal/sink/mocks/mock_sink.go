package mocks

import (
	"context"

	"logscope/internal/export"
	"logscope/internal/sink"

	"github.com/stretchr/testify/mock"
)

type MockSink struct {
	mock.Mock
}

func (m *MockSink) Save(ctx context.Context, doc *export.Document) (*sink.Artifact, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sink.Artifact), args.Error(1)
}
