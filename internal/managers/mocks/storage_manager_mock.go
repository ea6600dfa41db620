package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockStorageManager is a mock of the StorageManager.
// It simulates object-storage uploads and removals in tests.
type MockStorageManager struct {
	mock.Mock
}

func (m *MockStorageManager) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, objectName, reader, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorageManager) Remove(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}
