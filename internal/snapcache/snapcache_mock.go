package snapcache

import (
	"github.com/stretchr/testify/mock"

	"github.com/n8n-pulse/pulse/internal/contract"
)

// MockSnapshotStore is a mock implementation of SnapshotStore for testing.
type MockSnapshotStore struct {
	mock.Mock
}

var _ contract.SnapshotStore = &MockSnapshotStore{} // Compile-time check

// Get implements the SnapshotStore interface.
func (m *MockSnapshotStore) Get(path string) ([]byte, string, int64, error) {
	args := m.Called(path)
	body, _ := args.Get(0).([]byte)
	return body, args.String(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the SnapshotStore interface.
func (m *MockSnapshotStore) Set(path string, body []byte, revision string, timestamp int64) error {
	args := m.Called(path, body, revision, timestamp)
	return args.Error(0)
}

// Status implements the SnapshotStore interface.
func (m *MockSnapshotStore) Status() (contract.SnapshotStatus, error) {
	args := m.Called()
	return args.Get(0).(contract.SnapshotStatus), args.Error(1)
}

// Close implements the SnapshotStore interface.
func (m *MockSnapshotStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
