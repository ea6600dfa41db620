package mocks

import (
	"github.com/stretchr/testify/mock"

	"server-match/internal/interfaces"
)

// MockDatabaseManager is a mock of the DatabaseManager.
// It is used to hand a pgxmock pool to the code under test.
type MockDatabaseManager struct {
	mock.Mock
}

func (m *MockDatabaseManager) GetPool() interfaces.PgxPoolIface {
	args := m.Called()
	return args.Get(0).(interfaces.PgxPoolIface)
}
