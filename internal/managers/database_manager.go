// Package managers holds the cross-cutting services the handlers are built
// on: database pool access, credential hashing, token issuance/validation
// and photo object storage.
package managers

import (
	log "github.com/sirupsen/logrus"

	"server-match/internal/interfaces"
)

// DatabaseMgr defines the interface for database management.
// It provides methods for interacting with the database connection pool.
type DatabaseMgr interface {
	GetPool() interfaces.PgxPoolIface
}

// DatabaseManager is responsible for managing the database connection pool.
type DatabaseManager struct {
	Pool interfaces.PgxPoolIface
}

// GetPool returns the database connection pool managed by the DatabaseManager.
func (dbMgr *DatabaseManager) GetPool() interfaces.PgxPoolIface {
	return dbMgr.Pool
}

// NewDatabaseManager creates and initializes a new instance of DatabaseManager
// with the provided database connection pool.
func NewDatabaseManager(pool interfaces.PgxPoolIface) DatabaseMgr {
	log.Info("Initializing database manager")
	return &DatabaseManager{Pool: pool}
}
