// Package repositories maps persisted entities to projection-safe read
// models and batches mutations into a staged change set that is committed
// atomically by SaveChanges.
package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned by lookup methods when no matching record exists.
var ErrNotFound = errors.New("record not found")

// Repository is the generic contract over a persisted entity type E and its
// read projection type P. Reads go through projections where credential
// material must not leak; mutations stage in memory and become durable only
// when SaveChanges commits.
type Repository[E any, P any] interface {
	GetAll(ctx context.Context, sort string) ([]P, error)
	GetByID(ctx context.Context, id int64) (*E, error)
	SaveChanges(ctx context.Context) (bool, error)
}

// command is one staged mutation. When dest is set the statement is executed
// as a query (INSERT ... RETURNING) and its single row scanned into dest;
// otherwise it is a plain exec.
type command struct {
	sql  string
	args []interface{}
	dest []interface{}
}

// changeSet accumulates staged commands. A repository instance is a unit of
// work: create one per request and do not share it across goroutines.
type changeSet struct {
	commands []command
}

func (cs *changeSet) stage(sql string, args ...interface{}) {
	cs.commands = append(cs.commands, command{sql: sql, args: args})
}

func (cs *changeSet) stageReturning(sql string, dest []interface{}, args ...interface{}) {
	cs.commands = append(cs.commands, command{sql: sql, args: args, dest: dest})
}

func (cs *changeSet) empty() bool {
	return len(cs.commands) == 0
}

func (cs *changeSet) clear() {
	cs.commands = nil
}

// flush runs every staged command inside the given transaction and returns
// the total number of affected rows.
func (cs *changeSet) flush(ctx context.Context, tx pgx.Tx) (int64, error) {
	var affected int64
	for _, cmd := range cs.commands {
		if cmd.dest != nil {
			if err := tx.QueryRow(ctx, cmd.sql, cmd.args...).Scan(cmd.dest...); err != nil {
				return affected, err
			}
			affected++
			continue
		}

		tag, err := tx.Exec(ctx, cmd.sql, cmd.args...)
		if err != nil {
			return affected, err
		}
		affected += tag.RowsAffected()
	}
	return affected, nil
}
