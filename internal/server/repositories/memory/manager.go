// Package memory is a process-local implementation of the repository set,
// used for development runs and tests. Data does not survive a restart.
//
// Transactions are serialized: WithinTx holds the store mutex for the whole
// callback and restores a snapshot when the callback fails or its context
// is cancelled. Stores obtained from Repos must not be used inside a
// WithinTx callback; use the ones passed to it.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/repomanager"
)

type Manager struct {
	mu  sync.Mutex
	st  *store
	now func() time.Time
}

func NewManager() *Manager {
	return &Manager{st: newStore(), now: func() time.Time { return time.Now().UTC() }}
}

// view gives repositories access to the store. A tx view runs with the
// manager mutex already held.
type view struct {
	m  *Manager
	tx bool
}

func (v view) do(fn func(st *store) error) error {
	if !v.tx {
		v.m.mu.Lock()
		defer v.m.mu.Unlock()
	}
	return fn(v.m.st)
}

func (m *Manager) bind(tx bool) repomanager.Repositories {
	v := view{m: m, tx: tx}
	return repomanager.Repositories{
		Users:    &usersRepo{v},
		Clients:  &clientsRepo{v},
		Pools:    &poolsRepo{v},
		Services: &servicesRepo{v},
		Budgets:  &budgetsRepo{v},
		Projects: &projectsRepo{v},
		Settings: &settingsRepo{v},
	}
}

func (m *Manager) Repos() repomanager.Repositories {
	return m.bind(false)
}

func (m *Manager) WithinTx(ctx context.Context, fn func(ctx context.Context, r repomanager.Repositories) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.st.clone()
	defer func() {
		if p := recover(); p != nil {
			m.st = snapshot
			panic(p)
		}
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			m.st = snapshot
		}
	}()

	return fn(ctx, m.bind(true))
}

// RunMigrations is a no-op; the schema is the Go types.
func (m *Manager) RunMigrations(context.Context) error { return nil }

func (m *Manager) Close() error { return nil }

var _ repomanager.RepositoryManager = (*Manager)(nil)
