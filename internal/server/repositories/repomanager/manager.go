// Package repomanager vends the repository set, either bound to the
// connection pool or to a single transaction.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/budgets"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/clients"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/pools"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/projects"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/servicerecords"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/settings"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/users"
)

// Repositories is one consistent set of stores. Inside WithinTx every member
// shares the same transaction.
type Repositories struct {
	Users    users.Repository
	Clients  clients.Repository
	Pools    pools.Repository
	Services servicerecords.Repository
	Budgets  budgets.Repository
	Projects projects.Repository
	Settings settings.Repository
}

type RepositoryManager interface {
	// Repos returns stores that run each call on its own.
	Repos() Repositories
	// WithinTx runs fn against transaction-bound stores. The transaction
	// commits when fn returns nil and ctx is still live; otherwise it rolls
	// back.
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	RunMigrations(ctx context.Context) error
	Close() error
}
