package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/repomanager"
)

type Kind string

const (
	KindClient  Kind = "client"
	KindPool    Kind = "pool"
	KindService Kind = "service"
	KindBudget  Kind = "budget"
	KindProject Kind = "project"
)

type Action int

const (
	ActionRead Action = iota
	ActionUpdate
	ActionDelete
	// ActionAttach creates a child under the resource, e.g. a pool under a
	// client.
	ActionAttach
)

func (a Action) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	case ActionAttach:
		return "attach"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Ref names a resource.
type Ref struct {
	Kind Kind
	ID   int64
}

// Disclosure is what a non-owner learns when denied.
type Disclosure int

const (
	// HideExistence answers as if the resource did not exist.
	HideExistence Disclosure = iota
	// Reveal answers forbidden.
	Reveal
)

// Policy maps a kind and action to the disclosure on denial. Missing
// entries hide existence.
type Policy map[Kind]map[Action]Disclosure

func (p Policy) disclosure(k Kind, a Action) Disclosure {
	return p[k][a]
}

// DefaultPolicy hides existence for every read and for the nested kinds.
// Writes to directly owned kinds are answered with forbidden.
var DefaultPolicy = Policy{
	KindClient:  {ActionUpdate: Reveal, ActionDelete: Reveal},
	KindProject: {ActionUpdate: Reveal, ActionDelete: Reveal},
}

// OwnerResolver returns the id of the user at the root of a resource's
// ownership chain, or common.ErrorNotFound.
type OwnerResolver interface {
	OwnerOf(ctx context.Context, kind Kind, id int64) (int64, error)
}

// StoreOwners resolves owners through the repositories; each lookup walks
// the full chain in the store.
type StoreOwners struct {
	Repos repomanager.Repositories
}

func (s StoreOwners) OwnerOf(ctx context.Context, kind Kind, id int64) (int64, error) {
	switch kind {
	case KindClient:
		return s.Repos.Clients.OwnerOf(ctx, id)
	case KindPool:
		return s.Repos.Pools.OwnerOf(ctx, id)
	case KindService:
		return s.Repos.Services.OwnerOf(ctx, id)
	case KindBudget:
		return s.Repos.Budgets.OwnerOf(ctx, id)
	case KindProject:
		return s.Repos.Projects.OwnerOf(ctx, id)
	}
	return 0, fmt.Errorf("unknown resource kind %q", kind)
}

// RequireUser fails with common.ErrUnauthenticated when no user was resolved.
func RequireUser(u *models.User) error {
	if u == nil {
		return common.ErrUnauthenticated
	}
	return nil
}

// RequireSuperuser gates user administration, settings and log access.
func RequireSuperuser(u *models.User) error {
	if err := RequireUser(u); err != nil {
		return err
	}
	if !u.IsSuperuser {
		return common.ErrForbidden
	}
	return nil
}

// Authorizer applies the ownership rule. Superusers get no bypass; admin
// operations have their own gate.
type Authorizer struct {
	owners OwnerResolver
	policy Policy
}

func NewAuthorizer(owners OwnerResolver, policy Policy) *Authorizer {
	if policy == nil {
		policy = DefaultPolicy
	}
	return &Authorizer{owners: owners, policy: policy}
}

// Authorize allows action on ref only when u is the root owner. A missing
// resource is common.ErrorNotFound; a foreign one is common.ErrorNotFound or
// common.ErrForbidden according to the policy.
func (a *Authorizer) Authorize(ctx context.Context, u *models.User, ref Ref, action Action) error {
	if err := RequireUser(u); err != nil {
		return err
	}

	owner, err := a.owners.OwnerOf(ctx, ref.Kind, ref.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%s %d: %w", ref.Kind, ref.ID, common.ErrorNotFound)
		}
		return fmt.Errorf("%w: resolve %s owner: %w", common.ErrorInternal, ref.Kind, err)
	}

	if owner == u.ID {
		return nil
	}

	if a.policy.disclosure(ref.Kind, action) == Reveal {
		return fmt.Errorf("%s %s %d: %w", action, ref.Kind, ref.ID, common.ErrForbidden)
	}
	return fmt.Errorf("%s %d: %w", ref.Kind, ref.ID, common.ErrorNotFound)
}
