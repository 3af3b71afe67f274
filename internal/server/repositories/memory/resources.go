package memory

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

type clientsRepo struct{ v view }

func (r *clientsRepo) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	err := r.v.do(func(st *store) error {
		if _, ok := st.users[c.OwnerID]; !ok {
			return common.ErrorNotFound
		}
		c.ID = st.nextID()
		c.CreatedAt = r.v.m.now()
		c.UpdatedAt = c.CreatedAt
		st.clients[c.ID] = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientsRepo) Get(ctx context.Context, id int64) (*models.Client, error) {
	var c models.Client
	err := r.v.do(func(st *store) error {
		var ok bool
		if c, ok = st.clients[id]; !ok {
			return common.ErrorNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientsRepo) ListByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.Client, error) {
	var result []*models.Client
	err := r.v.do(func(st *store) error {
		result = sortedPage(st.clients, func(c models.Client) bool { return c.OwnerID == ownerID }, page)
		return nil
	})
	return result, err
}

func (r *clientsRepo) Update(ctx context.Context, c *models.Client) (*models.Client, error) {
	err := r.v.do(func(st *store) error {
		old, ok := st.clients[c.ID]
		if !ok {
			return common.ErrorNotFound
		}
		c.OwnerID = old.OwnerID
		c.CreatedAt = old.CreatedAt
		c.UpdatedAt = r.v.m.now()
		st.clients[c.ID] = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientsRepo) Delete(ctx context.Context, id int64) error {
	return r.v.do(func(st *store) error {
		if _, ok := st.clients[id]; !ok {
			return common.ErrorNotFound
		}
		st.deleteClient(id)
		return nil
	})
}

func (r *clientsRepo) OwnerOf(ctx context.Context, id int64) (int64, error) {
	var owner int64
	err := r.v.do(func(st *store) (err error) {
		owner, err = st.clientOwner(id)
		return err
	})
	return owner, err
}

type poolsRepo struct{ v view }

func (r *poolsRepo) Create(ctx context.Context, p *models.Pool) (*models.Pool, error) {
	err := r.v.do(func(st *store) error {
		if _, ok := st.clients[p.ClientID]; !ok {
			return common.ErrorNotFound
		}
		p.ID = st.nextID()
		p.CreatedAt = r.v.m.now()
		p.UpdatedAt = p.CreatedAt
		st.pools[p.ID] = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *poolsRepo) Get(ctx context.Context, id int64) (*models.Pool, error) {
	var p models.Pool
	err := r.v.do(func(st *store) error {
		var ok bool
		if p, ok = st.pools[id]; !ok {
			return common.ErrorNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *poolsRepo) ListByClient(ctx context.Context, clientID int64, page models.Page) ([]*models.Pool, error) {
	var result []*models.Pool
	err := r.v.do(func(st *store) error {
		result = sortedPage(st.pools, func(p models.Pool) bool { return p.ClientID == clientID }, page)
		return nil
	})
	return result, err
}

func (r *poolsRepo) Update(ctx context.Context, p *models.Pool) (*models.Pool, error) {
	err := r.v.do(func(st *store) error {
		old, ok := st.pools[p.ID]
		if !ok {
			return common.ErrorNotFound
		}
		p.ClientID = old.ClientID
		p.CreatedAt = old.CreatedAt
		p.UpdatedAt = r.v.m.now()
		st.pools[p.ID] = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *poolsRepo) Delete(ctx context.Context, id int64) error {
	return r.v.do(func(st *store) error {
		if _, ok := st.pools[id]; !ok {
			return common.ErrorNotFound
		}
		st.deletePool(id)
		return nil
	})
}

func (r *poolsRepo) OwnerOf(ctx context.Context, id int64) (int64, error) {
	var owner int64
	err := r.v.do(func(st *store) (err error) {
		owner, err = st.poolOwner(id)
		return err
	})
	return owner, err
}

type servicesRepo struct{ v view }

func (r *servicesRepo) Create(ctx context.Context, s *models.ServiceRecord) (*models.ServiceRecord, error) {
	err := r.v.do(func(st *store) error {
		if _, ok := st.pools[s.PoolID]; !ok {
			return common.ErrorNotFound
		}
		s.ID = st.nextID()
		s.CreatedAt = r.v.m.now()
		st.services[s.ID] = *s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *servicesRepo) Get(ctx context.Context, id int64) (*models.ServiceRecord, error) {
	var s models.ServiceRecord
	err := r.v.do(func(st *store) error {
		var ok bool
		if s, ok = st.services[id]; !ok {
			return common.ErrorNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *servicesRepo) ListByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.ServiceRecord, error) {
	var result []*models.ServiceRecord
	err := r.v.do(func(st *store) error {
		result = sortedPage(st.services, func(s models.ServiceRecord) bool {
			owner, err := st.poolOwner(s.PoolID)
			return err == nil && owner == ownerID
		}, page)
		return nil
	})
	return result, err
}

func (r *servicesRepo) Update(ctx context.Context, s *models.ServiceRecord) (*models.ServiceRecord, error) {
	err := r.v.do(func(st *store) error {
		old, ok := st.services[s.ID]
		if !ok {
			return common.ErrorNotFound
		}
		s.PoolID = old.PoolID
		s.CreatedAt = old.CreatedAt
		st.services[s.ID] = *s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *servicesRepo) Delete(ctx context.Context, id int64) error {
	return r.v.do(func(st *store) error {
		if _, ok := st.services[id]; !ok {
			return common.ErrorNotFound
		}
		delete(st.services, id)
		return nil
	})
}

func (r *servicesRepo) OwnerOf(ctx context.Context, id int64) (int64, error) {
	var owner int64
	err := r.v.do(func(st *store) error {
		s, ok := st.services[id]
		if !ok {
			return common.ErrorNotFound
		}
		var err error
		owner, err = st.poolOwner(s.PoolID)
		return err
	})
	return owner, err
}

type budgetsRepo struct{ v view }

func (r *budgetsRepo) Create(ctx context.Context, b *models.Budget) (*models.Budget, error) {
	err := r.v.do(func(st *store) error {
		if _, ok := st.clients[b.ClientID]; !ok {
			return common.ErrorNotFound
		}
		b.ID = st.nextID()
		b.CreatedAt = r.v.m.now()
		st.budgets[b.ID] = *b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *budgetsRepo) Get(ctx context.Context, id int64) (*models.Budget, error) {
	var b models.Budget
	err := r.v.do(func(st *store) error {
		var ok bool
		if b, ok = st.budgets[id]; !ok {
			return common.ErrorNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *budgetsRepo) ListByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.Budget, error) {
	var result []*models.Budget
	err := r.v.do(func(st *store) error {
		result = sortedPage(st.budgets, func(b models.Budget) bool {
			owner, err := st.clientOwner(b.ClientID)
			return err == nil && owner == ownerID
		}, page)
		return nil
	})
	return result, err
}

func (r *budgetsRepo) Update(ctx context.Context, b *models.Budget) (*models.Budget, error) {
	err := r.v.do(func(st *store) error {
		old, ok := st.budgets[b.ID]
		if !ok {
			return common.ErrorNotFound
		}
		b.ClientID = old.ClientID
		b.CreatedAt = old.CreatedAt
		st.budgets[b.ID] = *b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *budgetsRepo) Delete(ctx context.Context, id int64) error {
	return r.v.do(func(st *store) error {
		if _, ok := st.budgets[id]; !ok {
			return common.ErrorNotFound
		}
		delete(st.budgets, id)
		return nil
	})
}

func (r *budgetsRepo) OwnerOf(ctx context.Context, id int64) (int64, error) {
	var owner int64
	err := r.v.do(func(st *store) error {
		b, ok := st.budgets[id]
		if !ok {
			return common.ErrorNotFound
		}
		var err error
		owner, err = st.clientOwner(b.ClientID)
		return err
	})
	return owner, err
}

type projectsRepo struct{ v view }

func (r *projectsRepo) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	err := r.v.do(func(st *store) error {
		if _, ok := st.users[p.OwnerID]; !ok {
			return common.ErrorNotFound
		}
		p.ID = st.nextID()
		p.CreatedAt = r.v.m.now()
		p.UpdatedAt = p.CreatedAt
		st.projects[p.ID] = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *projectsRepo) Get(ctx context.Context, id int64) (*models.Project, error) {
	var p models.Project
	err := r.v.do(func(st *store) error {
		var ok bool
		if p, ok = st.projects[id]; !ok {
			return common.ErrorNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectsRepo) ListByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.Project, error) {
	var result []*models.Project
	err := r.v.do(func(st *store) error {
		result = sortedPage(st.projects, func(p models.Project) bool { return p.OwnerID == ownerID }, page)
		return nil
	})
	return result, err
}

func (r *projectsRepo) Update(ctx context.Context, p *models.Project) (*models.Project, error) {
	err := r.v.do(func(st *store) error {
		old, ok := st.projects[p.ID]
		if !ok {
			return common.ErrorNotFound
		}
		p.OwnerID = old.OwnerID
		p.CreatedAt = old.CreatedAt
		p.UpdatedAt = r.v.m.now()
		st.projects[p.ID] = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *projectsRepo) Delete(ctx context.Context, id int64) error {
	return r.v.do(func(st *store) error {
		if _, ok := st.projects[id]; !ok {
			return common.ErrorNotFound
		}
		delete(st.projects, id)
		return nil
	})
}

func (r *projectsRepo) OwnerOf(ctx context.Context, id int64) (int64, error) {
	var owner int64
	err := r.v.do(func(st *store) error {
		p, ok := st.projects[id]
		if !ok {
			return common.ErrorNotFound
		}
		owner = p.OwnerID
		return nil
	})
	return owner, err
}
