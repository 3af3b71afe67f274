package memory

import (
	"fmt"
	"sort"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

type store struct {
	seq      int64
	users    map[int64]models.User
	clients  map[int64]models.Client
	pools    map[int64]models.Pool
	services map[int64]models.ServiceRecord
	budgets  map[int64]models.Budget
	projects map[int64]models.Project
	settings map[int64]models.AppSetting
}

func newStore() *store {
	return &store{
		users:    map[int64]models.User{},
		clients:  map[int64]models.Client{},
		pools:    map[int64]models.Pool{},
		services: map[int64]models.ServiceRecord{},
		budgets:  map[int64]models.Budget{},
		projects: map[int64]models.Project{},
		settings: map[int64]models.AppSetting{},
	}
}

func cloneMap[T any](src map[int64]T) map[int64]T {
	dst := make(map[int64]T, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// clone copies every table. Budget validity pointers are shared; stored
// values are never mutated in place.
func (s *store) clone() *store {
	return &store{
		seq:      s.seq,
		users:    cloneMap(s.users),
		clients:  cloneMap(s.clients),
		pools:    cloneMap(s.pools),
		services: cloneMap(s.services),
		budgets:  cloneMap(s.budgets),
		projects: cloneMap(s.projects),
		settings: cloneMap(s.settings),
	}
}

func (s *store) nextID() int64 {
	s.seq++
	return s.seq
}

func conflict(constraint string) error {
	return fmt.Errorf("%w: %s", common.ErrorConflict, constraint)
}

// sortedPage returns the values of m ordered by id and windowed by page.
func sortedPage[T any](m map[int64]T, keep func(T) bool, page models.Page) []*T {
	ids := make([]int64, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]*T, 0, len(ids))
	for _, id := range models.Slice(ids, page) {
		v := m[id]
		result = append(result, &v)
	}
	return result
}

// Cascades mirror the ON DELETE CASCADE foreign keys of the SQL schema.

func (s *store) deletePool(id int64) {
	delete(s.pools, id)
	for sid, sv := range s.services {
		if sv.PoolID == id {
			delete(s.services, sid)
		}
	}
}

func (s *store) deleteClient(id int64) {
	delete(s.clients, id)
	for pid, p := range s.pools {
		if p.ClientID == id {
			s.deletePool(pid)
		}
	}
	for bid, b := range s.budgets {
		if b.ClientID == id {
			delete(s.budgets, bid)
		}
	}
}

func (s *store) deleteUser(id int64) {
	delete(s.users, id)
	for cid, c := range s.clients {
		if c.OwnerID == id {
			s.deleteClient(cid)
		}
	}
	for pid, p := range s.projects {
		if p.OwnerID == id {
			delete(s.projects, pid)
		}
	}
}

func (s *store) clientOwner(id int64) (int64, error) {
	c, ok := s.clients[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	return c.OwnerID, nil
}

func (s *store) poolOwner(id int64) (int64, error) {
	p, ok := s.pools[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	return s.clientOwner(p.ClientID)
}
