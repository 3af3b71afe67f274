package memory

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

type usersRepo struct{ v view }

// checkUserUnique enforces the email and username constraints, ignoring self.
func (s *store) checkUserUnique(u *models.User) error {
	for id, other := range s.users {
		if id == u.ID {
			continue
		}
		if other.Email == u.Email {
			return conflict("users_email_key")
		}
		if other.Username == u.Username {
			return conflict("users_username_key")
		}
	}
	return nil
}

func (r *usersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	err := r.v.do(func(st *store) error {
		if err := st.checkUserUnique(user); err != nil {
			return err
		}
		user.ID = st.nextID()
		user.CreatedAt = r.v.m.now()
		st.users[user.ID] = *user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *usersRepo) find(match func(models.User) bool) (*models.User, error) {
	var found *models.User
	err := r.v.do(func(st *store) error {
		for _, u := range st.users {
			if match(u) {
				u := u
				found = &u
				return nil
			}
		}
		return common.ErrorNotFound
	})
	return found, err
}

func (r *usersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id })
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r *usersRepo) List(ctx context.Context, page models.Page) ([]*models.User, error) {
	var result []*models.User
	err := r.v.do(func(st *store) error {
		result = sortedPage(st.users, nil, page)
		return nil
	})
	return result, err
}

func (r *usersRepo) Update(ctx context.Context, user *models.User) (*models.User, error) {
	err := r.v.do(func(st *store) error {
		old, ok := st.users[user.ID]
		if !ok {
			return common.ErrorNotFound
		}
		if err := st.checkUserUnique(user); err != nil {
			return err
		}
		user.CreatedAt = old.CreatedAt
		st.users[user.ID] = *user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *usersRepo) Delete(ctx context.Context, id int64) error {
	return r.v.do(func(st *store) error {
		if _, ok := st.users[id]; !ok {
			return common.ErrorNotFound
		}
		st.deleteUser(id)
		return nil
	})
}

func (r *usersRepo) CountSuperusers(ctx context.Context) (int, error) {
	n := 0
	err := r.v.do(func(st *store) error {
		for _, u := range st.users {
			if u.IsSuperuser {
				n++
			}
		}
		return nil
	})
	return n, err
}

// LockSuperusers is satisfied by the transaction itself, which already holds
// the store mutex.
func (r *usersRepo) LockSuperusers(ctx context.Context) error {
	return nil
}
