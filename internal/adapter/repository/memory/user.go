package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/floravitalis/creatinamax/internal/domain/user"
)

// UserRepository implementa user.Repository em memória
type UserRepository struct {
	mu    sync.RWMutex
	items map[string]*user.User
}

// NewUserRepository cria um novo repositório de usuários em memória
func NewUserRepository() *UserRepository {
	return &UserRepository{items: make(map[string]*user.User)}
}

func cloneUser(u *user.User) *user.User {
	clone := *u
	return &clone
}

// Create implementa user.Repository.Create
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrDuplicateEmail
		}
	}
	r.items[u.ID] = cloneUser(u)
	return nil
}

// FindByID implementa user.Repository.FindByID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.items[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return cloneUser(u), nil
}

// FindByEmail implementa user.Repository.FindByEmail
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.items {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, user.ErrUserNotFound
}

// List implementa user.Repository.List
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*user.User, 0, len(r.items))
	for _, u := range r.items {
		all = append(all, cloneUser(u))
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return paginate(all, limit, offset), nil
}

// Update implementa user.Repository.Update
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	r.items[u.ID] = cloneUser(u)
	return nil
}
