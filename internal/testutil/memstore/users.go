package memstore

import (
	"context"
	"strings"

	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

var (
	_ repository.UserRepository  = (*userRepo)(nil)
	_ repository.RoleRepository  = (*roleRepo)(nil)
	_ repository.TokenRepository = (*tokenRepo)(nil)
)

type userRepo struct{ s *Store }

func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("users.create"); err != nil {
		return err
	}
	if r.s.t.users.find(func(x entity.User) bool { return strings.EqualFold(x.Email, u.Email) }) != nil {
		return domain.ErrEmailAlreadyExists
	}
	u.CreatedAt = r.s.now()
	u.ID = r.s.t.users.insert(*u)
	r.s.t.users.put(u.ID, *u)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.t.users.get(id), nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.t.users.find(func(x entity.User) bool { return strings.EqualFold(x.Email, email) }), nil
}

func (r *userRepo) List(_ context.Context, roleID *int, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.t.users.list(func(x entity.User) bool {
		return roleID == nil || x.Role() == *roleID
	}, limit, offset), nil
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("users.update"); err != nil {
		return err
	}
	if r.s.t.users.find(func(x entity.User) bool { return x.ID != u.ID && strings.EqualFold(x.Email, u.Email) }) != nil {
		return domain.ErrEmailAlreadyExists
	}
	if !r.s.t.users.put(u.ID, *u) {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) Delete(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.t.users.remove(id), nil
}

func (r *userRepo) CountByRole(_ context.Context, roleID int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.t.users.count(func(x entity.User) bool { return x.Role() == roleID }), nil
}

type roleRepo struct{ s *Store }

func (s *Store) Roles() repository.RoleRepository { return &roleRepo{s} }

func (r *roleRepo) List(context.Context) ([]*entity.Role, error) {
	out := make([]*entity.Role, 0, len(r.s.roles))
	for i := range r.s.roles {
		role := r.s.roles[i]
		out = append(out, &role)
	}
	return out, nil
}

func (r *roleRepo) GetByID(_ context.Context, id int) (*entity.Role, error) {
	for _, role := range r.s.roles {
		if role.ID == id {
			return &role, nil
		}
	}
	return nil, nil
}

type tokenRepo struct{ s *Store }

func (s *Store) Tokens() repository.TokenRepository { return &tokenRepo{s} }

func (r *tokenRepo) Create(_ context.Context, t *entity.Token) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("tokens.create"); err != nil {
		return err
	}
	t.CreatedAt = r.s.now()
	t.ID = r.s.t.tokens.insert(*t)
	r.s.t.tokens.put(t.ID, *t)
	return nil
}

// TokenCount tokens registrados (para aserciones).
func (s *Store) TokenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.t.tokens.rows)
}
