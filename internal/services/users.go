package services

import (
	"context"
	"errors"
	"strings"

	"acc-portal/internal/domain/users"
	"acc-portal/internal/domain/validation"
	"acc-portal/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	List(ctx context.Context) ([]users.User, error)
	GetByID(ctx context.Context, id string) (users.User, error)
	GetByEmail(ctx context.Context, email string) (users.User, error)
	GetByGoogleSub(ctx context.Context, sub string) (users.User, error)
	Create(ctx context.Context, u *users.User) error
	Update(ctx context.Context, u *users.User) error
	Delete(ctx context.Context, id string) error
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo     UserRepository
	hashCost int
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo, hashCost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost, for tests.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.hashCost = cost
	return s
}

type CreateUserInput struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Name     string     `json:"name"`
	Role     users.Role `json:"role"`
}

type UserPatch struct {
	Email    *string     `json:"email"`
	Password *string     `json:"password"`
	Name     *string     `json:"name"`
	Role     *users.Role `json:"role"`
}

func (s *UserService) List(ctx context.Context) ([]users.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (users.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (users.User, error) {
	email := users.NormalizeEmail(in.Email)
	if in.Role == "" {
		in.Role = users.RoleViewer
	}
	err := validation.First(
		users.ValidateEmail(email),
		users.ValidatePassword(in.Password),
		users.ValidateRole(in.Role),
	)
	if err != nil {
		return users.User{}, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return users.User{}, err
	}
	u := users.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return users.User{}, err
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id string, p UserPatch) (users.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return users.User{}, err
	}
	if p.Email != nil {
		u.Email = users.NormalizeEmail(*p.Email)
		if err := users.ValidateEmail(u.Email); err != nil {
			return users.User{}, err
		}
	}
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Role != nil {
		if err := users.ValidateRole(*p.Role); err != nil {
			return users.User{}, err
		}
		u.Role = *p.Role
	}
	if p.Password != nil {
		if err := users.ValidatePassword(*p.Password); err != nil {
			return users.User{}, err
		}
		if u.PasswordHash, err = s.hash(*p.Password); err != nil {
			return users.User{}, err
		}
	}
	if err := s.repo.Update(ctx, &u); err != nil {
		return users.User{}, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Authenticate checks email and password. Unknown emails and wrong
// passwords both yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (users.User, error) {
	u, err := s.repo.GetByEmail(ctx, users.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return users.User{}, ErrInvalidCredentials
		}
		return users.User{}, err
	}
	if u.PasswordHash == "" {
		return users.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return users.User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) ChangePassword(ctx context.Context, id, current, next string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
			return ErrInvalidCredentials
		}
	}
	if err := users.ValidatePassword(next); err != nil {
		return err
	}
	if u.PasswordHash, err = s.hash(next); err != nil {
		return err
	}
	return s.repo.Update(ctx, &u)
}

// SignInWithGoogle finds the staff account for a verified Google identity,
// linking the Google subject on first use. Only existing accounts may sign
// in this way.
func (s *UserService) SignInWithGoogle(ctx context.Context, sub, email string) (users.User, error) {
	u, err := s.repo.GetByGoogleSub(ctx, sub)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return users.User{}, err
	}

	u, err = s.repo.GetByEmail(ctx, users.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return users.User{}, ErrInvalidCredentials
		}
		return users.User{}, err
	}
	u.GoogleSub = &sub
	if err := s.repo.Update(ctx, &u); err != nil {
		return users.User{}, err
	}
	return u, nil
}

func (s *UserService) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
