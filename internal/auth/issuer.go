package auth

import (
	"context"

	"github.com/iliyamo/todo-auth/internal/model"
)

// Login verifies the password for username and, on success, returns a fresh
// access/refresh token pair. Unknown usernames and wrong passwords produce
// the identical ErrWrongCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*model.TokenPair, error) {
	user, err := s.users.FindByName(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Verify(password, user.Password) {
		return nil, ErrWrongCredentials
	}

	access, err := s.codec.Encode(user, s.now())
	if err != nil {
		return nil, err
	}
	refresh, err := s.issueRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &model.TokenPair{AuthToken: access, RefreshToken: refresh.Token}, nil
}

// Register hashes the raw password and persists a new user with the given
// permission set. A duplicate name surfaces as ErrUsernameTaken from the
// store.
func (s *Service) Register(ctx context.Context, username, rawPassword string, permissions []model.Permission) (*model.User, error) {
	hash, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:        username,
		Password:    hash,
		Permissions: permissions,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
