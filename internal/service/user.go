// Package service contains the domain logic of the contact management. Every operation takes the
// authenticated user as an explicit argument and checks ownership before it mutates anything.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gitlab.com/dirk.krummacker/contact-management/internal/apperror"
	"gitlab.com/dirk.krummacker/contact-management/internal/model"
	"gitlab.com/dirk.krummacker/contact-management/internal/store"
	"gitlab.com/dirk.krummacker/contact-management/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for password hashes.
const bcryptCost = 10

// Client messages of the user service.
const (
	msgAlreadyRegistered = "username is already registered"
	msgWrongCredentials  = "username or password is wrong"
	msgUnauthorized      = "unauthorized"
	msgUserNotFound      = "user is not found"
)

// UserRepository is the storage that the user service needs.
type UserRepository interface {
	Count(ctx context.Context, username string) (int, error)
	Create(ctx context.Context, user model.User) error
	FindByUsername(ctx context.Context, username string) (model.User, error)
	FindByToken(ctx context.Context, token string) (model.User, error)
	Update(ctx context.Context, username string, name *string, passwordHash *string) error
	SetToken(ctx context.Context, username string, token *string) error
}

// UserService registers users and manages their sessions.
type UserService struct {
	users    UserRepository
	newToken func() string
}

// NewUserService creates a user service on top of the given repository.
func NewUserService(users UserRepository) *UserService {
	return &UserService{
		users:    users,
		newToken: func() string { return uuid.New().String() },
	}
}

// Register creates a new user. The returned user only carries username and name.
func (s *UserService) Register(ctx context.Context, req validation.RegisterUserRequest) (model.User, error) {
	req, err := validation.RegisterUser(req)
	if err != nil {
		return model.User{}, err
	}
	count, err := s.users.Count(ctx, req.Username)
	if err != nil {
		return model.User{}, err
	}
	if count > 0 {
		return model.User{}, apperror.New(apperror.AlreadyExists, msgAlreadyRegistered)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return model.User{}, err
	}
	user := model.User{Username: req.Username, Password: string(hash), Name: req.Name}
	if err := s.users.Create(ctx, user); err != nil {
		// Another registration with the same username won the race after our count.
		if errors.Is(err, store.ErrDuplicate) {
			return model.User{}, apperror.New(apperror.AlreadyExists, msgAlreadyRegistered)
		}
		return model.User{}, err
	}
	return model.User{Username: user.Username, Name: user.Name}, nil
}

// Login checks the credentials and starts a new session. A previous session of the same user
// ends, because its token is overwritten. Unknown usernames and wrong passwords fail with the
// same error.
func (s *UserService) Login(ctx context.Context, req validation.LoginUserRequest) (string, error) {
	req, err := validation.LoginUser(req)
	if err != nil {
		return "", err
	}
	user, err := s.users.FindByUsername(ctx, req.Username)
	if errors.Is(err, store.ErrNotFound) {
		return "", apperror.New(apperror.InvalidCredentials, msgWrongCredentials)
	}
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return "", apperror.New(apperror.InvalidCredentials, msgWrongCredentials)
	}
	token := s.newToken()
	if err := s.users.SetToken(ctx, user.Username, &token); err != nil {
		return "", err
	}
	return token, nil
}

// Authenticate resolves a session token to the logged in user.
func (s *UserService) Authenticate(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, apperror.New(apperror.Unauthorized, msgUnauthorized)
	}
	user, err := s.users.FindByToken(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return model.User{}, apperror.New(apperror.Unauthorized, msgUnauthorized)
	}
	return user, err
}

// Get returns the user with the given username.
func (s *UserService) Get(ctx context.Context, username string) (model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return model.User{}, apperror.NewNotFound(msgUserNotFound)
	}
	return user, err
}

// Update changes name and/or password of the given user. Fields missing in req stay as they are.
// The returned user only carries username and name.
func (s *UserService) Update(ctx context.Context, user model.User, req validation.UpdateUserRequest) (model.User, error) {
	req, err := validation.UpdateUser(req)
	if err != nil {
		return model.User{}, err
	}
	var passwordHash *string
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return model.User{}, err
		}
		h := string(hash)
		passwordHash = &h
	}
	err = s.users.Update(ctx, user.Username, req.Name, passwordHash)
	if errors.Is(err, store.ErrNotFound) {
		return model.User{}, apperror.NewNotFound(msgUserNotFound)
	}
	if err != nil {
		return model.User{}, err
	}
	updated := model.User{Username: user.Username, Name: user.Name}
	if req.Name != nil {
		updated.Name = *req.Name
	}
	return updated, nil
}

// Logout ends the session of the given user.
func (s *UserService) Logout(ctx context.Context, username string) error {
	err := s.users.SetToken(ctx, username, nil)
	if errors.Is(err, store.ErrNotFound) {
		return apperror.NewNotFound(msgUserNotFound)
	}
	return err
}
