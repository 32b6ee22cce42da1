package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/contact-management/internal/model"
)

// UserStore persists users.
type UserStore struct {
	db *sqlx.DB

	// selectByUsername is a prepared statement for selecting the user with a given username.
	selectByUsername *sqlx.Stmt

	// selectByToken is a prepared statement for selecting the user with a given token. It runs
	// on every authenticated request.
	selectByToken *sqlx.Stmt
}

func newUserStore(db *sqlx.DB) (*UserStore, error) {
	var err error
	s := &UserStore{db: db}
	s.selectByUsername, err = db.Preparex(`
		SELECT username, password, name, token FROM users WHERE username = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("could not prepare user select by username: %w", err)
	}
	s.selectByToken, err = db.Preparex(`
		SELECT username, password, name, token FROM users WHERE token = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("could not prepare user select by token: %w", err)
	}
	return s, nil
}

func (s *UserStore) close() error {
	return errors.Join(s.selectByUsername.Close(), s.selectByToken.Close())
}

// Count returns the number of users with the given username, which is either 0 or 1.
func (s *UserStore) Count(ctx context.Context, username string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE username = ?`, username)
	if err != nil {
		return 0, fmt.Errorf("could not count users: %w", err)
	}
	return count, nil
}

// Create inserts a new user. It returns ErrDuplicate if the username is already taken.
func (s *UserStore) Create(ctx context.Context, user model.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password, name, token) VALUES (?, ?, ?, ?)
	`, user.Username, user.Password, user.Name, user.Token)
	if isDuplicate(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("could not insert user: %w", err)
	}
	return nil
}

// FindByUsername returns the user with the given username or ErrNotFound.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (model.User, error) {
	return s.find(ctx, s.selectByUsername, username)
}

// FindByToken returns the user that is logged in with the given token or ErrNotFound.
func (s *UserStore) FindByToken(ctx context.Context, token string) (model.User, error) {
	return s.find(ctx, s.selectByToken, token)
}

func (s *UserStore) find(ctx context.Context, stmt *sqlx.Stmt, arg string) (model.User, error) {
	var users []model.User
	if err := stmt.SelectContext(ctx, &users, arg); err != nil {
		return model.User{}, fmt.Errorf("could not select user: %w", err)
	}
	if len(users) != 1 {
		return model.User{}, ErrNotFound
	}
	return users[0], nil
}

// Update changes the name and the password hash of a user. Nil values are not updated. It returns
// ErrNotFound if there is no such user.
func (s *UserStore) Update(ctx context.Context, username string, name *string, passwordHash *string) error {
	var args []any
	var sets []string
	if name != nil {
		args = append(args, *name)
		sets = append(sets, "name = ?")
	}
	if passwordHash != nil {
		args = append(args, *passwordHash)
		sets = append(sets, "password = ?")
	}

	// Nothing to change, but the user still has to exist.
	if len(sets) == 0 {
		count, err := s.Count(ctx, username)
		if err != nil {
			return err
		}
		if count != 1 {
			return ErrNotFound
		}
		return nil
	}

	args = append(args, username)
	query := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE username = ?"
	rows, err := affected(s.db.ExecContext(ctx, query, args...))
	if err != nil {
		return fmt.Errorf("could not update user: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// SetToken stores the session token of a user. A nil token logs the user out.
func (s *UserStore) SetToken(ctx context.Context, username string, token *string) error {
	rows, err := affected(s.db.ExecContext(ctx, `UPDATE users SET token = ? WHERE username = ?`, token, username))
	if err != nil {
		return fmt.Errorf("could not update token: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
