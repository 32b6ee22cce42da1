package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/contact-management/internal/model"
)

// contactColumns are the columns of a contact in the order of model.Contact.
const contactColumns = "id, username, first_name, last_name, email, phone"

// likeEscaper escapes the wildcard characters of a MySQL LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContactStore persists contacts. Every statement except Create is scoped to the owning user.
type ContactStore struct {
	db *sqlx.DB

	// countOwned is a prepared statement for counting the contacts with a given id and owner.
	// Every address operation runs it first.
	countOwned *sqlx.Stmt
}

func newContactStore(db *sqlx.DB) (*ContactStore, error) {
	countOwned, err := db.Preparex(`
		SELECT COUNT(*) FROM contacts WHERE id = ? AND username = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("could not prepare contact count: %w", err)
	}
	return &ContactStore{db: db, countOwned: countOwned}, nil
}

func (s *ContactStore) close() error {
	return s.countOwned.Close()
}

// Create inserts a new contact and returns its id.
func (s *ContactStore) Create(ctx context.Context, contact model.Contact) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (username, first_name, last_name, email, phone)
		VALUES (?, ?, ?, ?, ?)
	`, contact.Username, contact.FirstName, contact.LastName, contact.Email, contact.Phone)
	if err != nil {
		return 0, fmt.Errorf("could not insert contact: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("could not read contact id: %w", err)
	}
	return id, nil
}

// CountOwned returns the number of contacts with the given id that belong to username.
func (s *ContactStore) CountOwned(ctx context.Context, id int64, username string) (int, error) {
	var count int
	if err := s.countOwned.GetContext(ctx, &count, id, username); err != nil {
		return 0, fmt.Errorf("could not count contacts: %w", err)
	}
	return count, nil
}

// FindOwned returns the contacts with the given id that belong to username.
func (s *ContactStore) FindOwned(ctx context.Context, id int64, username string) ([]model.Contact, error) {
	var contacts []model.Contact
	err := s.db.SelectContext(ctx, &contacts,
		"SELECT "+contactColumns+" FROM contacts WHERE id = ? AND username = ?", id, username)
	if err != nil {
		return nil, fmt.Errorf("could not select contact: %w", err)
	}
	return contacts, nil
}

// UpdateOwned replaces the editable fields of the contact if it belongs to contact.Username. It
// returns the number of matched rows.
func (s *ContactStore) UpdateOwned(ctx context.Context, contact model.Contact) (int64, error) {
	rows, err := affected(s.db.ExecContext(ctx, `
		UPDATE contacts SET first_name = ?, last_name = ?, email = ?, phone = ?
		WHERE id = ? AND username = ?
	`, contact.FirstName, contact.LastName, contact.Email, contact.Phone, contact.Id, contact.Username))
	if err != nil {
		return 0, fmt.Errorf("could not update contact: %w", err)
	}
	return rows, nil
}

// DeleteOwned deletes the contact if it belongs to username. It returns the number of deleted
// rows.
func (s *ContactStore) DeleteOwned(ctx context.Context, id int64, username string) (int64, error) {
	rows, err := affected(s.db.ExecContext(ctx,
		`DELETE FROM contacts WHERE id = ? AND username = ?`, id, username))
	if err != nil {
		return 0, fmt.Errorf("could not delete contact: %w", err)
	}
	return rows, nil
}

// Search returns one page of the contacts matching the filter, sorted by id.
func (s *ContactStore) Search(ctx context.Context, filter model.ContactFilter) ([]model.Contact, error) {
	where, args := contactWhere(filter)
	args = append(args, filter.Limit, filter.Offset)
	contacts := []model.Contact{}
	err := s.db.SelectContext(ctx, &contacts,
		"SELECT "+contactColumns+" FROM contacts WHERE "+where+" ORDER BY id LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, fmt.Errorf("could not search contacts: %w", err)
	}
	return contacts, nil
}

// Count returns the number of contacts matching the filter, ignoring offset and limit.
func (s *ContactStore) Count(ctx context.Context, filter model.ContactFilter) (int, error) {
	where, args := contactWhere(filter)
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM contacts WHERE "+where, args...); err != nil {
		return 0, fmt.Errorf("could not count contacts: %w", err)
	}
	return count, nil
}

// contactWhere builds the condition shared by Search and Count. The owner is always part of it;
// name matches the first or the last name, email and phone match their own column.
func contactWhere(filter model.ContactFilter) (string, []any) {
	conditions := []string{"username = ?"}
	args := []any{filter.Username}
	if filter.Name != "" {
		pattern := containing(filter.Name)
		conditions = append(conditions, "(first_name LIKE ? OR last_name LIKE ?)")
		args = append(args, pattern, pattern)
	}
	if filter.Email != "" {
		conditions = append(conditions, "email LIKE ?")
		args = append(args, containing(filter.Email))
	}
	if filter.Phone != "" {
		conditions = append(conditions, "phone LIKE ?")
		args = append(args, containing(filter.Phone))
	}
	return strings.Join(conditions, " AND "), args
}

// containing returns a LIKE pattern that matches any value containing s.
func containing(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
