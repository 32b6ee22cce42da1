package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/contact-management/internal/model"
)

// addressColumns are the columns of an address in the order of model.Address.
const addressColumns = "id, contact_id, street, city, province, country, postal_code"

// AddressStore persists addresses. Statements are scoped to the owning contact; the ownership of
// that contact is checked by the caller.
type AddressStore struct {
	db *sqlx.DB
}

func newAddressStore(db *sqlx.DB) *AddressStore {
	return &AddressStore{db: db}
}

// Create inserts a new address and returns its id.
func (s *AddressStore) Create(ctx context.Context, address model.Address) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO addresses (contact_id, street, city, province, country, postal_code)
		VALUES (?, ?, ?, ?, ?, ?)
	`, address.ContactId, address.Street, address.City, address.Province, address.Country, address.PostalCode)
	if err != nil {
		return 0, fmt.Errorf("could not insert address: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("could not read address id: %w", err)
	}
	return id, nil
}

// Find returns the address with the given id of the contact or ErrNotFound.
func (s *AddressStore) Find(ctx context.Context, id int64, contactId int64) (model.Address, error) {
	var addresses []model.Address
	err := s.db.SelectContext(ctx, &addresses,
		"SELECT "+addressColumns+" FROM addresses WHERE id = ? AND contact_id = ?", id, contactId)
	if err != nil {
		return model.Address{}, fmt.Errorf("could not select address: %w", err)
	}
	if len(addresses) != 1 {
		return model.Address{}, ErrNotFound
	}
	return addresses[0], nil
}

// Update replaces the editable fields of the address if it belongs to address.ContactId. It
// returns the number of matched rows.
func (s *AddressStore) Update(ctx context.Context, address model.Address) (int64, error) {
	rows, err := affected(s.db.ExecContext(ctx, `
		UPDATE addresses SET street = ?, city = ?, province = ?, country = ?, postal_code = ?
		WHERE id = ? AND contact_id = ?
	`, address.Street, address.City, address.Province, address.Country, address.PostalCode,
		address.Id, address.ContactId))
	if err != nil {
		return 0, fmt.Errorf("could not update address: %w", err)
	}
	return rows, nil
}

// Delete deletes the address if it belongs to the contact. It returns the number of deleted rows.
func (s *AddressStore) Delete(ctx context.Context, id int64, contactId int64) (int64, error) {
	rows, err := affected(s.db.ExecContext(ctx,
		`DELETE FROM addresses WHERE id = ? AND contact_id = ?`, id, contactId))
	if err != nil {
		return 0, fmt.Errorf("could not delete address: %w", err)
	}
	return rows, nil
}

// List returns all addresses of the contact, sorted by id.
func (s *AddressStore) List(ctx context.Context, contactId int64) ([]model.Address, error) {
	addresses := []model.Address{}
	err := s.db.SelectContext(ctx, &addresses,
		"SELECT "+addressColumns+" FROM addresses WHERE contact_id = ? ORDER BY id", contactId)
	if err != nil {
		return nil, fmt.Errorf("could not list addresses: %w", err)
	}
	return addresses, nil
}
