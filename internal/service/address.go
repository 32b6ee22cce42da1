package service

import (
	"context"
	"errors"

	"gitlab.com/dirk.krummacker/contact-management/internal/apperror"
	"gitlab.com/dirk.krummacker/contact-management/internal/model"
	"gitlab.com/dirk.krummacker/contact-management/internal/store"
	"gitlab.com/dirk.krummacker/contact-management/internal/validation"
)

const msgAddressNotFound = "address is not found"

// AddressRepository is the storage that the address service needs.
type AddressRepository interface {
	Create(ctx context.Context, address model.Address) (int64, error)
	Find(ctx context.Context, id int64, contactId int64) (model.Address, error)
	Update(ctx context.Context, address model.Address) (int64, error)
	Delete(ctx context.Context, id int64, contactId int64) (int64, error)
	List(ctx context.Context, contactId int64) ([]model.Address, error)
}

// OwnershipChecker decides whether a contact belongs to a user.
type OwnershipChecker interface {
	CheckOwned(ctx context.Context, user model.User, contactId int64) error
}

// AddressService manages the addresses of the contacts of a user. After input validation, every
// operation checks that the contact is owned by the user and only then looks at addresses.
type AddressService struct {
	contacts  OwnershipChecker
	addresses AddressRepository
}

// NewAddressService creates an address service.
func NewAddressService(contacts OwnershipChecker, addresses AddressRepository) *AddressService {
	return &AddressService{contacts: contacts, addresses: addresses}
}

// Create stores a new address of the contact.
func (s *AddressService) Create(ctx context.Context, user model.User, contactId int64, req validation.AddressRequest) (model.Address, error) {
	req, err := validation.CreateAddress(req)
	if err != nil {
		return model.Address{}, err
	}
	if err := s.contacts.CheckOwned(ctx, user, contactId); err != nil {
		return model.Address{}, err
	}
	address := newAddress(contactId, req)
	address.Id, err = s.addresses.Create(ctx, address)
	if err != nil {
		return model.Address{}, err
	}
	return address, nil
}

// Get returns one address of the contact.
func (s *AddressService) Get(ctx context.Context, user model.User, contactId int64, addressId int64) (model.Address, error) {
	if err := validation.PositiveID("addressId", addressId); err != nil {
		return model.Address{}, err
	}
	if err := s.contacts.CheckOwned(ctx, user, contactId); err != nil {
		return model.Address{}, err
	}
	address, err := s.addresses.Find(ctx, addressId, contactId)
	if errors.Is(err, store.ErrNotFound) {
		return model.Address{}, apperror.NewNotFound(msgAddressNotFound)
	}
	return address, err
}

// Update replaces all editable fields of an address of the contact.
func (s *AddressService) Update(ctx context.Context, user model.User, contactId int64, req validation.UpdateAddressRequest) (model.Address, error) {
	req, err := validation.UpdateAddress(req)
	if err != nil {
		return model.Address{}, err
	}
	if err := s.contacts.CheckOwned(ctx, user, contactId); err != nil {
		return model.Address{}, err
	}
	address := newAddress(contactId, req.AddressRequest)
	address.Id = req.Id
	rows, err := s.addresses.Update(ctx, address)
	if err != nil {
		return model.Address{}, err
	}
	if rows != 1 {
		return model.Address{}, apperror.NewNotFound(msgAddressNotFound)
	}
	return address, nil
}

// Remove deletes an address of the contact.
func (s *AddressService) Remove(ctx context.Context, user model.User, contactId int64, addressId int64) error {
	if err := validation.PositiveID("addressId", addressId); err != nil {
		return err
	}
	if err := s.contacts.CheckOwned(ctx, user, contactId); err != nil {
		return err
	}
	rows, err := s.addresses.Delete(ctx, addressId, contactId)
	if err != nil {
		return err
	}
	if rows != 1 {
		return apperror.NewNotFound(msgAddressNotFound)
	}
	return nil
}

// List returns all addresses of the contact.
func (s *AddressService) List(ctx context.Context, user model.User, contactId int64) ([]model.Address, error) {
	if err := s.contacts.CheckOwned(ctx, user, contactId); err != nil {
		return nil, err
	}
	return s.addresses.List(ctx, contactId)
}

func newAddress(contactId int64, req validation.AddressRequest) model.Address {
	return model.Address{
		ContactId:  contactId,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}
}
