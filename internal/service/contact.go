package service

import (
	"context"

	"gitlab.com/dirk.krummacker/contact-management/internal/apperror"
	"gitlab.com/dirk.krummacker/contact-management/internal/model"
	"gitlab.com/dirk.krummacker/contact-management/internal/validation"
)

const msgContactNotFound = "contact is not found"

// ContactRepository is the storage that the contact service needs.
type ContactRepository interface {
	Create(ctx context.Context, contact model.Contact) (int64, error)
	CountOwned(ctx context.Context, id int64, username string) (int, error)
	FindOwned(ctx context.Context, id int64, username string) ([]model.Contact, error)
	UpdateOwned(ctx context.Context, contact model.Contact) (int64, error)
	DeleteOwned(ctx context.Context, id int64, username string) (int64, error)
	Search(ctx context.Context, filter model.ContactFilter) ([]model.Contact, error)
	Count(ctx context.Context, filter model.ContactFilter) (int, error)
}

// ContactService manages the contacts of a user.
type ContactService struct {
	contacts ContactRepository
}

// NewContactService creates a contact service on top of the given repository.
func NewContactService(contacts ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

// Create stores a new contact owned by user.
func (s *ContactService) Create(ctx context.Context, user model.User, req validation.ContactRequest) (model.Contact, error) {
	req, err := validation.CreateContact(req)
	if err != nil {
		return model.Contact{}, err
	}
	contact := newContact(user, req)
	contact.Id, err = s.contacts.Create(ctx, contact)
	if err != nil {
		return model.Contact{}, err
	}
	return contact, nil
}

// Get returns the contact with the given id if it is owned by user.
func (s *ContactService) Get(ctx context.Context, user model.User, contactId int64) (model.Contact, error) {
	if err := validation.PositiveID("contactId", contactId); err != nil {
		return model.Contact{}, err
	}
	contacts, err := s.contacts.FindOwned(ctx, contactId, user.Username)
	if err != nil {
		return model.Contact{}, err
	}
	if len(contacts) != 1 {
		return model.Contact{}, apperror.NewNotFound(msgContactNotFound)
	}
	return contacts[0], nil
}

// Update replaces all editable fields of a contact owned by user. Owner check and write are a
// single statement.
func (s *ContactService) Update(ctx context.Context, user model.User, req validation.UpdateContactRequest) (model.Contact, error) {
	req, err := validation.UpdateContact(req)
	if err != nil {
		return model.Contact{}, err
	}
	contact := newContact(user, req.ContactRequest)
	contact.Id = req.Id
	rows, err := s.contacts.UpdateOwned(ctx, contact)
	if err != nil {
		return model.Contact{}, err
	}
	if rows != 1 {
		return model.Contact{}, apperror.NewNotFound(msgContactNotFound)
	}
	return contact, nil
}

// Remove deletes a contact owned by user together with its addresses.
func (s *ContactService) Remove(ctx context.Context, user model.User, contactId int64) error {
	if err := validation.PositiveID("contactId", contactId); err != nil {
		return err
	}
	rows, err := s.contacts.DeleteOwned(ctx, contactId, user.Username)
	if err != nil {
		return err
	}
	if rows != 1 {
		return apperror.NewNotFound(msgContactNotFound)
	}
	return nil
}

// Search returns one page of the contacts of user that match the query. The total is counted
// with the same filter.
func (s *ContactService) Search(ctx context.Context, user model.User, query validation.SearchContactQuery) (model.ContactPage, error) {
	req, err := validation.SearchContact(query)
	if err != nil {
		return model.ContactPage{}, err
	}
	filter := req.Filter(user.Username)
	contacts, err := s.contacts.Search(ctx, filter)
	if err != nil {
		return model.ContactPage{}, err
	}
	total, err := s.contacts.Count(ctx, filter)
	if err != nil {
		return model.ContactPage{}, err
	}
	return model.ContactPage{
		Data: contacts,
		Paging: model.Paging{
			Page:       req.Page,
			TotalItems: total,
			TotalPages: (total + req.Size - 1) / req.Size,
		},
	}, nil
}

// CheckOwned returns a NotFound error unless exactly one contact with the id is owned by user.
func (s *ContactService) CheckOwned(ctx context.Context, user model.User, contactId int64) error {
	if err := validation.PositiveID("contactId", contactId); err != nil {
		return err
	}
	count, err := s.contacts.CountOwned(ctx, contactId, user.Username)
	if err != nil {
		return err
	}
	if count != 1 {
		return apperror.NewNotFound(msgContactNotFound)
	}
	return nil
}

func newContact(user model.User, req validation.ContactRequest) model.Contact {
	return model.Contact{
		Username:  user.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
}
