package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/contact-management/internal/apperror"
	"gitlab.com/dirk.krummacker/contact-management/internal/model"
	"gitlab.com/dirk.krummacker/contact-management/internal/store"
	"gitlab.com/dirk.krummacker/contact-management/internal/validation"
)

// memoryContacts is a ContactRepository and an AddressRepository on maps. Deleting a contact
// deletes its addresses.
type memoryContacts struct {
	mu        sync.Mutex
	nextId    int64
	contacts  map[int64]model.Contact
	addresses map[int64]model.Address
}

func newMemoryContacts() *memoryContacts {
	return &memoryContacts{contacts: map[int64]model.Contact{}, addresses: map[int64]model.Address{}}
}

func (m *memoryContacts) Create(_ context.Context, contact model.Contact) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextId++
	contact.Id = m.nextId
	m.contacts[contact.Id] = contact
	return contact.Id, nil
}

func (m *memoryContacts) CountOwned(_ context.Context, id int64, username string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.contacts[id]; ok && c.Username == username {
		return 1, nil
	}
	return 0, nil
}

func (m *memoryContacts) FindOwned(_ context.Context, id int64, username string) ([]model.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.contacts[id]; ok && c.Username == username {
		return []model.Contact{c}, nil
	}
	return nil, nil
}

func (m *memoryContacts) UpdateOwned(_ context.Context, contact model.Contact) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.contacts[contact.Id]; !ok || c.Username != contact.Username {
		return 0, nil
	}
	m.contacts[contact.Id] = contact
	return 1, nil
}

func (m *memoryContacts) DeleteOwned(_ context.Context, id int64, username string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.contacts[id]; !ok || c.Username != username {
		return 0, nil
	}
	delete(m.contacts, id)
	for addressId, a := range m.addresses {
		if a.ContactId == id {
			delete(m.addresses, addressId)
		}
	}
	return 1, nil
}

func (m *memoryContacts) matching(filter model.ContactFilter) []model.Contact {
	contains := func(value *string, part string) bool {
		return value != nil && strings.Contains(*value, part)
	}
	var result []model.Contact
	for _, c := range m.contacts {
		if c.Username != filter.Username {
			continue
		}
		if filter.Name != "" && !strings.Contains(c.FirstName, filter.Name) && !contains(c.LastName, filter.Name) {
			continue
		}
		if filter.Email != "" && !contains(c.Email, filter.Email) {
			continue
		}
		if filter.Phone != "" && !contains(c.Phone, filter.Phone) {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Id < result[j].Id })
	return result
}

func (m *memoryContacts) Search(_ context.Context, filter model.ContactFilter) ([]model.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.matching(filter)
	page := []model.Contact{}
	for i := filter.Offset; i < len(all) && i < filter.Offset+filter.Limit; i++ {
		page = append(page, all[i])
	}
	return page, nil
}

func (m *memoryContacts) Count(_ context.Context, filter model.ContactFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.matching(filter)), nil
}

// memoryAddresses adapts memoryContacts to the AddressRepository.
type memoryAddresses struct {
	*memoryContacts
}

func (m memoryAddresses) Create(_ context.Context, address model.Address) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextId++
	address.Id = m.nextId
	m.addresses[address.Id] = address
	return address.Id, nil
}

func (m memoryAddresses) Find(_ context.Context, id int64, contactId int64) (model.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.addresses[id]; ok && a.ContactId == contactId {
		return a, nil
	}
	return model.Address{}, store.ErrNotFound
}

func (m memoryAddresses) Update(_ context.Context, address model.Address) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.addresses[address.Id]; !ok || a.ContactId != address.ContactId {
		return 0, nil
	}
	m.addresses[address.Id] = address
	return 1, nil
}

func (m memoryAddresses) Delete(_ context.Context, id int64, contactId int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.addresses[id]; !ok || a.ContactId != contactId {
		return 0, nil
	}
	delete(m.addresses, id)
	return 1, nil
}

func (m memoryAddresses) List(_ context.Context, contactId int64) ([]model.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []model.Address{}
	for _, a := range m.addresses {
		if a.ContactId == contactId {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Id < result[j].Id })
	return result, nil
}

var (
	alice = model.User{Username: "alice", Name: "Alice"}
	bob   = model.User{Username: "bob", Name: "Bob"}
)

func TestContactRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewContactService(newMemoryContacts())

	phone := "+49 0815 4711"
	created, err := s.Create(ctx, alice, validation.ContactRequest{FirstName: "Erika", Phone: &phone})
	require.NoError(t, err)
	assert.Positive(t, created.Id)

	got, err := s.Get(ctx, alice, created.Id)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestContactsAreInvisibleToOtherUsers(t *testing.T) {
	ctx := context.Background()
	s := NewContactService(newMemoryContacts())
	created, err := s.Create(ctx, alice, validation.ContactRequest{FirstName: "Erika"})
	require.NoError(t, err)

	_, err = s.Get(ctx, bob, created.Id)
	requireKind(t, apperror.NotFound, err)
	_, err = s.Update(ctx, bob, validation.UpdateContactRequest{Id: created.Id, ContactRequest: validation.ContactRequest{FirstName: "Mallory"}})
	requireKind(t, apperror.NotFound, err)
	requireKind(t, apperror.NotFound, s.Remove(ctx, bob, created.Id))
	requireKind(t, apperror.NotFound, s.CheckOwned(ctx, bob, created.Id))

	got, err := s.Get(ctx, alice, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Erika", got.FirstName)
}

func TestUpdateContactReplacesAllFields(t *testing.T) {
	ctx := context.Background()
	s := NewContactService(newMemoryContacts())
	email := "erika@example.com"
	created, err := s.Create(ctx, alice, validation.ContactRequest{FirstName: "Erika", Email: &email})
	require.NoError(t, err)

	updated, err := s.Update(ctx, alice, validation.UpdateContactRequest{Id: created.Id, ContactRequest: validation.ContactRequest{FirstName: "Rudi"}})
	require.NoError(t, err)
	assert.Equal(t, created.Id, updated.Id)
	got, err := s.Get(ctx, alice, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Rudi", got.FirstName)
	assert.Nil(t, got.Email)
}

func TestSearchPaging(t *testing.T) {
	ctx := context.Background()
	s := NewContactService(newMemoryContacts())
	for i := 1; i <= 15; i++ {
		_, err := s.Create(ctx, alice, validation.ContactRequest{FirstName: fmt.Sprintf("Contact %d", i)})
		require.NoError(t, err)
	}
	_, err := s.Create(ctx, bob, validation.ContactRequest{FirstName: "Contact of bob"})
	require.NoError(t, err)

	first, err := s.Search(ctx, alice, validation.SearchContactQuery{})
	require.NoError(t, err)
	assert.Len(t, first.Data, 10)
	assert.Equal(t, model.Paging{Page: 1, TotalItems: 15, TotalPages: 2}, first.Paging)

	second, err := s.Search(ctx, alice, validation.SearchContactQuery{Page: "2"})
	require.NoError(t, err)
	assert.Len(t, second.Data, 5)
	assert.Equal(t, 15, len(first.Data)+len(second.Data))

	beyond, err := s.Search(ctx, alice, validation.SearchContactQuery{Page: "3"})
	require.NoError(t, err)
	assert.Empty(t, beyond.Data)
	assert.NotNil(t, beyond.Data)

	filtered, err := s.Search(ctx, alice, validation.SearchContactQuery{Name: "Contact 1"})
	require.NoError(t, err)
	assert.Equal(t, 7, filtered.Paging.TotalItems, "1 and 10 to 15")
	assert.Equal(t, 1, filtered.Paging.TotalPages)
}

func TestAddressesOfContact(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryContacts()
	contacts := NewContactService(repo)
	addresses := NewAddressService(contacts, memoryAddresses{repo})

	contact, err := contacts.Create(ctx, alice, validation.ContactRequest{FirstName: "Erika"})
	require.NoError(t, err)
	address, err := addresses.Create(ctx, alice, contact.Id, validation.AddressRequest{Country: "Germany", PostalCode: "10115"})
	require.NoError(t, err)

	got, err := addresses.Get(ctx, alice, contact.Id, address.Id)
	require.NoError(t, err)
	assert.Equal(t, address, got)

	_, err = addresses.Get(ctx, bob, contact.Id, address.Id)
	requireKind(t, apperror.NotFound, err)

	other, err := contacts.Create(ctx, alice, validation.ContactRequest{FirstName: "Max"})
	require.NoError(t, err)
	_, err = addresses.Get(ctx, alice, other.Id, address.Id)
	requireKind(t, apperror.NotFound, err)
	requireKind(t, apperror.NotFound, addresses.Remove(ctx, alice, other.Id, address.Id))

	province := "Berlin"
	updated, err := addresses.Update(ctx, alice, contact.Id, validation.UpdateAddressRequest{
		Id:             address.Id,
		AddressRequest: validation.AddressRequest{Province: &province, Country: "Germany", PostalCode: "10117"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Berlin", *updated.Province)

	list, err := addresses.List(ctx, alice, contact.Id)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, contacts.Remove(ctx, alice, contact.Id))
	assert.Empty(t, repo.addresses, "addresses are deleted with their contact")
}

func TestAddressValidationComesFirst(t *testing.T) {
	ctx := context.Background()
	addresses := NewAddressService(NewContactService(newMemoryContacts()), memoryAddresses{newMemoryContacts()})

	// The contact does not exist, but the invalid body is reported.
	_, err := addresses.Create(ctx, alice, 99, validation.AddressRequest{})
	requireKind(t, apperror.Validation, err)
	_, err = addresses.Get(ctx, alice, 99, 0)
	requireKind(t, apperror.Validation, err)
}
