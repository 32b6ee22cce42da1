package validation

import (
	"math"
	"strings"

	"gitlab.com/dirk.krummacker/contact-management/internal/model"
)

// ContactRequest holds the editable fields of a contact.
type ContactRequest struct {
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// UpdateContactRequest is a full replacement of the editable fields of the contact with Id.
type UpdateContactRequest struct {
	Id int64 `json:"-"`
	ContactRequest
}

// SearchContactQuery holds the raw URL parameters of a contact search.
type SearchContactQuery struct {
	Page  string `form:"page"`
	Size  string `form:"size"`
	Name  string `form:"name"`
	Email string `form:"email"`
	Phone string `form:"phone"`
}

// SearchContactRequest is a validated contact search.
type SearchContactRequest struct {
	Page  int
	Size  int
	Name  string
	Email string
	Phone string
}

func (c *checker) contact(in ContactRequest) ContactRequest {
	out := ContactRequest{
		FirstName: c.required("firstName", in.FirstName, 100),
		LastName:  c.optional("lastName", in.LastName, 100),
		Email:     c.optional("email", in.Email, 100),
		Phone:     c.optional("phone", in.Phone, 20),
	}
	c.email("email", out.Email)
	return out
}

// CreateContact validates a new contact.
func CreateContact(in ContactRequest) (ContactRequest, error) {
	var c checker
	out := c.contact(in)
	return out, c.err()
}

// UpdateContact validates a contact replacement.
func UpdateContact(in UpdateContactRequest) (UpdateContactRequest, error) {
	var c checker
	c.positive("id", in.Id)
	out := UpdateContactRequest{Id: in.Id, ContactRequest: c.contact(in.ContactRequest)}
	return out, c.err()
}

// SearchContact validates a contact search and applies the paging defaults.
func SearchContact(in SearchContactQuery) (SearchContactRequest, error) {
	var c checker
	out := SearchContactRequest{
		Page:  c.integer("page", in.Page, DefaultPage),
		Size:  c.integer("size", in.Size, DefaultSize),
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
		Phone: strings.TrimSpace(in.Phone),
	}
	if out.Page < 1 {
		c.add("page", "must be greater than or equal to 1")
	} else if out.Size >= 1 && out.Page > math.MaxInt/out.Size {
		// The offset (page-1)*size must not overflow.
		c.add("page", "must be less than or equal to %d", math.MaxInt/out.Size)
	}
	if out.Size < 1 {
		c.add("size", "must be greater than or equal to 1")
	} else if out.Size > MaxSize {
		c.add("size", "must be less than or equal to %d", MaxSize)
	}
	return out, c.err()
}

// Filter converts the search into the storage filter of the given user.
func (r SearchContactRequest) Filter(username string) model.ContactFilter {
	return model.ContactFilter{
		Username: username,
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Offset:   (r.Page - 1) * r.Size,
		Limit:    r.Size,
	}
}
