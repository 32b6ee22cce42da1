package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gitlab.com/dirk.krummacker/contact-management/internal/validation"
)

// createContact inserts the contact specified in the request's JSON for the authenticated user.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/contacts --request "POST" --header "Authorization: 1b0e2c3a-..." --data '{"firstName": "Erika", "lastName": "Mustermann", "email": "erika@example.com", "phone": "+49 0815 4711"}'
func (h *handlers) createContact(c *gin.Context) {
	var req validation.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, validation.InvalidBody())
		return
	}
	contact, err := h.contacts.Create(c.Request.Context(), currentUser(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, contact)
}

// searchContacts responds with one page of the contacts of the authenticated user.
//
// The URL parameter 'name' matches any part of the first name or the last name, 'email' and
// 'phone' match any part of the respective value. All given parameters must match.
//
// The URL parameter 'page' selects the page, starting at 1, and 'size' the number of contacts
// per page, 10 by default and at most 100.
//
// REST API calls:
//
//	> curl "http://localhost:8080/api/contacts" --header "Authorization: 1b0e2c3a-..."
//	> curl "http://localhost:8080/api/contacts?name=musterm&page=2&size=20" --header "Authorization: 1b0e2c3a-..."
func (h *handlers) searchContacts(c *gin.Context) {
	var query validation.SearchContactQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		fail(c, validation.InvalidQuery())
		return
	}
	page, err := h.contacts.Search(c.Request.Context(), currentUser(c), query)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// getContact responds with the contact whose id matches the URL, if the authenticated user owns
// it.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/contacts/56 --header "Authorization: 1b0e2c3a-..."
func (h *handlers) getContact(c *gin.Context) {
	contactId, err := validation.ID("contactId", c.Param("contactId"))
	if err != nil {
		fail(c, err)
		return
	}
	contact, err := h.contacts.Get(c.Request.Context(), currentUser(c), contactId)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, contact)
}

// updateContact replaces all editable fields of the contact whose id matches the URL.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/contacts/56 --request "PUT" --header "Authorization: 1b0e2c3a-..." --data '{"firstName": "Rudi", "phone": "81970"}'
func (h *handlers) updateContact(c *gin.Context) {
	contactId, err := validation.ID("contactId", c.Param("contactId"))
	if err != nil {
		fail(c, err)
		return
	}
	req := validation.UpdateContactRequest{Id: contactId}
	if err := c.ShouldBindJSON(&req.ContactRequest); err != nil {
		fail(c, validation.InvalidBody())
		return
	}
	contact, err := h.contacts.Update(c.Request.Context(), currentUser(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, contact)
}

// deleteContact deletes the contact whose id matches the URL together with its addresses.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/contacts/56 --request "DELETE" --header "Authorization: 1b0e2c3a-..."
func (h *handlers) deleteContact(c *gin.Context) {
	contactId, err := validation.ID("contactId", c.Param("contactId"))
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.contacts.Remove(c.Request.Context(), currentUser(c), contactId); err != nil {
		fail(c, err)
		return
	}
	ok(c, "OK")
}
