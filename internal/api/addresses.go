package api

import (
	"github.com/gin-gonic/gin"
	"gitlab.com/dirk.krummacker/contact-management/internal/validation"
)

// addressPath parses the contact id and, if wanted, the address id of the URL.
func addressPath(c *gin.Context, withAddress bool) (contactId int64, addressId int64, err error) {
	contactId, err = validation.ID("contactId", c.Param("contactId"))
	if err != nil || !withAddress {
		return contactId, 0, err
	}
	addressId, err = validation.ID("addressId", c.Param("addressId"))
	return contactId, addressId, err
}

// createAddress adds the address specified in the request's JSON to a contact.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/contacts/56/addresses --request "POST" --header "Authorization: 1b0e2c3a-..." --data '{"street": "Hauptstraße 1", "city": "Berlin", "country": "Germany", "postalCode": "10115"}'
func (h *handlers) createAddress(c *gin.Context) {
	contactId, _, err := addressPath(c, false)
	if err != nil {
		fail(c, err)
		return
	}
	var req validation.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, validation.InvalidBody())
		return
	}
	address, err := h.addresses.Create(c.Request.Context(), currentUser(c), contactId, req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, address)
}

// listAddresses responds with all addresses of a contact.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/contacts/56/addresses --header "Authorization: 1b0e2c3a-..."
func (h *handlers) listAddresses(c *gin.Context) {
	contactId, _, err := addressPath(c, false)
	if err != nil {
		fail(c, err)
		return
	}
	addresses, err := h.addresses.List(c.Request.Context(), currentUser(c), contactId)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, addresses)
}

// getAddress responds with one address of a contact.
func (h *handlers) getAddress(c *gin.Context) {
	contactId, addressId, err := addressPath(c, true)
	if err != nil {
		fail(c, err)
		return
	}
	address, err := h.addresses.Get(c.Request.Context(), currentUser(c), contactId, addressId)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, address)
}

// updateAddress replaces all editable fields of one address of a contact.
func (h *handlers) updateAddress(c *gin.Context) {
	contactId, addressId, err := addressPath(c, true)
	if err != nil {
		fail(c, err)
		return
	}
	req := validation.UpdateAddressRequest{Id: addressId}
	if err := c.ShouldBindJSON(&req.AddressRequest); err != nil {
		fail(c, validation.InvalidBody())
		return
	}
	address, err := h.addresses.Update(c.Request.Context(), currentUser(c), contactId, req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, address)
}

// deleteAddress deletes one address of a contact.
func (h *handlers) deleteAddress(c *gin.Context) {
	contactId, addressId, err := addressPath(c, true)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.addresses.Remove(c.Request.Context(), currentUser(c), contactId, addressId); err != nil {
		fail(c, err)
		return
	}
	ok(c, "OK")
}
