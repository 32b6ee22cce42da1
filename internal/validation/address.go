package validation

// AddressRequest holds the editable fields of an address.
type AddressRequest struct {
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	Country    string  `json:"country"`
	PostalCode string  `json:"postalCode"`
}

// UpdateAddressRequest is a full replacement of the editable fields of the address with Id.
type UpdateAddressRequest struct {
	Id int64 `json:"-"`
	AddressRequest
}

func (c *checker) address(in AddressRequest) AddressRequest {
	return AddressRequest{
		Street:     c.optional("street", in.Street, 255),
		City:       c.optional("city", in.City, 100),
		Province:   c.optional("province", in.Province, 100),
		Country:    c.required("country", in.Country, 100),
		PostalCode: c.required("postalCode", in.PostalCode, 10),
	}
}

// CreateAddress validates a new address.
func CreateAddress(in AddressRequest) (AddressRequest, error) {
	var c checker
	out := c.address(in)
	return out, c.err()
}

// UpdateAddress validates an address replacement.
func UpdateAddress(in UpdateAddressRequest) (UpdateAddressRequest, error) {
	var c checker
	c.positive("id", in.Id)
	out := UpdateAddressRequest{Id: in.Id, AddressRequest: c.address(in.AddressRequest)}
	return out, c.err()
}
