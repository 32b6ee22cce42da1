package model

// User is an account that owns contacts. The password is a bcrypt hash and is never serialized.
// A nil Token means that the user is logged out.
type User struct {
	Username string  `json:"username"        db:"username"`
	Password string  `json:"-"               db:"password"`
	Name     string  `json:"name"            db:"name"`
	Token    *string `json:"token,omitempty" db:"token"`
}

// Contact is the data structure for a person that a user knows.
// All fields with the exception of Id, Username and FirstName are optional.
type Contact struct {
	Id        int64   `json:"id"        db:"id"`
	Username  string  `json:"-"         db:"username"`
	FirstName string  `json:"firstName" db:"first_name"`
	LastName  *string `json:"lastName"  db:"last_name"`
	Email     *string `json:"email"     db:"email"`
	Phone     *string `json:"phone"     db:"phone"`
}

// Address is a postal address of a contact. Country and PostalCode are required.
type Address struct {
	Id         int64   `json:"id"         db:"id"`
	ContactId  int64   `json:"-"          db:"contact_id"`
	Street     *string `json:"street"     db:"street"`
	City       *string `json:"city"       db:"city"`
	Province   *string `json:"province"   db:"province"`
	Country    string  `json:"country"    db:"country"`
	PostalCode string  `json:"postalCode" db:"postal_code"`
}

// ContactFilter holds the optional search criteria for contacts of one user. Empty strings mean
// that the criterion is not applied.
type ContactFilter struct {
	Username string
	Name     string
	Email    string
	Phone    string
	Offset   int
	Limit    int
}

// Paging describes the position of a page within a search result.
type Paging struct {
	Page       int `json:"page"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// ContactPage is one page of a contact search.
type ContactPage struct {
	Data   []Contact `json:"data"`
	Paging Paging    `json:"paging"`
}
