// Package model contains the JSON documents of the contact management REST API as seen by
// clients.
package model

// Response is the envelope of every successful response.
type Response[T any] struct {
	Data T `json:"data"`
}

// ErrorResponse is the envelope of every failed response.
type ErrorResponse struct {
	Errors string `json:"errors"`
}

// User is a registered user. Token is only present for the current user.
type User struct {
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Token    *string `json:"token,omitempty"`
}

// Token is the result of a login.
type Token struct {
	Token string `json:"token"`
}

// Contact is the data structure for a person that we know.
// All fields with the exception of the Id and FirstName fields are optional.
type Contact struct {
	Id        int64   `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// Address is a postal address of a contact.
type Address struct {
	Id         int64   `json:"id"`
	Street     *string `json:"street,omitempty"`
	City       *string `json:"city,omitempty"`
	Province   *string `json:"province,omitempty"`
	Country    string  `json:"country"`
	PostalCode string  `json:"postalCode"`
}

// Paging describes the position of a page within a search result.
type Paging struct {
	Page       int `json:"page"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// ContactPage is the response of a contact search.
type ContactPage struct {
	Data   []Contact `json:"data"`
	Paging Paging    `json:"paging"`
}
