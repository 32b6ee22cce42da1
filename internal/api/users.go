package api

import (
	"github.com/gin-gonic/gin"
	"gitlab.com/dirk.krummacker/contact-management/internal/validation"
	pub "gitlab.com/dirk.krummacker/contact-management/pkg/model"
)

// register creates a user. The password is never part of the response.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/users --request "POST" --header "Content-Type: application/json" --data '{"username": "samantha", "password": "secret", "name": "samantha harris"}'
func (h *handlers) register(c *gin.Context) {
	var req validation.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, validation.InvalidBody())
		return
	}
	user, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	h.metrics.UsersRegistered.Inc()
	ok(c, pub.User{Username: user.Username, Name: user.Name})
}

// login starts a session and responds with its token.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/users/login --request "POST" --header "Content-Type: application/json" --data '{"username": "samantha", "password": "secret"}'
func (h *handlers) login(c *gin.Context) {
	var req validation.LoginUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, validation.InvalidBody())
		return
	}
	token, err := h.users.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, pub.Token{Token: token})
}

// getCurrentUser responds with the authenticated user including its token.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/users/current --header "Authorization: 1b0e2c3a-..."
func (h *handlers) getCurrentUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), currentUser(c).Username)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, pub.User{Username: user.Username, Name: user.Name, Token: user.Token})
}

// updateCurrentUser changes name and/or password of the authenticated user. Fields that are not
// in the JSON stay as they are.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/users/current --request "PATCH" --header "Authorization: 1b0e2c3a-..." --data '{"name": "sam"}'
func (h *handlers) updateCurrentUser(c *gin.Context) {
	var req validation.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, validation.InvalidBody())
		return
	}
	user, err := h.users.Update(c.Request.Context(), currentUser(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, pub.User{Username: user.Username, Name: user.Name})
}

// logout ends the session of the authenticated user.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/users/logout --request "DELETE" --header "Authorization: 1b0e2c3a-..."
func (h *handlers) logout(c *gin.Context) {
	if err := h.users.Logout(c.Request.Context(), currentUser(c).Username); err != nil {
		fail(c, err)
		return
	}
	ok(c, "OK")
}
