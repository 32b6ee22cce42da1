package validation

// RegisterUserRequest is the body of a registration.
type RegisterUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginUserRequest is the body of a login.
type LoginUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateUserRequest is the body of a partial user update. Nil fields stay untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// RegisterUser validates a registration.
func RegisterUser(in RegisterUserRequest) (RegisterUserRequest, error) {
	var c checker
	out := RegisterUserRequest{
		Username: c.required("username", in.Username, 100),
		Name:     c.required("name", in.Name, 100),
	}
	// Passwords are not trimmed, leading and trailing blanks are significant.
	out.Password = in.Password
	if in.Password == "" {
		c.add("password", "is required")
	} else {
		c.minLength("password", in.Password, 6)
		c.maxLength("password", in.Password, 100)
	}
	return out, c.err()
}

// LoginUser validates a login.
func LoginUser(in LoginUserRequest) (LoginUserRequest, error) {
	var c checker
	out := LoginUserRequest{
		Username: c.required("username", in.Username, 100),
		Password: in.Password,
	}
	if in.Password == "" {
		c.add("password", "is required")
	} else {
		c.maxLength("password", in.Password, 100)
	}
	return out, c.err()
}

// UpdateUser validates a partial user update.
func UpdateUser(in UpdateUserRequest) (UpdateUserRequest, error) {
	var c checker
	out := UpdateUserRequest{
		Name: c.present("name", in.Name, 1, 100),
	}
	if in.Password != nil {
		password := *in.Password
		if password == "" {
			c.add("password", "is not allowed to be empty")
		} else {
			c.minLength("password", password, 6)
			c.maxLength("password", password, 100)
		}
		out.Password = &password
	}
	return out, c.err()
}
