package user

// User represents a user record as exposed by the service.
type User struct {
	ID       string `json:"id"`       // ID is the opaque identifier naming the user
	Name     string `json:"name"`     // Name is the display name
	Email    string `json:"email"`    // Email is the contact address, not validated
	Password string `json:"password"` // Password is sample data and is returned as-is
}

// Sample returns the fixed example record served by the data endpoint.
// Every call builds a fresh value, so callers may modify the result freely.
func Sample() User {
	return User{
		ID:       "1",
		Name:     "john doe",
		Email:    "john.doe@example.com",
		Password: "password",
	}
}
