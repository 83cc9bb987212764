// internal/domain/user/entity.go
package user

// Role constants for the user's role field
const (
	RoleAdmin    = "admin"
	RoleStandard = "user"
)

// User represents the authenticated identity as the API serializes it
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName returns the user's display name
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Address represents a postal address. Exactly one address per user is
// default; the server enforces that, the client only displays and
// selects.
type Address struct {
	ID           int    `json:"id"`
	UserID       int    `json:"user_id"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	IsDefault    bool   `json:"is_default"`
}
