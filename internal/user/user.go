package user

// User is an account holder. Google-federated accounts have GoogleID set
// and may have no password hash.
type User struct {
	ID        int     `json:"userId"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password,omitempty"`
	FirstName string  `json:"firstName,omitempty"`
	LastName  string  `json:"lastName,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Address   string  `json:"address,omitempty"`
	GoogleID  *string `json:"googleId,omitempty"`
	Picture   *string `json:"picture,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

// FullName returns the display name used on billing prefills.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Username
	}
}
