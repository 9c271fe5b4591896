package api

import (
	"strings"

	"github.com/google/uuid"
)

// Credentials are held only for the duration of a login request.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Empty reports whether either field is missing.
func (c Credentials) Empty() bool {
	return len(c.Username) == 0 || len(c.Password) == 0
}

// UserData is the profile returned by GET /user.
type UserData struct {
	UUID      string `json:"uuid"`
	Image     string `json:"image"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

func (u UserData) FullName() string {
	return u.FirstName + " " + u.LastName
}

// ShortID returns the first group of a well-formed UUID, or the raw value.
func (u UserData) ShortID() string {
	id, err := uuid.Parse(strings.TrimSpace(u.UUID))
	if err != nil {
		return u.UUID
	}
	return strings.SplitN(id.String(), "-", 2)[0]
}
