package devapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jask/idcard/internal/api"
	"github.com/jask/idcard/internal/config"
)

var (
	ErrUnauthorized = errors.New("devapi: unauthorized")
	ErrNotFound     = errors.New("devapi: user not found")
)

type account struct {
	hash    []byte
	profile api.UserData
}

// Directory is the in-memory user table backing the dev server.
type Directory struct {
	byName map[string]account
	byID   map[string]string // uuid -> username
}

// NewDirectory hashes any plain passwords and assigns stable name-based UUIDs.
func NewDirectory(records []config.UserRecord) (*Directory, error) {
	d := &Directory{byName: map[string]account{}, byID: map[string]string{}}
	for _, r := range records {
		name := strings.TrimSpace(r.Username)
		if name == "" {
			return nil, errors.New("user without username")
		}
		if _, dup := d.byName[name]; dup {
			return nil, fmt.Errorf("duplicate user %q", name)
		}
		hash, err := passwordHash(r)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", name, err)
		}
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("idcard:"+name)).String()
		d.byName[name] = account{
			hash: hash,
			profile: api.UserData{
				UUID:      id,
				Image:     r.Image,
				FirstName: r.FirstName,
				LastName:  r.LastName,
				Address:   r.Address,
				Phone:     r.Phone,
			},
		}
		d.byID[id] = name
	}
	return d, nil
}

func passwordHash(r config.UserRecord) ([]byte, error) {
	if r.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(r.PasswordHash)); err != nil {
			return nil, fmt.Errorf("password_hash: %w", err)
		}
		return []byte(r.PasswordHash), nil
	}
	if r.Password == "" {
		return nil, errors.New("password or password_hash required")
	}
	return bcrypt.GenerateFromPassword([]byte(r.Password), bcrypt.DefaultCost)
}

// Authenticate checks the password and returns the user's profile.
func (d *Directory) Authenticate(username, password string) (api.UserData, error) {
	acct, ok := d.byName[username]
	if !ok {
		// same answer as a bad password
		return api.UserData{}, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(password)); err != nil {
		return api.UserData{}, ErrUnauthorized
	}
	return acct.profile, nil
}

func (d *Directory) ByID(id string) (api.UserData, error) {
	name, ok := d.byID[id]
	if !ok {
		return api.UserData{}, ErrNotFound
	}
	return d.byName[name].profile, nil
}
