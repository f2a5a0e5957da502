package basic

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Credentials struct {
	Username string
	Password string
	Roles    []string
}

type account struct {
	username     string
	passwordHash []byte
	roles        []string
}

// Store holds the fixed set of basic-auth principals. Passwords are hashed
// at construction time and the set never changes afterwards.
type Store struct {
	accounts []account
}

func NewStore(credentials ...Credentials) (*Store, error) {
	accounts := make([]account, 0, len(credentials))

	for _, c := range credentials {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errors.Wrapf(err, "could not hash password of user '%s'", c.Username)
		}

		accounts = append(accounts, account{
			username:     c.Username,
			passwordHash: hash,
			roles:        c.Roles,
		})
	}

	return &Store{accounts: accounts}, nil
}

// Verify returns the roles of the matching principal, or false when the
// username is unknown or the password does not match its stored hash.
func (s *Store) Verify(username, password string) ([]string, bool) {
	usernameHash := sha256.Sum256([]byte(username))

	for _, a := range s.accounts {
		expectedUsername := sha256.Sum256([]byte(a.username))

		if subtle.ConstantTimeCompare(usernameHash[:], expectedUsername[:]) != 1 {
			continue
		}

		if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
			return nil, false
		}

		return a.roles, true
	}

	return nil, false
}
