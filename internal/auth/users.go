package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/careervisualizer/backend/internal/common"
	"github.com/careervisualizer/backend/internal/models"
)

var (
	ErrNotFound = fmt.Errorf("%w: user not found", common.ErrUnauthorized)
	ErrBadCreds = fmt.Errorf("%w: bad credentials", common.ErrUnauthorized)
)

// UserTable is the read-only email -> user table consulted by /login.
type UserTable struct {
	users map[string]models.User
}

// NewUserTable validates users and indexes them by email.
func NewUserTable(users []models.User) (*UserTable, error) {
	t := &UserTable{users: make(map[string]models.User, len(users))}
	for _, u := range users {
		u.Email = strings.TrimSpace(u.Email)
		if u.Email == "" {
			return nil, fmt.Errorf("user table: empty email")
		}
		if !u.Role.Valid() {
			return nil, fmt.Errorf("user table: %s: unknown role %q", u.Email, u.Role)
		}
		if u.PasswordHash == "" {
			return nil, fmt.Errorf("user table: %s: missing password_hash", u.Email)
		}
		if _, dup := t.users[u.Email]; dup {
			return nil, fmt.Errorf("user table: duplicate email %s", u.Email)
		}
		t.users[u.Email] = u
	}
	return t, nil
}

// Len reports the number of users in the table.
func (t *UserTable) Len() int { return len(t.users) }

func (t *UserTable) ByEmail(email string) (models.User, error) {
	u, ok := t.users[email]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (t *UserTable) CheckPassword(email, pass string) (models.User, error) {
	u, err := t.ByEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(pass)) != nil {
		return models.User{}, ErrBadCreds
	}
	return u, nil
}

type fileEntry struct {
	PasswordHash string      `json:"password_hash"`
	Role         models.Role `json:"role"`
}

// LoadUsersFile reads {"<email>": {"password_hash": ..., "role": ...}}.
func LoadUsersFile(path string) ([]models.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}
	var entries map[string]fileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse users file %s: %w", path, err)
	}
	users := make([]models.User, 0, len(entries))
	for email, e := range entries {
		users = append(users, models.User{Email: email, PasswordHash: e.PasswordHash, Role: e.Role})
	}
	return users, nil
}
