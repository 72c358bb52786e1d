// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Role defines the access level of a user account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// StartingBalance is credited to every account at registration.
var StartingBalance = decimal.NewFromInt(2000)

// User represents a registered account. Balance is the wallet: the single
// mutable monetary field, kept >= 0 by the ledger store.
type User struct {
	ID           string          `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Email        string          `db:"email" json:"email"`
	PasswordHash string          `db:"password_hash" json:"-"`
	Role         Role            `db:"role" json:"role"`
	Balance      decimal.Decimal `db:"balance" json:"wallet"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// NewUser creates a new User instance with the fixed starting balance.
func NewUser(name, email, passwordHash string, role Role) *User {
	return &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Balance:      StartingBalance,
		CreatedAt:    time.Now().UTC(),
	}
}

// IsAdmin reports whether the account may settle bets.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
