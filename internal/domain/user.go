package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated principal. Authentication itself lives in
// the identity service; this row only carries what the marketplace needs for
// ownership checks and display.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	IsStaff   bool      `json:"is_staff" db:"is_staff"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Principal is the identity attached to a request by the auth middleware.
type Principal struct {
	UserID  uuid.UUID
	IsStaff bool
}

// CanMutate reports whether the principal may modify a listing owned by
// ownerID: the owner themselves or any staff account.
func (p Principal) CanMutate(ownerID uuid.UUID) bool {
	return p.IsStaff || p.UserID == ownerID
}
