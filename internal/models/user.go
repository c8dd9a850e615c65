package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered employee. The face descriptor and reference
// image are captured at registration and stored as text; they are not
// consulted during login.
type User struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password_hash"` // Hidden from JSON responses
	FaceDescriptor *string   `json:"-" db:"face_descriptor"`
	FaceImage      *string   `json:"-" db:"face_image"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
