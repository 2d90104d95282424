package models

import (
	"time"
)

// IssuedToken is a signed token together with its expiration moment
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}
