package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a product, user or order id does not
	// resolve against its store.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned when registration or admin user creation
	// hits the store-level unique constraint on email.
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, deliberately with a single message.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotOwner is returned when a seller tries to modify a product that
	// belongs to someone else.
	ErrNotOwner = errors.New("not the owner of this product")

	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidPrice    = errors.New("invalid price")
)

// ItemError ties a line-item validation failure to the offending product so
// the client can tell which cart entry was rejected.
func ItemError(kind error, productName string) error {
	return fmt.Errorf("%w for product: %s", kind, productName)
}
