package customer

import (
	"context"
)

type CustomerRepository interface {
	// Save inserts a new customer. An existing id yields
	// apperrors.ErrAlreadyExists.
	Save(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID string) (*Customer, error)
}
