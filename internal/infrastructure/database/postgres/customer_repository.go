package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"loan-ledger/internal/domain/customer"
	"loan-ledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const (
	insertCustomerSQL = `
        INSERT INTO customers (customer_id, name, created_at, updated_at)
        VALUES ($1, $2, NOW(), NOW())
        RETURNING created_at, updated_at`

	selectCustomerByIDSQL = `
        SELECT customer_id, name, created_at, updated_at
        FROM customers
        WHERE customer_id = $1`
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidInput)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new customer", slog.String("customerID", cust.CustomerID))

	start := time.Now()
	err := r.db.QueryRow(ctx, insertCustomerSQL, cust.CustomerID, cust.Name).Scan(&cust.CreatedAt, &cust.UpdatedAt)
	observe("SaveCustomer", start, err)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Customer already exists", slog.String("customerID", cust.CustomerID))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.String("customerID", cust.CustomerID))
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID string) (*customer.Customer, error) {
	var cust customer.Customer

	start := time.Now()
	err := r.db.QueryRow(ctx, selectCustomerByIDSQL, customerID).Scan(
		&cust.CustomerID,
		&cust.Name,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
	observe("FindCustomerByID", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.DebugContext(ctx, "Customer not found", slog.String("customerID", customerID))
			return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		r.logger.ErrorContext(ctx, "Failed to find customer", slog.String("customerID", customerID), slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to find customer: %w", apperrors.ErrDatabase, err)
	}
	return &cust, nil
}
