package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"loan-ledger/internal/event"
	"loan-ledger/internal/infrastructure/monitoring"
	"loan-ledger/internal/pkg/apperrors"
)

const customerNotFound = "Customer not found by repository"

type CustomerService interface {
	// EnsureCustomer returns the customer with the given id, creating it
	// with name when absent. The bool reports whether it was created.
	EnsureCustomer(ctx context.Context, customerID, name string) (*Customer, bool, error)
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	pub    event.EventPublisher
	logger *slog.Logger
}

// NewCustomerService builds the service. A nil publisher disables
// customer events.
func NewCustomerService(repo CustomerRepository, eventPublisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("No logger provided to NewCustomerService, using default stderr handler")
	}

	return &customerService{
		repo:   repo,
		pub:    eventPublisher,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func NewCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID: cust.CustomerID,
		Name:       cust.Name,
		CreatedAt:  cust.CreatedAt,
	}
}

func (s *customerService) EnsureCustomer(ctx context.Context, customerID, name string) (*Customer, bool, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		s.logger.WarnContext(ctx, "Validation failed: customer id is empty")
		return nil, false, apperrors.NewValidationError("customerId", "must not be empty")
	}
	logger := s.logger.With(slog.String("customerID", customerID))

	existing, err := s.repo.FindByID(ctx, customerID)
	if err == nil {
		logger.DebugContext(ctx, "Customer already exists")
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, false, fmt.Errorf("failed to look up customer %s: %w", customerID, err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		logger.WarnContext(ctx, "Validation failed: name is required to create a customer")
		return nil, false, apperrors.NewValidationError("customerName", "is required when the customer does not exist")
	}

	cust := NewCustomer(customerID, name)
	if err := s.repo.Save(ctx, cust); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			// Lost a race with a concurrent create; the row is there now.
			logger.InfoContext(ctx, "Customer created concurrently, reloading")
			existing, findErr := s.repo.FindByID(ctx, customerID)
			if findErr != nil {
				return nil, false, fmt.Errorf("failed to reload customer %s: %w", customerID, findErr)
			}
			return existing, false, nil
		}
		logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, false, fmt.Errorf("failed to save new customer: %w", err)
	}

	monitoring.RecordCustomerCreated()
	logger.InfoContext(ctx, "Successfully created new customer")
	s.publishCreated(ctx, logger, cust)
	return cust, true, nil
}

func (s *customerService) publishCreated(ctx context.Context, logger *slog.Logger, cust *Customer) {
	if s.pub == nil {
		return
	}
	createdEvent := event.CustomerCreatedEvent{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(cust),
	}
	if err := s.pub.PublishCustomerCreated(ctx, createdEvent); err != nil {
		logger.ErrorContext(ctx, "Customer created, but FAILED to publish creation event", slog.Any("error", err))
	}
}

func (s *customerService) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	logger := s.logger.With(slog.String("customerID", customerID))
	logger.DebugContext(ctx, "Getting customer by ID")

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
			return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}

		logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}

	return cust, nil
}
