package customer

import (
	"strings"
	"time"
)

type Customer struct {
	CustomerID string    `json:"customerId"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewCustomer(customerID, name string) *Customer {
	now := time.Now()
	return &Customer{
		CustomerID: strings.TrimSpace(customerID),
		Name:       strings.TrimSpace(name),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
