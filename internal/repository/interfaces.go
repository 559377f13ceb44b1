package repository

import (
	"context"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/domain"
)

// Default limits used by the chat intents when the question names none
const (
	DefaultLatestLimit = 10
	DefaultTopLimit    = 5
)

// TransactionReader is the read-only query catalog the chatbot answers from.
// Lookups that find nothing return an empty slice, zero or a nil aggregate;
// an error always means the store itself failed.
type TransactionReader interface {
	// ListCustomerIDs returns the CustomerID of every record, duplicates included
	ListCustomerIDs(ctx context.Context) ([]int64, error)

	// ListTransactions returns every record
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// CountCustomers returns the number of distinct customers
	CountCustomers(ctx context.Context) (int64, error)

	// CountTransactions returns the number of records
	CountTransactions(ctx context.Context) (int64, error)

	// LatestTransactions returns up to limit records, newest PurchaseDate first.
	// A limit below 1 returns no records.
	LatestTransactions(ctx context.Context, limit int) ([]domain.Transaction, error)

	TransactionsByCustomer(ctx context.Context, customerID int64) ([]domain.Transaction, error)

	// TotalSpentByCustomer sums TransactionAmount for the customer, 0 when unknown
	TotalSpentByCustomer(ctx context.Context, customerID int64) (float64, error)

	// CustomersByLocation returns the records whose Location equals location
	CustomersByLocation(ctx context.Context, location string) ([]domain.Transaction, error)

	// CustomersWithMinTransactions returns every record of the customers that
	// have strictly more than n transactions
	CustomersWithMinTransactions(ctx context.Context, n int) ([]domain.Transaction, error)

	// HighestSpendingCustomer returns nil when there are no records
	HighestSpendingCustomer(ctx context.Context) (*domain.CustomerSpend, error)

	TransactionsAboveAmount(ctx context.Context, amount float64) ([]domain.Transaction, error)
	TransactionsBelowAmount(ctx context.Context, amount float64) ([]domain.Transaction, error)

	// TransactionsInRange is inclusive on both ends
	TransactionsInRange(ctx context.Context, minAmount, maxAmount float64) ([]domain.Transaction, error)

	// AverageTransactionAmount returns 0 when there are no records
	AverageTransactionAmount(ctx context.Context) (float64, error)

	// TopTransactions returns up to limit records, largest amount first.
	// A limit below 1 returns no records.
	TopTransactions(ctx context.Context, limit int) ([]domain.Transaction, error)

	// TransactionsByProduct matches the normalized product name exactly
	TransactionsByProduct(ctx context.Context, product string) ([]domain.Transaction, error)

	// TotalRevenueByProduct matches the normalized product name exactly, 0 when unknown
	TotalRevenueByProduct(ctx context.Context, product string) (float64, error)

	// MostPopularProduct returns nil when there are no records
	MostPopularProduct(ctx context.Context) (*domain.ProductCount, error)

	// ProductWithHighestAverage returns nil when there are no records
	ProductWithHighestAverage(ctx context.Context) (*domain.ProductAverage, error)
}

// TransactionWriter is used by the ingestion worker only
type TransactionWriter interface {
	// InsertBatch stores the transactions, replacing records with the same OrderID
	InsertBatch(ctx context.Context, transactions []*domain.Transaction) (int, error)

	// InitSchema creates tables or indexes if they don't exist
	InitSchema(ctx context.Context) error
}

// TransactionRepository is implemented by every store backend
type TransactionRepository interface {
	TransactionReader
	TransactionWriter

	// Ping checks if the store connection is alive
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources
	Close() error
}
