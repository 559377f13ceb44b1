package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/domain"
)

const transactionColumns = "customer_id, order_id, product_information, transaction_amount, purchase_date, location"

// Repository implements TransactionRepository for ClickHouse
type Repository struct {
	client *Client
	table  string
	log    *zap.Logger
}

// NewRepository creates a new ClickHouse repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		table:  client.Table(),
		log:    log,
	}
}

// InitSchema creates the transactions table. ReplacingMergeTree keyed on
// order_id collapses redelivered queue messages; reads use FINAL.
func (r *Repository) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		customer_id Int64,
		order_id Int64,
		product_information LowCardinality(String),
		transaction_amount Float64,
		purchase_date DateTime64(3),
		location LowCardinality(String),
		ingested_at DateTime64(3) DEFAULT now64(3)
	) ENGINE = ReplacingMergeTree(ingested_at)
	ORDER BY (order_id)
	PARTITION BY toYYYYMM(purchase_date)
	SETTINGS index_granularity = 8192
	`, r.table)

	if err := r.client.Conn().Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create %s table: %w", r.table, err)
	}

	r.log.Info("ClickHouse schema initialized successfully", zap.String("table", r.table))
	return nil
}

// InsertBatch inserts a batch of transactions into ClickHouse
func (r *Repository) InsertBatch(ctx context.Context, transactions []*domain.Transaction) (int, error) {
	if len(transactions) == 0 {
		return 0, nil
	}

	batch, err := r.client.Conn().PrepareBatch(ctx, fmt.Sprintf("INSERT INTO %s (%s)", r.table, transactionColumns))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare batch: %w", err)
	}

	insertedCount := 0
	for _, txn := range transactions {
		err := batch.Append(
			txn.CustomerID,
			txn.OrderID,
			txn.ProductInformation,
			txn.TransactionAmount,
			txn.PurchaseDate,
			txn.Location,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to append transaction to batch: %w", err)
		}
		insertedCount++
	}

	if err := batch.Send(); err != nil {
		return 0, fmt.Errorf("failed to send batch: %w", err)
	}

	return insertedCount, nil
}

// Ping checks if the ClickHouse connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the ClickHouse connection
func (r *Repository) Close() error {
	return r.client.Close()
}

func (r *Repository) ListCustomerIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	rows, err := r.client.Conn().Query(ctx, fmt.Sprintf("SELECT customer_id FROM %s FINAL", r.table))
	if err != nil {
		return nil, fmt.Errorf("failed to query customer ids: %w", err)
	}
	defer r.closeRows(rows)

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan customer id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer ids: %w", err)
	}

	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func (r *Repository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return r.selectTransactions(ctx, "")
}

func (r *Repository) CountCustomers(ctx context.Context) (int64, error) {
	var count uint64
	query := fmt.Sprintf("SELECT uniqExact(customer_id) FROM %s FINAL", r.table)
	if err := r.client.Conn().QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return int64(count), nil
}

func (r *Repository) CountTransactions(ctx context.Context) (int64, error) {
	var count uint64
	query := fmt.Sprintf("SELECT count() FROM %s FINAL", r.table)
	if err := r.client.Conn().QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return int64(count), nil
}

func (r *Repository) LatestTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	if limit < 1 {
		return []domain.Transaction{}, nil
	}
	return r.selectTransactions(ctx, "ORDER BY purchase_date DESC, order_id ASC LIMIT ?", limit)
}

func (r *Repository) TransactionsByCustomer(ctx context.Context, customerID int64) ([]domain.Transaction, error) {
	return r.selectTransactions(ctx, "WHERE customer_id = ?", customerID)
}

func (r *Repository) TotalSpentByCustomer(ctx context.Context, customerID int64) (float64, error) {
	return r.sumAmount(ctx, "WHERE customer_id = ?", customerID)
}

func (r *Repository) CustomersByLocation(ctx context.Context, location string) ([]domain.Transaction, error) {
	return r.selectTransactions(ctx, "WHERE location = ?", location)
}

func (r *Repository) CustomersWithMinTransactions(ctx context.Context, n int) ([]domain.Transaction, error) {
	where := fmt.Sprintf(
		"WHERE customer_id IN (SELECT customer_id FROM %s FINAL GROUP BY customer_id HAVING count() > ?)",
		r.table)
	return r.selectTransactions(ctx, where, n)
}

func (r *Repository) HighestSpendingCustomer(ctx context.Context) (*domain.CustomerSpend, error) {
	query := fmt.Sprintf(`
		SELECT
			customer_id,
			sum(transaction_amount) AS total
		FROM %s FINAL
		GROUP BY customer_id
		ORDER BY total DESC, customer_id ASC
		LIMIT 1
	`, r.table)

	rows, err := r.client.Conn().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query highest spending customer: %w", err)
	}
	defer r.closeRows(rows)

	if !rows.Next() {
		return nil, rows.Err()
	}

	var result domain.CustomerSpend
	if err := rows.Scan(&result.CustomerID, &result.Total); err != nil {
		return nil, fmt.Errorf("failed to scan highest spending customer: %w", err)
	}
	return &result, nil
}

func (r *Repository) TransactionsAboveAmount(ctx context.Context, amount float64) ([]domain.Transaction, error) {
	return r.selectTransactions(ctx, "WHERE transaction_amount > ?", amount)
}

func (r *Repository) TransactionsBelowAmount(ctx context.Context, amount float64) ([]domain.Transaction, error) {
	return r.selectTransactions(ctx, "WHERE transaction_amount < ?", amount)
}

func (r *Repository) TransactionsInRange(ctx context.Context, minAmount, maxAmount float64) ([]domain.Transaction, error) {
	return r.selectTransactions(ctx, "WHERE transaction_amount >= ? AND transaction_amount <= ?", minAmount, maxAmount)
}

func (r *Repository) AverageTransactionAmount(ctx context.Context) (float64, error) {
	var average float64
	query := fmt.Sprintf("SELECT ifNotFinite(avg(transaction_amount), 0) FROM %s FINAL", r.table)
	if err := r.client.Conn().QueryRow(ctx, query).Scan(&average); err != nil {
		return 0, fmt.Errorf("failed to query average transaction amount: %w", err)
	}
	return average, nil
}

func (r *Repository) TopTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	if limit < 1 {
		return []domain.Transaction{}, nil
	}
	return r.selectTransactions(ctx, "ORDER BY transaction_amount DESC, order_id ASC LIMIT ?", limit)
}

func (r *Repository) TransactionsByProduct(ctx context.Context, product string) ([]domain.Transaction, error) {
	return r.selectTransactions(ctx, "WHERE product_information = ?", domain.NormalizeProduct(product))
}

func (r *Repository) TotalRevenueByProduct(ctx context.Context, product string) (float64, error) {
	return r.sumAmount(ctx, "WHERE product_information = ?", domain.NormalizeProduct(product))
}

func (r *Repository) MostPopularProduct(ctx context.Context) (*domain.ProductCount, error) {
	query := fmt.Sprintf(`
		SELECT
			product_information,
			count() AS total_count
		FROM %s FINAL
		GROUP BY product_information
		ORDER BY total_count DESC, product_information ASC
		LIMIT 1
	`, r.table)

	rows, err := r.client.Conn().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query most popular product: %w", err)
	}
	defer r.closeRows(rows)

	if !rows.Next() {
		return nil, rows.Err()
	}

	var (
		product string
		count   uint64
	)
	if err := rows.Scan(&product, &count); err != nil {
		return nil, fmt.Errorf("failed to scan most popular product: %w", err)
	}
	return &domain.ProductCount{Product: product, Count: int64(count)}, nil
}

func (r *Repository) ProductWithHighestAverage(ctx context.Context) (*domain.ProductAverage, error) {
	query := fmt.Sprintf(`
		SELECT
			product_information,
			avg(transaction_amount) AS average
		FROM %s FINAL
		GROUP BY product_information
		ORDER BY average DESC, product_information ASC
		LIMIT 1
	`, r.table)

	rows, err := r.client.Conn().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query product with highest average: %w", err)
	}
	defer r.closeRows(rows)

	if !rows.Next() {
		return nil, rows.Err()
	}

	var result domain.ProductAverage
	if err := rows.Scan(&result.Product, &result.Average); err != nil {
		return nil, fmt.Errorf("failed to scan product with highest average: %w", err)
	}
	return &result, nil
}

// selectTransactions reads full records; clause is appended after FROM
func (r *Repository) selectTransactions(ctx context.Context, clause string, args ...interface{}) ([]domain.Transaction, error) {
	query := fmt.Sprintf("SELECT %s FROM %s FINAL %s", transactionColumns, r.table, clause)

	transactions := []domain.Transaction{}
	if err := r.client.Conn().Select(ctx, &transactions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	return transactions, nil
}

func (r *Repository) sumAmount(ctx context.Context, where string, args ...interface{}) (float64, error) {
	var total float64
	query := fmt.Sprintf("SELECT sum(transaction_amount) FROM %s FINAL %s", r.table, where)
	if err := r.client.Conn().QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum transaction amounts: %w", err)
	}
	return total, nil
}

func (r *Repository) closeRows(rows driver.Rows) {
	if err := rows.Close(); err != nil {
		r.log.Error("Failed to close rows", zap.Error(err))
	}
}
