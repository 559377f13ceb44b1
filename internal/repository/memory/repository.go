package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/domain"
)

// Repository keeps transactions in process memory. It answers every query the
// same way the document store does and is safe for concurrent use.
type Repository struct {
	mu           sync.RWMutex
	transactions []domain.Transaction
	log          *zap.Logger
}

// NewRepository creates a repository seeded with the given transactions
func NewRepository(log *zap.Logger, seed ...domain.Transaction) *Repository {
	transactions := make([]domain.Transaction, len(seed))
	copy(transactions, seed)

	return &Repository{
		transactions: transactions,
		log:          log,
	}
}

// InitSchema is a no-op; there is nothing to create
func (r *Repository) InitSchema(ctx context.Context) error {
	return nil
}

// InsertBatch upserts the transactions keyed by OrderID
func (r *Repository) InsertBatch(ctx context.Context, transactions []*domain.Transaction) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := make(map[int64]int, len(r.transactions))
	for i, txn := range r.transactions {
		index[txn.OrderID] = i
	}

	for _, txn := range transactions {
		if i, ok := index[txn.OrderID]; ok {
			r.transactions[i] = *txn
			continue
		}
		index[txn.OrderID] = len(r.transactions)
		r.transactions = append(r.transactions, *txn)
	}

	return len(transactions), nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return nil
}

func (r *Repository) Close() error {
	r.log.Info("Closing in-memory store", zap.Int("transactions", r.Len()))
	return nil
}

// Len returns the number of stored transactions
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.transactions)
}

func (r *Repository) ListCustomerIDs(ctx context.Context) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.transactions))
	for _, txn := range r.transactions {
		ids = append(ids, txn.CustomerID)
	}
	return ids, nil
}

func (r *Repository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return r.filter(func(domain.Transaction) bool { return true }), nil
}

func (r *Repository) CountCustomers(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[int64]struct{})
	for _, txn := range r.transactions {
		seen[txn.CustomerID] = struct{}{}
	}
	return int64(len(seen)), nil
}

func (r *Repository) CountTransactions(ctx context.Context) (int64, error) {
	return int64(r.Len()), nil
}

func (r *Repository) LatestTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	all := r.filter(func(domain.Transaction) bool { return true })
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].PurchaseDate.After(all[j].PurchaseDate)
	})
	return head(all, limit), nil
}

func (r *Repository) TransactionsByCustomer(ctx context.Context, customerID int64) ([]domain.Transaction, error) {
	return r.filter(func(txn domain.Transaction) bool { return txn.CustomerID == customerID }), nil
}

func (r *Repository) TotalSpentByCustomer(ctx context.Context, customerID int64) (float64, error) {
	matches := r.filter(func(txn domain.Transaction) bool { return txn.CustomerID == customerID })
	return sumAmounts(matches).InexactFloat64(), nil
}

func (r *Repository) CustomersByLocation(ctx context.Context, location string) ([]domain.Transaction, error) {
	return r.filter(func(txn domain.Transaction) bool { return txn.Location == location }), nil
}

func (r *Repository) CustomersWithMinTransactions(ctx context.Context, n int) ([]domain.Transaction, error) {
	all := r.filter(func(domain.Transaction) bool { return true })

	counts := make(map[int64]int)
	for _, txn := range all {
		counts[txn.CustomerID]++
	}

	matches := make([]domain.Transaction, 0)
	for _, txn := range all {
		if counts[txn.CustomerID] > n {
			matches = append(matches, txn)
		}
	}
	return matches, nil
}

func (r *Repository) HighestSpendingCustomer(ctx context.Context) (*domain.CustomerSpend, error) {
	all := r.filter(func(domain.Transaction) bool { return true })
	if len(all) == 0 {
		return nil, nil
	}

	totals := make(map[int64]decimal.Decimal)
	for _, txn := range all {
		totals[txn.CustomerID] = totals[txn.CustomerID].Add(decimal.NewFromFloat(txn.TransactionAmount))
	}

	var best *domain.CustomerSpend
	var bestTotal decimal.Decimal
	for id, total := range totals {
		// ties go to the lowest customer id, matching the store sort order
		if best == nil || total.GreaterThan(bestTotal) || (total.Equal(bestTotal) && id < best.CustomerID) {
			best = &domain.CustomerSpend{CustomerID: id}
			bestTotal = total
		}
	}
	best.Total = bestTotal.InexactFloat64()
	return best, nil
}

func (r *Repository) TransactionsAboveAmount(ctx context.Context, amount float64) ([]domain.Transaction, error) {
	return r.filter(func(txn domain.Transaction) bool { return txn.TransactionAmount > amount }), nil
}

func (r *Repository) TransactionsBelowAmount(ctx context.Context, amount float64) ([]domain.Transaction, error) {
	return r.filter(func(txn domain.Transaction) bool { return txn.TransactionAmount < amount }), nil
}

func (r *Repository) TransactionsInRange(ctx context.Context, minAmount, maxAmount float64) ([]domain.Transaction, error) {
	return r.filter(func(txn domain.Transaction) bool {
		return txn.TransactionAmount >= minAmount && txn.TransactionAmount <= maxAmount
	}), nil
}

func (r *Repository) AverageTransactionAmount(ctx context.Context) (float64, error) {
	all := r.filter(func(domain.Transaction) bool { return true })
	if len(all) == 0 {
		return 0, nil
	}
	return sumAmounts(all).Div(decimal.NewFromInt(int64(len(all)))).InexactFloat64(), nil
}

func (r *Repository) TopTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	all := r.filter(func(domain.Transaction) bool { return true })
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].TransactionAmount > all[j].TransactionAmount
	})
	return head(all, limit), nil
}

func (r *Repository) TransactionsByProduct(ctx context.Context, product string) ([]domain.Transaction, error) {
	name := domain.NormalizeProduct(product)
	return r.filter(func(txn domain.Transaction) bool { return txn.ProductInformation == name }), nil
}

func (r *Repository) TotalRevenueByProduct(ctx context.Context, product string) (float64, error) {
	matches, _ := r.TransactionsByProduct(ctx, product)
	return sumAmounts(matches).InexactFloat64(), nil
}

func (r *Repository) MostPopularProduct(ctx context.Context) (*domain.ProductCount, error) {
	groups := r.groupByProduct()
	if len(groups) == 0 {
		return nil, nil
	}

	var best *domain.ProductCount
	for product, amounts := range groups {
		count := int64(len(amounts))
		if best == nil || count > best.Count || (count == best.Count && product < best.Product) {
			best = &domain.ProductCount{Product: product, Count: count}
		}
	}
	return best, nil
}

func (r *Repository) ProductWithHighestAverage(ctx context.Context) (*domain.ProductAverage, error) {
	groups := r.groupByProduct()
	if len(groups) == 0 {
		return nil, nil
	}

	var best *domain.ProductAverage
	var bestAverage decimal.Decimal
	for product, amounts := range groups {
		total := decimal.Zero
		for _, amount := range amounts {
			total = total.Add(decimal.NewFromFloat(amount))
		}
		average := total.Div(decimal.NewFromInt(int64(len(amounts))))

		if best == nil || average.GreaterThan(bestAverage) || (average.Equal(bestAverage) && product < best.Product) {
			best = &domain.ProductAverage{Product: product}
			bestAverage = average
		}
	}
	best.Average = bestAverage.InexactFloat64()
	return best, nil
}

// filter returns a copy of the matching transactions in insertion order
func (r *Repository) filter(keep func(domain.Transaction) bool) []domain.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]domain.Transaction, 0)
	for _, txn := range r.transactions {
		if keep(txn) {
			matches = append(matches, txn)
		}
	}
	return matches
}

func (r *Repository) groupByProduct() map[string][]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	groups := make(map[string][]float64)
	for _, txn := range r.transactions {
		groups[txn.ProductInformation] = append(groups[txn.ProductInformation], txn.TransactionAmount)
	}
	return groups
}

func sumAmounts(transactions []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range transactions {
		total = total.Add(decimal.NewFromFloat(txn.TransactionAmount))
	}
	return total
}

func head(transactions []domain.Transaction, limit int) []domain.Transaction {
	if limit < 1 {
		return []domain.Transaction{}
	}
	if len(transactions) > limit {
		return transactions[:limit]
	}
	return transactions
}
