package intent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/domain"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/repository"
)

// maxLimit caps user supplied "latest N" / "top N" counts
const maxLimit = 1000

// Handler answers one intent
type Handler func(ctx context.Context, store repository.TransactionReader, params Params) (string, error)

// Rule ties trigger phrases to an intent. Triggers are lower-case substrings
// of the question; Pattern, when set, extracts named parameters from the
// original question and must match for the rule to be answerable.
type Rule struct {
	Intent   Intent
	Triggers []string
	Pattern  *regexp.Regexp
	Handle   Handler
}

// Matches reports whether any trigger occurs in the lower-cased question
func (r Rule) Matches(lowered string) bool {
	for _, trigger := range r.Triggers {
		if strings.Contains(lowered, trigger) {
			return true
		}
	}
	return false
}

// Extract pulls the named groups out of the question
func (r Rule) Extract(question string) (Params, error) {
	if r.Pattern == nil {
		return newParams(r.Intent, nil), nil
	}

	match := r.Pattern.FindStringSubmatch(question)
	if match == nil {
		return Params{}, &ParamError{Intent: r.Intent, Param: strings.Join(r.paramNames(), ", ")}
	}

	values := make(map[string]string)
	for i, name := range r.Pattern.SubexpNames() {
		if name != "" {
			values[name] = match[i]
		}
	}
	return newParams(r.Intent, values), nil
}

func (r Rule) paramNames() []string {
	var names []string
	for _, name := range r.Pattern.SubexpNames() {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Parameter patterns. The customer id is the last token of the question.
var (
	latestPattern   = regexp.MustCompile(`(?i)latest transactions(?:\s+(?P<limit>\d+))?`)
	customerPattern = regexp.MustCompile(`(?i)transactions for customer.*?(?P<customer>[^\s?!.]+)[\s?!.]*$`)
	spentPattern    = regexp.MustCompile(`(?i)total spent by.*?(?P<customer>[^\s?!.]+)[\s?!.]*$`)
	locationPattern = regexp.MustCompile(`(?i)customers in\s+(?P<location>.*\S)`)
	minCountPattern = regexp.MustCompile(`(?i)customers with more than\s+(?P<count>\S+)`)
	abovePattern    = regexp.MustCompile(`(?i)transactions above\s+(?P<amount>\S+)`)
	belowPattern    = regexp.MustCompile(`(?i)transactions below\s+(?P<amount>\S+)`)
	topPattern      = regexp.MustCompile(`(?i)top transactions(?:\s+(?P<limit>\d+))?`)
	rangePattern    = regexp.MustCompile(`(?i)transactions between\s+(?P<min>\S+)\s+and\s+(?P<max>\S+)`)
	productPattern  = regexp.MustCompile(`(?i)transactions for product\s+(?P<product>.*\S)`)
	revenuePattern  = regexp.MustCompile(`(?i)total revenue from\s+(?P<product>.*\S)`)
)

// DefaultRules returns the rule table in routing priority order
func DefaultRules() []Rule {
	return []Rule{
		{
			Intent:   AllCustomers,
			Triggers: []string{"all customers", "all customer ids", "show all customer ids"},
			Handle:   answerAllCustomers,
		},
		{Intent: AllTransactions, Triggers: []string{"all transactions"}, Handle: answerAllTransactions},
		{Intent: TotalCustomers, Triggers: []string{"total customers"}, Handle: answerTotalCustomers},
		{Intent: TotalTransactions, Triggers: []string{"total transactions"}, Handle: answerTotalTransactions},
		{
			Intent:   LatestTransactions,
			Triggers: []string{"latest transactions"},
			Pattern:  latestPattern,
			Handle:   answerLatestTransactions,
		},
		{
			Intent:   TransactionsByCustomer,
			Triggers: []string{"transactions for customer"},
			Pattern:  customerPattern,
			Handle:   answerTransactionsByCustomer,
		},
		{
			Intent:   TotalSpentByCustomer,
			Triggers: []string{"total spent by"},
			Pattern:  spentPattern,
			Handle:   answerTotalSpentByCustomer,
		},
		{
			Intent:   CustomersByLocation,
			Triggers: []string{"customers in"},
			Pattern:  locationPattern,
			Handle:   answerCustomersByLocation,
		},
		{
			Intent:   CustomersWithMinTransactions,
			Triggers: []string{"customers with more than"},
			Pattern:  minCountPattern,
			Handle:   answerCustomersWithMinTransactions,
		},
		{
			Intent:   HighestSpendingCustomer,
			Triggers: []string{"highest spending customer"},
			Handle:   answerHighestSpendingCustomer,
		},
		{
			Intent:   TransactionsAboveAmount,
			Triggers: []string{"transactions above"},
			Pattern:  abovePattern,
			Handle:   answerTransactionsAboveAmount,
		},
		{
			Intent:   TransactionsBelowAmount,
			Triggers: []string{"transactions below"},
			Pattern:  belowPattern,
			Handle:   answerTransactionsBelowAmount,
		},
		{
			Intent:   AverageTransactionAmount,
			Triggers: []string{"average transaction amount"},
			Handle:   answerAverageTransactionAmount,
		},
		{
			Intent:   TopTransactions,
			Triggers: []string{"top transactions"},
			Pattern:  topPattern,
			Handle:   answerTopTransactions,
		},
		{
			Intent:   TransactionsInRange,
			Triggers: []string{"transactions between"},
			Pattern:  rangePattern,
			Handle:   answerTransactionsInRange,
		},
		{
			Intent:   TransactionsByProduct,
			Triggers: []string{"transactions for product"},
			Pattern:  productPattern,
			Handle:   answerTransactionsByProduct,
		},
		{
			Intent:   TotalRevenueByProduct,
			Triggers: []string{"total revenue from"},
			Pattern:  revenuePattern,
			Handle:   answerTotalRevenueByProduct,
		},
		{
			Intent:   MostPopularProduct,
			Triggers: []string{"most popular product"},
			Handle:   answerMostPopularProduct,
		},
		{
			Intent:   ProductWithHighestAvgTransaction,
			Triggers: []string{"product with highest average transaction"},
			Handle:   answerProductWithHighestAverage,
		},
	}
}

func answerAllCustomers(ctx context.Context, store repository.TransactionReader, _ Params) (string, error) {
	ids, err := store.ListCustomerIDs(ctx)
	if err != nil {
		return "", err
	}
	return FormatCustomerIDs(ids), nil
}

func answerAllTransactions(ctx context.Context, store repository.TransactionReader, _ Params) (string, error) {
	return transactions(store.ListTransactions(ctx))
}

func answerTotalCustomers(ctx context.Context, store repository.TransactionReader, _ Params) (string, error) {
	total, err := store.CountCustomers(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Total customers: %d", total), nil
}

func answerTotalTransactions(ctx context.Context, store repository.TransactionReader, _ Params) (string, error) {
	total, err := store.CountTransactions(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Total transactions: %d", total), nil
}

func answerLatestTransactions(ctx context.Context, store repository.TransactionReader, p Params) (string, error) {
	limit, err := p.IntOr("limit", repository.DefaultLatestLimit)
	if err != nil {
		return "", err
	}
	return transactions(store.LatestTransactions(ctx, limit))
}

func answerTransactionsByCustomer(ctx context.Context, store repository.TransactionReader, p Params) (string, error) {
	customerID, err := p.Int("customer")
	if err != nil {
		return "", err
	}
	return transactions(store.TransactionsByCustomer(ctx, customerID))
}

func answerTotalSpentByCustomer(ctx context.Context, store repository.TransactionReader, p Params) (string, error) {
	customerID, err := p.Int("customer")
	if err != nil {
		return "", err
	}

	total, err := store.TotalSpentByCustomer(ctx, customerID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Total spent by customer %d: %s", customerID, FormatMoney(total)), nil
}

func answerCustomersByLocation(ctx context.Context, store repository.TransactionReader, p Params) (string, error) {
	location, err := p.Text("location")
	if err != nil {
		return "", err
	}
	return transactions(store.CustomersByLocation(ctx, location))
}

func answerCustomersWithMinTransactions(ctx context.Context, store repository.TransactionReader, p Params) (string, error) {
	n, err := p.Int("count")
	if err != nil {
		return "", err
	}
	return transactions(store.CustomersWithMinTransactions(ctx, int(n)))
}

func answerHighestSpendingCustomer(ctx context.Context, store repository.TransactionReader, _ Params) (string, error) {
	customer, err := store.HighestSpendingCustomer(ctx)
	if err != nil {
		return "", err
	}
	if customer == nil {
		return NoCustomersMessage, nil
	}
	return fmt.Sprintf("Highest spending customer ID: %d (Total: %s)", customer.CustomerID, FormatMoney(customer.Total)), nil
}

func answerTransactionsAboveAmount(ctx context.Context, store repository.TransactionReader, p Params) (string, error) {
	amount, err := p.Amount("amount")
	if err != nil {
		return "", err
	}
	return transactions(store.TransactionsAboveAmount(ctx, amount))
}

func answerTransactionsBelowAmount(ctx context.Context, store repository.TransactionReader, p Params) (string, error) {
	amount, err := p.Amount("amount")
	if err != nil {
		return "", err
	}
	return transactions(store.TransactionsBelowAmount(ctx, amount))
}

func answerAverageTransactionAmount(ctx context.Context, store repository.TransactionReader, _ Params) (string, error) {
	average, err := store.AverageTransactionAmount(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("The average transaction amount is %s", FormatMoney(average)), nil
}

func answerTopTransactions(ctx context.Context, store repository.TransactionReader, p Params) (string, error) {
	limit, err := p.IntOr("limit", repository.DefaultTopLimit)
	if err != nil {
		return "", err
	}
	return transactions(store.TopTransactions(ctx, limit))
}

func answerTransactionsInRange(ctx context.Context, store repository.TransactionReader, p Params) (string, error) {
	minAmount, err := p.Amount("min")
	if err != nil {
		return "", err
	}
	maxAmount, err := p.Amount("max")
	if err != nil {
		return "", err
	}
	return transactions(store.TransactionsInRange(ctx, minAmount, maxAmount))
}

func answerTransactionsByProduct(ctx context.Context, store repository.TransactionReader, p Params) (string, error) {
	product, err := p.Text("product")
	if err != nil {
		return "", err
	}
	return transactions(store.TransactionsByProduct(ctx, product))
}

func answerTotalRevenueByProduct(ctx context.Context, store repository.TransactionReader, p Params) (string, error) {
	product, err := p.Text("product")
	if err != nil {
		return "", err
	}

	total, err := store.TotalRevenueByProduct(ctx, product)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Total revenue from %s: %s", domain.NormalizeProduct(product), FormatMoney(total)), nil
}

func answerMostPopularProduct(ctx context.Context, store repository.TransactionReader, _ Params) (string, error) {
	product, err := store.MostPopularProduct(ctx)
	if err != nil {
		return "", err
	}
	if product == nil {
		return NoProductsMessage, nil
	}
	return fmt.Sprintf("Most popular product: %s (Transactions: %d)", product.Product, product.Count), nil
}

func answerProductWithHighestAverage(ctx context.Context, store repository.TransactionReader, _ Params) (string, error) {
	product, err := store.ProductWithHighestAverage(ctx)
	if err != nil {
		return "", err
	}
	if product == nil {
		return NoProductsMessage, nil
	}
	return fmt.Sprintf("Product with highest average transaction: %s (Average: %s)", product.Product, FormatMoney(product.Average)), nil
}

// transactions adapts a record query to a handler result
func transactions(records []domain.Transaction, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return FormatTransactions(records), nil
}
