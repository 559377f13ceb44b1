package intent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/domain"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/repository/memory"
)

var baseDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func txn(customerID, orderID int64, product string, amount float64, day int, location string) domain.Transaction {
	return domain.Transaction{
		CustomerID:         customerID,
		OrderID:            orderID,
		ProductInformation: product,
		TransactionAmount:  amount,
		PurchaseDate:       baseDate.AddDate(0, 0, day),
		Location:           location,
	}
}

func newTestRouter(seed ...domain.Transaction) *Router {
	return NewRouter(memory.NewRepository(zap.NewNop(), seed...), zap.NewNop())
}

func fixtureRouter() *Router {
	return newTestRouter(
		txn(1023, 1, "Product A", 10.00, 0, "Berlin"),
		txn(1023, 2, "Product A", 20.50, 3, "Berlin"),
		txn(1023, 3, "Product B", 5.25, 1, "Berlin"),
		txn(1024, 4, "Product A", 100.00, 5, "Paris"),
		txn(1024, 5, "Product C", 40.00, 2, "Paris"),
		txn(1025, 6, "Product B", 7.75, 4, "New York"),
	)
}

func TestRouter_Respond_Sentences(t *testing.T) {
	router := fixtureRouter()

	tests := []struct {
		question   string
		wantIntent Intent
		want       string
	}{
		{"How much is the total spent by customer 1023?", TotalSpentByCustomer, "Total spent by customer 1023: $35.75"},
		{"total spent by customer 9999", TotalSpentByCustomer, "Total spent by customer 9999: $0.00"},
		{"Total customers?", TotalCustomers, "Total customers: 3"},
		{"what are the total transactions", TotalTransactions, "Total transactions: 6"},
		{"Show all customer IDs", AllCustomers, "All customer IDs: 1023, 1023, 1023, 1024, 1024, 1025"},
		{"Who is the highest spending customer?", HighestSpendingCustomer, "Highest spending customer ID: 1024 (Total: $140.00)"},
		{"What is the average transaction amount?", AverageTransactionAmount, "The average transaction amount is $30.58"},
		{"total revenue from product a", TotalRevenueByProduct, "Total revenue from Product A: $130.50"},
		{"Most popular product", MostPopularProduct, "Most popular product: Product A (Transactions: 3)"},
		{"product with highest average transaction", ProductWithHighestAvgTransaction, "Product with highest average transaction: Product A (Average: $43.50)"},
		{"hello there", Unrecognized, UnrecognizedMessage},
		{"", Unrecognized, UnrecognizedMessage},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			resp, err := router.Respond(context.Background(), tt.question)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIntent, resp.Intent)
			assert.Equal(t, tt.want, resp.Text)
			assert.False(t, resp.HTML)
		})
	}
}

func TestRouter_Respond_Tables(t *testing.T) {
	router := fixtureRouter()

	tests := []struct {
		question   string
		wantIntent Intent
		wantOrders []string
	}{
		{"show all transactions", AllTransactions, []string{"<td>1</td>", "<td>6</td>"}},
		{"latest transactions", LatestTransactions, []string{"<td>4</td>"}},
		{"transactions for customer 1025", TransactionsByCustomer, []string{"<td>6</td>"}},
		{"customers in New York?", CustomersByLocation, []string{"<td>6</td>"}},
		{"customers with more than 2 transactions", CustomersWithMinTransactions, []string{"<td>1023</td>"}},
		{"transactions above $50", TransactionsAboveAmount, []string{"<td>4</td>"}},
		{"transactions below 6", TransactionsBelowAmount, []string{"<td>3</td>"}},
		{"top transactions", TopTransactions, []string{"<td>$100.00</td>"}},
		{"transactions between 7.75 and 20.50", TransactionsInRange, []string{"<td>$7.75</td>", "<td>$20.50</td>"}},
		{"transactions for product PRODUCT c", TransactionsByProduct, []string{"<td>Product C</td>"}},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			resp, err := router.Respond(context.Background(), tt.question)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIntent, resp.Intent)
			assert.True(t, resp.HTML)
			for _, want := range tt.wantOrders {
				assert.Contains(t, resp.Text, want)
			}
		})
	}
}

func TestRouter_Respond_LatestTakesOptionalLimit(t *testing.T) {
	router := fixtureRouter()

	resp, err := router.Respond(context.Background(), "latest transactions 2")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(resp.Text, "<tr><td>"))
	assert.Contains(t, resp.Text, "<td>4</td>")
	assert.Contains(t, resp.Text, "<td>6</td>")

	resp, err = router.Respond(context.Background(), "top transactions 1")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(resp.Text, "<tr><td>"))
}

func TestRouter_Respond_EmptyResults(t *testing.T) {
	ctx := context.Background()

	resp, err := fixtureRouter().Respond(ctx, "transactions for customer 4242")
	require.NoError(t, err)
	assert.Equal(t, NoTransactionsMessage, resp.Text)
	assert.False(t, resp.HTML)

	empty := newTestRouter()
	tests := map[string]string{
		"highest spending customer":                NoCustomersMessage,
		"most popular product":                     NoProductsMessage,
		"product with highest average transaction": NoProductsMessage,
		"all customers":                            NoCustomersMessage,
		"all transactions":                         NoTransactionsMessage,
		"average transaction amount":               "The average transaction amount is $0.00",
	}
	for question, want := range tests {
		resp, err := empty.Respond(ctx, question)
		require.NoError(t, err, question)
		assert.Equal(t, want, resp.Text, question)
	}
}

func TestRouter_Respond_MalformedParameters(t *testing.T) {
	router := fixtureRouter()

	tests := []struct {
		question   string
		wantIntent Intent
		wantParam  string
	}{
		{"transactions for customer abc", TransactionsByCustomer, "customer"},
		{"transactions for customer", TransactionsByCustomer, "customer"},
		{"total spent by customer xyz", TotalSpentByCustomer, "customer"},
		{"customers with more than many", CustomersWithMinTransactions, "count"},
		{"transactions above lots", TransactionsAboveAmount, "amount"},
		{"transactions below", TransactionsBelowAmount, "amount"},
		{"transactions between 5 and ten", TransactionsInRange, "max"},
		{"transactions between 5", TransactionsInRange, "min, max"},
		{"total revenue from", TotalRevenueByProduct, "product"},
		{"customers in", CustomersByLocation, "location"},
		{"latest transactions 0", LatestTransactions, "limit"},
		{"top transactions 0", TopTransactions, "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			resp, err := router.Respond(context.Background(), tt.question)
			assert.Nil(t, resp)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedParameter))

			var paramErr *ParamError
			require.True(t, errors.As(err, &paramErr))
			assert.Equal(t, tt.wantIntent, paramErr.Intent)
			assert.Equal(t, tt.wantParam, paramErr.Param)
		})
	}
}

func TestRouter_Classify_FirstRuleWins(t *testing.T) {
	router := fixtureRouter()

	tests := []struct {
		question string
		want     Intent
	}{
		{"show all transactions for customer 5", AllTransactions},
		{"total transactions for customer 5", TotalTransactions},
		{"latest transactions for customer 5", LatestTransactions},
		{"all customers in Berlin", AllCustomers},
		{"most popular product with highest average transaction", MostPopularProduct},
		{"TOTAL CUSTOMERS", TotalCustomers},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, router.Classify(tt.question), tt.question)
	}
}

func TestRouter_Classify_EveryTrigger(t *testing.T) {
	router := fixtureRouter()

	for _, rule := range router.Rules() {
		for _, trigger := range rule.Triggers {
			assert.Equal(t, rule.Intent, router.Classify(trigger), trigger)
			assert.Equal(t, rule.Intent, router.Classify("please, "+strings.ToUpper(trigger)+" now"), trigger)
		}
	}
}

func TestRouter_Classify_PrecedenceFollowsRuleOrder(t *testing.T) {
	router := fixtureRouter()
	rules := router.Rules()

	for i, earlier := range rules {
		for _, later := range rules[i+1:] {
			for _, a := range earlier.Triggers {
				for _, b := range later.Triggers {
					assert.Equal(t, earlier.Intent, router.Classify(a+" "+b), "%q + %q", a, b)
					assert.Equal(t, earlier.Intent, router.Classify(b+" "+a), "%q + %q", b, a)
				}
			}
		}
	}
}

func TestDefaultRules_CoverEveryIntent(t *testing.T) {
	seen := make(map[Intent]bool)
	for _, rule := range DefaultRules() {
		assert.False(t, seen[rule.Intent], "duplicate rule for %s", rule.Intent)
		assert.NotEmpty(t, rule.Triggers)
		assert.NotNil(t, rule.Handle)
		seen[rule.Intent] = true
	}
	assert.Len(t, seen, 19)
}

// MockReader is a mock implementation of repository.TransactionReader
type MockReader struct {
	mock.Mock
	*memory.Repository
}

func (m *MockReader) CountCustomers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestRouter_Respond_StoreError(t *testing.T) {
	reader := &MockReader{Repository: memory.NewRepository(zap.NewNop())}
	reader.On("CountCustomers", mock.Anything).Return(int64(0), errors.New("connection refused"))

	router := NewRouter(reader, zap.NewNop())

	resp, err := router.Respond(context.Background(), "total customers")
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformedParameter))
	assert.Contains(t, err.Error(), "connection refused")
	reader.AssertExpectations(t)
}
