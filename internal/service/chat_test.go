package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/domain"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/dto"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/intent"
	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/repository/memory"
)

// MockTransactionRepository overrides the store calls under test and falls
// back to an in-memory store for the rest
type MockTransactionRepository struct {
	mock.Mock
	*memory.Repository
}

func (m *MockTransactionRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransactionRepository) CountTransactions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newMockRepository(seed ...domain.Transaction) *MockTransactionRepository {
	return &MockTransactionRepository{Repository: memory.NewRepository(zap.NewNop(), seed...)}
}

func seedTransactions() []domain.Transaction {
	date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Transaction{
		{CustomerID: 1023, OrderID: 1, ProductInformation: "Product A", TransactionAmount: 10.00, PurchaseDate: date, Location: "Berlin"},
		{CustomerID: 1023, OrderID: 2, ProductInformation: "Product A", TransactionAmount: 20.50, PurchaseDate: date, Location: "Berlin"},
		{CustomerID: 1023, OrderID: 3, ProductInformation: "Product B", TransactionAmount: 5.25, PurchaseDate: date, Location: "Berlin"},
	}
}

func TestChatService_Ask_Text(t *testing.T) {
	service := NewChatService(newMockRepository(seedTransactions()...), zap.NewNop())

	resp, err := service.Ask(context.Background(), &dto.ChatRequest{Message: "total spent by 1023"})

	require.NoError(t, err)
	assert.Equal(t, "total_spent_by_customer", resp.Intent)
	assert.Equal(t, "Total spent by customer 1023: $35.75", resp.Response)
	assert.Equal(t, dto.FormatText, resp.Format)
}

func TestChatService_Ask_HTML(t *testing.T) {
	service := NewChatService(newMockRepository(seedTransactions()...), zap.NewNop())

	resp, err := service.Ask(context.Background(), &dto.ChatRequest{Message: "transactions for customer 1023"})

	require.NoError(t, err)
	assert.Equal(t, "transactions_by_customer", resp.Intent)
	assert.Equal(t, dto.FormatHTML, resp.Format)
	assert.Contains(t, resp.Response, "<td>Product B</td>")
}

func TestChatService_Ask_Unrecognized(t *testing.T) {
	service := NewChatService(newMockRepository(), zap.NewNop())

	resp, err := service.Ask(context.Background(), &dto.ChatRequest{Message: "what's the weather"})

	require.NoError(t, err)
	assert.Equal(t, "unrecognized", resp.Intent)
	assert.Equal(t, intent.UnrecognizedMessage, resp.Response)
}

func TestChatService_Ask_MalformedParameter(t *testing.T) {
	service := NewChatService(newMockRepository(), zap.NewNop())

	resp, err := service.Ask(context.Background(), &dto.ChatRequest{Message: "transactions above plenty"})

	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, intent.ErrMalformedParameter))
}

func TestChatService_Ask_RepositoryError(t *testing.T) {
	mockRepo := newMockRepository()
	mockRepo.On("CountTransactions", mock.Anything).Return(int64(0), errors.New("server selection timeout"))

	service := NewChatService(mockRepo, zap.NewNop())

	resp, err := service.Ask(context.Background(), &dto.ChatRequest{Message: "total transactions"})

	assert.Nil(t, resp)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, intent.ErrMalformedParameter))
	assert.Contains(t, err.Error(), "server selection timeout")
	mockRepo.AssertExpectations(t)
}

func TestChatService_Intents(t *testing.T) {
	service := NewChatService(newMockRepository(), zap.NewNop())

	resp := service.Intents()

	require.Len(t, resp.Intents, 19)
	assert.Equal(t, 1, resp.Intents[0].Order)
	assert.Equal(t, "all_customers", resp.Intents[0].Intent)
	assert.Equal(t, 19, resp.Intents[18].Order)
	assert.Equal(t, "product_with_highest_avg_transaction", resp.Intents[18].Intent)
	assert.Contains(t, resp.Intents[6].Triggers, "total spent by")
}

func TestChatService_Ping(t *testing.T) {
	mockRepo := newMockRepository()
	mockRepo.On("Ping", mock.Anything).Return(errors.New("connection refused")).Once()
	mockRepo.On("Ping", mock.Anything).Return(nil).Once()

	service := NewChatService(mockRepo, zap.NewNop())

	assert.Error(t, service.Ping(context.Background()))
	assert.NoError(t, service.Ping(context.Background()))
	mockRepo.AssertExpectations(t)
}
