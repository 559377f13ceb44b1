package consumer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/domain"
)

// transactionMessage is the queue wire format
type transactionMessage struct {
	CustomerID         int64   `json:"customer_id"`
	OrderID            int64   `json:"order_id"`
	ProductInformation string  `json:"product_information"`
	TransactionAmount  float64 `json:"transaction_amount"`
	PurchaseDate       string  `json:"purchase_date"`
	Location           string  `json:"location"`
}

// JSONTransactionParser implements MessageParser for JSON-formatted transaction messages
type JSONTransactionParser struct{}

// NewJSONTransactionParser creates a new JSON transaction parser
func NewJSONTransactionParser() *JSONTransactionParser {
	return &JSONTransactionParser{}
}

// Parse parses and validates a JSON message body. Product names are stored
// normalized so that product queries match them.
func (p *JSONTransactionParser) Parse(body []byte) (*domain.Transaction, error) {
	var msg transactionMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	if err := msg.validate(); err != nil {
		return nil, err
	}

	purchaseDate, err := domain.ParseDate(strings.TrimSpace(msg.PurchaseDate))
	if err != nil {
		return nil, err
	}

	return &domain.Transaction{
		CustomerID:         msg.CustomerID,
		OrderID:            msg.OrderID,
		ProductInformation: domain.NormalizeProduct(msg.ProductInformation),
		TransactionAmount:  msg.TransactionAmount,
		PurchaseDate:       purchaseDate.UTC(),
		Location:           strings.TrimSpace(msg.Location),
	}, nil
}

func (m *transactionMessage) validate() error {
	var errs []error
	if m.CustomerID <= 0 {
		errs = append(errs, errors.New("customer_id must be positive"))
	}
	if m.OrderID <= 0 {
		errs = append(errs, errors.New("order_id must be positive"))
	}
	if strings.TrimSpace(m.ProductInformation) == "" {
		errs = append(errs, errors.New("product_information is required"))
	}
	if m.TransactionAmount < 0 {
		errs = append(errs, errors.New("transaction_amount must not be negative"))
	}
	if strings.TrimSpace(m.PurchaseDate) == "" {
		errs = append(errs, errors.New("purchase_date is required"))
	}
	return errors.Join(errs...)
}
