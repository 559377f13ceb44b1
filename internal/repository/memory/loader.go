package memory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/domain"
)

// column keys after normalizeHeader
const (
	colCustomerID = "customerid"
	colOrderID    = "orderid"
	colProduct    = "productinformation"
	colAmount     = "transactionamount"
	colDate       = "purchasedate"
	colLocation   = "location"
)

var requiredColumns = []string{colCustomerID, colOrderID, colProduct, colAmount, colDate, colLocation}

// LoadFile reads a CSV export of the transactions collection
func LoadFile(path string) ([]domain.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer file.Close()

	transactions, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return transactions, nil
}

// ReadCSV parses transactions from CSV. Columns are located by header name;
// "CustomerID" and "customer_id" are both accepted.
func ReadCSV(r io.Reader) ([]domain.Transaction, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[normalizeHeader(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var transactions []domain.Transaction
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		txn, err := parseRecord(record, columns)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		transactions = append(transactions, txn)
	}

	return transactions, nil
}

func parseRecord(record []string, columns map[string]int) (domain.Transaction, error) {
	field := func(name string) string {
		return strings.TrimSpace(record[columns[name]])
	}

	customerID, err := strconv.ParseInt(field(colCustomerID), 10, 64)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid CustomerID: %w", err)
	}

	orderID, err := strconv.ParseInt(field(colOrderID), 10, 64)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid OrderID: %w", err)
	}

	amount, err := strconv.ParseFloat(strings.TrimPrefix(field(colAmount), "$"), 64)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid TransactionAmount: %w", err)
	}

	purchaseDate, err := domain.ParseDate(field(colDate))
	if err != nil {
		return domain.Transaction{}, err
	}

	return domain.Transaction{
		CustomerID:         customerID,
		OrderID:            orderID,
		ProductInformation: field(colProduct),
		TransactionAmount:  amount,
		PurchaseDate:       purchaseDate,
		Location:           field(colLocation),
	}, nil
}

func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("_", "", " ", "", "-", "").Replace(name)
}
