package domain

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Transaction is a single purchase record. The bson names match the fields of
// the source collection, the ch names the columns of the ClickHouse table.
type Transaction struct {
	CustomerID         int64     `bson:"CustomerID" ch:"customer_id" json:"customer_id"`
	OrderID            int64     `bson:"OrderID" ch:"order_id" json:"order_id"`
	ProductInformation string    `bson:"ProductInformation" ch:"product_information" json:"product_information"`
	TransactionAmount  float64   `bson:"TransactionAmount" ch:"transaction_amount" json:"transaction_amount"`
	PurchaseDate       time.Time `bson:"PurchaseDate" ch:"purchase_date" json:"purchase_date"`
	Location           string    `bson:"Location" ch:"location" json:"location"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// ParseDate accepts the date layouts found in transaction exports. Values
// without a zone are taken as UTC.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid PurchaseDate %q", value)
}

// CustomerSpend is the summed spend of one customer
type CustomerSpend struct {
	CustomerID int64   `bson:"_id"`
	Total      float64 `bson:"total"`
}

// ProductCount is the number of transactions recorded for one product
type ProductCount struct {
	Product string `bson:"_id"`
	Count   int64  `bson:"count"`
}

// ProductAverage is the mean transaction amount of one product
type ProductAverage struct {
	Product string  `bson:"_id"`
	Average float64 `bson:"average"`
}

// NormalizeProduct turns free-typed product names into the stored form:
// surrounding and repeated whitespace is dropped and every word is title-cased,
// so "  product   a " becomes "Product A". Word boundaries follow Unicode
// title casing: letters after a digit or an apostrophe stay lower case
// ("product 2go" -> "Product 2go", "kid's toy" -> "Kid's Toy").
func NormalizeProduct(name string) string {
	// Casers carry state, so each call gets its own.
	return cases.Title(language.English).String(strings.Join(strings.Fields(name), " "))
}
