package intent

import (
	"html"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/domain"
)

const (
	tableOpen   = "<table class='table table-bordered table-striped'>"
	tableHeader = "<thead><tr><th>Customer ID</th><th>Order ID</th><th>Product</th><th>Amount</th><th>Date</th><th>Location</th></tr></thead>"
	dateLayout  = "2006-01-02 15:04:05"
)

// FormatTransactions renders transactions as an HTML table. Any empty result
// renders as NoTransactionsMessage, whichever query produced it.
func FormatTransactions(transactions []domain.Transaction) string {
	if len(transactions) == 0 {
		return NoTransactionsMessage
	}

	var b strings.Builder
	b.WriteString(tableOpen)
	b.WriteString(tableHeader)
	b.WriteString("<tbody>")

	for _, txn := range transactions {
		b.WriteString("<tr>")
		writeCell(&b, strconv.FormatInt(txn.CustomerID, 10))
		writeCell(&b, strconv.FormatInt(txn.OrderID, 10))
		writeCell(&b, txn.ProductInformation)
		writeCell(&b, FormatMoney(txn.TransactionAmount))
		writeCell(&b, txn.PurchaseDate.Format(dateLayout))
		writeCell(&b, txn.Location)
		b.WriteString("</tr>")
	}

	b.WriteString("</tbody></table>")
	return b.String()
}

// FormatMoney renders an amount as dollars with two decimals, e.g. "$35.75"
func FormatMoney(amount float64) string {
	return "$" + decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatCustomerIDs joins the ids the way the chat reply lists them
func FormatCustomerIDs(ids []int64) string {
	if len(ids) == 0 {
		return NoCustomersMessage
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "All customer IDs: " + strings.Join(parts, ", ")
}

// IsHTML reports whether a reply is a rendered table rather than a sentence
func IsHTML(reply string) bool {
	return strings.HasPrefix(reply, "<table")
}

func writeCell(b *strings.Builder, value string) {
	b.WriteString("<td>")
	b.WriteString(html.EscapeString(value))
	b.WriteString("</td>")
}
