// Package intent maps free-text questions about the transaction dataset to
// store queries and renders the answers.
//
// Classification is keyword based: an ordered rule table is scanned top to
// bottom against the lower-cased question and the first rule with a matching
// trigger phrase wins. Rule order is therefore routing priority; a question
// containing the triggers of two rules is always answered by the earlier one.
package intent

// Intent names the operation a question maps to
type Intent string

const (
	AllCustomers                     Intent = "all_customers"
	AllTransactions                  Intent = "all_transactions"
	TotalCustomers                   Intent = "total_customers"
	TotalTransactions                Intent = "total_transactions"
	LatestTransactions               Intent = "latest_transactions"
	TransactionsByCustomer           Intent = "transactions_by_customer"
	TotalSpentByCustomer             Intent = "total_spent_by_customer"
	CustomersByLocation              Intent = "customers_by_location"
	CustomersWithMinTransactions     Intent = "customers_with_min_transactions"
	HighestSpendingCustomer          Intent = "highest_spending_customer"
	TransactionsAboveAmount          Intent = "transactions_above_amount"
	TransactionsBelowAmount          Intent = "transactions_below_amount"
	AverageTransactionAmount         Intent = "average_transaction_amount"
	TopTransactions                  Intent = "top_transactions"
	TransactionsInRange              Intent = "transactions_in_range"
	TransactionsByProduct            Intent = "transactions_by_product"
	TotalRevenueByProduct            Intent = "total_revenue_by_product"
	MostPopularProduct               Intent = "most_popular_product"
	ProductWithHighestAvgTransaction Intent = "product_with_highest_avg_transaction"

	Unrecognized Intent = "unrecognized"
)

// Fixed replies
const (
	UnrecognizedMessage   = "I don't understand. Please try again."
	NoTransactionsMessage = "No transactions found."
	NoCustomersMessage    = "No customers found."
	NoProductsMessage     = "No products found."
)
