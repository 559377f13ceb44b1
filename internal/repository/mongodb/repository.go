package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/domain"
)

// Repository implements TransactionRepository for MongoDB
type Repository struct {
	client     *Client
	collection *mongo.Collection
	log        *zap.Logger
}

// NewRepository creates a repository over the client's configured collection
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client:     client,
		collection: client.Collection(),
		log:        log,
	}
}

// newCollectionRepository is used when only a collection handle is available
func newCollectionRepository(collection *mongo.Collection, log *zap.Logger) *Repository {
	return &Repository{
		collection: collection,
		log:        log,
	}
}

// InitSchema creates the indexes the chat queries filter and sort on
func (r *Repository) InitSchema(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "CustomerID", Value: 1}}},
		{Keys: bson.D{{Key: "OrderID", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ProductInformation", Value: 1}}},
		{Keys: bson.D{{Key: "Location", Value: 1}}},
		{Keys: bson.D{{Key: "PurchaseDate", Value: -1}}},
		{Keys: bson.D{{Key: "TransactionAmount", Value: -1}}},
	}

	names, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create transaction indexes: %w", err)
	}

	r.log.Info("MongoDB indexes initialized successfully", zap.Strings("indexes", names))
	return nil
}

// InsertBatch upserts the transactions keyed by OrderID
func (r *Repository) InsertBatch(ctx context.Context, transactions []*domain.Transaction) (int, error) {
	if len(transactions) == 0 {
		return 0, nil
	}

	models := make([]mongo.WriteModel, 0, len(transactions))
	for _, txn := range transactions {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "OrderID", Value: txn.OrderID}}).
			SetReplacement(txn).
			SetUpsert(true))
	}

	result, err := r.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("failed to write transaction batch: %w", err)
	}

	return int(result.MatchedCount + result.UpsertedCount), nil
}

// Ping checks if the MongoDB connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

// Close closes the MongoDB connection
func (r *Repository) Close() error {
	return r.client.Close()
}

func (r *Repository) ListCustomerIDs(ctx context.Context) ([]int64, error) {
	opts := options.Find().SetProjection(bson.D{
		{Key: "CustomerID", Value: 1},
		{Key: "_id", Value: 0},
	})

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer ids: %w", err)
	}

	var docs []struct {
		CustomerID int64 `bson:"CustomerID"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode customer ids: %w", err)
	}

	ids := make([]int64, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.CustomerID)
	}
	return ids, nil
}

func (r *Repository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return r.find(ctx, bson.D{})
}

func (r *Repository) CountCustomers(ctx context.Context) (int64, error) {
	values, err := r.collection.Distinct(ctx, "CustomerID", bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to query distinct customers: %w", err)
	}
	return int64(len(values)), nil
}

func (r *Repository) CountTransactions(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (r *Repository) LatestTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	if limit < 1 {
		return []domain.Transaction{}, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "PurchaseDate", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.D{}, opts)
}

func (r *Repository) TransactionsByCustomer(ctx context.Context, customerID int64) ([]domain.Transaction, error) {
	return r.find(ctx, bson.D{{Key: "CustomerID", Value: customerID}})
}

func (r *Repository) TotalSpentByCustomer(ctx context.Context, customerID int64) (float64, error) {
	return r.sumAmount(ctx, bson.D{{Key: "CustomerID", Value: customerID}})
}

func (r *Repository) CustomersByLocation(ctx context.Context, location string) ([]domain.Transaction, error) {
	return r.find(ctx, bson.D{{Key: "Location", Value: location}})
}

func (r *Repository) CustomersWithMinTransactions(ctx context.Context, n int) ([]domain.Transaction, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$CustomerID"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$match", Value: bson.D{
			{Key: "count", Value: bson.D{{Key: "$gt", Value: n}}},
		}}},
	}

	var groups []struct {
		CustomerID int64 `bson:"_id"`
	}
	if err := r.aggregate(ctx, pipeline, &groups); err != nil {
		return nil, fmt.Errorf("failed to group customers by transaction count: %w", err)
	}

	if len(groups) == 0 {
		return []domain.Transaction{}, nil
	}

	ids := make(bson.A, 0, len(groups))
	for _, group := range groups {
		ids = append(ids, group.CustomerID)
	}

	return r.find(ctx, bson.D{{Key: "CustomerID", Value: bson.D{{Key: "$in", Value: ids}}}})
}

func (r *Repository) HighestSpendingCustomer(ctx context.Context) (*domain.CustomerSpend, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$CustomerID"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$TransactionAmount"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: 1}},
	}

	var results []domain.CustomerSpend
	if err := r.aggregate(ctx, pipeline, &results); err != nil {
		return nil, fmt.Errorf("failed to query highest spending customer: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

func (r *Repository) TransactionsAboveAmount(ctx context.Context, amount float64) ([]domain.Transaction, error) {
	return r.find(ctx, bson.D{{Key: "TransactionAmount", Value: bson.D{{Key: "$gt", Value: amount}}}})
}

func (r *Repository) TransactionsBelowAmount(ctx context.Context, amount float64) ([]domain.Transaction, error) {
	return r.find(ctx, bson.D{{Key: "TransactionAmount", Value: bson.D{{Key: "$lt", Value: amount}}}})
}

func (r *Repository) TransactionsInRange(ctx context.Context, minAmount, maxAmount float64) ([]domain.Transaction, error) {
	return r.find(ctx, bson.D{{Key: "TransactionAmount", Value: bson.D{
		{Key: "$gte", Value: minAmount},
		{Key: "$lte", Value: maxAmount},
	}}})
}

func (r *Repository) AverageTransactionAmount(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "average_amount", Value: bson.D{{Key: "$avg", Value: "$TransactionAmount"}}},
		}}},
	}

	var results []struct {
		Average float64 `bson:"average_amount"`
	}
	if err := r.aggregate(ctx, pipeline, &results); err != nil {
		return 0, fmt.Errorf("failed to query average transaction amount: %w", err)
	}

	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Average, nil
}

func (r *Repository) TopTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	if limit < 1 {
		return []domain.Transaction{}, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "TransactionAmount", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.D{}, opts)
}

func (r *Repository) TransactionsByProduct(ctx context.Context, product string) ([]domain.Transaction, error) {
	return r.find(ctx, bson.D{{Key: "ProductInformation", Value: domain.NormalizeProduct(product)}})
}

func (r *Repository) TotalRevenueByProduct(ctx context.Context, product string) (float64, error) {
	return r.sumAmount(ctx, bson.D{{Key: "ProductInformation", Value: domain.NormalizeProduct(product)}})
}

func (r *Repository) MostPopularProduct(ctx context.Context) (*domain.ProductCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$ProductInformation"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: 1}},
	}

	var results []domain.ProductCount
	if err := r.aggregate(ctx, pipeline, &results); err != nil {
		return nil, fmt.Errorf("failed to query most popular product: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

func (r *Repository) ProductWithHighestAverage(ctx context.Context) (*domain.ProductAverage, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$ProductInformation"},
			{Key: "average", Value: bson.D{{Key: "$avg", Value: "$TransactionAmount"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "average", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: 1}},
	}

	var results []domain.ProductAverage
	if err := r.aggregate(ctx, pipeline, &results); err != nil {
		return nil, fmt.Errorf("failed to query product with highest average: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// find runs a filtered query and always returns a non-nil slice
func (r *Repository) find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]domain.Transaction, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	var transactions []domain.Transaction
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	return transactions, nil
}

func (r *Repository) aggregate(ctx context.Context, pipeline mongo.Pipeline, results interface{}) error {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cursor.All(ctx, results)
}

// sumAmount totals TransactionAmount over the records matching filter
func (r *Repository) sumAmount(ctx context.Context, filter bson.D) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$TransactionAmount"}}},
		}}},
	}

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := r.aggregate(ctx, pipeline, &results); err != nil {
		return 0, fmt.Errorf("failed to sum transaction amounts: %w", err)
	}

	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
