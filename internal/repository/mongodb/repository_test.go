package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"

	"github.com/AtharvaBadhe/Customer-s-Transaction-Chatbot/internal/domain"
)

const testNamespace = "dataset.customer"

var testPurchaseDate = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

func transactionDoc(customerID, orderID int64, product string, amount float64, location string) bson.D {
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "CustomerID", Value: customerID},
		{Key: "OrderID", Value: orderID},
		{Key: "ProductInformation", Value: product},
		{Key: "TransactionAmount", Value: amount},
		{Key: "PurchaseDate", Value: primitive.NewDateTimeFromTime(testPurchaseDate)},
		{Key: "Location", Value: location},
	}
}

func TestRepository_ListTransactions(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes documents", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			transactionDoc(1023, 1, "Product A", 10.00, "Berlin"),
			transactionDoc(1024, 2, "Product B", 20.50, "Paris"),
		))

		transactions, err := repo.ListTransactions(context.Background())
		require.NoError(mt, err)
		require.Len(mt, transactions, 2)

		assert.Equal(mt, domain.Transaction{
			CustomerID:         1023,
			OrderID:            1,
			ProductInformation: "Product A",
			TransactionAmount:  10.00,
			PurchaseDate:       testPurchaseDate,
			Location:           "Berlin",
		}, transactions[0])
		assert.Equal(mt, "Paris", transactions[1].Location)
	})

	mt.Run("empty collection yields empty slice", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))

		transactions, err := repo.ListTransactions(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, transactions)
		assert.Empty(mt, transactions)
	})

	mt.Run("store error is wrapped", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad query",
		}))

		_, err := repo.ListTransactions(context.Background())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "failed to query transactions")
	})
}

func TestRepository_ListCustomerIDs(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("keeps duplicates in store order", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			bson.D{{Key: "CustomerID", Value: int32(7)}},
			bson.D{{Key: "CustomerID", Value: int32(3)}},
			bson.D{{Key: "CustomerID", Value: int32(7)}},
		))

		ids, err := repo.ListCustomerIDs(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, []int64{7, 3, 7}, ids)
	})
}

func TestRepository_Counts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("distinct customers", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "values", Value: bson.A{int32(1), int32(2), int32(3)}},
		))

		count, err := repo.CountCustomers(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), count)
	})

	mt.Run("documents", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(42)}},
		))

		count, err := repo.CountTransactions(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(42), count)
	})
}

func TestRepository_TotalSpentByCustomer(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns the group total", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: nil}, {Key: "total", Value: 35.75}},
		))

		total, err := repo.TotalSpentByCustomer(context.Background(), 1023)
		require.NoError(mt, err)
		assert.Equal(mt, 35.75, total)
	})

	mt.Run("unknown customer is zero", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))

		total, err := repo.TotalSpentByCustomer(context.Background(), 9999)
		require.NoError(mt, err)
		assert.Zero(mt, total)
	})
}

func TestRepository_CustomersWithMinTransactions(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("refetches records of qualifying customers", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: int64(1023)}, {Key: "count", Value: int32(3)}},
			),
			mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
				transactionDoc(1023, 1, "Product A", 10.00, "Berlin"),
				transactionDoc(1023, 2, "Product A", 20.50, "Berlin"),
				transactionDoc(1023, 3, "Product B", 5.25, "Berlin"),
			),
		)

		transactions, err := repo.CustomersWithMinTransactions(context.Background(), 2)
		require.NoError(mt, err)
		assert.Len(mt, transactions, 3)
	})

	mt.Run("no qualifying customers skips the second query", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))

		transactions, err := repo.CustomersWithMinTransactions(context.Background(), 100)
		require.NoError(mt, err)
		assert.Empty(mt, transactions)
		assert.NotNil(mt, transactions)
	})
}

func TestRepository_Aggregates(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("highest spending customer", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: int64(1023)}, {Key: "total", Value: 99.5}},
		))

		customer, err := repo.HighestSpendingCustomer(context.Background())
		require.NoError(mt, err)
		require.NotNil(mt, customer)
		assert.Equal(mt, domain.CustomerSpend{CustomerID: 1023, Total: 99.5}, *customer)
	})

	mt.Run("highest spending customer on empty collection", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))

		customer, err := repo.HighestSpendingCustomer(context.Background())
		require.NoError(mt, err)
		assert.Nil(mt, customer)
	})

	mt.Run("most popular product", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "Product A"}, {Key: "count", Value: int32(5)}},
		))

		product, err := repo.MostPopularProduct(context.Background())
		require.NoError(mt, err)
		require.NotNil(mt, product)
		assert.Equal(mt, domain.ProductCount{Product: "Product A", Count: 5}, *product)
	})

	mt.Run("product with highest average", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "Product C"}, {Key: "average", Value: 120.25}},
		))

		product, err := repo.ProductWithHighestAverage(context.Background())
		require.NoError(mt, err)
		require.NotNil(mt, product)
		assert.Equal(mt, "Product C", product.Product)
		assert.Equal(mt, 120.25, product.Average)
	})

	mt.Run("average on empty collection", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))

		average, err := repo.AverageTransactionAmount(context.Background())
		require.NoError(mt, err)
		assert.Zero(mt, average)
	})
}

func TestRepository_InsertBatch(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("counts matched and upserted documents", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: int32(2)},
			bson.E{Key: "nModified", Value: int32(1)},
			bson.E{Key: "upserted", Value: bson.A{
				bson.D{{Key: "index", Value: int32(1)}, {Key: "_id", Value: primitive.NewObjectID()}},
			}},
		))

		inserted, err := repo.InsertBatch(context.Background(), []*domain.Transaction{
			{CustomerID: 1, OrderID: 10, ProductInformation: "Product A", TransactionAmount: 1},
			{CustomerID: 2, OrderID: 11, ProductInformation: "Product B", TransactionAmount: 2},
		})
		require.NoError(mt, err)
		assert.Equal(mt, 2, inserted)
	})

	mt.Run("empty batch does not touch the store", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		inserted, err := repo.InsertBatch(context.Background(), nil)
		require.NoError(mt, err)
		assert.Zero(mt, inserted)
	})
}

func TestRepository_LatestAndTop(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sends sort and limit", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			transactionDoc(1024, 4, "Product A", 100.00, "Paris"),
		))

		transactions, err := repo.TopTransactions(context.Background(), 3)
		require.NoError(mt, err)
		assert.Len(mt, transactions, 1)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		assert.Equal(mt, int64(3), started.Command.Lookup("limit").AsInt64())
		sortKey := started.Command.Lookup("sort").Document().Index(0)
		assert.Equal(mt, "TransactionAmount", sortKey.Key())
	})

	mt.Run("limit below one queries nothing", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		for _, limit := range []int{0, -1} {
			latest, err := repo.LatestTransactions(context.Background(), limit)
			require.NoError(mt, err)
			assert.NotNil(mt, latest)
			assert.Empty(mt, latest)

			top, err := repo.TopTransactions(context.Background(), limit)
			require.NoError(mt, err)
			assert.Empty(mt, top)
		}
		assert.Nil(mt, mt.GetStartedEvent())
	})
}

func TestRepository_InitSchema(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("order id index is unique", func(mt *mtest.T) {
		repo := newCollectionRepository(mt.Coll, zap.NewNop())

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, repo.InitSchema(context.Background()))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "createIndexes", started.CommandName)

		values, err := started.Command.Lookup("indexes").Array().Values()
		require.NoError(mt, err)

		unique := map[string]bool{}
		for _, value := range values {
			index := value.Document()
			field := index.Lookup("key").Document().Index(0).Key()
			isUnique, _ := index.Lookup("unique").BooleanOK()
			unique[field] = isUnique
		}
		assert.True(mt, unique["OrderID"])
		assert.False(mt, unique["CustomerID"])
		assert.Len(mt, unique, 6)
	})
}
