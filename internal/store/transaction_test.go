package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/finbook/finbook-api/internal/models"
)

func TestContinuationKeyRoundTrip(t *testing.T) {
	last := transactionKey("owner-a", "tx-1")

	encoded, err := encodeContinuationKey(last)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if encoded == "" {
		t.Fatalf("expected non-empty key")
	}

	decoded, err := decodeContinuationKey(encoded)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	owner := decoded["userId"].(*types.AttributeValueMemberS).Value
	id := decoded["id"].(*types.AttributeValueMemberS).Value
	if owner != "owner-a" || id != "tx-1" {
		t.Fatalf("round trip lost key: owner=%q id=%q", owner, id)
	}
}

func TestContinuationKeyEmpty(t *testing.T) {
	encoded, err := encodeContinuationKey(nil)
	if err != nil || encoded != "" {
		t.Fatalf("expected empty key for exhausted scan, got %q (%v)", encoded, err)
	}

	if _, err := decodeContinuationKey("%%%not-base64%%%"); err == nil {
		t.Fatalf("expected malformed key to fail decoding")
	}
}

// ---- DynamoDB Local integration ----

func newLocalStore(t *testing.T) *transactionStore {
	t.Helper()

	endpoint := os.Getenv("DYNAMODB_ENDPOINT")
	if endpoint == "" {
		t.Skip("DYNAMODB_ENDPOINT not set")
	}

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")),
	)
	if err != nil {
		t.Fatalf("aws config error: %v", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	table := "transactions-test-" + uuid.New().String()
	_, err = client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("userId"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("userId"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeRange},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		t.Fatalf("create table error: %v", err)
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, 30*time.Second); err != nil {
		t.Fatalf("table never became active: %v", err)
	}

	t.Cleanup(func() {
		client.DeleteTable(ctx, &dynamodb.DeleteTableInput{TableName: aws.String(table)})
	})

	return NewTransactionStore(client, table)
}

func seedTransaction(t *testing.T, store *transactionStore, owner, id, category string, amount float64) *models.Transaction {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	tx := &models.Transaction{
		ID:        id,
		UserID:    owner,
		Type:      "expense",
		Amount:    amount,
		Category:  category,
		Date:      "2024-01-01",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.CreateTransaction(context.Background(), tx); err != nil {
		t.Fatalf("seed transaction error: %v", err)
	}
	return tx
}

func TestTransactionStoreWithLocalDynamo(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	seedTransaction(t, store, "alice", "t1", "food", 42)
	seedTransaction(t, store, "alice", "t2", "travel", 100)
	seedTransaction(t, store, "bob", "t3", "food", 7)

	t.Run("get uses full composite key", func(t *testing.T) {
		tx, err := store.GetTransaction(ctx, "alice", "t1")
		if err != nil {
			t.Fatalf("get error: %v", err)
		}
		if tx == nil || tx.ID != "t1" || tx.Amount != 42 {
			t.Fatalf("wrong record: %+v", tx)
		}

		// bob cannot address alice's record
		tx, err = store.GetTransaction(ctx, "bob", "t1")
		if err != nil {
			t.Fatalf("get error: %v", err)
		}
		if tx != nil {
			t.Fatalf("cross-owner lookup returned a record: %+v", tx)
		}
	})

	t.Run("list scoped to owner", func(t *testing.T) {
		txs, err := store.ListByOwner(ctx, "alice")
		if err != nil {
			t.Fatalf("list error: %v", err)
		}
		if len(txs) != 2 {
			t.Fatalf("got %d records for alice, want 2", len(txs))
		}
		for _, tx := range txs {
			if tx.UserID != "alice" {
				t.Fatalf("foreign record in partition: %+v", tx)
			}
		}
	})

	t.Run("update aliases reserved words", func(t *testing.T) {
		// "type" and "date" are DynamoDB reserved words; the update
		// expression must not contain them literally
		updated, err := store.UpdateTransaction(ctx, "alice", "t1", map[string]any{
			"type":      "income",
			"date":      "2024-02-02",
			"updatedAt": time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("update error: %v", err)
		}
		if updated.Type != "income" || updated.Date != "2024-02-02" {
			t.Fatalf("fields not merged: %+v", updated)
		}
		if updated.Amount != 42 {
			t.Fatalf("untouched field changed: %+v", updated)
		}
	})

	t.Run("update missing record writes nothing", func(t *testing.T) {
		updated, err := store.UpdateTransaction(ctx, "alice", "missing", map[string]any{
			"amount":    1.0,
			"updatedAt": time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("update error: %v", err)
		}
		if updated != nil {
			t.Fatalf("update created a record: %+v", updated)
		}

		tx, err := store.GetTransaction(ctx, "alice", "missing")
		if err != nil {
			t.Fatalf("get error: %v", err)
		}
		if tx != nil {
			t.Fatalf("phantom record written: %+v", tx)
		}
	})

	t.Run("filter by category", func(t *testing.T) {
		txs, err := store.FilterByCategory(ctx, "alice", "food")
		if err != nil {
			t.Fatalf("filter error: %v", err)
		}
		if len(txs) != 1 || txs[0].ID != "t1" {
			t.Fatalf("wrong filter result: %+v", txs)
		}
	})

	t.Run("paginated scan", func(t *testing.T) {
		seen := map[string]bool{}
		startKey := ""
		for i := 0; i < 10; i++ {
			txs, nextKey, err := store.ListAll(ctx, 1, startKey)
			if err != nil {
				t.Fatalf("scan error: %v", err)
			}
			for _, tx := range txs {
				seen[tx.ID] = true
			}
			if nextKey == "" {
				break
			}
			startKey = nextKey
		}
		if len(seen) != 3 {
			t.Fatalf("pagination missed records: %v", seen)
		}
	})

	t.Run("delete returns old record", func(t *testing.T) {
		deleted, err := store.DeleteTransaction(ctx, "bob", "t3")
		if err != nil {
			t.Fatalf("delete error: %v", err)
		}
		if deleted == nil || deleted.Amount != 7 {
			t.Fatalf("deleted record not returned: %+v", deleted)
		}

		deleted, err = store.DeleteTransaction(ctx, "bob", "t3")
		if err != nil {
			t.Fatalf("delete error: %v", err)
		}
		if deleted != nil {
			t.Fatalf("second delete returned a record: %+v", deleted)
		}
	})
}
