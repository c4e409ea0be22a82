package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/finbook/finbook-api/internal/models"
)

// transactionStore persists transactions in a table with composite key
// (userId, id). Every operation except ListAll addresses a single
// owner's partition.
type transactionStore struct {
	Client *dynamodb.Client
	Table  string
}

func NewTransactionStore(client *dynamodb.Client, table string) *transactionStore {
	return &transactionStore{
		Client: client,
		Table:  table,
	}
}

func (s *transactionStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	item, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.Table),
		Item:      item,
	})
	return err
}

func (s *transactionStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	out, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Table),
		KeyConditionExpression: aws.String("userId = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: ownerID},
		},
	})
	if err != nil {
		return nil, err
	}

	txs := make([]models.Transaction, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// GetTransaction is a point lookup on the full (owner, id) composite
// key. Returns nil without error when no record matches.
func (s *transactionStore) GetTransaction(ctx context.Context, ownerID, id string) (*models.Transaction, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Table),
		Key:       transactionKey(ownerID, id),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(out.Item, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// UpdateTransaction merges only the supplied fields into the stored
// record. Attribute names are always aliased in the update expression so
// reserved words like "type" and "date" never appear literally. Returns
// nil without error when the record does not exist; nothing is written
// in that case.
func (s *transactionStore) UpdateTransaction(ctx context.Context, ownerID, id string, fields map[string]any) (*models.Transaction, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	setParts := make([]string, 0, len(names))
	exprNames := make(map[string]string, len(names))
	exprValues := make(map[string]types.AttributeValue, len(names))

	for _, name := range names {
		av, err := attributevalue.Marshal(fields[name])
		if err != nil {
			return nil, err
		}
		setParts = append(setParts, fmt.Sprintf("#%s = :%s", name, name))
		exprNames["#"+name] = name
		exprValues[":"+name] = av
	}

	out, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.Table),
		Key:                       transactionKey(ownerID, id),
		UpdateExpression:          aws.String("SET " + strings.Join(setParts, ", ")),
		ConditionExpression:       aws.String("attribute_exists(userId)"),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return nil, nil
		}
		return nil, err
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(out.Attributes, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// DeleteTransaction removes a record and returns it. Returns nil without
// error when no record matched.
func (s *transactionStore) DeleteTransaction(ctx context.Context, ownerID, id string) (*models.Transaction, error) {
	out, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(s.Table),
		Key:          transactionKey(ownerID, id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return nil, err
	}
	if len(out.Attributes) == 0 {
		return nil, nil
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(out.Attributes, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// FilterByCategory queries the owner's partition and filters on category
// server-side. The filter runs after retrieval, so cost follows the
// owner's total record count, not the matched count.
func (s *transactionStore) FilterByCategory(ctx context.Context, ownerID, category string) ([]models.Transaction, error) {
	out, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Table),
		KeyConditionExpression: aws.String("userId = :userId"),
		FilterExpression:       aws.String("category = :category"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId":   &types.AttributeValueMemberS{Value: ownerID},
			":category": &types.AttributeValueMemberS{Value: category},
		},
	})
	if err != nil {
		return nil, err
	}

	txs := make([]models.Transaction, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// ListAll scans the whole table, at most limit items per page. The
// returned continuation key is opaque; pass it back verbatim to resume.
func (s *transactionStore) ListAll(ctx context.Context, limit int32, startKey string) ([]models.Transaction, string, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.Table),
		Limit:     aws.Int32(limit),
	}
	if startKey != "" {
		exclusiveStart, err := decodeContinuationKey(startKey)
		if err != nil {
			return nil, "", err
		}
		input.ExclusiveStartKey = exclusiveStart
	}

	out, err := s.Client.Scan(ctx, input)
	if err != nil {
		return nil, "", err
	}

	txs := make([]models.Transaction, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &txs); err != nil {
		return nil, "", err
	}

	nextKey, err := encodeContinuationKey(out.LastEvaluatedKey)
	if err != nil {
		return nil, "", err
	}
	return txs, nextKey, nil
}

func transactionKey(ownerID, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: ownerID},
		"id":     &types.AttributeValueMemberS{Value: id},
	}
}

// continuationKey is the serialized form of a scan's LastEvaluatedKey.
type continuationKey struct {
	UserID string `dynamodbav:"userId" json:"userId"`
	ID     string `dynamodbav:"id" json:"id"`
}

func encodeContinuationKey(lastKey map[string]types.AttributeValue) (string, error) {
	if len(lastKey) == 0 {
		return "", nil
	}

	var key continuationKey
	if err := attributevalue.UnmarshalMap(lastKey, &key); err != nil {
		return "", err
	}
	raw, err := json.Marshal(key)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func decodeContinuationKey(encoded string) (map[string]types.AttributeValue, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("malformed continuation key: %w", err)
	}
	var key continuationKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return nil, fmt.Errorf("malformed continuation key: %w", err)
	}
	return transactionKey(key.UserID, key.ID), nil
}
