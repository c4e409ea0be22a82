package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/finbook/finbook-api/internal/models"
)

// userStore persists identities in a table keyed by email.
type userStore struct {
	Client *dynamodb.Client
	Table  string
}

func NewUserStore(client *dynamodb.Client, table string) *userStore {
	return &userStore{
		Client: client,
		Table:  table,
	}
}

func (us *userStore) CreateUser(ctx context.Context, user *models.User) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return err
	}

	_, err = us.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(us.Table),
		Item:      item,
	})
	return err
}

// GetUserByEmail returns nil without error when no identity matches.
func (us *userStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	out, err := us.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(us.Table),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(out.Item, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (us *userStore) ListUsers(ctx context.Context) ([]models.User, error) {
	out, err := us.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(us.Table),
	})
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &users); err != nil {
		return nil, err
	}
	return users, nil
}
