package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/meshdist/lockstore"
)

const (
	attrScope   = "scope"
	attrKey     = "key"
	attrPayload = "payload"
)

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Store implements lockstore.Store with one item per key.
type Store struct {
	client    DDBClient
	tableName string
	scope     string
}

var _ lockstore.Store = (*Store)(nil)

// NewStore creates a store writing to tableName under the given scope.
func NewStore(client DDBClient, tableName, scope string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		scope:     scope,
	}
}

func (s *Store) itemKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrScope: &types.AttributeValueMemberS{Value: s.scope},
		attrKey:   &types.AttributeValueMemberS{Value: key},
	}
}

// Get implements lockstore.Store.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            s.itemKey(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb get %s: %w", key, err)
	}
	if len(resp.Item) == 0 {
		return nil, lockstore.ErrNotFound
	}

	payload, ok := resp.Item[attrPayload].(*types.AttributeValueMemberB)
	if !ok {
		return nil, errors.New("invalid payload attribute in DynamoDB")
	}
	return payload.Value, nil
}

// Put implements lockstore.Store.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	item := s.itemKey(key)
	item[attrPayload] = &types.AttributeValueMemberB{Value: data}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamodb put %s: %w", key, err)
	}
	return nil
}

// Delete implements lockstore.Store.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.itemKey(key),
	})
	if err != nil {
		return fmt.Errorf("dynamodb delete %s: %w", key, err)
	}
	return nil
}
