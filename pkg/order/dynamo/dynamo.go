// Package dynamo implements an order backend on DynamoDB.
package dynamo

import (
	"context"
	"fmt"
	"os"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"bookorders/pkg/order"
)

// API is the subset of the DynamoDB client the backend uses.
type API interface {
	GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error)
	PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error)
}

// item is the shape stored in the table. The partition key is "key".
type item struct {
	Key   string `dynamodbav:"key"`
	Value string `dynamodbav:"value"`
}

// Backend persists values as items of one table.
type Backend struct {
	client    API
	tableName string
}

// New creates a DynamoDB backend on tableName.
func New(client API, tableName string) *Backend {
	return &Backend{client: client, tableName: tableName}
}

// NewClient loads the default AWS configuration for region and returns a
// DynamoDB client. AWS_ENDPOINT_OVERRIDE points the client at a local
// emulator.
func NewClient(ctx context.Context, region string) (*dyn.Client, error) {
	if region == "" {
		region = "us-east-1"
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	endpoint := os.Getenv("AWS_ENDPOINT_OVERRIDE")
	return dyn.NewFromConfig(cfg, func(o *dyn.Options) {
		if endpoint != "" {
			o.BaseEndpoint = sdkaws.String(endpoint)
		}
	}), nil
}

func (b *Backend) keyAttr(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"key": &types.AttributeValueMemberS{Value: key},
	}
}

// Get fetches the value stored under key.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := b.client.GetItem(ctx, &dyn.GetItemInput{
		TableName:      &b.tableName,
		Key:            b.keyAttr(key),
		ConsistentRead: sdkaws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, order.ErrNotFound
	}
	var it item
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return []byte(it.Value), nil
}

// Set replaces the item for key.
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	av, err := attributevalue.MarshalMap(item{Key: key, Value: string(value)})
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	if _, err := b.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &b.tableName,
		Item:      av,
	}); err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Delete removes the item for key.
func (b *Backend) Delete(ctx context.Context, key string) error {
	out, err := b.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName:    &b.tableName,
		Key:          b.keyAttr(key),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if len(out.Attributes) == 0 {
		return order.ErrNotFound
	}
	return nil
}
