package export

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of PutItem calls in flight.
const DefaultConcurrency = 8

// DynamoDBClient defines the interface for DynamoDB operations.
type DynamoDBClient interface {
	PutItem(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Loader writes exported items to a table. Existing items with the same
// key are replaced.
type Loader struct {
	client      DynamoDBClient
	tableName   string
	concurrency int
}

// NewLoader creates a Loader. A concurrency below 1 uses DefaultConcurrency.
func NewLoader(client DynamoDBClient, tableName string, concurrency int) *Loader {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Loader{
		client:      client,
		tableName:   tableName,
		concurrency: concurrency,
	}
}

// Load puts every item and returns how many were written. The first failure
// cancels outstanding writes.
func (l *Loader) Load(ctx context.Context, items []Item) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	var written atomic.Int64
	for i, item := range items {
		g.Go(func() error {
			_, err := l.client.PutItem(ctx, &dynamodb.PutItemInput{
				TableName: aws.String(l.tableName),
				Item:      item,
			})
			if err != nil {
				return fmt.Errorf("put item %d: %w", i, err)
			}
			written.Add(1)
			return nil
		})
	}

	err := g.Wait()
	return int(written.Load()), err
}
