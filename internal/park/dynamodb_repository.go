package park

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBClient defines the interface for DynamoDB operations.
type DynamoDBClient interface {
	Query(ctx context.Context, input *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DynamoDBRepository implements Repository using DynamoDB.
type DynamoDBRepository struct {
	client    DynamoDBClient
	tableName string
}

// NewDynamoDBRepository creates a new DynamoDBRepository.
func NewDynamoDBRepository(client DynamoDBClient, tableName string) *DynamoDBRepository {
	return &DynamoDBRepository{
		client:    client,
		tableName: tableName,
	}
}

// Query runs q and returns every matching record in sort key order,
// following pagination until the result set is exhausted.
func (r *DynamoDBRepository) Query(ctx context.Context, q Query) ([]Record, error) {
	paginator := dynamodb.NewQueryPaginator(r.client, q.Input(r.tableName))

	records := []Record{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query parks: %w", err)
		}

		var items []map[string]any
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshal parks: %w", err)
		}
		for _, item := range items {
			records = append(records, Record(item))
		}
	}

	return records, nil
}
