package park

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/parkreso/parkreso-api/internal/dynamo"
)

// ErrInvalidRequest is returned when the query parameters match neither the
// list nor the single-park shape.
var ErrInvalidRequest = errors.New("invalid request")

// Query describes a lookup against the park partition.
type Query struct {
	// ParkID restricts the lookup to one sort key. Empty means list all.
	ParkID string
	// VisibleOnly adds a visible = true filter condition.
	VisibleOnly bool
}

// NewQueryFromParams builds the query for a request's query string
// parameters. Non-admin callers always get a visibility filter.
func NewQueryFromParams(params map[string]string, isAdmin bool) (Query, error) {
	if len(params) == 0 {
		return Query{VisibleOnly: !isAdmin}, nil
	}
	if id := params[ParamPark]; id != "" {
		return Query{ParkID: id, VisibleOnly: !isAdmin}, nil
	}
	return Query{}, ErrInvalidRequest
}

// IsList reports whether the query returns the whole collection.
func (q Query) IsList() bool {
	return q.ParkID == ""
}

// Input renders the query as a DynamoDB QueryInput for tableName.
func (q Query) Input(tableName string) *dynamodb.QueryInput {
	keyCond := dynamo.AttrPK + " = :pk"
	values := map[string]types.AttributeValue{
		":pk": &types.AttributeValueMemberS{Value: PartitionPark},
	}

	if !q.IsList() {
		keyCond += " AND " + dynamo.AttrSK + " = :sk"
		values[":sk"] = &types.AttributeValueMemberS{Value: q.ParkID}
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(tableName),
		KeyConditionExpression:    aws.String(keyCond),
		ExpressionAttributeValues: values,
	}

	if q.VisibleOnly {
		input.FilterExpression = aws.String(AttrVisible + " = :visible")
		values[":visible"] = &types.AttributeValueMemberBOOL{Value: true}
	}

	return input
}
