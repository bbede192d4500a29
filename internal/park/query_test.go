package park

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestNewQueryFromParams(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]string
		isAdmin bool
		want    Query
		wantErr error
	}{
		{name: "nil params admin", params: nil, isAdmin: true, want: Query{}},
		{name: "empty params public", params: map[string]string{}, want: Query{VisibleOnly: true}},
		{name: "park admin", params: map[string]string{"park": "golden-ears"}, isAdmin: true, want: Query{ParkID: "golden-ears"}},
		{name: "park public", params: map[string]string{"park": "golden-ears"}, want: Query{ParkID: "golden-ears", VisibleOnly: true}},
		{name: "park with extras", params: map[string]string{"park": "joffre", "utm": "x"}, want: Query{ParkID: "joffre", VisibleOnly: true}},
		{name: "no park param", params: map[string]string{"facility": "lot-a"}, wantErr: ErrInvalidRequest},
		{name: "empty park param", params: map[string]string{"park": ""}, isAdmin: true, wantErr: ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewQueryFromParams(tt.params, tt.isAdmin)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewQueryFromParams() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NewQueryFromParams() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestQuery_Input_ListAdmin(t *testing.T) {
	input := Query{}.Input("parks-table")

	if *input.TableName != "parks-table" {
		t.Errorf("TableName = %q, want %q", *input.TableName, "parks-table")
	}
	if *input.KeyConditionExpression != "pk = :pk" {
		t.Errorf("KeyConditionExpression = %q, want %q", *input.KeyConditionExpression, "pk = :pk")
	}
	if input.FilterExpression != nil {
		t.Errorf("FilterExpression = %q, want nil", *input.FilterExpression)
	}
	if pk, ok := input.ExpressionAttributeValues[":pk"].(*types.AttributeValueMemberS); !ok || pk.Value != "park" {
		t.Errorf(":pk = %v, want park", input.ExpressionAttributeValues[":pk"])
	}
	if len(input.ExpressionAttributeValues) != 1 {
		t.Errorf("ExpressionAttributeValues has %d entries, want 1", len(input.ExpressionAttributeValues))
	}
}

func TestQuery_Input_ListPublic(t *testing.T) {
	input := Query{VisibleOnly: true}.Input("parks-table")

	if *input.KeyConditionExpression != "pk = :pk" {
		t.Errorf("KeyConditionExpression = %q, want %q", *input.KeyConditionExpression, "pk = :pk")
	}
	if input.FilterExpression == nil || *input.FilterExpression != "visible = :visible" {
		t.Fatalf("FilterExpression = %v, want %q", input.FilterExpression, "visible = :visible")
	}
	if v, ok := input.ExpressionAttributeValues[":visible"].(*types.AttributeValueMemberBOOL); !ok || !v.Value {
		t.Errorf(":visible = %v, want true", input.ExpressionAttributeValues[":visible"])
	}
}

func TestQuery_Input_GetOne(t *testing.T) {
	input := Query{ParkID: "mt-seymour", VisibleOnly: true}.Input("parks-table")

	if *input.KeyConditionExpression != "pk = :pk AND sk = :sk" {
		t.Errorf("KeyConditionExpression = %q, want %q", *input.KeyConditionExpression, "pk = :pk AND sk = :sk")
	}
	if sk, ok := input.ExpressionAttributeValues[":sk"].(*types.AttributeValueMemberS); !ok || sk.Value != "mt-seymour" {
		t.Errorf(":sk = %v, want mt-seymour", input.ExpressionAttributeValues[":sk"])
	}
	if input.FilterExpression == nil || *input.FilterExpression != "visible = :visible" {
		t.Errorf("FilterExpression = %v, want %q", input.FilterExpression, "visible = :visible")
	}
}

func TestQuery_IsList(t *testing.T) {
	if !(Query{}).IsList() {
		t.Error("empty Query should be a list query")
	}
	if (Query{ParkID: "x"}).IsList() {
		t.Error("Query with ParkID should not be a list query")
	}
}
