package export

import (
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const sampleExport = `{
  "Items": [
    {
      "pk": {"S": "park"},
      "sk": {"S": "golden-ears"},
      "visible": {"BOOL": true},
      "capacity": {"N": "350"},
      "closed": {"NULL": true},
      "tags": {"SS": ["camping", "hiking"]},
      "hours": {"NS": ["7", "22"]},
      "logo": {"B": "aGk="},
      "thumbs": {"BS": ["aGk="]},
      "location": {"M": {"region": {"S": "lower-mainland"}, "lat": {"N": "49.3"}}},
      "facilities": {"L": [{"S": "lot-a"}, {"M": {"name": {"S": "lot-b"}}}]}
    },
    {"pk": {"S": "park"}, "sk": {"S": "joffre"}}
  ],
  "Count": 2,
  "ScannedCount": 2
}`

func TestDecode(t *testing.T) {
	items, err := Decode(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}

	item := items[0]
	if v, ok := item["sk"].(*types.AttributeValueMemberS); !ok || v.Value != "golden-ears" {
		t.Errorf("sk = %v", item["sk"])
	}
	if v, ok := item["visible"].(*types.AttributeValueMemberBOOL); !ok || !v.Value {
		t.Errorf("visible = %v", item["visible"])
	}
	if v, ok := item["capacity"].(*types.AttributeValueMemberN); !ok || v.Value != "350" {
		t.Errorf("capacity = %v", item["capacity"])
	}
	if _, ok := item["closed"].(*types.AttributeValueMemberNULL); !ok {
		t.Errorf("closed = %v", item["closed"])
	}
	if v, ok := item["tags"].(*types.AttributeValueMemberSS); !ok || len(v.Value) != 2 || v.Value[1] != "hiking" {
		t.Errorf("tags = %v", item["tags"])
	}
	if v, ok := item["hours"].(*types.AttributeValueMemberNS); !ok || v.Value[0] != "7" {
		t.Errorf("hours = %v", item["hours"])
	}
	if v, ok := item["logo"].(*types.AttributeValueMemberB); !ok || string(v.Value) != "hi" {
		t.Errorf("logo = %v", item["logo"])
	}
	if v, ok := item["thumbs"].(*types.AttributeValueMemberBS); !ok || string(v.Value[0]) != "hi" {
		t.Errorf("thumbs = %v", item["thumbs"])
	}

	loc, ok := item["location"].(*types.AttributeValueMemberM)
	if !ok {
		t.Fatalf("location = %T, want M", item["location"])
	}
	if v, ok := loc.Value["region"].(*types.AttributeValueMemberS); !ok || v.Value != "lower-mainland" {
		t.Errorf("location.region = %v", loc.Value["region"])
	}

	fac, ok := item["facilities"].(*types.AttributeValueMemberL)
	if !ok || len(fac.Value) != 2 {
		t.Fatalf("facilities = %v", item["facilities"])
	}
	if _, ok := fac.Value[1].(*types.AttributeValueMemberM); !ok {
		t.Errorf("facilities[1] = %T, want M", fac.Value[1])
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unknown type", input: `{"Items":[{"a":{"X":"1"}}]}`},
		{name: "two descriptors", input: `{"Items":[{"a":{"S":"1","N":"1"}}]}`},
		{name: "no descriptor", input: `{"Items":[{"a":{}}]}`},
		{name: "wrong body type", input: `{"Items":[{"a":{"BOOL":"yes"}}]}`},
		{name: "nested bad", input: `{"Items":[{"a":{"L":[{"S":1}]}}]}`},
		{name: "bad binary set", input: `{"Items":[{"a":{"BS":["***"]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if !errors.Is(err, ErrInvalidAttribute) {
				t.Errorf("Decode() error = %v, want ErrInvalidAttribute", err)
			}
		})
	}
}

func TestDecode_NotJSON(t *testing.T) {
	if _, err := Decode(strings.NewReader("not json")); err == nil {
		t.Error("Decode() should fail on malformed input")
	}
}

func TestDecode_NoItems(t *testing.T) {
	items, err := Decode(strings.NewReader(`{"Count":0}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(items))
	}
}
