// Package export reads DynamoDB JSON exports and writes their items back to
// a table.
package export

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrInvalidAttribute is returned for attribute values that do not hold
// exactly one recognised type descriptor.
var ErrInvalidAttribute = errors.New("invalid attribute value")

// Item is a single exported item in attribute-value form.
type Item = map[string]types.AttributeValue

// document is the top level of an export, as written by
// "aws dynamodb scan --output json".
type document struct {
	Items []map[string]json.RawMessage `json:"Items"`
}

// Decode reads an export document from r.
func Decode(r io.Reader) ([]Item, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	items := make([]Item, 0, len(doc.Items))
	for i, raw := range doc.Items {
		item, err := decodeMap(raw)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeMap(raw map[string]json.RawMessage) (map[string]types.AttributeValue, error) {
	out := make(map[string]types.AttributeValue, len(raw))
	for name, v := range raw {
		av, err := decodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		out[name] = av
	}
	return out, nil
}

// decodeValue converts one wire-format value such as {"S":"x"} or
// {"L":[{"N":"1"}]}.
func decodeValue(raw json.RawMessage) (types.AttributeValue, error) {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(raw, &tagged); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAttribute, err)
	}
	if len(tagged) != 1 {
		return nil, fmt.Errorf("%w: want one type descriptor, got %d", ErrInvalidAttribute, len(tagged))
	}

	for tag, body := range tagged {
		switch tag {
		case "S":
			var s string
			if err := json.Unmarshal(body, &s); err != nil {
				return nil, fmt.Errorf("%w: S: %w", ErrInvalidAttribute, err)
			}
			return &types.AttributeValueMemberS{Value: s}, nil
		case "N":
			var n string
			if err := json.Unmarshal(body, &n); err != nil {
				return nil, fmt.Errorf("%w: N: %w", ErrInvalidAttribute, err)
			}
			return &types.AttributeValueMemberN{Value: n}, nil
		case "B":
			var b []byte
			if err := json.Unmarshal(body, &b); err != nil {
				return nil, fmt.Errorf("%w: B: %w", ErrInvalidAttribute, err)
			}
			return &types.AttributeValueMemberB{Value: b}, nil
		case "BOOL":
			var b bool
			if err := json.Unmarshal(body, &b); err != nil {
				return nil, fmt.Errorf("%w: BOOL: %w", ErrInvalidAttribute, err)
			}
			return &types.AttributeValueMemberBOOL{Value: b}, nil
		case "NULL":
			return &types.AttributeValueMemberNULL{Value: true}, nil
		case "SS", "NS":
			var ss []string
			if err := json.Unmarshal(body, &ss); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidAttribute, tag, err)
			}
			if tag == "SS" {
				return &types.AttributeValueMemberSS{Value: ss}, nil
			}
			return &types.AttributeValueMemberNS{Value: ss}, nil
		case "BS":
			var encoded []string
			if err := json.Unmarshal(body, &encoded); err != nil {
				return nil, fmt.Errorf("%w: BS: %w", ErrInvalidAttribute, err)
			}
			bs := make([][]byte, len(encoded))
			for i, e := range encoded {
				b, err := base64.StdEncoding.DecodeString(e)
				if err != nil {
					return nil, fmt.Errorf("%w: BS: %w", ErrInvalidAttribute, err)
				}
				bs[i] = b
			}
			return &types.AttributeValueMemberBS{Value: bs}, nil
		case "L":
			var elems []json.RawMessage
			if err := json.Unmarshal(body, &elems); err != nil {
				return nil, fmt.Errorf("%w: L: %w", ErrInvalidAttribute, err)
			}
			list := make([]types.AttributeValue, len(elems))
			for i, e := range elems {
				av, err := decodeValue(e)
				if err != nil {
					return nil, fmt.Errorf("index %d: %w", i, err)
				}
				list[i] = av
			}
			return &types.AttributeValueMemberL{Value: list}, nil
		case "M":
			var fields map[string]json.RawMessage
			if err := json.Unmarshal(body, &fields); err != nil {
				return nil, fmt.Errorf("%w: M: %w", ErrInvalidAttribute, err)
			}
			m, err := decodeMap(fields)
			if err != nil {
				return nil, err
			}
			return &types.AttributeValueMemberM{Value: m}, nil
		default:
			return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidAttribute, tag)
		}
	}
	return nil, ErrInvalidAttribute
}
