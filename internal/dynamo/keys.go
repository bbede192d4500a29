// Package dynamo provides shared DynamoDB constants and utilities.
package dynamo

import (
	"errors"

	"github.com/aws/smithy-go"
)

const (
	// Primary key attributes.
	AttrPK = "pk"
	AttrSK = "sk"
)

// ErrorCode returns the AWS API error code carried by err, or fallback when
// err did not come from the service (network failure, local validation).
func ErrorCode(err error, fallback string) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() != "" {
		return apiErr.ErrorCode()
	}
	return fallback
}
