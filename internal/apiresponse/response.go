// Package apiresponse builds API Gateway proxy responses with the CORS
// headers browsers need to call the parks API directly.
package apiresponse

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/parkreso/parkreso-api/internal/dynamo"
)

// Header values sent with every response.
const (
	AllowHeaders = "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token"
	AllowOrigin  = "*"
	AllowMethods = "OPTIONS,GET"
)

// CodeQueryFailed is the error code used when a failure carries no AWS code.
const CodeQueryFailed = "QueryFailed"

// Message is the body shape for fixed client-facing messages.
type Message struct {
	Msg string `json:"msg"`
}

// ErrorBody is the body shape for failed store operations.
type ErrorBody struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// InvalidRequest is the body returned for unrecognised parameter shapes.
var InvalidRequest = Message{Msg: "Invalid Request"}

// Headers returns a fresh copy of the response headers.
func Headers() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Headers": AllowHeaders,
		"Access-Control-Allow-Origin":  AllowOrigin,
		"Access-Control-Allow-Methods": AllowMethods,
	}
}

// JSON encodes payload as the body of a response with status.
func JSON(status int, payload any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		body, _ = json.Marshal(Message{Msg: "Internal Error"})
		status = http.StatusInternalServerError
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    Headers(),
		Body:       string(body),
	}
}

// Error reports err with its AWS error code, or CodeQueryFailed.
func Error(status int, err error) events.APIGatewayProxyResponse {
	return JSON(status, ErrorBody{
		Code: dynamo.ErrorCode(err, CodeQueryFailed),
		Msg:  err.Error(),
	})
}
