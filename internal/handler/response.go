package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// fallbackBody is sent if a response body cannot be encoded.
const fallbackBody = `{"error":"Internal server error"}`

// Headers returns the header set attached to every response.
func Headers() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
	}
}

// Response renders r as a gateway proxy response.
func (r Result) Response() events.APIGatewayProxyResponse {
	resp := events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode(),
		Headers:    Headers(),
	}

	var payload any
	switch r.Outcome {
	case OutcomePreflight:
		return resp
	case OutcomeSuccess:
		payload = r.Grant
	default:
		payload = r.Failure
	}

	body, err := json.Marshal(payload)
	if err != nil {
		resp.StatusCode = http.StatusInternalServerError
		resp.Body = fallbackBody
		return resp
	}
	resp.Body = string(body)
	return resp
}
