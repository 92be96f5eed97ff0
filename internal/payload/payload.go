// Package payload decodes a raw invocation into an upload request.
//
// Two shapes are accepted. A direct invocation carries the request fields
// at the top level:
//
//	{"fileName": "photo.jpg", "contentType": "image/jpeg"}
//
// A wrapped (API Gateway proxy) invocation carries them as serialized JSON
// text in "body":
//
//	{"body": "{\"fileName\": \"photo.jpg\"}"}
//
// A payload is wrapped iff "body" is present and is a JSON string.
package payload

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sh3r4rd/upload_url/internal/model"
)

// Kind tells which shape an invocation arrived in.
type Kind int

const (
	KindDirect Kind = iota
	KindWrapped
)

func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindWrapped:
		return "wrapped"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var (
	ErrNotObject   = errors.New("payload: invocation is not a JSON object")
	ErrInvalidBody = errors.New("payload: invalid body")
)

// Payload is a parsed invocation.
type Payload struct {
	Kind    Kind
	Request model.UploadRequest
	// Method is the HTTP method reported by the gateway, empty for direct
	// invocations.
	Method string
}

// object is a decoded JSON object. Lookups are exact: encoding/json would
// match struct fields case-insensitively, so "filename" or "Body" would be
// taken for "fileName" or "body".
type object map[string]json.RawMessage

func decodeObject(data []byte) (object, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, ErrNotObject
	}
	var o object
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, err
	}
	return o, nil
}

// str returns the string at key. A missing key or null yields "".
func (o object) str(key string) (string, error) {
	v, ok := o[key]
	if !ok || isNull(v) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", fmt.Errorf("field %q: %w", key, err)
	}
	return s, nil
}

// flag returns the boolean at key, false when missing or not a boolean.
func (o object) flag(key string) bool {
	var b bool
	if v, ok := o[key]; ok {
		_ = json.Unmarshal(v, &b)
	}
	return b
}

// child returns the object at key, nil when missing or not an object.
func (o object) child(key string) object {
	v, ok := o[key]
	if !ok {
		return nil
	}
	c, err := decodeObject(v)
	if err != nil {
		return nil
	}
	return c
}

func isNull(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "null"
}

// method reads the gateway method. REST APIs report it in httpMethod,
// HTTP APIs in requestContext.http.method. Malformed values are ignored.
func method(env object) string {
	if m, err := env.str("httpMethod"); err == nil && m != "" {
		return m
	}
	m, _ := env.child("requestContext").child("http").str("method")
	return m
}

// Parse decodes raw into a Payload. It does not validate the request
// fields; a missing fileName yields an empty Request.FileName.
func Parse(raw []byte) (Payload, error) {
	env, err := decodeObject(raw)
	if errors.Is(err, ErrNotObject) {
		return Payload{}, err
	}
	if err != nil {
		return Payload{}, fmt.Errorf("payload: decode envelope: %w", err)
	}

	body, hasBody := env["body"]
	body = bytes.TrimSpace(body)
	if !hasBody || len(body) == 0 || body[0] != '"' {
		req, err := requestFrom(env)
		if err != nil {
			return Payload{}, err
		}
		return Payload{Kind: KindDirect, Request: req, Method: method(env)}, nil
	}

	var text string
	if err := json.Unmarshal(body, &text); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	inner := []byte(text)
	if env.flag("isBase64Encoded") {
		decoded, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return Payload{}, fmt.Errorf("%w: base64: %v", ErrInvalidBody, err)
		}
		inner = decoded
	}

	p := Payload{Kind: KindWrapped, Method: method(env)}
	if p.IsPreflight() {
		return p, nil
	}

	o, err := decodeObject(inner)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	req, err := requestFrom(o)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	p.Request = req
	return p, nil
}

// IsPreflight reports whether the gateway forwarded a CORS preflight.
func (p Payload) IsPreflight() bool {
	return p.Method == "OPTIONS"
}

func requestFrom(o object) (model.UploadRequest, error) {
	fileName, err := o.str("fileName")
	if err != nil {
		return model.UploadRequest{}, fmt.Errorf("payload: decode request: %w", err)
	}
	contentType, err := o.str("contentType")
	if err != nil {
		return model.UploadRequest{}, fmt.Errorf("payload: decode request: %w", err)
	}
	return model.UploadRequest{FileName: fileName, ContentType: contentType}, nil
}
