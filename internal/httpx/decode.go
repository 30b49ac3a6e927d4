package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	// MaxRequestBodySize is the maximum allowed request body size (1MB).
	MaxRequestBodySize = 1 << 20
)

type decodeOptions struct {
	allowUnknown bool
}

// DecodeOption tunes DecodeJSON.
type DecodeOption func(*decodeOptions)

// AllowUnknownFields accepts bodies with fields T does not declare.
// Editors post whole documents back, including read-only fields like id.
func AllowUnknownFields() DecodeOption {
	return func(o *decodeOptions) { o.allowUnknown = true }
}

// DecodeJSON decodes a single JSON object from the request body with a size limit.
// Unknown fields are rejected unless AllowUnknownFields is passed.
func DecodeJSON[T any](r *http.Request, opts ...DecodeOption) (T, error) {
	var zeroValue T

	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	r.Body = http.MaxBytesReader(nil, r.Body, MaxRequestBodySize)
	defer func() {
		_ = r.Body.Close()
	}()

	decoder := json.NewDecoder(r.Body)
	if !o.allowUnknown {
		decoder.DisallowUnknownFields()
	}

	var v T
	if err := decoder.Decode(&v); err != nil {
		var syntaxErr *json.SyntaxError
		var unmarshalErr *json.UnmarshalTypeError
		var maxBytesErr *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxErr):
			return zeroValue, fmt.Errorf("malformed JSON at position %d", syntaxErr.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return zeroValue, errors.New("malformed JSON: unexpected end of body")
		case errors.As(err, &unmarshalErr):
			return zeroValue, fmt.Errorf("invalid value for field %q", unmarshalErr.Field)
		case errors.As(err, &maxBytesErr):
			return zeroValue, fmt.Errorf("request body too large (max %d bytes)", MaxRequestBodySize)
		case errors.Is(err, io.EOF):
			return zeroValue, errors.New("request body is empty")
		default:
			return zeroValue, fmt.Errorf("failed to decode JSON: %w", err)
		}
	}

	if decoder.More() {
		return zeroValue, errors.New("request body contains multiple JSON objects")
	}

	return v, nil
}
