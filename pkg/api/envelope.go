package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	bferrors "github.com/matzehuels/bookfair/pkg/errors"
)

// envelope is the backend's response wrapper.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// parseEnvelope reports whether body is an object with a success or data
// field.
func parseEnvelope(body []byte) (envelope, bool) {
	var env envelope
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return env, false
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return env, false
	}
	return env, env.Success != nil || len(env.Data) > 0
}

// envelopeMessage extracts a human message from an error body: message,
// then error, then data when it is a plain string.
func envelopeMessage(body []byte) string {
	env, ok := parseEnvelope(body)
	if !ok {
		var loose struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(body, &loose) == nil {
			if loose.Message != "" {
				return loose.Message
			}
			return loose.Error
		}
		return ""
	}
	switch {
	case env.Message != "":
		return env.Message
	case env.Error != "":
		return env.Error
	}
	var s string
	if json.Unmarshal(env.Data, &s) == nil {
		return s
	}
	return ""
}

// checkSuccess turns an envelope with success=false into an error carrying
// the backend message, or fallback when there is none.
func checkSuccess(body []byte, code bferrors.Code, fallback string) error {
	env, ok := parseEnvelope(body)
	if !ok || env.Success == nil || *env.Success {
		return nil
	}
	backend := envelopeMessage(body)
	msg := backend
	if msg == "" {
		msg = fallback
	}
	return bferrors.Wrap(code, &bferrors.StatusError{Status: http.StatusOK, Message: backend}, "%s", msg)
}

// BackendMessage returns the message the backend attached to a failed call,
// or "" when it sent none.
func BackendMessage(err error) string {
	var se *bferrors.StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}

// decodePayload decodes the envelope's data, or the whole body when it is
// not an envelope.
func decodePayload(body []byte, v any) error {
	payload := body
	if env, ok := parseEnvelope(body); ok {
		payload = env.Data
	}
	if isEmptyPayload(payload) {
		return bferrors.New(bferrors.ErrCodeNotFound, "empty response")
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return bferrors.Wrap(bferrors.ErrCodeInvalidFormat, err, "decode response")
	}
	return nil
}

func isEmptyPayload(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

// decodeList accepts a bare array, an envelope whose data is an array, or a
// single object with an "id" field. Anything else is an empty list.
func decodeList[T any](body []byte) ([]T, error) {
	payload := bytes.TrimSpace(body)
	if env, ok := parseEnvelope(payload); ok {
		payload = bytes.TrimSpace(env.Data)
	}
	if len(payload) == 0 {
		return []T{}, nil
	}

	switch payload[0] {
	case '[':
		var out []T
		if err := json.Unmarshal(payload, &out); err != nil {
			return nil, bferrors.Wrap(bferrors.ErrCodeInvalidFormat, err, "decode list")
		}
		return out, nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(payload, &fields); err != nil {
			return nil, bferrors.Wrap(bferrors.ErrCodeInvalidFormat, err, "decode object")
		}
		if _, ok := fields["id"]; !ok {
			return []T{}, nil
		}
		var one T
		if err := json.Unmarshal(payload, &one); err != nil {
			return nil, bferrors.Wrap(bferrors.ErrCodeInvalidFormat, err, "decode object")
		}
		return []T{one}, nil
	default:
		return []T{}, nil
	}
}
