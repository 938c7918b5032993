package gameapi

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

// EnvelopeKind tags how an Envelope was produced
type EnvelopeKind int

const (
	// EnvelopeFailure is a transport, status or decoding failure
	EnvelopeFailure EnvelopeKind = iota
	// EnvelopeWrapped is a bare payload wrapped as successful data
	EnvelopeWrapped
	// EnvelopePassthrough is a backend object that already carried a success key
	EnvelopePassthrough
)

// Envelope is the uniform result of every backend call
type Envelope struct {
	Kind    EnvelopeKind
	Success bool
	Data    json.RawMessage
	Error   string

	// Raw holds the unchanged backend body of a passthrough envelope
	Raw json.RawMessage
}

// Failure builds a failed envelope
func Failure(message string) Envelope {
	return Envelope{Kind: EnvelopeFailure, Error: message}
}

// Wrap builds a successful envelope around a bare payload
func Wrap(payload json.RawMessage) Envelope {
	return Envelope{Kind: EnvelopeWrapped, Success: true, Data: payload}
}

// Normalize turns a response body into an Envelope.
// An object with a "success" key is passed through, anything else is wrapped.
func Normalize(body []byte) Envelope {
	if len(body) == 0 {
		return Failure("empty response body")
	}
	if !gjson.ValidBytes(body) {
		return Failure("invalid JSON response")
	}

	result := gjson.ParseBytes(body)
	success := result.Get("success")
	if !result.IsObject() || !success.Exists() {
		return Wrap(json.RawMessage(body))
	}

	env := Envelope{
		Kind:    EnvelopePassthrough,
		Success: success.Bool(),
		Raw:     json.RawMessage(body),
	}
	if data := result.Get("data"); data.Exists() {
		env.Data = json.RawMessage(data.Raw)
	}
	if msg := result.Get("error"); msg.Exists() {
		env.Error = msg.String()
	} else if msg := result.Get("message"); msg.Exists() && !env.Success {
		env.Error = msg.String()
	}
	return env
}

// Decode unmarshals the data of a successful envelope into v
func (e Envelope) Decode(v any) error {
	if !e.Success {
		return errors.New(e.Error)
	}
	if len(e.Data) == 0 {
		return errors.New("envelope has no data")
	}
	return json.Unmarshal(e.Data, v)
}

// MarshalJSON renders passthrough envelopes unchanged and the others as {success, data|error}
func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.Kind == EnvelopePassthrough && len(e.Raw) > 0 {
		return e.Raw, nil
	}

	out := struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data,omitempty"`
		Error   string          `json:"error,omitempty"`
	}{Success: e.Success, Data: e.Data, Error: e.Error}
	return json.Marshal(out)
}
