package httpapi

import "github.com/AntonStoeckl/bookapp-api/mediator"

// Envelope is the wire representation of a mediator.Result.
// Data is set only on success and Error only on failure.
type Envelope struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Error   *string `json:"error"`
}

// EnvelopeFrom converts a Result into an Envelope.
func EnvelopeFrom(result mediator.Result) Envelope {
	if result.IsSuccess() {
		return Envelope{Success: true, Data: result.Payload()}
	}

	reason := result.Reason()

	return Envelope{Success: false, Error: &reason}
}
