package mediator

// Result represents the outcome of dispatching a Message.
//
// IMPORTANT: Result should only be constructed using the provided factory functions Ok(payload) or Fail(reason).
// The fields are unexported so that exactly one of payload or reason is meaningful, gated by the success flag.
type Result struct {
	success bool
	payload any
	reason  string
}

// Ok creates a successful Result carrying the given payload (an identifier, an entity, a list, or nil).
func Ok(payload any) Result {
	return Result{
		success: true,
		payload: payload,
	}
}

// Fail creates an unsuccessful Result carrying the reason of the failure.
func Fail(reason string) Result {
	return Result{
		success: false,
		reason:  reason,
	}
}

// IsSuccess reports whether the Result was created with Ok.
func (r Result) IsSuccess() bool {
	return r.success
}

// Payload returns the payload of a successful Result, nil otherwise.
func (r Result) Payload() any {
	if !r.success {
		return nil
	}

	return r.payload
}

// Reason returns the failure reason of an unsuccessful Result, an empty string otherwise.
func (r Result) Reason() string {
	if r.success {
		return ""
	}

	return r.reason
}
