// Package mediator provides the command/query dispatch mechanism of the book API
// together with the result contract that binds HTTP controllers, handlers and storage.
//
// A Message (command or query) is routed by its MessageType to exactly one HandlerFunc.
// Handlers are collected once at startup with a RegistryBuilder and frozen into an
// immutable Registry, which the Dispatcher resolves against for every message.
//
// Handlers report outcomes as a Result, built only via Ok or Fail.
// Business-rule violations may also be returned as a *DomainError, which the Dispatcher
// converts into Fail(reason). Every other error is passed through to the caller untouched.
//
// Common usage pattern:
//
//	builder := mediator.NewRegistryBuilder()
//	if err := mediator.Register(builder, addAuthorHandler.Handle); err != nil {
//		// duplicate registration: configuration defect, abort startup
//	}
//
//	dispatcher, _ := mediator.NewDispatcher(builder.Build(), mediator.WithLogger(logger))
//
//	result, err := dispatcher.Dispatch(ctx, addauthor.BuildCommand("Frank", "Herbert"))
//	if err != nil {
//		// no handler registered or an unclassified fault: HTTP 500
//	}
//
//	if !result.IsSuccess() {
//		// domain failure: result.Reason() goes into the envelope
//	}
package mediator
