// Package httpapi is the HTTP boundary of the book catalog.
//
// Handlers validate the request, build a Command or Query, dispatch it through the mediator,
// and translate the Result into an Envelope:
//
//   - malformed body or id: 400 with an empty body, the core is not invoked
//   - success Result: 201 (POST) or 200 with {"success":true,"data":...,"error":null}
//   - failure Result: 400 with {"success":false,"data":null,"error":"<reason>"}
//   - dispatch error: 500 with an empty body, logged at CRITICAL level
package httpapi
