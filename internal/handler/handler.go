// Package handler is the HTTP layer between the router and the services.
//
// Each endpoint is a typed function that receives a bound and validated
// request and returns a payload; Handle runs it through the shared
// pipeline of binding, validation, logging and tracing. Failures are
// returned as errors and rendered by the global error handler.
package handler
