// Package errs defines the application's error types.
//
// Every error that reaches the global error handler is reduced to an
// HTTPError so clients see one consistent shape, rendered either as an
// HTML error page or as JSON.
package errs
