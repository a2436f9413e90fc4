// Package handler is the first layer after the router.
//
// It binds request data through the validation package, runs the
// endpoint function and writes the result as a rendered page or a
// redirect.
package handler
