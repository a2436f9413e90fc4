// Package middleware stores the global middleware chain.
//
// These intercept requests to handle cross-cutting concerns
// such as request ids, request logging, tracing, CORS,
// rate limiting, panic recovery and error rendering.
package middleware
