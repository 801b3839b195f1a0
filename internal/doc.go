// Package internal contains the strut front controller core: the App, the
// per-request Context, the route table compiler, and the dispatch pipeline.
//
// The public API lives in the root strut package, which re-exports the types
// and constructors defined here via aliases. Application code should import
// github.com/strutkit/strut, not this package.
//
// # Dispatch pipeline
//
// Every request that reaches the dispatcher goes through a fixed sequence:
// bootstrap hooks for the resolved module, path segmentation, language
// resolution, route matching against the ordered regex table, predispatch
// hooks, the HTTPS policy, and finally the controller's verb handler. Any
// step may terminate the request: hooks by writing a response or returning
// an error, routing with a 404, the policy with a redirect, the verb check
// with a 405.
//
// Route tables, controller registries, and hooks are validated and compiled
// once in New; a misconfigured application fails at startup rather than on
// the first affected request.
package internal
