// Package eval implements the evaluation engine: the Function value bound
// to method/lambda bodies, a value tracker for assertion rendering, and
// the type-check step a member read applies to its result, including the
// constant-folded stack-frame synthesis a type-check failure calls for.
package eval
