// Package pklapi defines the external contracts a host embeds against:
// module keys, the security manager, the resource reader, the
// stack-frame transformer,
// the public error surface, and the Holder embedding surface a host
// program configures before loading and evaluating a module.
package pklapi
