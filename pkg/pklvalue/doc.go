// Package pklvalue implements the Pkl value universe: a closed sum of
// variants (Value) plus the visitor/export machinery external renderers use
// to convert a Value into host data.
//
// Dynamic, Typed, Listing, Mapping, Function, Class and TypeAlias are the
// object-graph and metaobject variants; they are *interfaces* here
// (Object, Callable, ClassInfo, TypeAliasInfo) implemented by
// internal/object, internal/eval and internal/class respectively, so this
// package stays free of a dependency on the evaluation engine while still
// closing the value sum for visitor dispatch.
package pklvalue
