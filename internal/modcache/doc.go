// Package modcache implements the module cache and stdlib bootstrap:
// cyclic-safe double-keyed caching with sticky error replay, and the
// eagerly-realized stdlib singleton modules every evaluator context
// shares. ModuleCache also implements internal/class.Resolver, since it
// owns the cross-module namespace of realized classes and typealiases
// internal/class.Compile resolves references against.
package modcache
