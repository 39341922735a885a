// Package ast declares the external AST contract the parser produces and
// the evaluation engine consumes. The parser itself is out of scope; this
// package only fixes the shape of the nodes the engine walks:
// expressions, modules, classes, properties, methods, and declared-type
// syntax. Concrete node types and constructors here (Const, Native,
// Module, Class, ...) exist so the engine's own tests and the stdlib bootstrap can build
// trees without a real parser.
package ast
