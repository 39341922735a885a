// Package resource implements the resource/module I/O mediator:
// per-normalized-URI result caching, glob resolution restricted to
// globbable readers with a bounded LRU cache of resolved element sets, and
// BOM-aware text decoding for resource payloads.
package resource
