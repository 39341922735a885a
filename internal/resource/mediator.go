package resource

import (
	"net/url"
	"path"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pkl-community/pklcore/internal/perr"
	"github.com/pkl-community/pklcore/pkg/pklapi"
)

// globCacheSize bounds the number of distinct (enclosing URI, glob
// pattern) resolutions kept in memory at once.
const globCacheSize = 512

// GlobResolver resolves a glob pattern against a globbable reader: the
// core invokes an external glob resolver with (security manager, reader,
// enclosing module key, enclosing URI, glob pattern).
type GlobResolver func(sm pklapi.SecurityManager, reader pklapi.ResourceReader, enclosingModuleURI, enclosingURI, pattern string) ([]string, error)

// Mediator is the resource/module I/O mediator: it dispatches reads to
// the reader registered for a URI's scheme, caches results per
// normalized URI for the lifetime of one evaluation (deterministic reads
// within one evaluation), and caches resolved glob element sets in a
// bounded LRU.
type Mediator struct {
	sm      pklapi.SecurityManager
	readers map[string]pklapi.ResourceReader
	resolve GlobResolver

	mu        sync.Mutex
	readCache map[string]readResult

	globCache *lru.Cache[string, []string]
}

type readResult struct {
	payload []byte
	found   bool
}

// New builds a Mediator over readers (keyed by URI scheme), gated by sm.
// resolve may be nil if no registered reader is globbable.
func New(sm pklapi.SecurityManager, readers map[string]pklapi.ResourceReader, resolve GlobResolver) *Mediator {
	cache, _ := lru.New[string, []string](globCacheSize)
	return &Mediator{
		sm:        sm,
		readers:   readers,
		resolve:   resolve,
		readCache: make(map[string]readResult),
		globCache: cache,
	}
}

// NormalizeURI cleans uri's path component so equivalent spellings
// ("file:///a/./b" and "file:///a/b") share one cache entry.
func NormalizeURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	u.Path = path.Clean(u.Path)
	return u.String(), nil
}

// Read fetches uri's payload, consulting the security manager and the
// per-normalized-URI result cache before delegating to the scheme's
// reader.
func (m *Mediator) Read(uri string) ([]byte, bool, error) {
	if err := m.sm.CheckReadResource(uri); err != nil {
		return nil, false, perr.WrapSecurityManagerRejection(err)
	}
	normalized, err := NormalizeURI(uri)
	if err != nil {
		return nil, false, perr.WrapResourceIOError(err, uri)
	}

	m.mu.Lock()
	if cached, ok := m.readCache[normalized]; ok {
		m.mu.Unlock()
		return cached.payload, cached.found, nil
	}
	m.mu.Unlock()

	reader, err := m.readerFor(uri)
	if err != nil {
		return nil, false, err
	}
	payload, found, err := reader.Read(uri)
	if err != nil {
		return nil, false, perr.WrapResourceIOError(err, uri)
	}

	m.mu.Lock()
	m.readCache[normalized] = readResult{payload: payload, found: found}
	m.mu.Unlock()
	return payload, found, nil
}

func (m *Mediator) readerFor(uri string) (pklapi.ResourceReader, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, perr.WrapResourceIOError(err, uri)
	}
	reader, ok := m.readers[u.Scheme]
	if !ok {
		return nil, perr.NewEvalError("no resource reader registered for scheme "+u.Scheme, nil)
	}
	return reader, nil
}

// ResolveGlob resolves pattern against the reader contributing
// enclosingURI's scheme, caching the resolved element set by normalized
// glob URI. Fails if the reader is not globbable.
func (m *Mediator) ResolveGlob(enclosingModuleURI, enclosingURI, pattern string) ([]string, error) {
	reader, err := m.readerFor(enclosingURI)
	if err != nil {
		return nil, err
	}
	if !reader.IsGlobbable() {
		return nil, perr.NewEvalError("reader for "+enclosingURI+" does not support globbing", nil)
	}
	globURI, err := NormalizeURI(enclosingURI + "::" + pattern)
	if err != nil {
		return nil, perr.WrapResourceIOError(err, enclosingURI)
	}
	if cached, ok := m.globCache.Get(globURI); ok {
		return cached, nil
	}
	if m.resolve == nil {
		return nil, perr.NewBug("glob resolver not configured for a globbable reader")
	}
	elements, err := m.resolve(m.sm, reader, enclosingModuleURI, enclosingURI, pattern)
	if err != nil {
		return nil, err
	}
	m.globCache.Add(globURI, elements)
	return elements, nil
}
