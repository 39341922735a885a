package modcache

import (
	"sync"

	"github.com/pkl-community/pklcore/internal/object"
	"github.com/pkl-community/pklcore/internal/perr"
	"github.com/pkl-community/pklcore/pkg/pklapi"
)

// Initializer parses and installs a module's members into module (an
// already-allocated, empty Typed), given its source text and resolved
// URI: instantiate an empty typed module, then initialize. It returns the
// module's declared @ModuleInfo.minPklVersion, or "" if none was
// declared.
type Initializer func(module *object.Typed, source, resolvedURI string) (minPklVersion string, err error)

type cacheEntry struct {
	module *object.Typed
	err    error
}

// ModuleCache implements the module cache: cyclic-safe double-keyed
// caching by original and resolved URI, sticky error replay, and the
// stdlib singleton lookup. It also implements internal/class.
// Resolver (embedding *registry) since it owns the cross-module class/
// typealias namespace internal/class.Compile resolves against.
type ModuleCache struct {
	*registry

	runtimeVersion string // this core's major.minor.patch, checked against minPklVersion

	mu       sync.Mutex
	original map[string]*cacheEntry
	resolved map[string]*cacheEntry

	stdlib map[string]*object.Typed
}

// New builds an empty ModuleCache reporting runtimeVersion for
// minPklVersion compatibility checks.
func New(runtimeVersion string) *ModuleCache {
	return &ModuleCache{
		registry:       newRegistry(),
		runtimeVersion: runtimeVersion,
		original:       make(map[string]*cacheEntry),
		resolved:       make(map[string]*cacheEntry),
		stdlib:         make(map[string]*object.Typed),
	}
}

// InstallStdLib registers a pre-realized stdlib singleton under name
// (e.g. "pkl.base"), called once per module during bootstrap.
func (mc *ModuleCache) InstallStdLib(name string, module *object.Typed) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.stdlib[name] = module
}

// GetOrLoad is the cache's getOrLoad operation. Table lookups and
// placeholder insertion are synchronized at the method level, but the
// lock is released while init runs: init may itself call GetOrLoad recursively
// (a cyclic import resolving back through this same cache), which the
// placeholder entry already installed in both tables makes safe.
func (mc *ModuleCache) GetOrLoad(key pklapi.ModuleKey, sm pklapi.SecurityManager, init Initializer) (*object.Typed, error) {
	if key.IsStdLib() {
		mc.mu.Lock()
		module, ok := mc.stdlib[key.URI()]
		mc.mu.Unlock()
		if !ok {
			return nil, perr.NewCannotFindStdLibModule(key.URI())
		}
		return module, nil
	}

	if !key.IsCached() {
		resolvedKey, err := key.Resolve(sm)
		if err != nil {
			return nil, perr.WrapSecurityManagerRejection(err)
		}
		return mc.resolveAndInit(resolvedKey, init, nil, nil)
	}

	originalURI := key.URI()

	mc.mu.Lock()
	if entry, ok := mc.original[originalURI]; ok {
		mc.mu.Unlock()
		return entry.module, entry.err
	}
	mc.mu.Unlock()

	resolvedKey, err := key.Resolve(sm)
	if err != nil {
		wrapped := perr.WrapSecurityManagerRejection(err)
		mc.mu.Lock()
		mc.original[originalURI] = &cacheEntry{err: wrapped}
		mc.mu.Unlock()
		return nil, wrapped
	}

	resolvedURI := resolvedKey.URI()

	mc.mu.Lock()
	if entry, ok := mc.resolved[resolvedURI]; ok {
		mc.original[originalURI] = entry
		mc.mu.Unlock()
		return entry.module, entry.err
	}
	mc.mu.Unlock()

	return mc.resolveAndInit(resolvedKey, init, &originalURI, &resolvedURI)
}

// resolveAndInit allocates an empty module, stores it under both keys
// before initializing (so a cyclic import of this module observes the
// partially-initialized instance), then runs init. When
// originalURI/resolvedURI are nil the module is non-cacheable and
// neither table is touched.
func (mc *ModuleCache) resolveAndInit(resolvedKey pklapi.ResolvedModuleKey, init Initializer, originalURI, resolvedURI *string) (*object.Typed, error) {
	module := object.NewTyped(nil, nil)
	module.SetModuleURI(resolvedKey.URI())

	entry := &cacheEntry{module: module}
	mc.mu.Lock()
	if originalURI != nil {
		mc.original[*originalURI] = entry
	}
	if resolvedURI != nil {
		mc.resolved[*resolvedURI] = entry
	}
	mc.mu.Unlock()

	finish := func(failure error) (*object.Typed, error) {
		mc.mu.Lock()
		failed := &cacheEntry{err: failure}
		if originalURI != nil {
			mc.original[*originalURI] = failed
		}
		if resolvedURI != nil {
			mc.resolved[*resolvedURI] = failed
		}
		mc.mu.Unlock()
		return nil, failure
	}

	source, err := resolvedKey.LoadSource()
	if err != nil {
		return finish(perr.WrapResourceIOError(err, resolvedKey.URI()))
	}

	minVersion, err := init(module, source, resolvedKey.URI())
	if err != nil {
		return finish(err)
	}

	if minVersion != "" && versionLess(mc.runtimeVersion, minVersion) {
		return finish(perr.NewIncompatiblePklVersion(resolvedKey.URI(), minVersion, mc.runtimeVersion))
	}

	return module, nil
}
