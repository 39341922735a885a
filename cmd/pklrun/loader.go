package main

import (
	"fmt"
	"os"

	"github.com/pkl-community/pklcore/internal/modcache"
	"github.com/pkl-community/pklcore/internal/object"
	"github.com/pkl-community/pklcore/pkg/pklapi"
)

// fileModuleKey resolves a local path to itself; it stands in for the
// richer module-key resolution (package://, https://, stdlib) a full host
// would register resolvers for via pklapi.Holder.Resolvers.
type fileModuleKey struct{ path string }

func (k fileModuleKey) URI() string    { return "file://" + k.path }
func (k fileModuleKey) IsCached() bool { return true }
func (k fileModuleKey) IsStdLib() bool { return false }
func (k fileModuleKey) IsGlobbable() bool { return false }
func (k fileModuleKey) ResolveURI(globURI string) (string, error) { return globURI, nil }
func (k fileModuleKey) Resolve(pklapi.SecurityManager) (pklapi.ResolvedModuleKey, error) {
	return fileResolvedKey{key: k}, nil
}

type fileResolvedKey struct{ key fileModuleKey }

func (k fileResolvedKey) Original() pklapi.ModuleKey { return k.key }
func (k fileResolvedKey) URI() string                { return k.key.URI() }
func (k fileResolvedKey) LoadSource() (string, error) {
	data, err := os.ReadFile(k.key.path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", k.key.path, err)
	}
	return string(data), nil
}

// loadModule loads and forces the module at path using holder's security
// manager: configure a Holder, obtain a module via the cache, force it,
// then read/export its members.
func loadModule(mc *modcache.ModuleCache, holder *pklapi.Holder, path string) (*object.Typed, error) {
	module, err := mc.GetOrLoad(fileModuleKey{path: path}, holder.SecurityManager, literalInitializer())
	if err != nil {
		return nil, err
	}
	if err := module.Force(false, true); err != nil {
		return nil, err
	}
	return module, nil
}
