package modcache

import (
	"fmt"

	"github.com/pkl-community/pklcore/internal/object"
)

// StdLibModuleNames lists the stdlib modules bootstrapped eagerly at
// process init: base, math, test, reflect, release, semver, settings,
// xml, platform, benchmark, jsonnet, project.
var StdLibModuleNames = []string{
	"base", "math", "test", "reflect", "release", "semver",
	"settings", "xml", "platform", "benchmark", "jsonnet", "project",
}

// StdLibBuilder constructs one stdlib module's Typed object graph directly
// in Go (its properties, methods, and backing Class metadata), standing in
// for "parsing and initializing the module from its embedded source" since
// no Pkl parser is in scope here. Bootstrap still owns the eager-
// realization and Force sequence around whatever the builder produces.
type StdLibBuilder func(name string) (*object.Typed, error)

// Bootstrap realizes each stdlib module eagerly into a shared singleton
// and installs it into mc under its "pkl:<name>" URI, the same key
// GetOrLoad looks up via a stdlib ModuleKey's URI(). It must run once, at
// process init, before any tenant evaluator context observes mc; per-slot
// locking inside internal/object and internal/class covers the thread
// safety the shared singletons still need afterward.
func Bootstrap(mc *ModuleCache, build StdLibBuilder) error {
	for _, name := range StdLibModuleNames {
		module, err := build(name)
		if err != nil {
			return fmt.Errorf("modcache: building stdlib module %q: %w", name, err)
		}
		uri := "pkl:" + name
		module.SetModuleURI(uri)

		if err := module.Force(false, true); err != nil {
			return fmt.Errorf("modcache: forcing stdlib module %q: %w", name, err)
		}

		mc.InstallStdLib(uri, module)
	}
	return nil
}
