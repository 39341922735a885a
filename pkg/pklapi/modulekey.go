package pklapi

// ModuleKey is the opaque handle identifying a module source an importer
// wrote (its original URI). Resolving it against a SecurityManager
// produces the ResolvedModuleKey the module cache actually loads from.
type ModuleKey interface {
	URI() string
	IsCached() bool
	IsStdLib() bool
	Resolve(sm SecurityManager) (ResolvedModuleKey, error)
	ResolveURI(globURI string) (string, error)
	IsGlobbable() bool
}

// ResolvedModuleKey is what the module cache actually loads from (its
// resolved URI).
type ResolvedModuleKey interface {
	LoadSource() (string, error)
	Original() ModuleKey
	URI() string
}
