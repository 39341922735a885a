package pklapi

import "net/http"

// Holder is the context-lifetime configuration a host installs before
// loading and evaluating a module: one struct configures a context for
// its whole lifetime rather than per call.
type Holder struct {
	// SecurityManager gates every resource read and module resolution.
	// DefaultHolder installs AllowAll; a nil SecurityManager is passed on
	// as nil and is not replaced by a default.
	SecurityManager SecurityManager

	// Resolvers maps a URI scheme to the ModuleKey resolver that handles
	// it (e.g. "file", "https", "package").
	Resolvers map[string]func(uri string) (ModuleKey, error)

	// ResourceReaders maps a URI scheme to the reader contributing it.
	ResourceReaders map[string]ResourceReader

	// EnvVars and ExternalProperties surface as read(...)/"read?(...)" in
	// the stdlib base module.
	EnvVars           map[string]string
	ExternalProperties map[string]string

	// ProjectDependencies maps a dependency name to its resolved package
	// base URI, consulted when resolving `@dep` imports.
	ProjectDependencies map[string]string

	// TraceMode enables per-read diagnostic tracing via a RecordingTracker.
	TraceMode bool

	// ModuleCacheDir is an optional on-disk cache directory; empty means
	// in-memory only.
	ModuleCacheDir string

	// HTTPClient is used by resolvers/readers that fetch over HTTP(S); a
	// nil client defaults to http.DefaultClient.
	HTTPClient *http.Client

	// PowerAssertions enables the richer assertion-failure rendering that
	// consults a value tracker.
	PowerAssertions bool

	// StackFrameTransformer post-processes every frame before a PklException
	// reaches a renderer. Nil means identity.
	StackFrameTransformer StackFrameTransformer
}

// DefaultHolder returns a Holder with an AllowAll security manager and
// empty resolver/reader/env tables — the zero-configuration context the
// stdlib bootstrap uses.
func DefaultHolder() *Holder {
	return &Holder{
		SecurityManager:    AllowAll{},
		Resolvers:          make(map[string]func(uri string) (ModuleKey, error)),
		ResourceReaders:    make(map[string]ResourceReader),
		EnvVars:            make(map[string]string),
		ExternalProperties: make(map[string]string),
		ProjectDependencies: make(map[string]string),
	}
}
