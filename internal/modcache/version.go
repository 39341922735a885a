package modcache

import (
	hashiversion "github.com/hashicorp/go-version"
)

// versionLess reports whether runtime is older than required, per
// @ModuleInfo.minPklVersion. An unparsable version on either side is
// treated as satisfying the check, since refusing to load a module
// over a malformed version string would be a worse failure mode than the
// version check it was meant to perform.
func versionLess(runtime, required string) bool {
	r, err := hashiversion.NewVersion(runtime)
	if err != nil {
		return false
	}
	req, err := hashiversion.NewVersion(required)
	if err != nil {
		return false
	}
	return r.LessThan(req)
}
