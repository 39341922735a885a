package modcache

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkl-community/pklcore/internal/object"
	"github.com/pkl-community/pklcore/pkg/pklapi"
)

type fakeResolvedKey struct {
	uri    string
	source string
	orig   pklapi.ModuleKey
}

func (k *fakeResolvedKey) LoadSource() (string, error) { return k.source, nil }
func (k *fakeResolvedKey) Original() pklapi.ModuleKey  { return k.orig }
func (k *fakeResolvedKey) URI() string                 { return k.uri }

type fakeModuleKey struct {
	uri         string
	resolvedURI string
	source      string
	cached      bool
	stdlib      bool
	resolveErr  error
}

func (k *fakeModuleKey) URI() string      { return k.uri }
func (k *fakeModuleKey) IsCached() bool   { return k.cached }
func (k *fakeModuleKey) IsStdLib() bool   { return k.stdlib }
func (k *fakeModuleKey) IsGlobbable() bool { return false }
func (k *fakeModuleKey) ResolveURI(globURI string) (string, error) { return globURI, nil }
func (k *fakeModuleKey) Resolve(pklapi.SecurityManager) (pklapi.ResolvedModuleKey, error) {
	if k.resolveErr != nil {
		return nil, k.resolveErr
	}
	resolved := k.resolvedURI
	if resolved == "" {
		resolved = k.uri
	}
	return &fakeResolvedKey{uri: resolved, source: k.source, orig: k}, nil
}

func newCachedKey(uri, source string) *fakeModuleKey {
	return &fakeModuleKey{uri: uri, source: source, cached: true}
}

func TestCyclicModuleImportsBothEvaluateSuccessfully(t *testing.T) {
	mc := New("0.99.0")

	var moduleA, moduleB *object.Typed
	var calls int32

	init := func(module *object.Typed, source, resolvedURI string) (string, error) {
		atomic.AddInt32(&calls, 1)
		switch resolvedURI {
		case "file:///a.pkl":
			// Importing B while initializing A exercises the cyclic path:
			// B's initializer in turn loads A, which must come back as the
			// same partially-initialized instance rather than recursing.
			b, err := mc.GetOrLoad(newCachedKey("file:///b.pkl", "b"), pklapi.AllowAll{}, init)
			if err != nil {
				return "", err
			}
			moduleB = b
		case "file:///b.pkl":
			a, err := mc.GetOrLoad(newCachedKey("file:///a.pkl", "a"), pklapi.AllowAll{}, init)
			if err != nil {
				return "", err
			}
			moduleA = a
		}
		return "", nil
	}

	got, err := mc.GetOrLoad(newCachedKey("file:///a.pkl", "a"), pklapi.AllowAll{}, init)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.NotNil(t, moduleA)
	assert.NotNil(t, moduleB)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestStickyErrorReplayDoesNotReExecuteBody(t *testing.T) {
	mc := New("0.99.0")
	var calls int32
	boom := errors.New("boom")

	init := func(module *object.Typed, source, resolvedURI string) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", boom
	}

	key := newCachedKey("file:///m.pkl", "m")
	_, err1 := mc.GetOrLoad(key, pklapi.AllowAll{}, init)
	require.Error(t, err1)

	_, err2 := mc.GetOrLoad(key, pklapi.AllowAll{}, init)
	require.Error(t, err2)

	assert.Equal(t, err1.Error(), err2.Error())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNonCacheableModuleBypassesCache(t *testing.T) {
	mc := New("0.99.0")
	var calls int32
	key := &fakeModuleKey{uri: "file:///once.pkl", source: "x", cached: false}
	init := func(module *object.Typed, source, resolvedURI string) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", nil
	}

	_, err := mc.GetOrLoad(key, pklapi.AllowAll{}, init)
	require.NoError(t, err)
	_, err = mc.GetOrLoad(key, pklapi.AllowAll{}, init)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestUnknownStdLibModuleRaisesCannotFind(t *testing.T) {
	mc := New("0.99.0")
	key := &fakeModuleKey{uri: "pkl:doesnotexist", stdlib: true}
	_, err := mc.GetOrLoad(key, pklapi.AllowAll{}, nil)
	assert.Error(t, err)
}

func TestTwoContextsShareStdLibSingletonIdentity(t *testing.T) {
	mc := New("0.99.0")
	build := func(name string) (*object.Typed, error) { return object.NewTyped(nil, nil), nil }
	err := Bootstrap(mc, build)
	require.NoError(t, err)

	ctxAKey := &fakeModuleKey{uri: "pkl:base", stdlib: true}
	ctxBKey := &fakeModuleKey{uri: "pkl:base", stdlib: true}

	a, err := mc.GetOrLoad(ctxAKey, pklapi.AllowAll{}, nil)
	require.NoError(t, err)
	b, err := mc.GetOrLoad(ctxBKey, pklapi.AllowAll{}, nil)
	require.NoError(t, err)

	assert.Same(t, a, b)
}

func TestIncompatiblePklVersionFailsLoad(t *testing.T) {
	mc := New("0.1.0")
	init := func(module *object.Typed, source, resolvedURI string) (string, error) {
		return "99.0.0", nil
	}
	_, err := mc.GetOrLoad(newCachedKey("file:///future.pkl", "x"), pklapi.AllowAll{}, init)
	assert.Error(t, err)
}
