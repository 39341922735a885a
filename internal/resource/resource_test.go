package resource

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkl-community/pklcore/pkg/pklapi"
)

type fakeReader struct {
	scheme    string
	reads     int64
	payload   map[string][]byte
	globbable bool
}

func (r *fakeReader) Scheme() string { return r.scheme }
func (r *fakeReader) Read(uri string) ([]byte, bool, error) {
	atomic.AddInt64(&r.reads, 1)
	p, ok := r.payload[uri]
	return p, ok, nil
}
func (r *fakeReader) IsGlobbable() bool                        { return r.globbable }
func (r *fakeReader) ListElements(string) ([]string, error)    { return nil, nil }
func (r *fakeReader) HasElement(string) (bool, error)          { return false, nil }

func TestReadCachesByNormalizedURI(t *testing.T) {
	reader := &fakeReader{scheme: "file", payload: map[string][]byte{"file:///a/b": []byte("hi")}}
	m := New(pklapi.AllowAll{}, map[string]pklapi.ResourceReader{"file": reader}, nil)

	v1, found, err := m.Read("file:///a/b")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("hi"), v1)

	v2, found2, err := m.Read("file:///a/./b")
	require.NoError(t, err)
	assert.True(t, found2)
	assert.Equal(t, []byte("hi"), v2)

	assert.Equal(t, int64(1), atomic.LoadInt64(&reader.reads))
}

func TestReadRejectsWhenSecurityManagerDenies(t *testing.T) {
	denied := denyingSM{}
	reader := &fakeReader{scheme: "file", payload: map[string][]byte{}}
	m := New(denied, map[string]pklapi.ResourceReader{"file": reader}, nil)
	_, _, err := m.Read("file:///secret")
	assert.Error(t, err)
}

type denyingSM struct{}

func (denyingSM) CheckReadResource(string) error  { return errors.New("denied") }
func (denyingSM) CheckResolveModule(string) error { return errors.New("denied") }

func TestReadFailsForUnregisteredScheme(t *testing.T) {
	m := New(pklapi.AllowAll{}, map[string]pklapi.ResourceReader{}, nil)
	_, _, err := m.Read("https://example.com/x")
	assert.Error(t, err)
}

func TestResolveGlobRejectsNonGlobbableReader(t *testing.T) {
	reader := &fakeReader{scheme: "file", globbable: false}
	m := New(pklapi.AllowAll{}, map[string]pklapi.ResourceReader{"file": reader}, nil)
	_, err := m.ResolveGlob("repl:text", "file:///a", "*.pkl")
	assert.Error(t, err)
}

func TestResolveGlobCachesByGlobURI(t *testing.T) {
	reader := &fakeReader{scheme: "file", globbable: true}
	var calls int64
	resolve := func(pklapi.SecurityManager, pklapi.ResourceReader, string, string, string) ([]string, error) {
		atomic.AddInt64(&calls, 1)
		return []string{"a.pkl", "b.pkl"}, nil
	}
	m := New(pklapi.AllowAll{}, map[string]pklapi.ResourceReader{"file": reader}, resolve)

	got1, err := m.ResolveGlob("repl:text", "file:///a", "*.pkl")
	require.NoError(t, err)
	got2, err := m.ResolveGlob("repl:text", "file:///a", "*.pkl")
	require.NoError(t, err)

	assert.Equal(t, got1, got2)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestDecodeTextStripsUTF8BOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)
	got, err := DecodeText(withBOM)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestDecodeTextPlainUTF8Unaffected(t *testing.T) {
	got, err := DecodeText([]byte("plain text"))
	require.NoError(t, err)
	assert.Equal(t, "plain text", got)
}
