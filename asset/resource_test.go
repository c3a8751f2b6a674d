package asset

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestLocalResource(t *testing.T) {
	_, thisFile, _, _ := runtime.Caller(0)
	res, err := NewResource(thisFile, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if res.IsRemote() {
		t.Fatal("expected local resource")
	}
	if res.Ext() != ".go" {
		t.Fatalf("expected extension .go; got %q", res.Ext())
	}
}

func TestMissingLocalResource(t *testing.T) {
	_, err := NewResource(filepath.Join(t.TempDir(), "missing.obj"), nil)
	if err == nil || !os.IsNotExist(errors.Cause(err)) {
		t.Fatalf("expected a not-exist error; got %v", err)
	}
}

func TestLocalRelativeResources(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "models"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"scene.yaml", filepath.Join("models", "cube.OBJ")} {
		if err := ioutil.WriteFile(filepath.Join(dir, f), []byte("OK"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	parent, err := NewResource(filepath.Join(dir, "scene.yaml"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer parent.Close()

	res1, err := NewResource("models/cube.OBJ", parent)
	if err != nil {
		t.Fatal(err)
	}
	defer res1.Close()

	res2, err := NewResource("./models/../models/cube.OBJ", parent)
	if err != nil {
		t.Fatal(err)
	}
	defer res2.Close()

	if res1.Path() != res2.Path() {
		t.Fatalf("expected both resources to resolve to the same path; got %q and %q", res1.Path(), res2.Path())
	}
	if res1.Ext() != ".obj" {
		t.Fatalf("expected lower-cased extension .obj; got %q", res1.Ext())
	}
}

func TestHttpResource(t *testing.T) {
	_, thisFile, _, _ := runtime.Caller(0)
	thisDir := filepath.Dir(thisFile)

	server := httptest.NewServer(http.FileServer(http.Dir(thisDir)))
	defer server.Close()

	fetchUrl := server.URL + "/" + filepath.Base(thisFile)
	res, err := NewResource(fetchUrl, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if !res.IsRemote() {
		t.Fatal("expected remote resource")
	}

	fetchUrl = server.URL + "/file-not-found.foo"
	expError := fmt.Sprintf("resource: could not fetch '%s': status %d", fetchUrl, 404)
	_, err = NewResource(fetchUrl, nil)
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get: %s; got %v", expError, err)
	}
}

func TestRemoteRelativeResources(t *testing.T) {
	serverHits := 0
	serverFn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serverHits++
		switch r.URL.Path {
		case "/foo/scene.yaml", "/foo/file2.obj", "/bar/file3.obj":
			w.Write([]byte("OK"))
		default:
			http.NotFound(w, r)
		}
	})
	server := httptest.NewServer(serverFn)
	defer server.Close()

	res1, err := NewResource(server.URL+"/foo/scene.yaml", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res1.Close()

	res2, err := NewResource("file2.obj", res1)
	if err != nil {
		t.Fatal(err)
	}
	defer res2.Close()

	res3, err := NewResource("/bar/file3.obj", res1)
	if err != nil {
		t.Fatal(err)
	}
	defer res3.Close()

	if serverHits != 3 {
		t.Fatalf("expected server to receive 3 requests; got %d", serverHits)
	}
	if exp := server.URL + "/foo/file2.obj"; res2.Path() != exp {
		t.Fatalf("expected path %q; got %q", exp, res2.Path())
	}
}

func TestUnsupportedResourceScheme(t *testing.T) {
	expError := "resource: unsupported scheme 'gopher'"
	_, err := NewResource("gopher://digging.go", nil)
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get: %s; got %v", expError, err)
	}
}

func TestResourceConnectionRefusedError(t *testing.T) {
	_, err := NewResource("http://localhost:12345/foo.go", nil)
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected to get 'connection refused error'; got %v", err)
	}
}

func TestResourceFromStream(t *testing.T) {
	res := NewResourceFromStream("embedded.obj", strings.NewReader("payload"))
	defer res.Close()

	data, err := ioutil.ReadAll(res)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Fatalf("expected to read 'payload'; got %q", data)
	}
	if res.Ext() != ".obj" {
		t.Fatalf("expected extension .obj; got %q", res.Ext())
	}
}
