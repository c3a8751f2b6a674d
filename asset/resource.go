package asset

import (
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// A Resource wraps a local file or a file streamed over http(s).
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource. Local resources report an absolute path
// so that the same file referenced through different relative paths yields
// the same value.
func (r *Resource) Path() string {
	return r.url.String()
}

// Returns the lower-cased file extension of this resource including the
// leading dot (e.g. ".obj").
func (r *Resource) Ext() string {
	return strings.ToLower(path.Ext(r.url.Path))
}

// Returns true if the Resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Resolve pathToResource into a URL. Relative paths without a scheme are
// resolved against the directory of relTo (if specified) or the current
// working directory.
func ResolvePath(pathToResource string, relTo *Resource) (*url.URL, error) {
	resURL, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, errors.Wrapf(err, "resource: invalid path %q", pathToResource)
	}

	if resURL.Scheme != "" {
		return resURL, nil
	}

	// Relative to a remote parent; clone the parent url and replace the last path segment
	if relTo != nil && relTo.IsRemote() {
		if path.IsAbs(resURL.Path) {
			out := *relTo.url
			out.Path = resURL.Path
			return &out, nil
		}
		return relTo.url.ResolveReference(resURL), nil
	}

	localPath := filepath.FromSlash(resURL.Path)
	if !filepath.IsAbs(localPath) && relTo != nil {
		localPath = filepath.Join(filepath.Dir(filepath.FromSlash(relTo.url.Path)), localPath)
	}
	if localPath, err = filepath.Abs(localPath); err != nil {
		return nil, errors.Wrapf(err, "resource: could not detect abs path for %s", pathToResource)
	}

	return &url.URL{Path: filepath.ToSlash(localPath)}, nil
}

// Create a new Resource data stream. If relTo is specified and pathToResource
// does not define a scheme, then the path to the new Resource is resolved
// relative to the directory of relTo.
//
// This function can handle http/https URLs by delegating to the net/http package.
// The caller must make sure to close the returned Resource to prevent mem leaks.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	resURL, err := ResolvePath(pathToResource, relTo)
	if err != nil {
		return nil, err
	}

	var reader io.ReadCloser
	switch resURL.Scheme {
	case "":
		reader, err = os.Open(filepath.FromSlash(resURL.Path))
		if err != nil {
			return nil, errors.Wrap(err, "resource")
		}
	case "http", "https":
		resp, err := http.Get(resURL.String())
		if err != nil {
			return nil, errors.Errorf("resource: could not fetch '%s': %s", resURL.String(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, errors.Errorf("resource: could not fetch '%s': status %d", resURL.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, errors.Errorf("resource: unsupported scheme '%s'", resURL.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        resURL,
	}, nil
}

// Create a resource from a reader. The name is used as the resource path.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	resURL, err := url.Parse(name)
	if err != nil {
		resURL = &url.URL{Path: name}
	}
	return &Resource{
		ReadCloser: ioutil.NopCloser(source),
		url:        resURL,
	}
}
