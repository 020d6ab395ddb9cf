package asset

import (
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Resource is a readable geometry stream backed by a local file or an
// http(s) URL.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Path returns the path or URL of this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// IsRemote returns true if the resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// NewResource opens a resource. Relative paths without a scheme are resolved
// against the location of relTo when it is not nil, so that files referenced
// from a remote mesh are fetched from the same server.
//
// The caller must close the returned resource.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	resURL, err := resolve(pathToResource, relTo)
	if err != nil {
		return nil, err
	}

	var reader io.ReadCloser
	switch resURL.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(resURL.Path))
		if err != nil {
			return nil, err
		}
	case "http", "https":
		resp, err := http.Get(resURL.String())
		if err != nil {
			return nil, errors.Wrapf(err, "resource: could not fetch '%s'", resURL.String())
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

// NewResourceFromStream wraps a reader into a resource with the given name.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	resURL, _ := url.Parse(name)
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        resURL,
	}
}

func resolve(pathToResource string, relTo *Resource) (*url.URL, error) {
	resURL, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, errors.Wrapf(err, "resource: invalid path '%s'", pathToResource)
	}

	if resURL.Scheme != "" || relTo == nil || filepath.IsAbs(resURL.Path) {
		return resURL, nil
	}

	relPath := resURL.Path
	resURL, _ = url.Parse(relTo.url.String())
	prefix := resURL.Path
	if resURL.Scheme == "" {
		prefix, err = filepath.Abs(relTo.url.String())
		if err != nil {
			return nil, errors.Wrapf(err, "resource: could not detect abs path for %s", relTo.url.String())
		}
	}
	resURL.Path = filepath.Dir(prefix) + "/" + relPath
	return resURL, nil
}
