package util

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ReadHrefModifier rewrites an href right before it is read, e.g. to add a token
type ReadHrefModifier func(string) string

// ModifyHref applies the modifier, if any
func ModifyHref(href string, modifier ReadHrefModifier) string {
	if modifier == nil {
		return href
	}
	return modifier(href)
}

// TokenHrefModifier appends a "token" query parameter to remote hrefs.
// Local paths are left alone.
func TokenHrefModifier(token string) ReadHrefModifier {
	return func(href string) string {
		if token == "" || !isRemote(href) {
			return href
		}
		u, err := url.Parse(href)
		if err != nil {
			return href
		}
		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
		return u.String()
	}
}

func isRemote(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}

// HrefExists checks whether something can be read at the href
func HrefExists(href string) (bool, error) {
	if isRemote(href) {
		resp, err := http.Head(href)
		if err != nil {
			return false, err
		}
		resp.Body.Close()
		switch {
		case resp.StatusCode == http.StatusOK:
			return true, nil
		case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden:
			return false, nil
		default:
			return false, fmt.Errorf("unexpected status checking %s: %s", href, resp.Status)
		}
	}

	_, err := os.Stat(filepath.Clean(href))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// OpenHref opens a reader on a local file or a URL
func OpenHref(href string) (io.ReadCloser, error) {
	if isRemote(href) {
		resp, err := http.Get(href)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("error requesting %s: %s", href, resp.Status)
		}
		return resp.Body, nil
	}

	return os.Open(filepath.Clean(href))
}

// LocalCopy returns a local file path holding the href's bytes. Local hrefs
// are returned untouched; remote ones are downloaded to a temp file that the
// returned cleanup func removes.
func LocalCopy(href string) (path string, cleanup func(), err error) {
	if !isRemote(href) {
		return filepath.Clean(href), func() {}, nil
	}

	reader, err := OpenHref(href)
	if err != nil {
		return "", nil, err
	}
	defer reader.Close()

	tmp, err := os.CreateTemp("", "bf-viirs-*"+remoteExt(href))
	if err != nil {
		return "", nil, err
	}
	cleanup = func() { os.Remove(tmp.Name()) }

	if _, err = io.Copy(tmp, reader); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("error downloading %s: %w", href, err)
	}
	if err = tmp.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return tmp.Name(), cleanup, nil
}

func remoteExt(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return filepath.Ext(u.Path)
}
