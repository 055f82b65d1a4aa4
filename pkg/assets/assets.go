// Package assets deals with the string references that point at video
// and thumbnail media. A reference is either an absolute URL to
// externally hosted media or a URL derived from our own upload
// directory. Old records may still carry a development machine's IP
// baked into the host part, so read paths rewrite those against the
// host the request actually arrived on.
package assets

import (
	"net"
	"net/url"
	"path"
	"strings"
)

var videoExtensions = []string{".mp4", ".mov", ".avi", ".webm", ".m4v"}

// IsVideoPath reports whether p ends in one of the recognized video
// file extensions.
func IsVideoPath(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, e := range videoExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// IsLocalHandle reports whether ref is a device-local file handle.
// These are only valid on the client before an upload completes and
// must never be persisted.
func IsLocalHandle(ref string) bool {
	return strings.HasPrefix(ref, "file://") || strings.HasPrefix(ref, "content://")
}

// Rewrite normalizes a stored asset reference against the scheme and
// host of the inbound request. Two shapes are rewritten: paths
// relative to the upload directory, and legacy absolute URLs whose
// host is a bare IPv4 address. Any other absolute URL is external
// media and passes through unchanged.
func Rewrite(ref, scheme, host string) string {
	if ref == "" || IsLocalHandle(ref) {
		return ref
	}

	if name, ok := uploadName(ref); ok {
		return scheme + "://" + host + "/uploads/" + name
	}

	u, err := url.Parse(ref)
	if err != nil || !u.IsAbs() {
		return ref
	}

	if net.ParseIP(u.Hostname()) == nil {
		return ref
	}

	if name, ok := uploadName(u.Path); ok {
		return scheme + "://" + host + "/uploads/" + name
	}

	return ref
}

// UploadName extracts the stored file name from a reference that
// points into our upload directory. Returns false for external URLs
// and device-local handles.
func UploadName(ref string) (string, bool) {
	if ref == "" || IsLocalHandle(ref) {
		return "", false
	}

	if name, ok := uploadName(ref); ok {
		return name, true
	}

	u, err := url.Parse(ref)
	if err != nil || !u.IsAbs() {
		return "", false
	}

	return uploadName(u.Path)
}

func uploadName(p string) (string, bool) {
	idx := strings.LastIndex(p, "uploads/")
	if idx < 0 {
		return "", false
	}

	// Only bare paths and the uploads segment itself qualify; an
	// external URL that merely mentions uploads/ deeper in its path
	// is not ours.
	prefix := p[:idx]
	if prefix != "" && prefix != "/" {
		return "", false
	}

	name := p[idx+len("uploads/"):]
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}

	return name, true
}
