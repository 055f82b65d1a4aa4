package client

type sourceKind int

const (
	sourceNone sourceKind = iota
	sourceLocalFile
	sourceRemoteURL
)

// Source is where an asset's bytes come from: a file on this device
// that still needs uploading, or a URL that is already hosted
// somewhere. Exactly one of the two is active per slot; the raw
// variant never reaches the server, Publish collapses it to a
// resolved URL first.
type Source struct {
	kind  sourceKind
	value string
}

// LocalFile references a file on the local filesystem.
func LocalFile(path string) Source {
	return Source{kind: sourceLocalFile, value: path}
}

// RemoteURL references media already hosted at a URL.
func RemoteURL(url string) Source {
	return Source{kind: sourceRemoteURL, value: url}
}

func (s Source) isZero() bool {
	return s.kind == sourceNone || s.value == ""
}

func (s Source) isLocal() bool {
	return s.kind == sourceLocalFile
}
