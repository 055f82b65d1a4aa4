// Package httprange parses the subset of HTTP Range headers needed
// for video scrubbing: a single contiguous bytes=<start>-[<end>] range
package httprange

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrMalformed means the header couldn't be parsed at all. Callers
	// should degrade to a full-body response instead of erroring.
	ErrMalformed = errors.New("malformed range header")

	// ErrUnsatisfiable means the range starts at or past the end of the
	// file and should be answered with a 416.
	ErrUnsatisfiable = errors.New("range not satisfiable")
)

// Range is the byte window requested by a client. Both offsets are
// inclusive, matching the Content-Range wire format.
type Range struct {
	Start int64
	End   int64
}

// Length returns the number of bytes covered by the range.
func (r Range) Length() int64 {
	return r.End - r.Start + 1
}

// ContentRange renders the Content-Range header value for a file of
// the given total size.
func (r Range) ContentRange(size int64) string {
	return "bytes " + strconv.FormatInt(r.Start, 10) + "-" + strconv.FormatInt(r.End, 10) + "/" + strconv.FormatInt(size, 10)
}

// Parse parses a Range request header against a file of the given
// size. The start offset is mandatory, the end offset defaults to the
// last byte of the file and is clamped to it when the client asks for
// more. Multi-range and suffix (bytes=-N) forms are not supported and
// come back as ErrMalformed.
func Parse(header string, size int64) (Range, error) {
	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return Range{}, ErrMalformed
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok || strings.Contains(endStr, ",") {
		return Range{}, ErrMalformed
	}

	start, err := strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
	if err != nil || start < 0 {
		return Range{}, ErrMalformed
	}

	end := size - 1

	if s := strings.TrimSpace(endStr); s != "" {
		end, err = strconv.ParseInt(s, 10, 64)
		if err != nil || end < 0 {
			return Range{}, ErrMalformed
		}
	}

	if end > size-1 {
		end = size - 1
	}

	if start >= size || start > end {
		return Range{}, ErrUnsatisfiable
	}

	return Range{Start: start, End: end}, nil
}
