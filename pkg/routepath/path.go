package routepath

import (
	"errors"
	"strings"
)

// Segment validation errors.
var (
	ErrEmptySegment    = errors.New("empty path segment")
	ErrBackslashInPath = errors.New("path contains backslash")
	ErrNullByteInPath  = errors.New("path contains null byte")
	ErrMissingSlash    = errors.New("nested segment must start with /")
	ErrNestedSlash     = errors.New("segment contains more than one /")
	ErrPathEscapesRoot = errors.New("path escapes root via ..")
)

// Join returns the fully-qualified key of segment under parent.
func Join(parent, segment string) string {
	return parent + segment
}

// SplitLast splits path at its last '/'. The segment excludes the slash.
// A path without '/' is a single segment with an empty prefix.
//
//	SplitLast("/list/detail") = ("/list", "detail")
//	SplitLast("/home")        = ("", "home")
//	SplitLast("home")         = ("", "home")
func SplitLast(path string) (prefix, segment string) {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return "", path
	}
	return path[:idx], path[idx+1:]
}

// Prefixes returns every prefix visited while resolving path, leaf first,
// ending with the first prefix whose parent is empty.
//
//	Prefixes("/a/b/c") = ["/a/b/c", "/a/b", "/a"]
func Prefixes(path string) []string {
	var out []string
	for path != "" {
		out = append(out, path)
		path, _ = SplitLast(path)
	}
	return out
}

// Segments returns the segment names of path in root-to-leaf order.
//
//	Segments("/list/detail") = ["list", "detail"]
func Segments(path string) []string {
	prefixes := Prefixes(path)
	out := make([]string, len(prefixes))
	for i, p := range prefixes {
		_, seg := SplitLast(p)
		out[len(prefixes)-1-i] = seg
	}
	return out
}

// Depth returns the number of segments in path.
func Depth(path string) int {
	return len(Prefixes(path))
}

// CheckSegment reports whether seg can be addressed once it is concatenated
// under a parent. Nested segments must start with '/' and contain no other
// slash; top-level segments may omit the leading slash.
func CheckSegment(seg string, nested bool) error {
	if seg == "" {
		return ErrEmptySegment
	}
	if strings.Contains(seg, "\\") {
		return ErrBackslashInPath
	}
	if strings.Contains(seg, "\x00") {
		return ErrNullByteInPath
	}
	if nested && !strings.HasPrefix(seg, "/") {
		return ErrMissingSlash
	}
	if strings.Count(seg, "/") > 1 {
		return ErrNestedSlash
	}
	return nil
}

// Clean normalizes a user-supplied navigation path:
//   - Collapse multiple slashes (/list//detail → /list/detail)
//   - Remove "." segments
//   - Resolve ".." segments
//   - Remove trailing slash (except for root "/")
//
// A leading slash is kept only if the input had one. Backslashes, NUL bytes
// and ".." above the root are rejected.
func Clean(input string) (string, error) {
	if input == "" {
		return "", nil
	}
	if strings.Contains(input, "\\") {
		return "", ErrBackslashInPath
	}
	if strings.Contains(input, "\x00") {
		return "", ErrNullByteInPath
	}

	rooted := strings.HasPrefix(input, "/")

	var result []string
	for _, seg := range strings.Split(input, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(result) == 0 {
				return "", ErrPathEscapesRoot
			}
			result = result[:len(result)-1]
		default:
			result = append(result, seg)
		}
	}

	path := strings.Join(result, "/")
	if rooted {
		path = "/" + path
	}
	return path, nil
}
