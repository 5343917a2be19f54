package catalog

import (
	"strings"
)

// pathcodec.go - pure path arithmetic for the catalog tree.
//
// Paths are root-relative, "/"-separated, never contain duplicate slashes and
// never end with a slash (the root itself is "/"). These functions carry no
// knowledge of persistence; for any normalized path p and valid segment n,
// JoinPath(ParentPath(p), LastSegment(p)) == p.

// JoinPath concatenates a parent path and a child name into a normalized
// path. The empty parent path and "/" both denote the root, so the result
// always starts with exactly one slash. Assumes name already passed charset
// validation (no slashes).
func JoinPath(parentPath, name string) string {
	joined := parentPath + "/" + name
	return collapseSlashes(joined)
}

// ParentPath returns the path with its last segment removed: "/a/b" -> "/a".
// A root-level path ("/a") yields "", which JoinPath treats as the root.
func ParentPath(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// LastSegment returns the final segment of a path: "/a/b" -> "b".
func LastSegment(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

// SplitSegments breaks a path into its segments, ignoring leading, trailing
// and duplicate slashes: "/a//b/" -> ["a", "b"]. Returns nil for the root.
func SplitSegments(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// collapseSlashes reduces every run of consecutive slashes to a single one.
func collapseSlashes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSlash := false
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
