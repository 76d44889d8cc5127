package layerfill

import (
	"os"
	"regexp"
	"strings"
)

// DefaultMaxPathLength is the longest path accepted by ValidatePath unless
// overridden through options.
const DefaultMaxPathLength = 255

var separatorRuns = regexp.MustCompile(`[\\/]+`)

// NormalizePath trims surrounding whitespace and collapses runs of either
// slash style into the platform's canonical separator.
func NormalizePath(path string) string {
	path = strings.TrimSpace(path)
	return separatorRuns.ReplaceAllString(path, string(os.PathSeparator))
}

// IsAbsolutePath reports whether the path is absolute under either platform
// convention: a drive-letter or UNC prefix, or a leading separator.
func IsAbsolutePath(path string) bool {
	path = strings.TrimSpace(path)
	if path == "" {
		return false
	}
	if len(path) >= 2 && path[1] == ':' && isDriveLetter(path[0]) {
		return true
	}
	if strings.HasPrefix(path, `\\`) {
		return true
	}
	return path[0] == '/' || path[0] == '\\'
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ResolveRelative resolves path against the directory containing base.
// Absolute paths are returned normalized; an empty base leaves relative
// paths relative (resolved against the working directory by the probe).
func ResolveRelative(base, path string) string {
	if IsAbsolutePath(path) || base == "" {
		return NormalizePath(path)
	}
	return parentDir(NormalizePath(base)) + string(os.PathSeparator) + NormalizePath(path)
}

// parentDir returns the directory portion of a normalized file path,
// or "." when there is none.
func parentDir(path string) string {
	idx := strings.LastIndexByte(path, os.PathSeparator)
	if idx <= 0 {
		if idx == 0 {
			return string(os.PathSeparator)
		}
		return "."
	}
	return path[:idx]
}

// illegalPathChars are rejected on every platform. The colon is handled
// separately so drive-letter prefixes stay valid.
const illegalPathChars = `<>"|?*`

// ValidatePath checks a path for basic filesystem sanity: non-empty, within
// maxLen, free of illegal characters, and (when allowedExts is non-empty)
// carrying one of the allow-listed extensions, case-insensitively.
// Extensions are given with the leading dot, e.g. ".png".
func ValidatePath(path string, allowedExts []string, maxLen int) error {
	if maxLen <= 0 {
		maxLen = DefaultMaxPathLength
	}
	if strings.TrimSpace(path) == "" {
		return &PathError{Path: path, Reason: "empty path"}
	}
	if len(path) > maxLen {
		return &PathError{Path: path, Reason: "path exceeds maximum length"}
	}
	for i, r := range path {
		if r < 0x20 || strings.ContainsRune(illegalPathChars, r) {
			return &PathError{Path: path, Reason: "illegal character in path"}
		}
		if r == ':' && i != 1 {
			return &PathError{Path: path, Reason: "illegal character in path"}
		}
	}
	if len(allowedExts) == 0 {
		return nil
	}
	ext := strings.ToLower(extension(path))
	if ext == "" {
		return &PathError{Path: path, Reason: "missing file extension"}
	}
	for _, allowed := range allowedExts {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return &PathError{Path: path, Reason: "extension " + ext + " is not allowed"}
}

// extension returns the final dot-suffix of the path's last segment,
// including the dot, or "" when there is none.
func extension(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i] {
		case '.':
			return path[i:]
		case '/', '\\':
			return ""
		}
	}
	return ""
}
