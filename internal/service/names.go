package service

import (
	"path"
	"strings"

	"distrobill/internal/domain"
)

// safeName keeps letters, digits, dot, dash and underscore. Runs of anything
// else collapse to a single dash.
func safeName(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
			dash = false
		case !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.Trim(b.String(), "-.")
}

// cleanObjectPath normalises a slash-separated upload path. Each segment is
// passed through safeName; empty paths and parent references are rejected.
func cleanObjectPath(p string) (string, error) {
	var segments []string
	for _, seg := range strings.Split(strings.ReplaceAll(p, "\\", "/"), "/") {
		if seg == ".." {
			return "", domain.ErrInvalidUploadPath
		}
		if seg = safeName(seg); seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return "", domain.ErrInvalidUploadPath
	}
	return path.Join(segments...), nil
}
