// Package urlutil provides pure helpers for hashing, decomposing and resolving item and asset URLs.
package urlutil

import (
	"crypto/md5" //nolint:gosec // used for short content keys, not for security
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// hashLen is the length of the short hash used for artifact and asset names
const hashLen = 7

// ShortHash returns the first 7 hex characters of the md5 digest of s
func ShortHash(s string) string {
	sum := md5.Sum([]byte(s)) //nolint:gosec // content key
	return hex.EncodeToString(sum[:])[:hashLen]
}

// Scheme returns the scheme of the URL with "://" suffix, i.e. "https://"
func Scheme(u string) string {
	if idx := strings.Index(u, "://"); idx > 0 {
		return u[:idx+3]
	}
	return ""
}

// Domain returns the host part of the URL without scheme and path
func Domain(u string) string {
	rest := strings.TrimPrefix(u, Scheme(u))
	if idx := strings.IndexAny(rest, "/?#"); idx >= 0 {
		rest = rest[:idx]
	}
	return rest
}

// Prefix returns scheme and host, i.e. "https://example.com"
func Prefix(u string) string {
	return Scheme(u) + Domain(u)
}

// Path returns the path of the URL with query and fragment removed, "/" if empty
func Path(u string) string {
	rest := strings.TrimPrefix(u, Prefix(u))
	if idx := strings.IndexAny(rest, "?#"); idx >= 0 {
		rest = rest[:idx]
	}
	if rest == "" {
		return "/"
	}
	return rest
}

// ExceptQuery returns the URL with query string and fragment removed
func ExceptQuery(u string) string {
	if idx := strings.IndexAny(u, "?#"); idx >= 0 {
		return u[:idx]
	}
	return u
}

// Resolve makes ref absolute against base. Empty ref and "#" resolve to base,
// "/x" replaces the whole path, "x" replaces the last path segment and "//host/x" takes the base scheme.
func Resolve(base, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == "#" {
		return base, nil
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", base, err)
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", ref, err)
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

// Encode percent-encodes non-ASCII characters and spaces of the URL, leaving the ASCII parts untouched
func Encode(u string) string {
	var sb strings.Builder
	for i := 0; i < len(u); i++ {
		c := u[i]
		if c >= 0x80 || c == ' ' {
			fmt.Fprintf(&sb, "%%%02X", c)
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
