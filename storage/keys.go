package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode"
)

const (
	// CoverPrefix is the folder all cover images live under.
	CoverPrefix = "webtoon-covers/"
	// CoverContentType is the content type every cover is stored with.
	CoverContentType = "image/jpeg"

	base64Marker = ";base64,"
)

// ErrInvalidDataURI is returned when an uploaded image is not a base64 data URI.
var ErrInvalidDataURI = errors.New("invalid image data uri")

// DecodeDataURI decodes a "data:<mime>;base64,<payload>" string and returns the payload bytes and mime type.
func DecodeDataURI(s string) ([]byte, string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return nil, "", fmt.Errorf("%w: missing data: prefix", ErrInvalidDataURI)
	}
	idx := strings.Index(s, base64Marker)
	if idx < 0 {
		return nil, "", fmt.Errorf("%w: missing %s marker", ErrInvalidDataURI, base64Marker)
	}
	mime := s[len("data:"):idx]
	payload := s[idx+len(base64Marker):]
	if payload == "" {
		return nil, "", fmt.Errorf("%w: empty payload", ErrInvalidDataURI)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return data, mime, nil
}

// CoverKey builds the storage key for a new cover: webtoon-covers/<unix-millis>-<slug>.jpg.
func CoverKey(now time.Time, title string) string {
	return fmt.Sprintf("%s%d-%s.jpg", CoverPrefix, now.UnixMilli(), Slugify(title))
}

// Slugify lowercases s, turns whitespace runs into a single dash and drops characters unsafe in a key.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsSpace(r):
			pendingDash = true
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "cover"
	}
	return b.String()
}

// KeyFromReference turns a persisted cover reference into a storage key.
// Older rows stored the full object URL; only its file name is kept for those.
func KeyFromReference(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return CoverPrefix + path.Base(u.Path)
	}
	return strings.TrimLeft(ref, "/")
}
