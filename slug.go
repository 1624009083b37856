package qalampress

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// seoDescriptionBudget is the character budget for derived meta
// descriptions.
const seoDescriptionBudget = 150

// Slugify converts a title to a URL-safe slug: lowercase ASCII letters
// and digits separated by single hyphens. Titles with no representable
// characters (e.g. pure Urdu script) produce an empty slug; the service
// substitutes a fallback base before storing.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// StripTags removes HTML markup, leaving the text content.
func StripTags(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

// DeriveDescription builds the SEO description fallback from rich
// content: markup stripped, truncated to the character budget. Counted
// in runes so Urdu text is not cut mid-character.
func DeriveDescription(content string) string {
	text := StripTags(content)
	runes := []rune(text)
	if len(runes) > seoDescriptionBudget {
		return string(runes[:seoDescriptionBudget])
	}
	return text
}

// NormalizeImageRef accepts either a fully-qualified URL or a relative
// path and returns a stable stored form: absolute URLs pass through,
// anything else becomes a root-relative path. Both forms appear across
// deployments depending on the media backend.
func NormalizeImageRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return ref
	}
	return "/" + strings.TrimLeft(ref, "/")
}

// BuildURL joins a base URL with path segments.
func BuildURL(base string, segments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(segments...))
	return u.String()
}
