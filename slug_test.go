package qalampress

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Trimmed  Title  ", "trimmed-title"},
		{"Already-Safe-Slug", "already-safe-slug"},
		{"Symbols & Punctuation!", "symbols-punctuation"},
		{"CamelCase123", "camelcase123"},
		{"ایک اردو عنوان", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlugifyOutputIsURLSafe(t *testing.T) {
	got := Slugify("A (very) strange -- title, with 100% symbols!")
	for _, r := range got {
		safe := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		if !safe {
			t.Fatalf("Slugify produced unsafe rune %q in %q", r, got)
		}
	}
}

func TestStripTags(t *testing.T) {
	if got := StripTags("<p>Hello there</p>"); got != "Hello there" {
		t.Errorf("StripTags = %q, want %q", got, "Hello there")
	}
	if got := StripTags(`<div class="x"><b>Bold</b> and plain</div>`); got != "Bold and plain" {
		t.Errorf("StripTags = %q, want %q", got, "Bold and plain")
	}
}

func TestDeriveDescriptionTruncates(t *testing.T) {
	long := "<p>" + strings.Repeat("a", 400) + "</p>"
	got := DeriveDescription(long)
	if len([]rune(got)) != seoDescriptionBudget {
		t.Errorf("derived description has %d runes, want %d", len([]rune(got)), seoDescriptionBudget)
	}
}

func TestDeriveDescriptionShortContent(t *testing.T) {
	if got := DeriveDescription("<p>Hello there</p>"); got != "Hello there" {
		t.Errorf("DeriveDescription = %q, want %q", got, "Hello there")
	}
}

func TestNormalizeImageRef(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"https://cdn.example.com/blogs/a.jpg", "https://cdn.example.com/blogs/a.jpg"},
		{"http://cdn.example.com/a.jpg", "http://cdn.example.com/a.jpg"},
		{"uploads/a.jpg", "/uploads/a.jpg"},
		{"/uploads/a.jpg", "/uploads/a.jpg"},
		{"  /uploads/a.jpg  ", "/uploads/a.jpg"},
	}
	for _, c := range cases {
		if got := NormalizeImageRef(c.in); got != c.want {
			t.Errorf("NormalizeImageRef(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCoerceLanguage(t *testing.T) {
	if got := CoerceLanguage("urdu"); got != LanguageUrdu {
		t.Errorf("CoerceLanguage(urdu) = %q", got)
	}
	for _, v := range []string{"", "english", "french", "URDU"} {
		if v == "urdu" {
			continue
		}
		if got := CoerceLanguage(v); got != LanguageEnglish {
			t.Errorf("CoerceLanguage(%q) = %q, want english", v, got)
		}
	}
}
