package qalampress

import "time"

// Language selects the script, font, and text direction a post is
// rendered with. Anything outside the enumerated values is coerced
// to LanguageEnglish.
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageUrdu    Language = "urdu"
)

// CoerceLanguage maps arbitrary input to a valid Language.
func CoerceLanguage(v string) Language {
	if Language(v) == LanguageUrdu {
		return LanguageUrdu
	}
	return LanguageEnglish
}

// Post is the sole stored entity: one published blog article.
// Content is trusted rich HTML authored behind the admin gate and is
// stored verbatim.
type Post struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Content        string    `json:"content"`
	Image          string    `json:"image,omitempty"`
	Language       Language  `json:"language"`
	SEOTitle       string    `json:"seoTitle"`
	SEODescription string    `json:"seoDescription"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// PostSummary is the list projection: everything a card view needs,
// without the content body, to bound response size.
type PostSummary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Image          string    `json:"image,omitempty"`
	Language       Language  `json:"language"`
	SEODescription string    `json:"seoDescription"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Summary projects a full post down to its list form.
func (p Post) Summary() PostSummary {
	return PostSummary{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		Image:          p.Image,
		Language:       p.Language,
		SEODescription: p.SEODescription,
		CreatedAt:      p.CreatedAt,
	}
}
