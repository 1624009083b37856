package qalampress

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SitemapEntry is the minimal per-post projection the sitemap needs.
type SitemapEntry struct {
	Slug      string
	UpdatedAt time.Time
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// handleSitemap emits one entry per post plus the site root. A store
// failure degrades to a valid root-only feed rather than failing the
// request: crawlers should always get something well-formed.
func (a *App) handleSitemap(c echo.Context) error {
	urls := []sitemapURL{{
		Loc:        a.Config.BaseURL + "/",
		ChangeFreq: "daily",
		Priority:   "1.0",
	}}

	entries, err := a.Store.ListSitemapEntries()
	if err != nil {
		a.Log.Warn().Err(err).Msg("sitemap degraded to root entry only")
	} else {
		for _, e := range entries {
			urls = append(urls, sitemapURL{
				Loc:        BuildURL(a.Config.BaseURL, "post", e.Slug),
				LastMod:    e.UpdatedAt.Format(time.RFC3339),
				ChangeFreq: "weekly",
				Priority:   "0.8",
			})
		}
	}

	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
