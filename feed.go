package qalampress

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// handleFeed emits an RSS 2.0 feed of all posts, newest first, built
// from the same projection the listing API serves.
func (a *App) handleFeed(c echo.Context) error {
	summaries, err := a.Service.List()
	if err != nil {
		return err
	}

	items := make([]rssItem, 0, len(summaries))
	for _, s := range summaries {
		postURL := BuildURL(a.Config.BaseURL, "post", s.Slug)
		items = append(items, rssItem{
			Title:       s.Title,
			Link:        postURL,
			Description: s.SEODescription,
			PubDate:     s.CreatedAt.Format(time.RFC1123Z),
			GUID:        postURL,
		})
	}

	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.SiteName,
			Link:        a.Config.BaseURL,
			Description: a.Config.SiteDescription,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(feed)
}
