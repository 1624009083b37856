package qalampress

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
)

// The public post page is a self-contained HTML document generated
// server-side so crawlers see the title, description, and content
// without running any script. Every interpolated field is escaped by
// html/template; the one exception is the post body, which is trusted
// rich text authored behind the admin gate.
const postPageHTML = `<!DOCTYPE html>
<html lang="{{.Lang}}" dir="{{.Dir}}">
<head>
  <meta charset="UTF-8">
  <title>{{.SEOTitle}}</title>
  <meta name="description" content="{{.SEODescription}}">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <link href="https://fonts.googleapis.com/css2?family=Roboto&family=Noto+Nastaliq+Urdu&display=swap" rel="stylesheet">
  <style>
    body {
      font-family: {{.FontFamily}};
      background: #f8f9fa;
      margin: 0;
      color: #333;
      line-height: 1.9;
    }
    .container {
      max-width: 800px;
      margin: 40px auto;
      padding: 15px;
    }
    h1 {
      font-size: 2rem;
      margin-bottom: 20px;
      text-align: {{.TextAlign}};
    }
    .content {
      font-size: 18px;
      text-align: {{.TextAlign}};
    }
    img {
      max-width: 100%;
      border-radius: 8px;
      margin: 20px 0;
      display: block;
    }
    a {
      text-decoration: none;
      color: #0d6efd;
    }
  </style>
</head>
<body>
  <div class="container">
    <h1>{{.Title}}</h1>
    {{if .Image}}<img src="{{.Image}}" alt="{{.Title}}">{{end}}
    <div class="content">{{.Content}}</div>
    <a href="/">&larr; Back to Home</a>
  </div>
</body>
</html>`

const errorPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <style>
    body { font-family: sans-serif; background: #f8f9fa; color: #333; text-align: center; padding: 80px 15px; }
    a { color: #0d6efd; text-decoration: none; }
  </style>
</head>
<body>
  <h1>{{.Heading}}</h1>
  <p>{{.Message}}</p>
  <a href="/">&larr; Back to Home</a>
</body>
</html>`

var (
	postPageTemplate  = template.Must(template.New("post").Parse(postPageHTML))
	errorPageTemplate = template.Must(template.New("error").Parse(errorPageHTML))
)

type postPage struct {
	Lang           string
	Dir            string
	FontFamily     template.CSS
	TextAlign      template.CSS
	Title          string
	SEOTitle       string
	SEODescription string
	Image          string
	Content        template.HTML
}

type errorPage struct {
	Title   string
	Heading string
	Message string
}

func buildPostPage(post Post) postPage {
	page := postPage{
		Lang:           "en",
		Dir:            "ltr",
		FontFamily:     "'Roboto', sans-serif",
		TextAlign:      "left",
		Title:          post.Title,
		SEOTitle:       post.SEOTitle,
		SEODescription: post.SEODescription,
		Image:          post.Image,
		Content:        template.HTML(post.Content),
	}
	if page.SEOTitle == "" {
		page.SEOTitle = post.Title
	}
	if post.Language == LanguageUrdu {
		page.Lang = "ur"
		page.Dir = "rtl"
		page.FontFamily = "'Noto Nastaliq Urdu', serif"
		page.TextAlign = "right"
	}
	return page
}

// handlePostPage resolves a slug and renders the SEO page, or an HTML
// 404 when no post matches.
func (a *App) handlePostPage(c echo.Context) error {
	post, err := a.Service.GetBySlug(c.Param("slug"))
	if errors.Is(err, ErrNotFound) {
		return renderNotFound(c)
	}
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return postPageTemplate.Execute(c.Response().Writer, buildPostPage(post))
}

func renderNotFound(c echo.Context) error {
	return renderErrorPage(c, http.StatusNotFound, errorPage{
		Title:   "Post not found",
		Heading: "404",
		Message: "The page you are looking for does not exist.",
	})
}

func renderServerError(c echo.Context) error {
	return renderErrorPage(c, http.StatusInternalServerError, errorPage{
		Title:   "Server error",
		Heading: "Something went wrong",
		Message: "Please try again later.",
	})
}

func renderErrorPage(c echo.Context, code int, page errorPage) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return errorPageTemplate.Execute(c.Response().Writer, page)
}
