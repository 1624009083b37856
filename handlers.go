package qalampress

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/qalamkar/qalampress/media"
)

// requestValidator plugs go-playground/validator into echo's Bind +
// Validate flow for JSON payloads.
type requestValidator struct {
	validate *validator.Validate
}

func newValidate() *validator.Validate {
	return validator.New()
}

func (v *requestValidator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return &ValidationError{
			Field:  strings.ToLower(errs[0].Field()),
			Reason: "failed " + errs[0].Tag() + " check",
		}
	}
	return err
}

func (a *App) handleListPosts(c echo.Context) error {
	summaries, err := a.Service.List()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaries)
}

func (a *App) handleGetPost(c echo.Context) error {
	post, err := a.Service.GetByID(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleGetPostBySlug(c echo.Context) error {
	post, err := a.Service.GetBySlug(c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleCreatePost(c echo.Context) error {
	var in CreatePostInput

	if isMultipart(c) {
		in = CreatePostInput{
			Title:          c.FormValue("title"),
			Content:        c.FormValue("content"),
			Language:       c.FormValue("language"),
			SEOTitle:       c.FormValue("seoTitle"),
			SEODescription: c.FormValue("seoDescription"),
			Image:          c.FormValue("image"),
		}
		if file, err := c.FormFile("image"); err == nil {
			url, err := a.storeImage(c, file)
			if err != nil {
				return err
			}
			in.Image = url
		}
	} else {
		if err := c.Bind(&in); err != nil {
			return &ValidationError{Field: "body", Reason: "malformed request body"}
		}
		if err := c.Validate(&in); err != nil {
			return err
		}
	}

	post, err := a.Service.Create(in)
	if err != nil {
		return err
	}
	a.Log.Info().Str("id", post.ID).Str("slug", post.Slug).Msg("post created")
	return c.JSON(http.StatusCreated, post)
}

func (a *App) handleUpdatePost(c echo.Context) error {
	var in UpdatePostInput

	if isMultipart(c) {
		in = updateInputFromForm(c)
		if file, err := c.FormFile("image"); err == nil {
			url, err := a.storeImage(c, file)
			if err != nil {
				return err
			}
			in.Image = &url
		}
	} else if err := c.Bind(&in); err != nil {
		return &ValidationError{Field: "body", Reason: "malformed request body"}
	}

	post, err := a.Service.Update(c.Param("id"), in)
	if err != nil {
		return err
	}
	a.Log.Info().Str("id", post.ID).Str("slug", post.Slug).Msg("post updated")
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleDeletePost(c echo.Context) error {
	id := c.Param("id")
	if err := a.Service.Delete(id); err != nil {
		return err
	}
	a.Log.Info().Str("id", id).Msg("post deleted")
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "post deleted",
	})
}

// handleUploadImage serves the editor's inline image uploads: one
// image in, one hosted URL out.
func (a *App) handleUploadImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return &ValidationError{Field: "image", Reason: "no file uploaded"}
	}
	url, err := a.storeImage(c, file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

func (a *App) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// storeImage processes an uploaded file and hands it to the media
// backend. Backend failures surface as UploadError so the API maps
// them to a gateway error rather than a generic 500.
func (a *App) storeImage(c echo.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name, data, err := media.ProcessImage(src, file.Filename)
	if err != nil {
		return "", &ValidationError{Field: "image", Reason: err.Error()}
	}

	url, err := a.Media.Upload(c.Request().Context(), name, bytes.NewReader(data))
	if err != nil {
		return "", &UploadError{Err: err}
	}
	return url, nil
}

func isMultipart(c echo.Context) bool {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ct, echo.MIMEMultipartForm)
}

// updateInputFromForm builds a partial update from a multipart form:
// only fields actually present in the form are set.
func updateInputFromForm(c echo.Context) UpdatePostInput {
	var in UpdatePostInput
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return in
	}
	field := func(name string) *string {
		if vals, ok := form.Value[name]; ok && len(vals) > 0 {
			v := vals[0]
			return &v
		}
		return nil
	}
	in.Title = field("title")
	in.Content = field("content")
	in.Language = field("language")
	in.SEOTitle = field("seoTitle")
	in.SEODescription = field("seoDescription")
	in.Image = field("image")
	return in
}
