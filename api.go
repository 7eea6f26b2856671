package atelier

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// apiError is the JSON error envelope for the content API.
type apiError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// requireAdminJSON returns false after writing a 401 if the request has no
// admin session. JSON callers get an envelope instead of the HTML redirect
// the admin pages use.
func requireAdminJSON(c echo.Context) bool {
	if IsAdmin(c) {
		return true
	}
	_ = c.JSON(http.StatusUnauthorized, apiError{Error: "admin session required"})
	return false
}

func (a *App) handleAPIListPosts(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.QueryParam("category"))
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []Post{}
	}
	return c.JSON(http.StatusOK, posts)
}

func (a *App) handleAPISavePost(c echo.Context) error {
	if !requireAdminJSON(c) {
		return nil
	}
	var p Post
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Error: "invalid post payload"})
	}
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return c.JSON(http.StatusBadRequest, apiError{Error: "title is required"})
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Date == "" {
		p.Date = time.Now().Format("2006-01-02")
	}
	p.Category = NormalizeCategory(p.Category)
	if p.ReadTime == "" {
		p.ReadTime = EstimateReadTime(p.Content)
	}
	if err := a.Store.SavePost(p); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, p)
}

func (a *App) handleAPIDeletePost(c echo.Context) error {
	if !requireAdminJSON(c) {
		return nil
	}
	if err := a.Store.DeletePost(c.Param("id")); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.NoContent(http.StatusNoContent)
}

func (a *App) handleAPIGetConfig(c echo.Context) error {
	settings, err := a.Store.GetSettings()
	if err != nil {
		return err
	}
	if settings.AvatarURL == "" {
		settings.AvatarURL = a.Profile.AvatarURL
	}
	if len(settings.GalleryImages) == 0 && a.Profile.Gallery != nil {
		settings.GalleryImages = a.Profile.Gallery
	}
	return c.JSON(http.StatusOK, settings)
}

func (a *App) handleAPIPatchConfig(c echo.Context) error {
	if !requireAdminJSON(c) {
		return nil
	}
	var patch SettingsPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Error: "invalid config payload"})
	}
	merged, err := a.Store.PatchSettings(patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, merged)
}
