package atelier

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	category := c.QueryParam("category")
	posts, err := a.Cache.ListPosts(category)
	if err != nil {
		return err
	}
	settings, err := a.Store.GetSettings()
	if err != nil {
		return err
	}
	if settings.AvatarURL == "" {
		settings.AvatarURL = a.Profile.AvatarURL
	}
	if len(settings.GalleryImages) == 0 {
		settings.GalleryImages = a.Profile.Gallery
	}
	return Render(c, a.Views.Home(a.Profile, posts, settings, a.Config))
}

func (a *App) handlePost(c echo.Context) error {
	id := c.Param("id")
	post, err := a.Cache.GetPost(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	return Render(c, a.Views.Post(post, a.Config))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
