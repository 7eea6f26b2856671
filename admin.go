package atelier

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

// checkCredentials compares both fields in constant time so a response
// timing difference never reveals which one was wrong.
func (a *App) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.Config.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.Config.AdminPassword)) == 1
	return userOK && passOK
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	if a.checkCredentials(c.FormValue("username"), c.FormValue("password")) {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Title+is+required.")
	}
	id := strings.TrimSpace(c.FormValue("id"))
	if id == "" {
		id = uuid.NewString()
	}
	date := strings.TrimSpace(c.FormValue("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
	}
	content := c.FormValue("content")
	readTime := strings.TrimSpace(c.FormValue("read_time"))
	if readTime == "" {
		readTime = EstimateReadTime(content)
	}
	if err := a.Store.SavePost(Post{
		ID:       id,
		Title:    title,
		Excerpt:  c.FormValue("excerpt"),
		Content:  content,
		Date:     date,
		Category: NormalizeCategory(c.FormValue("category")),
		ReadTime: readTime,
	}); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Store.DeletePost(c.Param("id")); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListPosts("")
	if err != nil {
		return err
	}
	settings, err := a.Store.GetSettings()
	if err != nil {
		return err
	}
	images, err := a.Store.ListImages()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(posts, settings, images, msg, CsrfToken(c)))
}
