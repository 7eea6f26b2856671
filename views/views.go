// Package views provides the default templ components for an atelier site.
// Components are built with templ.ComponentFunc writing buffered HTML, the
// same mechanism the markdown renderer uses, so sites can swap any of them
// out through atelier.ViewFuncs without a template compiler in the loop.
package views

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/alexchen/atelier"
	"github.com/alexchen/atelier/markdown"
)

// Funcs returns the default view set for the engine.
func Funcs() atelier.ViewFuncs {
	return atelier.ViewFuncs{
		Home:           Home,
		Post:           PostPage,
		AdminLogin:     AdminLogin,
		AdminDashboard: AdminDashboard,
		NotFound:       NotFound,
		ServerError:    ServerError,
	}
}

func esc(s string) string { return html.EscapeString(s) }

func component(render func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		render(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func page(buf *bytes.Buffer, title, jsonLD string, body func(*bytes.Buffer)) {
	buf.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"/>")
	buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
	buf.WriteString("<title>" + esc(title) + "</title>")
	buf.WriteString(`<link rel="stylesheet" href="/public/site.css"/>`)
	if jsonLD != "" {
		buf.WriteString(`<script type="application/ld+json">` + jsonLD + `</script>`)
	}
	buf.WriteString("</head><body>")
	body(buf)
	buf.WriteString("</body></html>")
}

// Home renders the hero section, category-grouped post listing, gallery, and
// the chat widget shell.
func Home(profile atelier.Profile, posts []atelier.Post, settings atelier.SiteSettings, cfg atelier.SiteConfig) templ.Component {
	return component(func(buf *bytes.Buffer) {
		page(buf, cfg.Name, atelier.WebsiteJsonLD(cfg), func(buf *bytes.Buffer) {
			buf.WriteString(`<header class="hero">`)
			if settings.AvatarURL != "" {
				buf.WriteString(`<img class="avatar" src="` + esc(settings.AvatarURL) + `" alt="` + esc(profile.Name) + `"/>`)
			}
			buf.WriteString("<h1>" + esc(profile.Name) + "</h1>")
			buf.WriteString(`<p class="title">` + esc(profile.Title) + "</p>")
			buf.WriteString(`<p class="bio">` + esc(profile.Bio) + "</p>")
			if len(profile.Skills) > 0 {
				buf.WriteString(`<ul class="skills">`)
				for _, s := range profile.Skills {
					buf.WriteString("<li>" + esc(s.Name) + "</li>")
				}
				buf.WriteString("</ul>")
			}
			buf.WriteString("</header>")

			buf.WriteString(`<nav class="categories">`)
			for _, cat := range atelier.Categories {
				buf.WriteString(`<a href="/?category=` + cat + `">` + cat + "</a>")
			}
			buf.WriteString("</nav>")

			buf.WriteString(`<main class="posts">`)
			if len(posts) == 0 {
				buf.WriteString(`<p class="empty">Waiting for new ideas...</p>`)
			}
			for _, p := range posts {
				buf.WriteString(`<article class="post-card">`)
				buf.WriteString(`<div class="meta"><span>` + esc(p.Date) + "</span><span>" + esc(p.ReadTime) + "</span><span>" + esc(p.Category) + "</span></div>")
				buf.WriteString(`<h2><a href="/blog/` + esc(p.ID) + `/">` + esc(p.Title) + "</a></h2>")
				if p.Excerpt != "" {
					buf.WriteString(`<p class="excerpt">` + esc(p.Excerpt) + "</p>")
				}
				buf.WriteString("</article>")
			}
			buf.WriteString("</main>")

			if len(settings.GalleryImages) > 0 {
				buf.WriteString(`<section class="gallery">`)
				for _, src := range settings.GalleryImages {
					buf.WriteString(`<img src="` + esc(src) + `" alt="" loading="lazy"/>`)
				}
				buf.WriteString("</section>")
			}

			buf.WriteString(`<div id="chat-widget" data-endpoint="/api/chat" data-owner="` + esc(profile.Name) + `"></div>`)
			buf.WriteString(`<script src="/public/chat.js" defer></script>`)
		})
	})
}

// PostPage renders a single post with its markdown body.
func PostPage(post atelier.Post, cfg atelier.SiteConfig) templ.Component {
	return component(func(buf *bytes.Buffer) {
		page(buf, post.Title+" — "+cfg.Name, atelier.BlogPostingJsonLD(post, cfg), func(buf *bytes.Buffer) {
			buf.WriteString(`<article class="post">`)
			buf.WriteString(`<div class="meta"><span>` + esc(post.Date) + "</span><span>" + esc(post.ReadTime) + "</span><span>" + esc(post.Category) + "</span></div>")
			buf.WriteString("<h1>" + esc(post.Title) + "</h1>")
			markdown.Render(buf, post.Content)
			buf.WriteString("</article>")
			buf.WriteString(`<p><a href="/">&larr; Back</a></p>`)
		})
	})
}

// AdminLogin renders the operator login form.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		page(buf, "Access Key", "", func(buf *bytes.Buffer) {
			buf.WriteString(`<main class="login"><h1>Access Key</h1>`)
			if showError {
				buf.WriteString(`<p class="error">Invalid credentials.</p>`)
			}
			buf.WriteString(`<form method="post" action="/admin/login/">`)
			buf.WriteString(`<input type="hidden" name="_csrf" value="` + esc(csrfToken) + `"/>`)
			buf.WriteString(`<input type="text" name="username" placeholder="Username" autocomplete="username"/>`)
			buf.WriteString(`<input type="password" name="password" placeholder="Password" autocomplete="current-password"/>`)
			buf.WriteString(`<button type="submit">Authorize</button>`)
			buf.WriteString("</form></main>")
		})
	})
}

// AdminDashboard renders the post table, the draft editor, the gallery and
// avatar settings, and the uploaded images list.
func AdminDashboard(posts []atelier.Post, settings atelier.SiteSettings, images []atelier.Image, message string, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		page(buf, "Dashboard", "", func(buf *bytes.Buffer) {
			buf.WriteString(`<main class="dashboard"><h1>Dashboard</h1>`)
			if message != "" {
				buf.WriteString(`<p class="notice">` + esc(message) + "</p>")
			}
			buf.WriteString(`<form method="post" action="/admin/logout/"><input type="hidden" name="_csrf" value="` + esc(csrfToken) + `"/><button type="submit">Logout</button></form>`)

			buf.WriteString(`<section><h2>New Draft</h2>`)
			buf.WriteString(`<form method="post" action="/admin/save/">`)
			buf.WriteString(`<input type="hidden" name="_csrf" value="` + esc(csrfToken) + `"/>`)
			buf.WriteString(`<input type="text" name="title" placeholder="Post Title" required/>`)
			buf.WriteString(`<select name="category">`)
			for _, cat := range atelier.Categories {
				buf.WriteString(`<option value="` + cat + `">` + cat + "</option>")
			}
			buf.WriteString("</select>")
			buf.WriteString(`<input type="text" name="date" placeholder="YYYY-MM-DD"/>`)
			buf.WriteString(`<textarea name="excerpt" rows="3" placeholder="Excerpt"></textarea>`)
			buf.WriteString(`<textarea name="content" rows="12" placeholder="Write your thoughts here..."></textarea>`)
			buf.WriteString(`<button type="submit">Save Content</button>`)
			buf.WriteString("</form></section>")

			buf.WriteString(`<section><h2>Posts</h2><table><thead><tr><th>Date</th><th>Title</th><th>Category</th><th></th></tr></thead><tbody>`)
			for _, p := range posts {
				buf.WriteString("<tr><td>" + esc(p.Date) + "</td><td>" + esc(p.Title) + "</td><td>" + esc(p.Category) + "</td>")
				buf.WriteString(`<td><button class="delete" data-id="` + esc(p.ID) + `" data-csrf="` + esc(csrfToken) + `">Delete</button></td></tr>`)
			}
			buf.WriteString("</tbody></table></section>")

			buf.WriteString(`<section><h2>Site</h2>`)
			buf.WriteString(`<p>Avatar: <code>` + esc(settings.AvatarURL) + `</code></p>`)
			buf.WriteString(fmt.Sprintf("<p>Gallery: %d images</p>", len(settings.GalleryImages)))
			buf.WriteString(`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
			buf.WriteString(`<input type="hidden" name="_csrf" value="` + esc(csrfToken) + `"/>`)
			buf.WriteString(`<input type="file" name="image" accept="image/*"/>`)
			buf.WriteString(`<button type="submit">Upload</button>`)
			buf.WriteString("</form>")
			if len(images) > 0 {
				buf.WriteString("<ul>")
				for _, img := range images {
					buf.WriteString(fmt.Sprintf("<li>%s (%dx%d, %d bytes)</li>", esc(img.Filename), img.Width, img.Height, img.Size))
				}
				buf.WriteString("</ul>")
			}
			buf.WriteString("</section></main>")
		})
	})
}

// NotFound renders a styled 404 page.
func NotFound() templ.Component {
	return component(func(buf *bytes.Buffer) {
		page(buf, "Not Found", "", func(buf *bytes.Buffer) {
			buf.WriteString(`<main class="status"><h1>404</h1><p>Nothing here.</p><p><a href="/">Home</a></p></main>`)
		})
	})
}

// ServerError renders a styled 500 page.
func ServerError() templ.Component {
	return component(func(buf *bytes.Buffer) {
		page(buf, "Server Error", "", func(buf *bytes.Buffer) {
			buf.WriteString(`<main class="status"><h1>500</h1><p>Something broke. Try again shortly.</p></main>`)
		})
	})
}
