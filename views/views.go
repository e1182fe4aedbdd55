// Package views is the minimal default theme, implemented as hand-written
// templ components. Sites that want their own look pass their generated
// templ components into inkpress.ViewFuncs instead.
package views

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/avelar/inkpress"
	"github.com/avelar/inkpress/markdown"
)

// Default builds a ViewFuncs set rendering the built-in theme.
func Default(cfg inkpress.SiteConfig) inkpress.ViewFuncs {
	return inkpress.ViewFuncs{
		Home: func(posts []inkpress.Post, activeTag string, tags []string, siteURL string) templ.Component {
			return page(cfg, cfg.Name, func(w io.Writer) error {
				return writePostList(w, posts, activeTag, tags)
			})
		},
		HomePartial: func(posts []inkpress.Post, activeTag string, tags []string, siteURL string) templ.Component {
			return component(func(w io.Writer) error {
				return writePostList(w, posts, activeTag, tags)
			})
		},
		BlogSection: func(posts []inkpress.Post, activeTag string, tags []string) templ.Component {
			return component(func(w io.Writer) error {
				return writePostList(w, posts, activeTag, tags)
			})
		},
		Post: func(post inkpress.Post, posts []inkpress.Post, siteURL string) templ.Component {
			return page(cfg, post.Title, func(w io.Writer) error {
				return writePost(w, cfg, post, posts)
			})
		},
		PostPartial: func(post inkpress.Post, posts []inkpress.Post, siteURL string) templ.Component {
			return component(func(w io.Writer) error {
				return writePost(w, cfg, post, posts)
			})
		},
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			return page(cfg, "Admin", func(w io.Writer) error {
				if showError {
					if _, err := io.WriteString(w, `<p class="error">Wrong password.</p>`); err != nil {
						return err
					}
				}
				_, err := io.WriteString(w,
					`<form method="post" action="/admin/login/">`+
						csrfField(csrfToken)+
						`<input type="password" name="password" placeholder="Password" autofocus/>`+
						`<button type="submit">Log in</button></form>`)
				return err
			})
		},
		AdminDashboard: func(posts []inkpress.Post, message string, csrfToken string) templ.Component {
			return page(cfg, "Dashboard", func(w io.Writer) error {
				return writeDashboard(w, posts, message, csrfToken)
			})
		},
		AdminFormPartial: func(post inkpress.Post, csrfToken string) templ.Component {
			return component(func(w io.Writer) error {
				return writePostForm(w, post, csrfToken)
			})
		},
		AdminImages: func(images []inkpress.Image, csrfToken string) templ.Component {
			return page(cfg, "Images", func(w io.Writer) error {
				return writeImages(w, images, csrfToken)
			})
		},
		NotFound: func() templ.Component {
			return page(cfg, "Not Found", func(w io.Writer) error {
				_, err := io.WriteString(w, `<h1>404</h1><p>This page does not exist. <a href="/">Back home</a>.</p>`)
				return err
			})
		},
		ServerError: func() templ.Component {
			return page(cfg, "Server Error", func(w io.Writer) error {
				_, err := io.WriteString(w, `<h1>500</h1><p>Something broke on our side. Try again in a bit.</p>`)
				return err
			})
		},
	}
}

// component wraps a writer func as a templ.Component.
func component(write func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return write(w)
	})
}

// page wraps body in the HTML shell shared by every page.
func page(cfg inkpress.SiteConfig, title string, body func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`+
				`<meta name="viewport" content="width=device-width, initial-scale=1"/>`+
				`<title>`+html.EscapeString(title)+` · `+html.EscapeString(cfg.Name)+`</title>`+
				`<link rel="alternate" type="application/rss+xml" href="/feed.xml"/>`+
				`<link rel="stylesheet" href="/public/style.css"/>`+
				`<script type="application/ld+json">`+inkpress.WebsiteJsonLD(cfg)+`</script>`+
				`</head><body><header><a href="/">`+html.EscapeString(cfg.Name)+`</a></header><main>`); err != nil {
			return err
		}
		if err := body(w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func writePostList(w io.Writer, posts []inkpress.Post, activeTag string, tags []string) error {
	if _, err := io.WriteString(w, `<nav class="tags">`); err != nil {
		return err
	}
	for _, t := range tags {
		cls := ""
		if t == activeTag {
			cls = ` class="active"`
		}
		if _, err := io.WriteString(w, `<a`+cls+` href="/?tag=`+inkpress.PathEscape(t)+`">`+html.EscapeString(t)+`</a> `); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `</nav><ul class="posts">`); err != nil {
		return err
	}
	for _, p := range posts {
		if _, err := io.WriteString(w,
			`<li><time datetime="`+p.Date+`">`+p.Date+`</time> `+
				`<a href="`+p.Link+`/">`+html.EscapeString(p.Title)+`</a>`+
				`<p>`+html.EscapeString(p.Description)+`</p></li>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul>`)
	return err
}

func writePost(w io.Writer, cfg inkpress.SiteConfig, post inkpress.Post, posts []inkpress.Post) error {
	if _, err := io.WriteString(w,
		`<article><h1>`+html.EscapeString(post.Title)+`</h1>`+
			`<time datetime="`+post.Date+`">`+post.Date+`</time>`); err != nil {
		return err
	}
	if post.Img != "" {
		if _, err := io.WriteString(w, `<img class="hero" src="`+html.EscapeString(post.Img)+`" alt=""/>`); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, markdown.Render(post.Body)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `<p class="post-tags">`+html.EscapeString(inkpress.JoinTags(post.Tags))+`</p>`); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `<script type="application/ld+json">`+inkpress.BlogPostingJsonLD(post, cfg)+`</script>`); err != nil {
		return err
	}
	related := inkpress.FilterRelatedPosts(post, posts)
	if len(related) > 0 {
		if _, err := io.WriteString(w, `<aside><h2>Related</h2><ul>`); err != nil {
			return err
		}
		for _, p := range related {
			if _, err := io.WriteString(w, `<li><a href="`+p.Link+`/">`+html.EscapeString(p.Title)+`</a></li>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</ul></aside>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</article>`)
	return err
}

func writeDashboard(w io.Writer, posts []inkpress.Post, message, csrfToken string) error {
	if message != "" {
		if _, err := io.WriteString(w, `<p class="msg">`+html.EscapeString(message)+`</p>`); err != nil {
			return err
		}
	}
	if err := writePostForm(w, inkpress.Post{}, csrfToken); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `<table class="admin-posts"><thead><tr><th>Date</th><th>Title</th><th>Status</th></tr></thead><tbody>`); err != nil {
		return err
	}
	for _, p := range posts {
		status := "draft"
		if p.Published {
			status = "published"
		}
		if _, err := io.WriteString(w,
			`<tr><td>`+p.Date+`</td>`+
				`<td><a href="/admin/post/`+inkpress.PathEscape(p.Slug)+`/">`+html.EscapeString(p.Title)+`</a></td>`+
				`<td>`+status+`</td></tr>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</tbody></table>`)
	return err
}

func writePostForm(w io.Writer, post inkpress.Post, csrfToken string) error {
	checked := ""
	if post.Published {
		checked = " checked"
	}
	_, err := io.WriteString(w,
		`<form method="post" action="/admin/save/">`+
			csrfField(csrfToken)+
			`<input name="title" value="`+html.EscapeString(post.Title)+`" placeholder="Title"/>`+
			`<input name="slug" value="`+html.EscapeString(post.Slug)+`" placeholder="Slug"/>`+
			`<input name="date" value="`+html.EscapeString(post.Date)+`" placeholder="YYYY-MM-DD"/>`+
			`<input name="layout" value="`+html.EscapeString(post.Layout)+`" placeholder="Layout"/>`+
			`<input name="img" value="`+html.EscapeString(post.Img)+`" placeholder="Image path"/>`+
			`<input name="tags" value="`+html.EscapeString(inkpress.JoinTags(post.Tags))+`" placeholder="Tags"/>`+
			`<textarea name="description" placeholder="Description">`+html.EscapeString(post.Description)+`</textarea>`+
			`<textarea name="body" placeholder="Body (markdown)">`+html.EscapeString(post.Body)+`</textarea>`+
			`<label><input type="checkbox" name="published"`+checked+`/> Published</label>`+
			`<button type="submit">Save</button></form>`)
	return err
}

func writeImages(w io.Writer, images []inkpress.Image, csrfToken string) error {
	if _, err := io.WriteString(w,
		`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`+
			csrfField(csrfToken)+
			`<input type="file" name="image"/><button type="submit">Upload</button></form><ul class="images">`); err != nil {
		return err
	}
	for _, img := range images {
		if _, err := io.WriteString(w,
			`<li><img src="/public/uploads/`+inkpress.PathEscape(img.Filename)+`" width="120"/>`+
				`<code>/public/uploads/`+html.EscapeString(img.Filename)+`</code></li>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul>`)
	return err
}

func csrfField(token string) string {
	return `<input type="hidden" name="_csrf" value="` + html.EscapeString(token) + `"/>`
}
