package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/avenel/inkwell"
)

// defaultViews builds a minimal hand-written set of templ components. A site
// that wants its own look supplies its own ViewFuncs instead.
func defaultViews(cfg inkwell.SiteConfig) inkwell.ViewFuncs {
	return inkwell.ViewFuncs{
		Home: func(articles []inkwell.ArticleView, categories []inkwell.Category, cfg inkwell.SiteConfig) templ.Component {
			return page(cfg.Name, func(w io.Writer) error {
				fmt.Fprintf(w, "<h1>%s</h1>", esc(cfg.Name))
				for _, a := range articles {
					fmt.Fprintf(w, `<article><h2><a href="/entry/%d/">%s</a></h2>`, a.ID, esc(a.Title))
					fmt.Fprintf(w, `<p class="meta">%s — <a href="/category/%s/">%s</a></p>`,
						esc(a.ReadableDate), inkwell.PathEscape(a.Category), esc(a.Category))
					fmt.Fprintf(w, "<p>%s…</p></article>", esc(a.Excerpt))
				}
				fmt.Fprint(w, `<nav><a href="/category/">Categories</a></nav>`)
				return nil
			})
		},
		Entry: func(a inkwell.ArticleView, cfg inkwell.SiteConfig) templ.Component {
			return page(a.Title, func(w io.Writer) error {
				fmt.Fprintf(w, "<h1>%s</h1>", esc(a.Title))
				fmt.Fprintf(w, `<p class="meta">%s — <a href="/category/%s/">%s</a></p>`,
					esc(a.ReadableDate), inkwell.PathEscape(a.Category), esc(a.Category))
				fmt.Fprintf(w, "<div>%s</div>", esc(a.Content))
				return nil
			})
		},
		EntryForm: func(a inkwell.ArticleView, categories []inkwell.Category, csrf string) templ.Component {
			action := "/entry/add/"
			if a.ID != 0 {
				action = "/entry/" + strconv.FormatInt(a.ID, 10) + "/edit/"
			}
			return page("Write", func(w io.Writer) error {
				fmt.Fprintf(w, `<form method="post" action="%s">`, action)
				csrfField(w, csrf)
				fmt.Fprintf(w, `<input name="title" value="%s" placeholder="Title">`, esc(a.Title))
				fmt.Fprintf(w, `<textarea name="content">%s</textarea>`, esc(a.Content))
				fmt.Fprintf(w, `<input name="category" value="%s" list="categories" placeholder="Category">`, esc(a.Category))
				fmt.Fprint(w, `<datalist id="categories">`)
				for _, c := range categories {
					fmt.Fprintf(w, `<option value="%s">`, esc(c.Name))
				}
				fmt.Fprint(w, `</datalist><button type="submit">Save</button></form>`)
				return nil
			})
		},
		Categories: func(categories []inkwell.Category, csrf string) templ.Component {
			return page("Categories", func(w io.Writer) error {
				fmt.Fprint(w, "<h1>Categories</h1><ul>")
				for _, c := range categories {
					fmt.Fprintf(w, `<li><a href="/category/%s/">%s</a></li>`,
						inkwell.PathEscape(c.Name), esc(c.Name))
				}
				fmt.Fprint(w, "</ul>")
				return nil
			})
		},
		CategoryArticles: func(name string, articles []inkwell.ArticleView) templ.Component {
			return page(name, func(w io.Writer) error {
				fmt.Fprintf(w, "<h1>%s</h1>", esc(name))
				if len(articles) == 0 {
					fmt.Fprint(w, "<p>No articles yet.</p>")
				}
				for _, a := range articles {
					fmt.Fprintf(w, `<article><h2><a href="/entry/%d/">%s</a></h2><p class="meta">%s</p></article>`,
						a.ID, esc(a.Title), esc(a.ReadableDate))
				}
				return nil
			})
		},
		CategoryForm: func(c inkwell.Category, csrf string) templ.Component {
			action := "/category/new/"
			if c.Name != "" {
				action = "/category/" + inkwell.PathEscape(c.Name) + "/edit/"
			}
			return page("Category", func(w io.Writer) error {
				fmt.Fprintf(w, `<form method="post" action="%s">`, action)
				csrfField(w, csrf)
				fmt.Fprintf(w, `<input name="name" value="%s" placeholder="Name">`, esc(c.Name))
				fmt.Fprint(w, `<button type="submit">Save</button></form>`)
				return nil
			})
		},
		Login: func(showError bool, csrf string) templ.Component {
			return page("Sign in", func(w io.Writer) error {
				if showError {
					fmt.Fprint(w, `<p class="error">Wrong username or password.</p>`)
				}
				fmt.Fprint(w, `<form method="post" action="/login/">`)
				csrfField(w, csrf)
				fmt.Fprint(w, `<input name="username" placeholder="Username">`)
				fmt.Fprint(w, `<input name="password" type="password" placeholder="Password">`)
				fmt.Fprint(w, `<button type="submit">Sign in</button></form>`)
				return nil
			})
		},
		ImageList: func(images []inkwell.Image, csrf string) templ.Component {
			return page("Images", func(w io.Writer) error {
				fmt.Fprint(w, `<h1>Images</h1><form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
				csrfField(w, csrf)
				fmt.Fprint(w, `<input type="file" name="image"><button type="submit">Upload</button></form><ul>`)
				for _, img := range images {
					fmt.Fprintf(w, `<li><a href="%s">%s</a> (%d bytes)</li>`, img.URL, esc(img.Filename), img.Size)
				}
				fmt.Fprint(w, "</ul>")
				return nil
			})
		},
		NotFound: func() templ.Component {
			return page("Not found", func(w io.Writer) error {
				fmt.Fprint(w, "<h1>404</h1><p>Nothing here.</p>")
				return nil
			})
		},
		ServerError: func() templ.Component {
			return page("Error", func(w io.Writer) error {
				fmt.Fprint(w, "<h1>500</h1><p>Something went wrong.</p>")
				return nil
			})
		},
	}
}

func page(title string, body func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<!doctype html><html><head><meta charset="utf-8"><title>%s</title></head><body>`, esc(title))
		if err := body(w); err != nil {
			return err
		}
		_, err := fmt.Fprint(w, "</body></html>")
		return err
	})
}

func csrfField(w io.Writer, token string) {
	fmt.Fprintf(w, `<input type="hidden" name="_csrf" value="%s">`, esc(token))
}

func esc(s string) string {
	return templ.EscapeString(s)
}
