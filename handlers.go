package inkwell

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	articles, err := a.Cache.Recent(ctx)
	if err != nil {
		return err
	}
	cats, err := a.Cache.Categories(ctx)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(articles, cats, a.Config))
}

func (a *App) handleEntry(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	article, err := a.Store.GetArticle(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	if err != nil {
		return err
	}
	return Render(c, a.Views.Entry(ViewOf(article, false), a.Config))
}

func (a *App) handleCategories(c echo.Context) error {
	cats, err := a.Cache.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.Categories(cats, CsrfToken(c)))
}

func (a *App) handleCategory(c echo.Context) error {
	name := c.Param("name")
	articles, err := a.Store.ListByCategory(c.Request().Context(), name)
	if errors.Is(err, ErrNotFound) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	if err != nil {
		return err
	}
	return Render(c, a.Views.CategoryArticles(name, articles))
}

func (a *App) handleSitemap(c echo.Context) error {
	articles, err := a.Store.ListAll(c.Request().Context(), OrderDesc)
	if err != nil {
		return err
	}
	return a.renderSitemap(c, articles)
}

func (a *App) handleFeed(c echo.Context) error {
	articles, err := a.Cache.Recent(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, articles)
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
