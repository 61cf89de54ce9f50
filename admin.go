package inkwell

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func (a *App) handleLoginForm(c echo.Context) error {
	if IsAuthor(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return Render(c, a.Views.Login(false, CsrfToken(c)))
}

func (a *App) handleLogin(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	tok, ok := a.Verifier.Verify(c.Request().Context(), username, password)
	if !ok {
		return Render(c, a.Views.Login(true, CsrfToken(c)))
	}
	if err := setAuthorSession(c, tok); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func handleLogout(c echo.Context) error {
	if err := clearAuthorSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleEntryAdd(c echo.Context) error {
	if !IsAuthor(c) {
		return c.Redirect(http.StatusSeeOther, "/login/")
	}
	cats, err := a.Store.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.EntryForm(ArticleView{}, cats, CsrfToken(c)))
}

func (a *App) handleEntrySave(c echo.Context) error {
	if !IsAuthor(c) {
		return c.Redirect(http.StatusSeeOther, "/login/")
	}
	title := strings.TrimSpace(c.FormValue("title"))
	content := strings.TrimSpace(c.FormValue("content"))
	category := strings.TrimSpace(c.FormValue("category"))
	if title == "" || content == "" || category == "" {
		return c.Redirect(http.StatusSeeOther, "/entry/add/?msg=Title%2C+content+and+category+are+required.")
	}

	ctx := c.Request().Context()
	tok := capabilityFrom(c)
	// Create the category on the fly if the author typed a new one. A lost
	// creation race (name already taken) is fine here; any other failure is not.
	if _, err := a.Store.EnsureCategory(ctx, tok, category); err != nil {
		return err
	}
	article, err := a.Store.SaveArticle(ctx, tok, title, content, category)
	if err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/entry/"+strconv.FormatInt(article.ID, 10)+"/")
}

func (a *App) handleEntryEdit(c echo.Context) error {
	if !IsAuthor(c) {
		return c.Redirect(http.StatusSeeOther, "/login/")
	}
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
	cats, err := a.Store.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.EntryForm(ViewOf(article, false), cats, CsrfToken(c)))
}

func (a *App) handleEntryUpdate(c echo.Context) error {
	if !IsAuthor(c) {
		return c.Redirect(http.StatusSeeOther, "/login/")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	title := strings.TrimSpace(c.FormValue("title"))
	content := strings.TrimSpace(c.FormValue("content"))
	category := strings.TrimSpace(c.FormValue("category"))
	if title == "" || content == "" || category == "" {
		return c.Redirect(http.StatusSeeOther, "/entry/"+c.Param("id")+"/edit/?msg=Title%2C+content+and+category+are+required.")
	}

	err = a.Store.UpdateArticle(c.Request().Context(), capabilityFrom(c), id, title, content, category)
	switch {
	case errors.Is(err, ErrNotFound):
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	case errors.Is(err, ErrCategoryNotFound):
		return c.Redirect(http.StatusSeeOther, "/entry/"+c.Param("id")+"/edit/?msg=Unknown+category.")
	case err != nil:
		return err
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/entry/"+c.Param("id")+"/")
}

func (a *App) handleCategoryNew(c echo.Context) error {
	if !IsAuthor(c) {
		return c.Redirect(http.StatusSeeOther, "/login/")
	}
	return Render(c, a.Views.CategoryForm(Category{}, CsrfToken(c)))
}

func (a *App) handleCategoryCreate(c echo.Context) error {
	if !IsAuthor(c) {
		return c.Redirect(http.StatusSeeOther, "/login/")
	}
	name := strings.TrimSpace(c.FormValue("name"))
	_, err := a.Store.CreateCategory(c.Request().Context(), capabilityFrom(c), name)
	switch {
	case errors.Is(err, ErrEmptyName):
		return c.Redirect(http.StatusSeeOther, "/category/new/?msg=Name+is+required.")
	case errors.Is(err, ErrDuplicateName):
		return c.Redirect(http.StatusSeeOther, "/category/new/?msg=That+name+is+taken.")
	case err != nil:
		return err
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/category/")
}

func (a *App) handleCategoryEdit(c echo.Context) error {
	if !IsAuthor(c) {
		return c.Redirect(http.StatusSeeOther, "/login/")
	}
	name := c.Param("name")
	ok, err := a.Store.CategoryExists(c.Request().Context(), name)
	if err != nil {
		return err
	}
	if !ok {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	return Render(c, a.Views.CategoryForm(Category{Name: name}, CsrfToken(c)))
}

func (a *App) handleCategoryRename(c echo.Context) error {
	if !IsAuthor(c) {
		return c.Redirect(http.StatusSeeOther, "/login/")
	}
	oldName := c.Param("name")
	newName := strings.TrimSpace(c.FormValue("name"))

	err := a.Store.RenameCategory(c.Request().Context(), capabilityFrom(c), oldName, newName)
	switch {
	case errors.Is(err, ErrEmptyName):
		return c.Redirect(http.StatusSeeOther, "/category/"+PathEscape(oldName)+"/edit/?msg=Name+is+required.")
	case errors.Is(err, ErrDuplicateName):
		return c.Redirect(http.StatusSeeOther, "/category/"+PathEscape(oldName)+"/edit/?msg=That+name+is+taken.")
	case errors.Is(err, ErrNotFound):
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	case err != nil:
		return err
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/category/"+PathEscape(newName)+"/")
}
