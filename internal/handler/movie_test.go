package handler_test

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItem(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	before := app.movieCount(t)

	doc, status := app.postForm(t, "/", url.Values{
		"title": {"New Movie"},
		"year":  {"2023"},
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, alerts(doc), "Item created.")
	assert.Contains(t, bodyText(doc), "New Movie")
	assert.Equal(t, before+1, app.movieCount(t))
}

func TestCreateItemShortYearAccepted(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	// 创建时年份允许 1-4 个字符，这里和编辑的规则不同
	doc, _ := app.postForm(t, "/", url.Values{
		"title": {"Short Year"},
		"year":  {"23"},
	})
	assert.Contains(t, alerts(doc), "Item created.")
}

func TestCreateItemInvalidInput(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	before := app.movieCount(t)

	cases := []struct {
		name  string
		title string
		year  string
	}{
		{"empty title", "", "2023"},
		{"empty year", "New Movie", ""},
		{"title too long", strings.Repeat("x", 61), "2023"},
		{"year too long", "New Movie", "20233"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, _ := app.postForm(t, "/", url.Values{
				"title": {tc.title},
				"year":  {tc.year},
			})
			assert.Contains(t, alerts(doc), "Invalid input.")
			assert.NotContains(t, alerts(doc), "Item created.")
		})
	}

	assert.Equal(t, before, app.movieCount(t))
}

func TestCreateItemAnonymousSilentRedirect(t *testing.T) {
	app := newTestApp(t)
	before := app.movieCount(t)

	// 未登录提交静默回到首页，没有任何提示消息
	status, location := app.redirectTarget(t, http.MethodPost, "/")
	assert.Equal(t, http.StatusFound, status)
	assert.Equal(t, "/", location)

	doc, _ := app.get(t, "/")
	assert.Zero(t, doc.Find(".alert").Length())
	assert.Equal(t, before, app.movieCount(t))
}

func TestEditPage(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	doc, status := app.get(t, fmt.Sprintf("/movie/edit/%d", app.movie.ID))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, bodyText(doc), "Edit item")

	title, _ := doc.Find(`input[name="title"]`).Attr("value")
	year, _ := doc.Find(`input[name="year"]`).Attr("value")
	assert.Equal(t, "Test Movie Title", title)
	assert.Equal(t, "2023", year)
}

func TestUpdateItem(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	other, err := app.repos.Movie.Create("Leon", "1994")
	require.NoError(t, err)

	doc, status := app.postForm(t, fmt.Sprintf("/movie/edit/%d", app.movie.ID), url.Values{
		"title": {"New Movie Edited"},
		"year":  {"2023"},
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, alerts(doc), "Item updated.")
	assert.Contains(t, bodyText(doc), "New Movie Edited")

	// 其他记录保持不变
	untouched, err := app.repos.Movie.FindByID(other.ID)
	require.NoError(t, err)
	require.NotNil(t, untouched)
	assert.Equal(t, "Leon", untouched.Title)
}

func TestUpdateItemInvalidInput(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	path := fmt.Sprintf("/movie/edit/%d", app.movie.ID)

	cases := []struct {
		name  string
		title string
		year  string
	}{
		{"empty title", "", "2023"},
		{"empty year", "New Movie Edited", ""},
		// 编辑时年份必须恰好 4 个字符，创建时允许更短
		{"short year", "New Movie Edited", "23"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, _ := app.postForm(t, path, url.Values{
				"title": {tc.title},
				"year":  {tc.year},
			})
			assert.Contains(t, alerts(doc), "Invalid input.")
			assert.NotContains(t, alerts(doc), "Item updated.")
		})
	}

	// 原记录未被修改
	movie, err := app.repos.Movie.FindByID(app.movie.ID)
	require.NoError(t, err)
	require.NotNil(t, movie)
	assert.Equal(t, "Test Movie Title", movie.Title)
}

func TestDeleteItem(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	doc, status := app.postForm(t, fmt.Sprintf("/movie/delete/%d", app.movie.ID), url.Values{})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, alerts(doc), "Item deleted.")
	assert.NotContains(t, bodyText(doc), "Test Movie Title")
	assert.EqualValues(t, 0, app.movieCount(t))
}

func TestEditNotFoundRegardlessOfAuth(t *testing.T) {
	app := newTestApp(t)

	// 匿名访问不存在的 ID 也是 404，而不是跳转登录
	_, status := app.get(t, "/movie/edit/999999")
	assert.Equal(t, http.StatusNotFound, status)

	app.login(t)
	_, status = app.get(t, "/movie/edit/999999")
	assert.Equal(t, http.StatusNotFound, status)

	// 非数字 ID 同样按 404 处理
	_, status = app.get(t, "/movie/edit/abc")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGuardedRoutesRedirectAnonymous(t *testing.T) {
	app := newTestApp(t)
	editPath := fmt.Sprintf("/movie/edit/%d", app.movie.ID)
	deletePath := fmt.Sprintf("/movie/delete/%d", app.movie.ID)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, editPath},
		{http.MethodPost, editPath},
		{http.MethodPost, deletePath},
		{http.MethodGet, "/settings"},
		{http.MethodPost, "/settings"},
		{http.MethodGet, "/logout"},
	}

	for _, tc := range cases {
		status, location := app.redirectTarget(t, tc.method, tc.path)
		assert.Equal(t, http.StatusFound, status, "%s %s", tc.method, tc.path)
		assert.Equal(t, "/login", location, "%s %s", tc.method, tc.path)
	}

	// 没有发生任何变更
	movie, err := app.repos.Movie.FindByID(app.movie.ID)
	require.NoError(t, err)
	require.NotNil(t, movie)
	assert.Equal(t, "Test Movie Title", movie.Title)
	assert.EqualValues(t, 1, app.movieCount(t))
}

func TestCreateEditDeleteRoundTrip(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	before := app.movieCount(t)

	doc, _ := app.postForm(t, "/", url.Values{
		"title": {"Round Trip"},
		"year":  {"2024"},
	})
	require.Contains(t, alerts(doc), "Item created.")

	movies, err := app.repos.Movie.ListAll()
	require.NoError(t, err)
	created := movies[len(movies)-1]
	require.Equal(t, "Round Trip", created.Title)

	doc, _ = app.postForm(t, fmt.Sprintf("/movie/edit/%d", created.ID), url.Values{
		"title": {"Round Trip Edited"},
		"year":  {"2025"},
	})
	require.Contains(t, alerts(doc), "Item updated.")

	doc, _ = app.postForm(t, fmt.Sprintf("/movie/delete/%d", created.ID), url.Values{})
	require.Contains(t, alerts(doc), "Item deleted.")

	assert.Equal(t, before, app.movieCount(t))
}
