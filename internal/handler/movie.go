package handler

import (
	"net/http"
	"strconv"

	"github.com/ZF-u/watchlist/internal/middleware"
	"github.com/ZF-u/watchlist/internal/model"
	"github.com/gin-gonic/gin"
)

// createMovieForm 首页创建表单，年份允许 1-4 个字符
type createMovieForm struct {
	Title string `form:"title" binding:"required,max=60"`
	Year  string `form:"year" binding:"required,max=4"`
}

// editMovieForm 编辑表单，年份必须恰好 4 个字符
// 与创建表单的差异是有意保留的历史行为，不要统一
type editMovieForm struct {
	Title string `form:"title" binding:"required,max=60"`
	Year  string `form:"year" binding:"required,len=4"`
}

// Index 首页，公开的电影列表
func (h *Handler) Index(c *gin.Context) {
	movies, err := h.Repos.Movie.ListAll()
	if err != nil {
		h.ServerErrorPage(c)
		return
	}

	c.HTML(http.StatusOK, "index.html", h.RenderData(c, gin.H{
		"Title":  h.Config.SiteName,
		"Movies": movies,
	}))
}

// CreateMovie 新增电影
// 未登录时静默重定向回首页，不带提示消息（与其他受保护路由不同）
func (h *Handler) CreateMovie(c *gin.Context) {
	if middleware.GetUserID(c) == 0 {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form createMovieForm
	if err := c.ShouldBind(&form); err != nil {
		if isValidationError(err) {
			flash(c, "Invalid input.")
			c.Redirect(http.StatusFound, "/")
			return
		}
		h.BadRequestPage(c)
		return
	}

	if _, err := h.Repos.Movie.Create(form.Title, form.Year); err != nil {
		h.ServerErrorPage(c)
		return
	}

	flash(c, "Item created.")
	c.Redirect(http.StatusFound, "/")
}

// EditPage 编辑表单页
func (h *Handler) EditPage(c *gin.Context) {
	movie := h.resolveMovie(c)
	if movie == nil {
		return
	}
	if middleware.GetUserID(c) == 0 {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.HTML(http.StatusOK, "edit.html", h.RenderData(c, gin.H{
		"Title": "Edit item - " + h.Config.SiteName,
		"Movie": movie,
	}))
}

// UpdateMovie 更新电影
func (h *Handler) UpdateMovie(c *gin.Context) {
	movie := h.resolveMovie(c)
	if movie == nil {
		return
	}
	if middleware.GetUserID(c) == 0 {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form editMovieForm
	if err := c.ShouldBind(&form); err != nil {
		if isValidationError(err) {
			flash(c, "Invalid input.")
			c.Redirect(http.StatusFound, "/movie/edit/"+strconv.Itoa(movie.ID))
			return
		}
		h.BadRequestPage(c)
		return
	}

	if err := h.Repos.Movie.Update(movie.ID, form.Title, form.Year); err != nil {
		h.ServerErrorPage(c)
		return
	}

	flash(c, "Item updated.")
	c.Redirect(http.StatusFound, "/")
}

// DeleteMovie 删除电影
func (h *Handler) DeleteMovie(c *gin.Context) {
	movie := h.resolveMovie(c)
	if movie == nil {
		return
	}
	if middleware.GetUserID(c) == 0 {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := h.Repos.Movie.Delete(movie.ID); err != nil {
		h.ServerErrorPage(c)
		return
	}

	flash(c, "Item deleted.")
	c.Redirect(http.StatusFound, "/")
}

// resolveMovie 解析路径中的电影 ID 并加载记录
// ID 非法或记录不存在时渲染 404，存在性检查先于登录检查，
// 保证不存在的 ID 无论登录与否都得到 404
func (h *Handler) resolveMovie(c *gin.Context) *model.Movie {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.NotFoundPage(c)
		return nil
	}

	movie, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		h.ServerErrorPage(c)
		return nil
	}
	if movie == nil {
		h.NotFoundPage(c)
		return nil
	}

	return movie
}
