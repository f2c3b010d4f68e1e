package handler

import (
	"errors"
	"net/http"

	"github.com/ZF-u/watchlist/internal/config"
	"github.com/ZF-u/watchlist/internal/model"
	"github.com/ZF-u/watchlist/internal/repository"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Handler HTTP 处理器
type Handler struct {
	Repos  *repository.Repositories
	Config *config.Config
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:  repos,
		Config: cfg,
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	// 基础数据
	res := gin.H{
		"SiteName": h.Config.SiteName,
		"Path":     c.Request.URL.Path,
	}

	// 注入所有者信息（页头显示 "Name's Watchlist"）
	if owner, err := h.Repos.User.FindOwner(); err == nil && owner != nil {
		res["Owner"] = owner
	}

	// 注入当前登录用户信息
	session := sessions.Default(c)
	if userinfo := session.Get("userinfo"); userinfo != nil {
		if su, ok := userinfo.(model.SessionUser); ok {
			res["UserInfo"] = su
		}
	}

	// 取出并清空一次性提示消息
	if flashes := session.Flashes(); len(flashes) > 0 {
		messages := make([]string, 0, len(flashes))
		for _, f := range flashes {
			if s, ok := f.(string); ok {
				messages = append(messages, s)
			}
		}
		res["Flashes"] = messages
		session.Save()
	}

	// 合并传入的数据
	for k, v := range data {
		res[k] = v
	}

	return res
}

// flash 追加一条一次性提示消息，在下一次页面渲染时展示
func flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	session.Save()
}

// isValidationError 判断绑定失败是否为用户可纠正的表单校验错误
func isValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ==================== 错误页面 ====================

// NotFoundPage 404 页面
func (h *Handler) NotFoundPage(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", h.RenderData(c, gin.H{
		"Title": "Page Not Found - 404",
	}))
}

// BadRequestPage 400 页面
func (h *Handler) BadRequestPage(c *gin.Context) {
	c.HTML(http.StatusBadRequest, "400.html", h.RenderData(c, gin.H{
		"Title": "Bad Request - 400",
	}))
}

// ServerErrorPage 处理失败页面，沿用历史遗留的 505 状态码
func (h *Handler) ServerErrorPage(c *gin.Context) {
	c.HTML(505, "505.html", h.RenderData(c, gin.H{
		"Title": "Server Error - 505",
	}))
}
