package handler

import (
	"net/http"

	"github.com/ZF-u/watchlist/internal/middleware"
	"github.com/ZF-u/watchlist/internal/model"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// loginForm 登录表单
type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// settingsForm 设置表单
type settingsForm struct {
	Name string `form:"name" binding:"required,max=20"`
}

// LoginPage 登录页面，已登录状态也照常渲染
func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
		"Title": "Login - " + h.Config.SiteName,
	}))
}

// Login 登录处理，只对所有者账户做认证
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		if isValidationError(err) {
			flash(c, "Invalid input.")
			c.Redirect(http.StatusFound, "/login")
			return
		}
		h.BadRequestPage(c)
		return
	}

	owner, err := h.Repos.User.FindOwner()
	if err != nil {
		h.ServerErrorPage(c)
		return
	}

	// 验证用户名和密码
	if owner == nil || form.Username != owner.Username || !h.Repos.User.CheckPassword(owner, form.Password) {
		flash(c, "Invalid username or password.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	// 生成会话令牌，MaxAge 为 0 保证 Cookie 随浏览器会话结束失效
	token, err := middleware.GenerateToken(owner.ID, owner.Username, h.Config.AppSecret, h.Config.TokenExpiry)
	if err != nil {
		h.ServerErrorPage(c)
		return
	}
	c.SetCookie("token", token, 0, "/", "", false, true)

	// 保存 UserInfo 到 Session
	session := sessions.Default(c)
	session.Set("userinfo", model.SessionUser{
		ID:       owner.ID,
		Username: owner.Username,
		Name:     owner.Name,
	})
	session.AddFlash("Login success.")
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

// Logout 登出
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)

	// 清理 Session，提示消息要在清理之后写入
	session := sessions.Default(c)
	session.Clear()
	session.AddFlash("Bye.")
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

// SettingsPage 设置页面
func (h *Handler) SettingsPage(c *gin.Context) {
	user, err := h.Repos.User.FindByID(middleware.GetUserID(c))
	if err != nil {
		h.ServerErrorPage(c)
		return
	}
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.HTML(http.StatusOK, "settings.html", h.RenderData(c, gin.H{
		"Title": "Settings - " + h.Config.SiteName,
		"User":  user,
	}))
}

// UpdateSettings 更新显示名称
func (h *Handler) UpdateSettings(c *gin.Context) {
	var form settingsForm
	if err := c.ShouldBind(&form); err != nil {
		if isValidationError(err) {
			flash(c, "Invalid input.")
			c.Redirect(http.StatusFound, "/settings")
			return
		}
		h.BadRequestPage(c)
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.Repos.User.UpdateName(userID, form.Name); err != nil {
		h.ServerErrorPage(c)
		return
	}

	// 同步 Session 中的显示名称
	session := sessions.Default(c)
	if userinfo := session.Get("userinfo"); userinfo != nil {
		if su, ok := userinfo.(model.SessionUser); ok {
			su.Name = form.Name
			session.Set("userinfo", su)
		}
	}
	session.AddFlash("Settings updated.")
	session.Save()

	c.Redirect(http.StatusFound, "/")
}
