package router

import (
	"path/filepath"

	"github.com/ZF-u/watchlist/internal/handler"
	"github.com/ZF-u/watchlist/internal/middleware"
	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", h.Health)

	// ==================== 公开页面 ====================
	// 编辑/删除路由也放在这里：先按 ID 解析记录再做登录检查，
	// 不存在的 ID 无论登录与否都返回 404
	public := r.Group("")
	public.Use(middleware.OptionalAuth(h.Config.AppSecret))
	{
		public.GET("/", h.Index)
		public.POST("/", h.CreateMovie)
		public.GET("/login", h.LoginPage)
		public.POST("/login", h.Login)

		movie := public.Group("/movie")
		{
			movie.GET("/edit/:id", h.EditPage)
			movie.POST("/edit/:id", h.UpdateMovie)
			movie.POST("/delete/:id", h.DeleteMovie)
		}
	}

	// ==================== 需要登录 ====================
	authed := r.Group("")
	authed.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		authed.GET("/logout", h.Logout)
		authed.GET("/settings", h.SettingsPage)
		authed.POST("/settings", h.UpdateSettings)
	}

	// 未匹配路由统一走 404 页面
	r.NoRoute(h.NotFoundPage)
}

// LoadTemplates 使用 multitemplate 加载模板，解决模板继承问题
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	// 获取布局和局部模板
	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	partials, err := filepath.Glob(templatesDir + "/partials/*.html")
	if err != nil {
		panic(err)
	}

	// 组装模板文件列表
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, partials...)
		files = append(files, view)
		return files
	}

	// 注册所有页面模板
	pages := []string{
		"index", "login", "settings", "edit",
		"404", "400", "505",
	}

	for _, page := range pages {
		viewPath := templatesDir + "/pages/" + page + ".html"
		r.AddFromFiles(page+".html", assemble(viewPath)...)
	}

	return r
}
