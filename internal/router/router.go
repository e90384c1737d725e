package router

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/user/animedex/internal/handler"
	"github.com/user/animedex/internal/model"
	"github.com/user/animedex/internal/view"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 公开页面 ====================
	r.GET("/", h.Home)
	r.GET("/search", h.Search)
	r.GET("/anime/:id", h.Anime)

	// ==================== htmx 局部刷新 ====================
	r.GET("/anime/:id/cast", h.CastPartial)
	r.GET("/anime/:id/staff", h.StaffPartial)
	r.GET("/anime/:id/reviews", h.ReviewsPartial)

	// 自动滚动
	r.GET("/ws/rail", h.RailSocket)

	// ==================== JSON API ====================
	api := r.Group("/api")
	{
		api.GET("/anime/:id", h.AnimeJSON)
		api.GET("/search", h.SearchJSON)
		api.GET("/top-airing", h.TopAiringJSON)
	}

	r.NoRoute(h.NotFound)
}

// FuncMap 模板函数
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"default": func(defaultValue, value interface{}) interface{} {
			switch v := value.(type) {
			case string:
				if v == "" {
					return defaultValue
				}
			case int:
				if v == 0 {
					return defaultValue
				}
			case nil:
				return defaultValue
			}
			return value
		},
		"number":     view.Number,
		"score":      view.Score,
		"count":      view.Count,
		"names":      view.Names,
		"firstNames": view.FirstNames,
		"join":       view.Join,
		"fallback":   view.Or,
		"excerpt":    view.Excerpt,
		"reactions":  view.Reactions,
		"voiceActor": func(e model.CastEntry) *model.VoiceActor { return e.VoiceActor() },
		"placeholder": func(name string) string {
			return placeholders[name]
		},
	}
}

var placeholders = map[string]string{
	"dash":        view.Dash,
	"unknown":     view.Unknown,
	"unknownName": view.UnknownName,
	"unknownRole": view.UnknownRole,
	"anonymous":   view.Anonymous,
	"noStreaming": view.NoStreaming,
	"noReviews":   view.NoReviews,
	"noData":      view.NoData,
	"showMore":    view.ShowMoreLabel,
	"showLess":    view.ShowLessLabel,
	"backHome":    view.BackToHomeText,
	"excerptLen":  fmt.Sprint(view.ExcerptLength),
}

// LoadTemplates 使用 multitemplate 加载模板，解决模板继承问题
func LoadTemplates(templatesDir string) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(filepath.Join(templatesDir, "layouts", "*.html"))
	if err != nil {
		return nil, err
	}
	partials, err := filepath.Glob(filepath.Join(templatesDir, "partials", "*.html"))
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("模板目录 %s 下没有布局文件", templatesDir)
	}

	funcMap := FuncMap()

	// 完整页面：布局 + 局部模板 + 页面
	for _, page := range []string{"home", "anime", "skeleton", "404"} {
		files := make([]string, 0, len(layouts)+len(partials)+1)
		files = append(files, layouts...)
		files = append(files, partials...)
		files = append(files, filepath.Join(templatesDir, "pages", page+".html"))
		r.AddFromFilesFuncs(page+".html", funcMap, files...)
	}

	// 局部刷新：只渲染单个区块，区块文件放在首位作为入口模板
	// ParseFiles 以文件名命名模板，区块文件名不能与 partials 重名
	for _, section := range []string{"cast", "staff", "reviews"} {
		files := make([]string, 0, len(partials)+1)
		files = append(files, filepath.Join(templatesDir, "sections", section+"_section.html"))
		files = append(files, partials...)
		r.AddFromFilesFuncs("section_"+section+".html", funcMap, files...)
	}

	return r, nil
}
