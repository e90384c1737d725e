package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/user/animedex/internal/config"
	"github.com/user/animedex/internal/middleware"
	"github.com/user/animedex/internal/model"
	"github.com/user/animedex/internal/service"
	"github.com/user/animedex/internal/utils"
	"github.com/user/animedex/internal/view"
)

// Handler HTTP 处理器
type Handler struct {
	Config  *config.Config
	Catalog *service.Catalog
	Agg     *service.Aggregator
	Viewers *service.ViewerStore
	Logger  hclog.Logger
}

// NewHandler 创建处理器
func NewHandler(cfg *config.Config, catalog *service.Catalog, agg *service.Aggregator, viewers *service.ViewerStore, logger hclog.Logger) *Handler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Handler{
		Config:  cfg,
		Catalog: catalog,
		Agg:     agg,
		Viewers: viewers,
		Logger:  logger,
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	res := gin.H{
		"SiteName":   h.Config.SiteName,
		"SiteUrl":    h.Config.SiteUrl,
		"Path":       c.Request.URL.Path,
		"ActiveMenu": h.getActiveMenu(c.Request.URL.Path),
	}

	for k, v := range data {
		res[k] = v
	}

	return res
}

func (h *Handler) getActiveMenu(path string) string {
	switch path {
	case "/", "/search":
		return "home"
	default:
		return ""
	}
}

// ==================== 公开页面 ====================

// Home 首页：随机推荐 + 搜索框 + 正在热播
func (h *Handler) Home(c *gin.Context) {
	ctx := c.Request.Context()

	c.HTML(http.StatusOK, "home.html", h.RenderData(c, gin.H{
		"Title":     h.Config.SiteName,
		"Featured":  h.Catalog.Featured(ctx),
		"Results":   DefaultPicks,
		"TopAiring": h.Catalog.TopAiring(ctx),
		"Query":     "",
	}))
}

// Search 搜索结果页：首个结果作为推荐位，其余进入网格
func (h *Handler) Search(c *gin.Context) {
	query := utils.NormalizeQuery(c.Query("q"))
	if query == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}
	ctx := c.Request.Context()

	results, err := h.Catalog.Search(ctx, query)
	if err != nil {
		h.Logger.Warn("搜索失败", "query", query, "error", err)
		results = []model.Anime{}
	}

	// 无结果时沿用首页的随机推荐与默认推荐列表
	var featured *model.Anime
	grid := DefaultPicks
	if len(results) > 0 {
		featured = &results[0]
		grid = results[1:]
	} else {
		featured = h.Catalog.Featured(ctx)
	}

	c.HTML(http.StatusOK, "home.html", h.RenderData(c, gin.H{
		"Title":     query + " - " + h.Config.SiteName,
		"Featured":  featured,
		"Results":   grid,
		"TopAiring": h.Catalog.TopAiring(ctx),
		"Query":     query,
	}))
}

// Anime 详情页
// 访客已持有同一 ID 的完整状态且带有展开/筛选参数时，直接用状态重新渲染，不再请求上游
func (h *Handler) Anime(c *gin.Context) {
	id, ok := utils.ParseAnimeID(c.Param("id"))
	if !ok {
		h.NotFound(c)
		return
	}

	state := h.load(c, id, hasToggle(c))
	if state.Missing() {
		c.HTML(http.StatusOK, "skeleton.html", h.RenderData(c, gin.H{
			"Title": h.Config.SiteName,
			"ID":    id,
		}))
		return
	}

	c.HTML(http.StatusOK, "anime.html", h.RenderData(c, gin.H{
		"Title":  state.Anime.DisplayTitle() + " - " + h.Config.SiteName,
		"Detail": newDetailPage(state, c),
	}))
}

// CastPartial 角色区块（htmx 局部刷新）
func (h *Handler) CastPartial(c *gin.Context) {
	h.renderPartial(c, "cast")
}

// StaffPartial 制作人员区块
func (h *Handler) StaffPartial(c *gin.Context) {
	h.renderPartial(c, "staff")
}

// ReviewsPartial 评论区块
func (h *Handler) ReviewsPartial(c *gin.Context) {
	h.renderPartial(c, "reviews")
}

func (h *Handler) renderPartial(c *gin.Context, section string) {
	id, ok := utils.ParseAnimeID(c.Param("id"))
	if !ok {
		c.String(http.StatusNotFound, "")
		return
	}
	state := h.load(c, id, true)
	if state.Missing() {
		c.String(http.StatusOK, "")
		return
	}
	c.HTML(http.StatusOK, "section_"+section+".html", newDetailPage(state, c))
}

// NotFound 404 页面
func (h *Handler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", h.RenderData(c, gin.H{
		"Title": "404 - " + h.Config.SiteName,
	}))
}

// load 取访客状态：reuse 为真且状态已是 id 的完整加载时直接返回快照
func (h *Handler) load(c *gin.Context, id int, reuse bool) model.DetailView {
	viewer := h.Viewers.Get(middleware.GetVisitorID(c))
	if reuse && viewer.Holds(id) {
		return viewer.Snapshot()
	}
	state, current := viewer.Navigate(c.Request.Context(), id)
	if !current {
		h.Logger.Debug("导航已被取代，结果不写入状态", "id", id)
	}
	return state
}

func hasToggle(c *gin.Context) bool {
	for _, key := range []string{"cast", "staff", "tag"} {
		if _, ok := c.GetQuery(key); ok {
			return true
		}
	}
	return false
}

// detailPage 详情页模板数据
type detailPage struct {
	ID        int
	Anime     *model.Anime
	Streaming []model.StreamingEpisode

	Cast       []model.CastEntry
	CastTotal  int
	CastAll    bool
	CastMore   bool
	Staff      []model.StaffEntry
	StaffTotal int
	StaffAll   bool
	StaffMore  bool

	Reviews []model.Review
	Tag     string
	Tags    []string
}

func newDetailPage(state model.DetailView, c *gin.Context) detailPage {
	castAll := c.Query("cast") == "all"
	staffAll := c.Query("staff") == "all"
	tag := view.NormalizeTag(c.Query("tag"))

	return detailPage{
		ID:         state.ID,
		Anime:      state.Anime,
		Streaming:  state.Streaming,
		Cast:       view.Visible(state.Characters, castAll),
		CastTotal:  len(state.Characters),
		CastAll:    castAll,
		CastMore:   view.HasMore(len(state.Characters)),
		Staff:      view.Visible(state.Staff, staffAll),
		StaffTotal: len(state.Staff),
		StaffAll:   staffAll,
		StaffMore:  view.HasMore(len(state.Staff)),
		Reviews:    view.ReviewFeed(state.Reviews, tag),
		Tag:        tag,
		Tags:       view.ReviewTags,
	}
}

// Link 详情页链接，始终带上 tag 参数，使访客状态可以直接复用
func (p detailPage) Link(cast, staff bool, tag string) string {
	return p.link("", cast, staff, tag)
}

// CastToggle 切换角色展开
func (p detailPage) CastToggle() string { return p.Link(!p.CastAll, p.StaffAll, p.Tag) }

// StaffToggle 切换制作人员展开
func (p detailPage) StaffToggle() string { return p.Link(p.CastAll, !p.StaffAll, p.Tag) }

// CastTogglePartial 角色区块局部刷新地址
func (p detailPage) CastTogglePartial() string {
	return p.link("cast", !p.CastAll, p.StaffAll, p.Tag)
}

// StaffTogglePartial 制作人员区块局部刷新地址
func (p detailPage) StaffTogglePartial() string {
	return p.link("staff", p.CastAll, !p.StaffAll, p.Tag)
}

func (p detailPage) link(section string, cast, staff bool, tag string) string {
	q := url.Values{}
	if cast {
		q.Set("cast", "all")
	}
	if staff {
		q.Set("staff", "all")
	}
	q.Set("tag", view.NormalizeTag(tag))

	path := "/anime/" + strconv.Itoa(p.ID)
	if section != "" {
		path += "/" + section
	}
	return path + "?" + q.Encode()
}
