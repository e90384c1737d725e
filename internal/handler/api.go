package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/animedex/internal/utils"
)

// searchQuery 搜索参数
type searchQuery struct {
	Q string `form:"q" binding:"required,max=100"`
}

// AnimeJSON 返回聚合后的详情数据（不读写访客状态）
func (h *Handler) AnimeJSON(c *gin.Context) {
	id, ok := utils.ParseAnimeID(c.Param("id"))
	if !ok {
		utils.BadRequest(c, "无效的番剧 ID")
		return
	}

	detail := h.Agg.Load(c.Request.Context(), id)
	if detail.Missing() {
		utils.NotFound(c, "")
		return
	}
	utils.Success(c, detail)
}

// SearchJSON 搜索（去重后）
func (h *Handler) SearchJSON(c *gin.Context) {
	var req searchQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.BadRequest(c, "参数错误: "+err.Error())
		return
	}
	query := utils.NormalizeQuery(req.Q)
	if query == "" {
		utils.BadRequest(c, "搜索关键词不能为空")
		return
	}

	results, err := h.Catalog.Search(c.Request.Context(), query)
	if err != nil {
		h.Logger.Warn("搜索失败", "query", query, "error", err)
		utils.BadGateway(c, "")
		return
	}
	utils.SuccessList(c, results)
}

// TopAiringJSON 正在热播
func (h *Handler) TopAiringJSON(c *gin.Context) {
	utils.SuccessList(c, h.Catalog.TopAiring(c.Request.Context()))
}
