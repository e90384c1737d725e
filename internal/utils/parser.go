package utils

import (
	"strconv"
	"strings"
)

// ParseAnimeID 解析路由中的番剧 ID，只接受正整数
func ParseAnimeID(raw string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// NormalizeQuery 清理搜索关键词：去掉首尾空白并合并连续空白
func NormalizeQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}
