// Package view 详情页与首页的纯展示逻辑：截断、筛选、占位符、数字格式化。
// 这里的函数只读取已获取的数据，不发请求。
package view

import (
	"sort"
	"strconv"
	"strings"

	"github.com/user/animedex/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// PreviewSize 角色/制作人员默认展示条数
	PreviewSize = 10
	// ReviewFeedSize 评论区展示条数
	ReviewFeedSize = 5
	// ExcerptLength 评论摘要长度（字符）
	ExcerptLength = 500

	TagAll = "All"
)

// ReviewTags 评论筛选下拉框选项
var ReviewTags = []string{TagAll, "Recommended", "Mixed Feelings", "Not Recommended"}

// 占位文本
const (
	Dash           = "-"
	Unknown        = "?"
	UnknownName    = "Unknown"
	UnknownRole    = "Unknown Role"
	Anonymous      = "Anonymous"
	NoStreaming    = "No official streaming info available."
	NoReviews      = "No reviews available."
	NoData         = "No data available"
	ShowMoreLabel  = "Show More"
	ShowLessLabel  = "Show Less"
	BackToHomeText = "Back to Home"
)

// Visible “显示更多”开关：展开时返回全部，否则返回前 PreviewSize 条
func Visible[T any](items []T, showAll bool) []T {
	if showAll || len(items) <= PreviewSize {
		return items
	}
	return items[:PreviewSize]
}

// HasMore 是否需要渲染“显示更多”按钮
func HasMore(n int) bool {
	return n > PreviewSize
}

// FilterReviews 按标签筛选评论（不区分大小写），All 或空串不过滤
func FilterReviews(reviews []model.Review, tag string) []model.Review {
	tag = strings.TrimSpace(tag)
	if tag == "" || strings.EqualFold(tag, TagAll) {
		return reviews
	}
	out := make([]model.Review, 0, len(reviews))
	for _, r := range reviews {
		for _, t := range r.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// ReviewFeed 评论区：筛选后取前 ReviewFeedSize 条
func ReviewFeed(reviews []model.Review, tag string) []model.Review {
	filtered := FilterReviews(reviews, tag)
	if len(filtered) > ReviewFeedSize {
		return filtered[:ReviewFeedSize]
	}
	return filtered
}

// NormalizeTag 把任意输入映射到下拉框选项，未知值按 All 处理
func NormalizeTag(tag string) string {
	for _, t := range ReviewTags {
		if strings.EqualFold(t, strings.TrimSpace(tag)) {
			return t
		}
	}
	return TagAll
}

// Reaction 评论反应计数
type Reaction struct {
	Label string
	Count int
}

// Reactions 只保留计数大于 0 的反应，下划线换成空格，按标签排序
func Reactions(m map[string]int) []Reaction {
	out := make([]Reaction, 0, len(m))
	for k, v := range m {
		if v <= 0 {
			continue
		}
		out = append(out, Reaction{Label: strings.ReplaceAll(k, "_", " "), Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// Excerpt 截取前 n 个字符
func Excerpt(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

// Names 实体名称列表，用逗号连接；为空时返回 "-"
func Names(groups ...[]model.Entity) string {
	var names []string
	for _, g := range groups {
		for _, e := range g {
			names = append(names, e.Name)
		}
	}
	if len(names) == 0 {
		return Dash
	}
	return strings.Join(names, ", ")
}

// FirstNames 前 n 个实体名
func FirstNames(entities []model.Entity, n int) string {
	if len(entities) > n {
		entities = entities[:n]
	}
	return Names(entities)
}

// Or 空串时返回占位符
func Or(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

// Join 字符串列表，用逗号连接；为空时返回 "-"
func Join(items []string) string {
	if len(items) == 0 {
		return Dash
	}
	return strings.Join(items, ", ")
}

var printer = message.NewPrinter(language.Indonesian)

// Number 按 id-ID 习惯分组（1.234.567），0 视为缺失返回 "?"
func Number(n int) string {
	if n == 0 {
		return Unknown
	}
	return printer.Sprintf("%d", n)
}

// Score 评分，0 视为缺失返回 "-"
func Score(s float64) string {
	if s == 0 {
		return Dash
	}
	return strconv.FormatFloat(s, 'f', -1, 64)
}

// Count 集数等整数，0 视为缺失返回 "?"
func Count(n int) string {
	if n == 0 {
		return Unknown
	}
	return strconv.Itoa(n)
}
