package model

// Person 人物（声优/制作人员）
type Person struct {
	MalID  int    `json:"mal_id"`
	URL    string `json:"url"`
	Images Images `json:"images"`
	Name   string `json:"name"`
}

// Character 角色
type Character struct {
	MalID  int    `json:"mal_id"`
	URL    string `json:"url"`
	Images Images `json:"images"`
	Name   string `json:"name"`
}

// VoiceActor 配音演员
type VoiceActor struct {
	Person   Person `json:"person"`
	Language string `json:"language"`
}

// CastEntry 角色与声优
type CastEntry struct {
	Character   Character    `json:"character"`
	Role        string       `json:"role"`
	VoiceActors []VoiceActor `json:"voice_actors"`
}

// VoiceActor 返回首位声优，没有则为 nil
func (c *CastEntry) VoiceActor() *VoiceActor {
	if len(c.VoiceActors) == 0 {
		return nil
	}
	return &c.VoiceActors[0]
}

// StaffEntry 制作人员
type StaffEntry struct {
	Person    Person   `json:"person"`
	Positions []string `json:"positions"`
}

// ReviewUser 评论作者
type ReviewUser struct {
	Username string `json:"username"`
	URL      string `json:"url"`
	Images   Images `json:"images"`
}

// Review 用户评论
type Review struct {
	MalID           int            `json:"mal_id"`
	URL             string         `json:"url"`
	Type            string         `json:"type"`
	Reactions       map[string]int `json:"reactions"`
	Date            string         `json:"date"`
	Review          string         `json:"review"`
	Score           int            `json:"score"`
	Tags            []string       `json:"tags"`
	IsSpoiler       bool           `json:"is_spoiler"`
	IsPreliminary   bool           `json:"is_preliminary"`
	EpisodesWatched int            `json:"episodes_watched"`
	User            ReviewUser     `json:"user"`
}

// StreamingEpisode 正版流媒体剧集（AniList 数据）
type StreamingEpisode struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

// DetailView 详情页视图模型
// Anime 为 nil 表示主条目未取到，页面只展示骨架屏
type DetailView struct {
	ID         int                `json:"id"`
	Anime      *Anime             `json:"anime"`
	Characters []CastEntry        `json:"characters"`
	Staff      []StaffEntry       `json:"staff"`
	Reviews    []Review           `json:"reviews"`
	Streaming  []StreamingEpisode `json:"streaming"`
	Loading    bool               `json:"loading"`
}

// Missing 主条目是否缺失
func (v *DetailView) Missing() bool {
	return v.Anime == nil
}
