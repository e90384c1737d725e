package model

// Image 图片地址（Jikan 同时提供 jpg 与 webp）
type Image struct {
	ImageURL      string `json:"image_url"`
	SmallImageURL string `json:"small_image_url,omitempty"`
	LargeImageURL string `json:"large_image_url,omitempty"`
}

// Images 图片集合
type Images struct {
	JPG  Image `json:"jpg"`
	WebP Image `json:"webp"`
}

// Entity 关联实体（类型/主题/制作公司/发行商等）
type Entity struct {
	MalID int    `json:"mal_id"`
	Type  string `json:"type,omitempty"`
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
}

// Trailer 预告片
type Trailer struct {
	YoutubeID string `json:"youtube_id"`
	URL       string `json:"url,omitempty"`
}

// Aired 播出区间
type Aired struct {
	String string `json:"string"`
}

// Broadcast 放送时间
type Broadcast struct {
	Day      string `json:"day"`
	Time     string `json:"time,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Anime 番剧条目（MyAnimeList 数据，经由 Jikan 获取）
// 详情页与搜索/榜单列表共用同一结构，列表接口只是字段更少
type Anime struct {
	MalID         int       `json:"mal_id"`
	URL           string    `json:"url"`
	Images        Images    `json:"images"`
	Trailer       Trailer   `json:"trailer"`
	Title         string    `json:"title"`
	TitleEnglish  string    `json:"title_english"`
	TitleJapanese string    `json:"title_japanese"`
	TitleSynonyms []string  `json:"title_synonyms"`
	Type          string    `json:"type"`
	Source        string    `json:"source"`
	Episodes      int       `json:"episodes"`
	Status        string    `json:"status"`
	Airing        bool      `json:"airing"`
	Aired         Aired     `json:"aired"`
	Duration      string    `json:"duration"`
	Rating        string    `json:"rating"`
	Score         float64   `json:"score"`
	ScoredBy      int       `json:"scored_by"`
	Rank          int       `json:"rank"`
	Popularity    int       `json:"popularity"`
	Members       int       `json:"members"`
	Favorites     int       `json:"favorites"`
	Synopsis      string    `json:"synopsis"`
	Background    string    `json:"background"`
	Season        string    `json:"season"`
	Year          int       `json:"year"`
	Broadcast     Broadcast `json:"broadcast"`
	Producers     []Entity  `json:"producers"`
	Licensors     []Entity  `json:"licensors"`
	Studios       []Entity  `json:"studios"`
	Genres        []Entity  `json:"genres"`
	Themes        []Entity  `json:"themes"`
}

// DisplayTitle 优先英文标题
func (a *Anime) DisplayTitle() string {
	if a.TitleEnglish != "" {
		return a.TitleEnglish
	}
	return a.Title
}

// Key 去重用的组合键（mal_id + 标题）
func (a *Anime) Key() SummaryKey {
	return SummaryKey{MalID: a.MalID, Title: a.Title}
}

// SummaryKey 搜索结果去重键
type SummaryKey struct {
	MalID int
	Title string
}
