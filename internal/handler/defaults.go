package handler

import "github.com/user/animedex/internal/model"

func pick(malID int, title, synopsis, image, kind string, score float64, episodes, year int, genres ...string) model.Anime {
	a := model.Anime{
		MalID:    malID,
		Title:    title,
		Synopsis: synopsis,
		Images:   model.Images{WebP: model.Image{ImageURL: image}},
		Type:     kind,
		Score:    score,
		Episodes: episodes,
		Year:     year,
	}
	for _, g := range genres {
		a.Genres = append(a.Genres, model.Entity{Name: g})
	}
	return a
}

// DefaultPicks 没有搜索结果时展示的推荐列表
var DefaultPicks = []model.Anime{
	pick(50739, "Angel Next Door", "A heartwarming story about the angel next door.",
		"https://cdn.myanimelist.net/images/anime/1240/133638l.webp", "TV", 8.5, 12, 2023, "Romance"),
	pick(32281, "Kimi No Nawa", "Two strangers find themselves mysteriously linked.",
		"https://cdn.myanimelist.net/images/anime/5/87048l.webp", "Movie", 9.0, 1, 2016, "Drama"),
	pick(59419, "Project Sekai Movie: Kowareta Sekai to Utaenai Miku", "Rhythm game starring Hatsune Miku and friends.",
		"https://cdn.myanimelist.net/images/anime/1883/144526l.webp", "Game", 7.8, 0, 2020, "Music"),
	pick(52991, "Frieren Beyond End Journey", "An emotional fantasy adventure.",
		"https://cdn.myanimelist.net/images/anime/1015/138006l.webp", "TV", 8.2, 12, 2023, "Fantasy"),
	pick(12189, "Hyouka", "A mystery solving high school story.",
		"https://cdn.myanimelist.net/images/anime/13/50521l.webp", "TV", 8.3, 22, 2012, "Mystery"),
	pick(28999, "Charlotte", "Supernatural powers disrupt the lives of teens.",
		"https://cdn.myanimelist.net/images/anime/1826/147276l.webp", "TV", 7.9, 13, 2015, "Supernatural"),
	pick(46095, "Vivy: Fluorite Eye's Song", "An AI songstress fights to save the future through music and combat.",
		"https://cdn.myanimelist.net/images/anime/1551/128960l.webp", "TV", 8.5, 13, 2021, "Sci-Fi", "Action"),
	pick(34599, "Made in Abyss", "A young girl and her robot friend descend into a mysterious abyss.",
		"https://cdn.myanimelist.net/images/anime/6/86733l.webp", "TV", 8.7, 13, 2017, "Adventure", "Drama"),
}
