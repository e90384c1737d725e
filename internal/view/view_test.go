package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/animedex/internal/model"
)

func TestVisible(t *testing.T) {
	short := make([]int, 7)
	assert.Equal(t, short, Visible(short, false))
	assert.Equal(t, Visible(short, true), Visible(short, false), "不足 10 条时开关无效果")
	assert.False(t, HasMore(len(short)))

	exact := make([]int, 10)
	assert.Len(t, Visible(exact, false), 10)
	assert.False(t, HasMore(len(exact)))

	long := make([]int, 23)
	for i := range long {
		long[i] = i
	}
	assert.Equal(t, long[:10], Visible(long, false))
	assert.Len(t, Visible(long, true), 23)
	assert.True(t, HasMore(len(long)))
}

func TestFilterReviews(t *testing.T) {
	reviews := []model.Review{
		{MalID: 1, Tags: []string{"Recommended", "Preliminary"}},
		{MalID: 2, Tags: []string{"Mixed Feelings"}},
		{MalID: 3, Tags: nil},
		{MalID: 4, Tags: []string{"recommended"}},
	}

	assert.Len(t, FilterReviews(reviews, "All"), 4)
	assert.Len(t, FilterReviews(reviews, ""), 4)

	rec := FilterReviews(reviews, "RECOMMENDED")
	if assert.Len(t, rec, 2) {
		assert.Equal(t, 1, rec[0].MalID)
		assert.Equal(t, 4, rec[1].MalID)
	}

	none := FilterReviews(reviews, "Not Recommended")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestReviewFeedLimit(t *testing.T) {
	var reviews []model.Review
	for i := 0; i < 8; i++ {
		reviews = append(reviews, model.Review{MalID: i, Tags: []string{"Recommended"}})
	}
	assert.Len(t, ReviewFeed(reviews, "All"), ReviewFeedSize)
	assert.Len(t, ReviewFeed(reviews[:2], "Recommended"), 2)
}

func TestNormalizeTag(t *testing.T) {
	assert.Equal(t, "Mixed Feelings", NormalizeTag("mixed feelings"))
	assert.Equal(t, TagAll, NormalizeTag("bogus"))
	assert.Equal(t, TagAll, NormalizeTag(""))
}

func TestReactions(t *testing.T) {
	got := Reactions(map[string]int{"well_written": 4, "funny": 0, "nice": 2, "overall": 6})
	assert.Equal(t, []Reaction{
		{Label: "nice", Count: 2},
		{Label: "overall", Count: 6},
		{Label: "well written", Count: 4},
	}, got)
	assert.Empty(t, Reactions(nil))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "abc", Excerpt("abc", 5))
	assert.Equal(t, "ab", Excerpt("abc", 2))
	assert.Equal(t, "進撃", Excerpt("進撃の巨人", 2))
}

func TestNamesAndPlaceholders(t *testing.T) {
	genres := []model.Entity{{Name: "Action"}, {Name: "Drama"}}
	themes := []model.Entity{{Name: "Military"}}
	assert.Equal(t, "Action, Drama, Military", Names(genres, themes))
	assert.Equal(t, Dash, Names(nil))
	assert.Equal(t, "Action, Drama", FirstNames(append(genres, themes...), 2))

	assert.Equal(t, Dash, Or("  ", Dash))
	assert.Equal(t, "TV", Or("TV", Dash))
	assert.Equal(t, Dash, Join(nil))
	assert.Equal(t, "Director, Storyboard", Join([]string{"Director", "Storyboard"}))
}

func TestNumberFormatting(t *testing.T) {
	assert.Equal(t, "1.234.567", Number(1234567))
	assert.Equal(t, "999", Number(999))
	assert.Equal(t, Unknown, Number(0))

	assert.Equal(t, "8.75", Score(8.75))
	assert.Equal(t, Dash, Score(0))
	assert.Equal(t, "25", Count(25))
	assert.Equal(t, Unknown, Count(0))
}
