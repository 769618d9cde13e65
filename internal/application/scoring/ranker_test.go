package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ceylontrails/travelmatch/internal/domain/entities"
)

type rankItem = Scored[*entities.Guide, GuideComponents]

func rankedIDs(items []rankItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Candidate.ID)
	}
	return out
}

func guideTieBreak(g *entities.Guide) (float64, int) {
	return ratingOrZero(g.Rating), g.PriorBookings
}

func TestRank_OrdersByScoreRatingBookings(t *testing.T) {
	lowRating := guide("low-rating", 1000)
	lowRating.Rating = ptr(3.0)
	highRating := guide("high-rating", 1000)
	highRating.Rating = ptr(4.5)
	unrated := guide("unrated", 1000)
	busy := guide("busy", 1000)
	busy.Rating = ptr(4.5)
	busy.PriorBookings = 40

	items := []rankItem{
		{Candidate: guide("top", 1000), Score: 0.4},
		{Candidate: unrated, Score: 0.9},
		{Candidate: lowRating, Score: 0.9},
		{Candidate: highRating, Score: 0.9},
		{Candidate: busy, Score: 0.9},
	}
	Rank(items, guideTieBreak)

	assert.Equal(t, []string{"busy", "high-rating", "low-rating", "unrated", "top"}, rankedIDs(items))
}

func TestRank_StableForFullTies(t *testing.T) {
	items := []rankItem{
		{Candidate: guide("a", 1000), Score: 0.5},
		{Candidate: guide("b", 1000), Score: 0.5},
		{Candidate: guide("c", 1000), Score: 0.5},
	}
	Rank(items, guideTieBreak)
	assert.Equal(t, []string{"a", "b", "c"}, rankedIDs(items))
}

func TestTopKAndRoundScore(t *testing.T) {
	items := []rankItem{{Candidate: guide("a", 1)}, {Candidate: guide("b", 1)}}
	assert.Len(t, TopK(items, 1), 1)
	assert.Len(t, TopK(items, 5), 2)
	assert.Len(t, TopK(items, -1), 0)

	assert.Equal(t, 0.936, RoundScore(0.9356))
	assert.Equal(t, 0.5, RoundScore(0.5))
}
