package repository

import (
	"fmt"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
)

// adjust - единственное место, где меняются денормализованные счётчики.
// Счётчик не уходит ниже нуля: отрицательное значение означает прошлый дрейф,
// и распространять его дальше нельзя.
func adjust(counter *int, delta int) int {
	*counter = max(0, *counter+delta)
	return *counter
}

// CounterDrift описывает счётчик, который разошёлся с отношением.
type CounterDrift struct {
	Entity   string
	ID       string
	Field    string
	Stored   int
	Expected int
}

func (d CounterDrift) String() string {
	return fmt.Sprintf("%s %s: %s stored=%d expected=%d", d.Entity, d.ID, d.Field, d.Stored, d.Expected)
}

// CheckCounters пересчитывает все счётчики по отношениям и возвращает расхождения.
// Документ не меняется.
func CheckCounters(doc *domain.Document) []CounterDrift {
	comments := make(map[string]int, len(doc.Posts))
	for _, c := range doc.Comments {
		comments[c.PostID]++
	}
	postLikes := make(map[string]int, len(doc.Posts))
	for _, l := range doc.Likes {
		postLikes[l.PostID]++
	}
	commentLikes := make(map[string]int, len(doc.Comments))
	for _, l := range doc.CommentLikes {
		commentLikes[l.CommentID]++
	}

	var drifts []CounterDrift
	for _, p := range doc.Posts {
		if p.CommentsCount != comments[p.ID] {
			drifts = append(drifts, CounterDrift{"post", p.ID, "commentsCount", p.CommentsCount, comments[p.ID]})
		}
		if p.LikesCount != postLikes[p.ID] {
			drifts = append(drifts, CounterDrift{"post", p.ID, "likesCount", p.LikesCount, postLikes[p.ID]})
		}
	}
	for _, c := range doc.Comments {
		if c.LikesCount != commentLikes[c.ID] {
			drifts = append(drifts, CounterDrift{"comment", c.ID, "likesCount", c.LikesCount, commentLikes[c.ID]})
		}
	}
	return drifts
}
