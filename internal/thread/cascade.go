package thread

import (
	"fmt"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/UkralStul/comment-engagement-service/internal/repository"
)

// Descendants возвращает ID всех потомков rootID среди comments.
// Индекс parent -> children строится один раз, обход - BFS по очереди,
// так что глубина ветки не влияет на стек, а цикл в данных не зацикливает обход.
func Descendants(comments []*domain.Comment, rootID string) []string {
	children := make(map[string][]string, len(comments))
	for _, c := range comments {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	visited := map[string]struct{}{rootID: {}}
	var out []string
	queue := []string{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if _, seen := visited[child]; seen {
				continue
			}
			visited[child] = struct{}{}
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}

// DeleteResult описывает результат каскадного удаления.
// Removed - общее число удалённых записей, включая сам комментарий.
type DeleteResult struct {
	PostID     string
	RemovedIDs []string
	Removed    int
}

// DeleteSubtree удаляет комментарий и все ответы на него одной мутацией снимка.
// post.CommentsCount уменьшается на число удалённых, не ниже нуля.
func DeleteSubtree(doc *domain.Document, commentID string) (DeleteResult, error) {
	target := repository.FindComment(doc, commentID)
	if target == nil {
		return DeleteResult{}, fmt.Errorf("%w: comment %s", domain.ErrNotFound, commentID)
	}

	ids := append([]string{target.ID}, Descendants(repository.CommentsForPost(doc, target.PostID), target.ID)...)
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	removed := repository.RemoveComments(doc, target.PostID, set)
	return DeleteResult{PostID: target.PostID, RemovedIDs: ids, Removed: removed}, nil
}
