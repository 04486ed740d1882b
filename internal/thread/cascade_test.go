package thread

import (
	"fmt"
	"testing"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/UkralStul/comment-engagement-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteSubtree_ChainScenario(t *testing.T) {
	doc := newDoc(
		comment("c1", "p1", nil, 0),
		comment("c2", "p1", ptr("c1"), 1),
		comment("c3", "p1", ptr("c2"), 2),
	)

	res, err := DeleteSubtree(doc, "c1")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Removed)
	assert.Equal(t, "p1", res.PostID)
	assert.ElementsMatch(t, []string{"c1", "c2", "c3"}, res.RemovedIDs)

	assert.Empty(t, doc.Comments)
	assert.Equal(t, 0, repository.FindPost(doc, "p1").CommentsCount)
	assert.Empty(t, BuildForest(doc, "p1", ""))
}

func TestDeleteSubtree_RemovesOnlyTheSubtree(t *testing.T) {
	doc := newDoc(
		comment("c1", "p1", nil, 0),
		comment("c2", "p1", ptr("c1"), 1),
		comment("c3", "p1", ptr("c1"), 2),
		comment("c4", "p1", ptr("c3"), 3),
		comment("c5", "p1", nil, 4),
		comment("c6", "p1", ptr("c5"), 5),
	)
	doc.CommentLikes = append(doc.CommentLikes,
		&domain.CommentLike{ID: "l1", CommentID: "c4", UserID: "u"},
		&domain.CommentLike{ID: "l2", CommentID: "c6", UserID: "u"},
	)

	res, err := DeleteSubtree(doc, "c3")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Removed)

	forest := BuildForest(doc, "p1", "")
	assert.Equal(t, 4, Count(forest))
	assert.Equal(t, []string{"c2"}, childrenOf(forest, "c1"))
	assert.Equal(t, 4, repository.FindPost(doc, "p1").CommentsCount)

	require.Len(t, doc.CommentLikes, 1)
	assert.Equal(t, "c6", doc.CommentLikes[0].CommentID)
}

func TestDeleteSubtree_ClampsCounterAtZero(t *testing.T) {
	doc := newDoc(
		comment("c1", "p1", nil, 0),
		comment("c2", "p1", ptr("c1"), 1),
	)
	repository.FindPost(doc, "p1").CommentsCount = 1 // дрейф

	res, err := DeleteSubtree(doc, "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Removed)
	assert.Equal(t, 0, repository.FindPost(doc, "p1").CommentsCount)
}

func TestDeleteSubtree_NotFound(t *testing.T) {
	doc := newDoc(comment("c1", "p1", nil, 0))

	_, err := DeleteSubtree(doc, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, doc.Comments, 1)
	assert.Equal(t, 1, repository.FindPost(doc, "p1").CommentsCount)
}

func TestDescendants_DeepChain(t *testing.T) {
	const depth = 20000
	comments := make([]*domain.Comment, 0, depth)
	comments = append(comments, comment("c0", "p1", nil, 0))
	for i := 1; i < depth; i++ {
		comments = append(comments, comment(fmt.Sprintf("c%d", i), "p1", ptr(fmt.Sprintf("c%d", i-1)), i))
	}

	ids := Descendants(comments, "c0")
	assert.Len(t, ids, depth-1)
}

func TestDescendants_CycleTerminates(t *testing.T) {
	comments := []*domain.Comment{
		comment("a", "p1", ptr("c"), 0),
		comment("b", "p1", ptr("a"), 1),
		comment("c", "p1", ptr("b"), 2),
	}

	ids := Descendants(comments, "a")
	assert.ElementsMatch(t, []string{"b", "c"}, ids)
}
