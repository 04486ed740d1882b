package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/UkralStul/comment-engagement-service/internal/events"
	"github.com/UkralStul/comment-engagement-service/internal/storage"
	"github.com/UkralStul/comment-engagement-service/internal/storage/inmemory"
	"github.com/UkralStul/comment-engagement-service/internal/thread"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// newTestService создает сервис поверх in-memory хранилища и один пост от "owner".
func newTestService(t *testing.T) (*Service, *inmemory.Store, *recorder, *domain.Post) {
	store := inmemory.New()
	rec := &recorder{}
	svc := New(storage.NewGuard(store, nil), rec, nil)

	post, err := svc.CreatePost(context.Background(), "owner", "A post")
	require.NoError(t, err)
	return svc, store, rec, post
}

func mustComment(t *testing.T, svc *Service, postID, author string, parentID *string) *domain.CommentNode {
	node, err := svc.CreateComment(context.Background(), CreateCommentRequest{
		PostID:   postID,
		AuthorID: author,
		Content:  "comment by " + author,
		ParentID: parentID,
	})
	require.NoError(t, err)
	return node
}

func loadPost(t *testing.T, store *inmemory.Store, id string) *domain.Post {
	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	for _, p := range doc.Posts {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("post %s not found", id)
	return nil
}

func TestService_CreateCommentAndList(t *testing.T) {
	svc, store, rec, post := newTestService(t)
	ctx := context.Background()

	root := mustComment(t, svc, post.ID, "u1", nil)
	assert.NotNil(t, root.Replies)
	assert.Empty(t, root.Replies)
	assert.Nil(t, root.ParentID)

	reply := mustComment(t, svc, post.ID, "u2", &root.ID)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, root.ID, *reply.ParentID)

	forest, err := svc.ListComments(ctx, post.ID, "")
	require.NoError(t, err)
	require.Len(t, forest, 1)
	require.Len(t, forest[0].Replies, 1)
	assert.Equal(t, reply.ID, forest[0].Replies[0].ID)

	assert.Equal(t, 2, loadPost(t, store, post.ID).CommentsCount)
	require.Len(t, rec.events, 2)
	assert.Equal(t, events.TypeCreated, rec.events[0].Type)
}

func TestService_CreateComment_TrimsContent(t *testing.T) {
	svc, _, _, post := newTestService(t)

	node, err := svc.CreateComment(context.Background(), CreateCommentRequest{
		PostID: post.ID, AuthorID: "u1", Content: "  hello  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", node.Content)
}

func TestService_CreateComment_Validation(t *testing.T) {
	svc, store, _, post := newTestService(t)
	ctx := context.Background()

	cases := map[string]CreateCommentRequest{
		"blank":      {PostID: post.ID, AuthorID: "u1", Content: "   "},
		"too long":   {PostID: post.ID, AuthorID: "u1", Content: strings.Repeat("a", 1001)},
		"blank post": {PostID: "  ", AuthorID: "u1", Content: "hi"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateComment(ctx, req)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	_, err := svc.CreateComment(ctx, CreateCommentRequest{PostID: post.ID, AuthorID: "u1", Content: strings.Repeat("я", 1000)})
	require.NoError(t, err, "1000 runes is the upper bound")

	blankParent := " "
	_, err = svc.CreateComment(ctx, CreateCommentRequest{PostID: post.ID, AuthorID: "u1", Content: "root", ParentID: &blankParent})
	require.NoError(t, err, "blank parent means a root comment")

	assert.Equal(t, 2, loadPost(t, store, post.ID).CommentsCount)
}

func TestService_CreateComment_NotFound(t *testing.T) {
	svc, _, _, post := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateComment(ctx, CreateCommentRequest{PostID: uuid.NewString(), AuthorID: "u1", Content: "hi"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.CreateComment(ctx, CreateCommentRequest{PostID: "post-42", AuthorID: "u1", Content: "hi"})
	require.ErrorIs(t, err, domain.ErrNotFound, "ids of any format are looked up")

	missing := uuid.NewString()
	_, err = svc.CreateComment(ctx, CreateCommentRequest{PostID: post.ID, AuthorID: "u1", Content: "hi", ParentID: &missing})
	require.ErrorIs(t, err, domain.ErrNotFound)

	other, err := svc.CreatePost(ctx, "owner", "Another post")
	require.NoError(t, err)
	foreign := mustComment(t, svc, other.ID, "u1", nil)
	_, err = svc.CreateComment(ctx, CreateCommentRequest{PostID: post.ID, AuthorID: "u1", Content: "hi", ParentID: &foreign.ID})
	require.ErrorIs(t, err, domain.ErrNotFound, "parent from another post")
}

func TestService_CreateComment_RequiresUser(t *testing.T) {
	svc, _, _, post := newTestService(t)

	_, err := svc.CreateComment(context.Background(), CreateCommentRequest{PostID: post.ID, Content: "hi"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_ListComments_PostMissing(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.ListComments(context.Background(), uuid.NewString(), "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_DeleteComment_CascadeScenario(t *testing.T) {
	svc, store, rec, post := newTestService(t)
	ctx := context.Background()

	c1 := mustComment(t, svc, post.ID, "u1", nil)
	c2 := mustComment(t, svc, post.ID, "u2", &c1.ID)
	mustComment(t, svc, post.ID, "u3", &c2.ID)
	require.Equal(t, 3, loadPost(t, store, post.ID).CommentsCount)

	res, err := svc.DeleteComment(ctx, c1.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Removed)
	assert.Equal(t, 0, loadPost(t, store, post.ID).CommentsCount)

	forest, err := svc.ListComments(ctx, post.ID, "")
	require.NoError(t, err)
	assert.Empty(t, forest)

	last := rec.events[len(rec.events)-1]
	assert.Equal(t, events.TypeDeleted, last.Type)
	assert.Len(t, last.RemovedIDs, 3)
}

func TestService_DeleteComment_Authorization(t *testing.T) {
	svc, store, _, post := newTestService(t)
	ctx := context.Background()

	c1 := mustComment(t, svc, post.ID, "u1", nil)
	c2 := mustComment(t, svc, post.ID, "u2", &c1.ID)

	_, err := svc.DeleteComment(ctx, c1.ID, "stranger")
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 2, loadPost(t, store, post.ID).CommentsCount)

	// Автор ответа может удалить только своё поддерево.
	_, err = svc.DeleteComment(ctx, c1.ID, "u2")
	require.ErrorIs(t, err, domain.ErrForbidden)
	res, err := svc.DeleteComment(ctx, c2.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Removed)

	// Автор поста может удалить любой комментарий.
	res, err = svc.DeleteComment(ctx, c1.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Removed)

	_, err = svc.DeleteComment(ctx, c1.ID, "owner")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_TogglePostLike_Scenario(t *testing.T) {
	svc, store, _, post := newTestService(t)
	ctx := context.Background()

	state, err := svc.TogglePostLike(ctx, post.ID, "u")
	require.NoError(t, err)
	assert.Equal(t, domain.LikeState{IsLiked: true, LikesCount: 1}, state)

	state, err = svc.TogglePostLike(ctx, post.ID, "u")
	require.NoError(t, err)
	assert.Equal(t, domain.LikeState{IsLiked: false, LikesCount: 0}, state)
	assert.Equal(t, 0, loadPost(t, store, post.ID).LikesCount)

	_, err = svc.TogglePostLike(ctx, uuid.NewString(), "u")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ToggleCommentLike_ReflectedInTree(t *testing.T) {
	svc, _, _, post := newTestService(t)
	ctx := context.Background()
	c := mustComment(t, svc, post.ID, "u1", nil)

	state, err := svc.ToggleCommentLike(ctx, c.ID, "viewer")
	require.NoError(t, err)
	assert.True(t, state.IsLiked)

	forest, err := svc.ListComments(ctx, post.ID, "viewer")
	require.NoError(t, err)
	assert.True(t, forest[0].IsLiked)
	assert.Equal(t, 1, forest[0].LikesCount)

	forest, err = svc.ListComments(ctx, post.ID, "someone-else")
	require.NoError(t, err)
	assert.False(t, forest[0].IsLiked)
}

func TestService_ConcurrentTogglesKeepCounterConsistent(t *testing.T) {
	svc, store, _, post := newTestService(t)
	ctx := context.Background()

	const users = 40
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.TogglePostLike(ctx, post.ID, uuid.NewString())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, users, loadPost(t, store, post.ID).LikesCount)
	drifts, err := svc.CheckCounters(ctx)
	require.NoError(t, err)
	assert.Empty(t, drifts)
}

func TestService_GetPostCountsViews(t *testing.T) {
	svc, _, _, post := newTestService(t)
	ctx := context.Background()

	first, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	second, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, first.ViewsCount)
	assert.Equal(t, 2, second.ViewsCount)
}

type brokenSave struct{ *inmemory.Store }

func (b brokenSave) Save(context.Context, *domain.Document) error { return errors.New("read-only") }

func TestService_SaveFailureIsNotSuccess(t *testing.T) {
	mem := inmemory.New()
	good := New(storage.NewGuard(mem, nil), nil, nil)
	post, err := good.CreatePost(context.Background(), "owner", "A post")
	require.NoError(t, err)

	rec := &recorder{}
	svc := New(storage.NewGuard(brokenSave{mem}, nil), rec, nil)

	_, err = svc.CreateComment(context.Background(), CreateCommentRequest{PostID: post.ID, AuthorID: "u1", Content: "hi"})
	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.Empty(t, rec.events, "nothing is published when the save failed")

	_, err = svc.TogglePostLike(context.Background(), post.ID, "u1")
	require.ErrorIs(t, err, domain.ErrPersistence)

	forest, err := good.ListComments(context.Background(), post.ID, "")
	require.NoError(t, err)
	assert.Empty(t, forest)
}

func TestService_TreeCountMatchesComments(t *testing.T) {
	svc, _, _, post := newTestService(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 30; i++ {
		var parent *string
		if i > 0 && i%3 != 0 {
			p := ids[i-1]
			parent = &p
		}
		ids = append(ids, mustComment(t, svc, post.ID, "u1", parent).ID)
	}

	forest, err := svc.ListComments(ctx, post.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 30, thread.Count(forest))
	assert.Len(t, forest, 10)
}

func TestService_HiddenPostRejectsComments(t *testing.T) {
	svc, store, _, post := newTestService(t)
	ctx := context.Background()
	root := mustComment(t, svc, post.ID, "u1", nil)

	hidden, err := svc.SetPostStatus(ctx, post.ID, "owner", domain.PostStatusHidden)
	require.NoError(t, err)
	assert.Equal(t, domain.PostStatusHidden, hidden.Status)

	_, err = svc.CreateComment(ctx, CreateCommentRequest{PostID: post.ID, AuthorID: "u2", Content: "late"})
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.CreateComment(ctx, CreateCommentRequest{PostID: post.ID, AuthorID: "u2", Content: "late", ParentID: &root.ID})
	require.ErrorIs(t, err, domain.ErrForbidden)

	forest, err := svc.ListComments(ctx, post.ID, "")
	require.NoError(t, err)
	assert.Len(t, forest, 1)
	assert.Equal(t, 1, loadPost(t, store, post.ID).CommentsCount)

	_, err = svc.SetPostStatus(ctx, post.ID, "owner", domain.PostStatusPublished)
	require.NoError(t, err)
	mustComment(t, svc, post.ID, "u2", nil)
}

func TestService_SetPostStatus_Errors(t *testing.T) {
	svc, store, _, post := newTestService(t)
	ctx := context.Background()

	_, err := svc.SetPostStatus(ctx, post.ID, "stranger", domain.PostStatusHidden)
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.SetPostStatus(ctx, post.ID, "owner", "archived")
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.SetPostStatus(ctx, "post-42", "owner", domain.PostStatusHidden)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.SetPostStatus(ctx, post.ID, "", domain.PostStatusHidden)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.Equal(t, domain.PostStatusPublished, loadPost(t, store, post.ID).Status)
}
