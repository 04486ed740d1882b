package domain

import "time"

// User - профиль пользователя. Профили создаются внешним сервисом,
// здесь они нужны только для снимка автора в дереве комментариев.
type User struct {
	ID          string    `json:"id" bson:"id"`
	Username    string    `json:"username" bson:"username"`
	DisplayName string    `json:"displayName" bson:"displayName"`
	AvatarURL   string    `json:"avatarUrl,omitempty" bson:"avatarUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// Статусы поста. В скрытый пост нельзя добавлять комментарии,
// существующие остаются доступны для чтения и удаления.
const (
	PostStatusPublished = "published"
	PostStatusHidden    = "hidden"
)

// Post представляет пост в системе.
// CommentsCount и LikesCount - денормализованные счётчики, их меняет только repository.
type Post struct {
	ID            string    `json:"id" bson:"id"`
	AuthorID      string    `json:"authorId" bson:"authorId"`
	Content       string    `json:"content" bson:"content"`
	CommentsCount int       `json:"commentsCount" bson:"commentsCount"`
	LikesCount    int       `json:"likesCount" bson:"likesCount"`
	ViewsCount    int       `json:"viewsCount" bson:"viewsCount"`
	Status        string    `json:"status" bson:"status"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// Comment представляет комментарий к посту.
// ParentID == nil означает корневой комментарий.
type Comment struct {
	ID         string    `json:"id" bson:"id"`
	PostID     string    `json:"postId" bson:"postId"`
	AuthorID   string    `json:"authorId" bson:"authorId"`
	Content    string    `json:"content" bson:"content"`
	ParentID   *string   `json:"parentId" bson:"parentId"`
	LikesCount int       `json:"likesCount" bson:"likesCount"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

// Like - лайк поста. Не больше одного на пару (PostID, UserID).
type Like struct {
	ID        string    `json:"id" bson:"id"`
	PostID    string    `json:"postId" bson:"postId"`
	UserID    string    `json:"userId" bson:"userId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// CommentLike - лайк комментария. Не больше одного на пару (CommentID, UserID).
type CommentLike struct {
	ID        string    `json:"id" bson:"id"`
	CommentID string    `json:"commentId" bson:"commentId"`
	UserID    string    `json:"userId" bson:"userId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Document - единственный корневой агрегат, который хранилище читает и пишет целиком.
type Document struct {
	Users        []*User        `json:"users" bson:"users"`
	Posts        []*Post        `json:"posts" bson:"posts"`
	Comments     []*Comment     `json:"comments" bson:"comments"`
	Likes        []*Like        `json:"likes" bson:"likes"`
	CommentLikes []*CommentLike `json:"commentLikes" bson:"commentLikes"`
}

// NewDocument возвращает документ со всеми пустыми коллекциями.
func NewDocument() *Document {
	return &Document{
		Users:        []*User{},
		Posts:        []*Post{},
		Comments:     []*Comment{},
		Likes:        []*Like{},
		CommentLikes: []*CommentLike{},
	}
}

// AuthorSnapshot - копия публичных полей автора на момент чтения.
type AuthorSnapshot struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// CommentNode - представление комментария с вложенными ответами.
// Строится на чтение и никогда не сохраняется.
type CommentNode struct {
	Comment
	Author  AuthorSnapshot `json:"author"`
	IsLiked bool           `json:"isLiked"`
	Replies []*CommentNode `json:"replies"`
}

// LikeState - результат переключения лайка.
type LikeState struct {
	IsLiked    bool `json:"isLiked"`
	LikesCount int  `json:"likesCount"`
}
