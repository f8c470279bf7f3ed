package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/scribehq/scribe/factory"
	"github.com/scribehq/scribe/store"
	"github.com/scribehq/scribe/utils"
)

// PostController manages posts and comments over the content store. All
// type-specific validation is delegated to the factory.
type PostController struct {
	content store.Content
	factory *factory.PostFactory
}

// NewPostController creates a PostController.
func NewPostController(content store.Content, f *factory.PostFactory) *PostController {
	return &PostController{content: content, factory: f}
}

// CreatePost builds a post through the factory registry for the
// authenticated author.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		PostType string                 `json:"post_type" binding:"required"`
		Title    string                 `json:"title"`
		Content  string                 `json:"content"`
		Metadata map[string]interface{} `json:"metadata"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	content := utils.Sanitize(req.Content)

	post, err := p.factory.Create(req.PostType, title, content, datatypes.JSONMap(req.Metadata), userID)
	if err != nil {
		errorFromStore(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:list")

	utils.Created(ctx, gin.H{"post": post})
}

// ListPosts returns all posts with their authors, cached briefly.
func (p *PostController) ListPosts(ctx *gin.Context) {
	const cacheKey = "cache:posts:list"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	posts, err := p.content.ListPosts()
	if err != nil {
		errorFromStore(ctx, err)
		return
	}

	payload := gin.H{"items": posts, "total": len(posts)}
	utils.CacheEnvelope(cacheKey, payload)
	utils.Success(ctx, payload)
}

// GetPost returns a single post. The detail view is author-scoped: any
// authenticated requester other than the author is rejected with 403,
// after the post has been loaded so that the check runs on the real
// resource.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid post id")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	post, err := p.content.GetPost(uint(id))
	if err != nil {
		errorFromStore(ctx, err)
		return
	}

	if post.UserID != userID {
		utils.Error(ctx, http.StatusForbidden, 40301, "you can only view your own posts")
		return
	}

	utils.Success(ctx, gin.H{"post": post, "content": post.Content})
}

// ListComments returns all comments in creation order.
func (p *PostController) ListComments(ctx *gin.Context) {
	comments, err := p.content.ListComments()
	if err != nil {
		errorFromStore(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": comments, "total": len(comments)})
}

// CreateComment attaches a comment to a post. The author defaults to the
// authenticated identity but may be given explicitly; both the author
// and the post must exist.
func (p *PostController) CreateComment(ctx *gin.Context) {
	var req struct {
		Text     string `json:"text" binding:"required"`
		PostID   uint   `json:"post" binding:"required"`
		AuthorID uint   `json:"author"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	text := utils.Sanitize(req.Text)
	if strings.TrimSpace(text) == "" {
		utils.Error(ctx, http.StatusBadRequest, 40023, "text cannot be empty")
		return
	}

	authorID := req.AuthorID
	if authorID == 0 {
		userID, ok := getUserID(ctx)
		if !ok {
			utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
			return
		}
		authorID = userID
	}

	comment, err := p.content.CreateComment(authorID, req.PostID, text)
	if err != nil {
		errorFromStore(ctx, err)
		return
	}

	utils.Created(ctx, gin.H{"comment": comment})
}
