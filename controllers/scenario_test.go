package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/scribehq/scribe/factory"
	"github.com/scribehq/scribe/middleware"
	"github.com/scribehq/scribe/models"
	"github.com/scribehq/scribe/store"
	"github.com/scribehq/scribe/utils"
)

// fakeStore is an in-memory implementation of both store interfaces,
// used to exercise the whole handler flow without a database.
type fakeStore struct {
	users    []models.User
	groups   []models.Group
	posts    []models.Post
	comments []models.Comment
}

func (f *fakeStore) CreateUser(username, email, password string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return nil, store.ErrDuplicateUsername
		}
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{ID: uint(len(f.users) + 1), Username: username, Email: email, PasswordHash: hash}
	f.users = append(f.users, user)
	return &user, nil
}

func (f *fakeStore) GetOrCreateUser(username, email, password string) (*models.User, bool, error) {
	for i := range f.users {
		if f.users[i].Username == username {
			return &f.users[i], false, nil
		}
	}
	user, err := f.CreateUser(username, email, password)
	return user, err == nil, err
}

func (f *fakeStore) Authenticate(username, password string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Username == username && utils.CheckPassword(f.users[i].PasswordHash, password) {
			return &f.users[i], nil
		}
	}
	return nil, store.ErrInvalidCredentials
}

func (f *fakeStore) GetUser(id uint) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeStore) ListUsers() ([]models.User, error) { return f.users, nil }

func (f *fakeStore) GetOrCreateGroup(name string) (*models.Group, error) {
	for i := range f.groups {
		if f.groups[i].Name == name {
			return &f.groups[i], nil
		}
	}
	group := models.Group{ID: uint(len(f.groups) + 1), Name: name}
	f.groups = append(f.groups, group)
	return &group, nil
}

func (f *fakeStore) AddToGroup(user *models.User, group *models.Group) error {
	user.Groups = append(user.Groups, *group)
	return nil
}

func (f *fakeStore) CreatePost(authorID uint, postType, title, content string, metadata datatypes.JSONMap) (*models.Post, error) {
	if _, err := f.GetUser(authorID); err != nil {
		return nil, store.ErrAuthorNotFound
	}
	post := models.Post{ID: uint(len(f.posts) + 1), UserID: authorID, Title: title, PostType: postType, Content: content, Metadata: metadata}
	f.posts = append(f.posts, post)
	return &post, nil
}

func (f *fakeStore) GetPost(id uint) (*models.Post, error) {
	for i := range f.posts {
		if f.posts[i].ID == id {
			return &f.posts[i], nil
		}
	}
	return nil, store.ErrPostNotFound
}

func (f *fakeStore) ListPosts() ([]models.Post, error) { return f.posts, nil }

func (f *fakeStore) CreateComment(authorID, postID uint, text string) (*models.Comment, error) {
	if _, err := f.GetUser(authorID); err != nil {
		return nil, store.ErrAuthorNotFound
	}
	if _, err := f.GetPost(postID); err != nil {
		return nil, err
	}
	comment := models.Comment{ID: uint(len(f.comments) + 1), PostID: postID, UserID: authorID, Text: text}
	f.comments = append(f.comments, comment)
	return &comment, nil
}

func (f *fakeStore) ListComments() ([]models.Comment, error) { return f.comments, nil }

func newScenarioRouter(fs *fakeStore) *gin.Engine {
	auth := NewAuthController(fs)
	posts := NewPostController(fs, factory.New(fs))

	r := gin.New()
	r.POST("/users/", auth.Register)
	r.POST("/login/", auth.Login)
	protected := r.Group("", middleware.AuthRequired())
	protected.POST("/posts/", posts.CreatePost)
	protected.GET("/posts/:id/", posts.GetPost)
	protected.POST("/comments/", posts.CreateComment)
	protected.GET("/comments/", posts.ListComments)
	return r
}

func TestBlogFlow(t *testing.T) {
	fs := &fakeStore{}
	r := newScenarioRouter(fs)

	// create user alice
	w := doJSON(r, http.MethodPost, "/users/", gin.H{"username": "alice", "password": "pw123456"}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	// login with the same password succeeds and yields a token
	w = doJSON(r, http.MethodPost, "/login/", gin.H{"username": "alice", "password": "pw123456"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	// create a text post
	w = doJSON(r, http.MethodPost, "/posts/", gin.H{"post_type": "text", "content": "hello"}, login.Data.Token)
	assert.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data struct {
			Post models.Post `json:"post"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "text", created.Data.Post.PostType)

	// comment on it
	w = doJSON(r, http.MethodPost, "/comments/", gin.H{"text": "nice", "post": created.Data.Post.ID}, login.Data.Token)
	assert.Equal(t, http.StatusCreated, w.Code)

	// exactly one comment with text "nice"
	w = doJSON(r, http.MethodGet, "/comments/", nil, login.Data.Token)
	assert.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Data struct {
			Items []models.Comment `json:"items"`
			Total int              `json:"total"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Equal(t, 1, listed.Data.Total)
	assert.Equal(t, "nice", listed.Data.Items[0].Text)

	// the author sees the detail, another user does not
	w = doJSON(r, http.MethodGet, "/posts/1/", nil, login.Data.Token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/users/", gin.H{"username": "bob", "password": "pw123456"}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, http.MethodPost, "/login/", gin.H{"username": "bob", "password": "pw123456"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	var bobLogin struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &bobLogin))

	w = doJSON(r, http.MethodGet, "/posts/1/", nil, bobLogin.Data.Token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDuplicateUsernameRejected(t *testing.T) {
	fs := &fakeStore{}
	r := newScenarioRouter(fs)

	w := doJSON(r, http.MethodPost, "/users/", gin.H{"username": "alice", "password": "pw123456"}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/users/", gin.H{"username": "alice", "password": "other123"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "username already exists")
}
