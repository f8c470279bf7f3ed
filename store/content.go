package store

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/scribehq/scribe/models"
)

// Content is the persistence boundary for posts and comments. Author and
// post references are verified at write time.
type Content interface {
	CreatePost(authorID uint, postType, title, content string, metadata datatypes.JSONMap) (*models.Post, error)
	GetPost(id uint) (*models.Post, error)
	ListPosts() ([]models.Post, error)
	CreateComment(authorID, postID uint, text string) (*models.Comment, error)
	ListComments() ([]models.Comment, error)
}

type contentStore struct {
	db *gorm.DB
}

// NewContent creates a Content store backed by gorm.
func NewContent(db *gorm.DB) Content {
	return &contentStore{db: db}
}

// CreatePost persists a post after verifying the author exists. Type
// validation belongs to the factory; this layer only guards references.
func (s *contentStore) CreatePost(authorID uint, postType, title, content string, metadata datatypes.JSONMap) (*models.Post, error) {
	if err := s.authorExists(authorID); err != nil {
		return nil, err
	}

	post := models.Post{
		UserID:   authorID,
		Title:    title,
		PostType: postType,
		Content:  content,
		Metadata: metadata,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("User").First(&post, post.ID).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *contentStore) GetPost(id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("User").Preload("Comments").Preload("Comments.User").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListPosts returns a snapshot of all posts in creation order with their
// authors preloaded.
func (s *contentStore) ListPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.Preload("User").Order("created_at ASC, id ASC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CreateComment persists a comment after verifying both references.
func (s *contentStore) CreateComment(authorID, postID uint, text string) (*models.Comment, error) {
	if err := s.authorExists(authorID); err != nil {
		return nil, err
	}
	var post models.Post
	if err := s.db.Select("id").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := models.Comment{
		PostID: post.ID,
		UserID: authorID,
		Text:   text,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments returns all comments in creation order.
func (s *contentStore) ListComments() ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.Preload("User").Order("created_at ASC, id ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *contentStore) authorExists(authorID uint) error {
	var user models.User
	if err := s.db.Select("id").First(&user, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAuthorNotFound
		}
		return err
	}
	return nil
}
