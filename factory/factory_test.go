package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"

	"github.com/scribehq/scribe/models"
)

// MockContent is a mock implementation of the store.Content interface.
type MockContent struct {
	mock.Mock
}

func (m *MockContent) CreatePost(authorID uint, postType, title, content string, metadata datatypes.JSONMap) (*models.Post, error) {
	args := m.Called(authorID, postType, title, content, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockContent) GetPost(id uint) (*models.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockContent) ListPosts() ([]models.Post, error) {
	args := m.Called()
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockContent) CreateComment(authorID, postID uint, text string) (*models.Comment, error) {
	args := m.Called(authorID, postID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockContent) ListComments() ([]models.Comment, error) {
	args := m.Called()
	return args.Get(0).([]models.Comment), args.Error(1)
}

func TestCreateUnknownPostType(t *testing.T) {
	content := new(MockContent)
	f := New(content)

	_, err := f.Create("podcast", "Title", "body", nil, 1)

	assert.ErrorIs(t, err, ErrUnknownPostType)
	content.AssertNotCalled(t, "CreatePost")
}

func TestCreateTextPostRequiresContent(t *testing.T) {
	content := new(MockContent)
	f := New(content)

	_, err := f.Create(models.PostTypeText, "Title", "   ", nil, 1)

	assert.ErrorIs(t, err, ErrInvalidPostData)
	content.AssertNotCalled(t, "CreatePost")
}

func TestCreateTextPost(t *testing.T) {
	content := new(MockContent)
	f := New(content)

	meta := datatypes.JSONMap{"category": "general"}
	expected := &models.Post{ID: 7, UserID: 1, PostType: models.PostTypeText, Content: "This is a test post."}
	content.On("CreatePost", uint(1), models.PostTypeText, "Test Post", "This is a test post.", meta).Return(expected, nil)

	post, err := f.Create(models.PostTypeText, "Test Post", "This is a test post.", meta, 1)

	assert.NoError(t, err)
	assert.Equal(t, models.PostTypeText, post.PostType)
	assert.Equal(t, "This is a test post.", post.Content)
	assert.Equal(t, uint(1), post.UserID)
	content.AssertExpectations(t)
}

func TestCreateImagePostRequiresURL(t *testing.T) {
	content := new(MockContent)
	f := New(content)

	_, err := f.Create(models.PostTypeImage, "Pic", "", datatypes.JSONMap{"width": 800}, 1)
	assert.ErrorIs(t, err, ErrInvalidPostData)

	_, err = f.Create(models.PostTypeImage, "Pic", "", datatypes.JSONMap{"url": "  "}, 1)
	assert.ErrorIs(t, err, ErrInvalidPostData)

	expected := &models.Post{ID: 2, PostType: models.PostTypeImage}
	content.On("CreatePost", uint(1), models.PostTypeImage, "Pic", "", datatypes.JSONMap{"url": "https://cdn/img.png"}).Return(expected, nil)

	post, err := f.Create(models.PostTypeImage, "Pic", "", datatypes.JSONMap{"url": "https://cdn/img.png"}, 1)
	assert.NoError(t, err)
	assert.Equal(t, models.PostTypeImage, post.PostType)
	content.AssertExpectations(t)
}

func TestCreateVideoPostRequiresDuration(t *testing.T) {
	content := new(MockContent)
	f := New(content)

	_, err := f.Create(models.PostTypeVideo, "Clip", "", datatypes.JSONMap{}, 1)
	assert.ErrorIs(t, err, ErrInvalidPostData)

	expected := &models.Post{ID: 3, PostType: models.PostTypeVideo}
	content.On("CreatePost", uint(1), models.PostTypeVideo, "Clip", "", datatypes.JSONMap{"duration": 42.0}).Return(expected, nil)

	_, err = f.Create(models.PostTypeVideo, "Clip", "", datatypes.JSONMap{"duration": 42.0}, 1)
	assert.NoError(t, err)
	content.AssertExpectations(t)
}

func TestRegisterExtendsRegistry(t *testing.T) {
	content := new(MockContent)
	f := New(content)

	assert.False(t, f.Known("link"))
	f.Register("link", requireMetadataKey("href"))
	assert.True(t, f.Known("link"))

	_, err := f.Create("link", "", "", datatypes.JSONMap{}, 1)
	assert.ErrorIs(t, err, ErrInvalidPostData)

	expected := &models.Post{ID: 4, PostType: "link"}
	content.On("CreatePost", uint(1), "link", "", "", datatypes.JSONMap{"href": "https://example.com"}).Return(expected, nil)

	_, err = f.Create("link", "", "", datatypes.JSONMap{"href": "https://example.com"}, 1)
	assert.NoError(t, err)
	content.AssertExpectations(t)
}

func TestContentStoreFailurePropagates(t *testing.T) {
	content := new(MockContent)
	f := New(content)

	content.On("CreatePost", uint(9), models.PostTypeText, "", "hello", datatypes.JSONMap(nil)).Return(nil, assert.AnError)

	_, err := f.Create(models.PostTypeText, "", "hello", nil, 9)
	assert.ErrorIs(t, err, assert.AnError)
}
