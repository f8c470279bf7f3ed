package controllers

import (
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"

	"github.com/scribehq/scribe/models"
)

// MockIdentity is a mock implementation of the store.Identity interface.
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) CreateUser(username, email, password string) (*models.User, error) {
	args := m.Called(username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockIdentity) GetOrCreateUser(username, email, password string) (*models.User, bool, error) {
	args := m.Called(username, email, password)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func (m *MockIdentity) Authenticate(username, password string) (*models.User, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockIdentity) GetUser(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockIdentity) ListUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockIdentity) GetOrCreateGroup(name string) (*models.Group, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockIdentity) AddToGroup(user *models.User, group *models.Group) error {
	args := m.Called(user, group)
	return args.Error(0)
}

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}
