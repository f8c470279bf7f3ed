package store

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/scribehq/scribe/models"
	"github.com/scribehq/scribe/utils"
)

// Identity is the persistence boundary for users and groups. Credentials
// are hashed here and nowhere else; callers never pass a pre-hashed value.
type Identity interface {
	CreateUser(username, email, password string) (*models.User, error)
	GetOrCreateUser(username, email, password string) (*models.User, bool, error)
	Authenticate(username, password string) (*models.User, error)
	GetUser(id uint) (*models.User, error)
	ListUsers() ([]models.User, error)
	GetOrCreateGroup(name string) (*models.Group, error)
	AddToGroup(user *models.User, group *models.Group) error
}

type identityStore struct {
	db *gorm.DB
}

// NewIdentity creates an Identity store backed by gorm.
func NewIdentity(db *gorm.DB) Identity {
	return &identityStore{db: db}
}

// CreateUser persists a new user with a bcrypt-hashed credential. The
// unique index on username is the authority for duplicates: the losing
// write of a race is rejected here, not pre-checked by callers.
func (s *identityStore) CreateUser(username, email, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return &user, nil
}

// GetOrCreateUser returns the existing user for username or creates one.
// The second result reports whether a new record was created.
func (s *identityStore) GetOrCreateUser(username, email, password string) (*models.User, bool, error) {
	var existing models.User
	err := s.db.Preload("Groups").Where("username = ?", strings.TrimSpace(username)).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user, err := s.CreateUser(username, email, password)
	if err != nil {
		// Lost a concurrent create race; fetch the winner.
		if errors.Is(err, ErrDuplicateUsername) {
			var winner models.User
			if ferr := s.db.Preload("Groups").Where("username = ?", strings.TrimSpace(username)).First(&winner).Error; ferr == nil {
				return &winner, false, nil
			}
		}
		return nil, false, err
	}
	return user, true, nil
}

// Authenticate resolves a user by username and verifies the password
// against the stored bcrypt hash.
func (s *identityStore) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Groups").Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *identityStore) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Groups").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all users in creation order.
func (s *identityStore) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Preload("Groups").Order("created_at ASC, id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *identityStore) GetOrCreateGroup(name string) (*models.Group, error) {
	var group models.Group
	err := s.db.Where("name = ?", name).First(&group).Error
	if err == nil {
		return &group, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	group = models.Group{Name: name}
	if err := s.db.Create(&group).Error; err != nil {
		if isDuplicateKey(err) {
			if ferr := s.db.Where("name = ?", name).First(&group).Error; ferr == nil {
				return &group, nil
			}
		}
		return nil, err
	}
	return &group, nil
}

func (s *identityStore) AddToGroup(user *models.User, group *models.Group) error {
	return s.db.Model(user).Association("Groups").Append(group)
}

// isDuplicateKey detects a MySQL unique-constraint violation (error 1062).
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
