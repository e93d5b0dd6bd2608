package service

import (
	"strings"

	"github.com/DarrenRF/rt/model"
	"github.com/DarrenRF/rt/utils"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrIdentifierTaken is returned by CreateUser when the username or email is
// already registered.
var ErrIdentifierTaken = errors.New("username or email already taken")

// CreateUser registers a new account with a bcrypt password hash.
func (s *Service) CreateUser(username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, errors.New("username, email and password are required")
	}

	var count int64
	err := s.DB.Model(&model.User{}).
		Where("LOWER(username) = LOWER(?) OR LOWER(email) = LOWER(?)", username, email).
		Count(&count).Error
	if err != nil {
		return nil, errors.Wrap(err, "check existing user")
	}
	if count > 0 {
		return nil, ErrIdentifierTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	user := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, errors.Wrap(err, "insert user")
	}
	return &user, nil
}

// Authenticate looks a user up by username or email and checks the password.
// Returns nil without error when either step fails, so login handlers cannot
// distinguish a wrong password from an unknown account.
func (s *Service) Authenticate(identifier, password string) (*model.User, error) {
	user, err := s.UserByUsernameOrEmail(identifier)
	if err != nil || user == nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return user, nil
}

func (s *Service) UserById(userId uint) (*model.User, error) {
	var user model.User
	err := s.DB.First(&user, userId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "query user")
	}
	return &user, nil
}

func (s *Service) UserByUsername(username string) (*model.User, error) {
	var user model.User
	err := s.DB.Where("LOWER(username) = LOWER(?)", strings.TrimSpace(username)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "query user by username")
	}
	return &user, nil
}

func (s *Service) UserByUsernameOrEmail(identifier string) (*model.User, error) {
	identifier = strings.TrimSpace(identifier)
	var user model.User
	err := s.DB.
		Where("LOWER(username) = LOWER(?) OR LOWER(email) = LOWER(?)", identifier, identifier).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "query user by identifier")
	}
	return &user, nil
}

// Users lists accounts for the directory page. Recognized orders are az, za,
// newest, oldest, cred_high and cred_low; anything else falls back to newest.
func (s *Service) Users(order string, limit, offset int) ([]model.User, error) {
	var clause string
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "az":
		clause = "LOWER(username) ASC"
	case "za":
		clause = "LOWER(username) DESC"
	case "oldest":
		clause = "id ASC"
	case "cred_high":
		clause = "cred DESC, LOWER(username) ASC"
	case "cred_low":
		clause = "cred ASC, LOWER(username) ASC"
	default:
		clause = "id DESC"
	}

	var users []model.User
	err := s.DB.Order(clause).Limit(limit).Offset(offset).Find(&users).Error
	return users, errors.Wrap(err, "query users")
}

func (s *Service) CountUsers() (int64, error) {
	var count int64
	err := s.DB.Model(&model.User{}).Count(&count).Error
	return count, errors.Wrap(err, "count users")
}

// SearchUsers matches usernames against the token pattern, sorted
// alphabetically. Empty queries return nothing.
func (s *Service) SearchUsers(query string, limit, offset int) ([]model.User, error) {
	pattern := utils.SearchPattern(query)
	if pattern == "" {
		return nil, nil
	}

	var users []model.User
	err := s.DB.Where("username LIKE ?", pattern).
		Order("LOWER(username) ASC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, errors.Wrap(err, "search users")
}

// UpdateProfileInfo updates username and about. When the username changes the
// denormalized owner column on ratings is rewritten in the same transaction.
func (s *Service) UpdateProfileInfo(userId uint, username, about string) error {
	username = strings.TrimSpace(username)
	if userId == 0 || username == "" {
		return errors.New("username is required")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userId).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"username": username, "about": strings.TrimSpace(about)}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}

		if user.Username != username {
			return tx.Model(&model.Rating{}).
				Where("LOWER(username) = LOWER(?)", user.Username).
				Update("username", username).Error
		}
		return nil
	})
	return errors.Wrap(err, "update profile info")
}

func (s *Service) UpdateProfilePic(userId uint, picUrl string) error {
	err := s.DB.Model(&model.User{}).
		Where("id = ?", userId).
		Update("profile_pic", strings.TrimSpace(picUrl)).Error
	return errors.Wrap(err, "update profile pic")
}

// ProfilePicByUsername returns "" when the user has no picture or does not
// exist.
func (s *Service) ProfilePicByUsername(username string) (string, error) {
	var user model.User
	err := s.DB.Select("profile_pic").
		Where("LOWER(username) = LOWER(?)", strings.TrimSpace(username)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return user.ProfilePic, errors.Wrap(err, "query profile pic")
}
