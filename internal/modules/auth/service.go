package auth

import (
	"errors"
	"time"

	"github.com/lensframe/studio-core/internal/models"
	"github.com/lensframe/studio-core/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Register creates the owner account. Only one account is permitted.
func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	var count int64
	if err := s.db.Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrOwnerExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.UserModel{
		Username: dto.Username,
		Password: string(hashed),
		Name:     dto.Name,
		Mail:     dto.Mail,
	}
	if user.Name == "" {
		user.Name = dto.Username
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and opens a new session.
func (s *Service) Login(dto *LoginDTO, ip, ua string) (*LoginResult, *models.UserSession, error) {
	var user models.UserModel
	err := s.db.Where("username = ?", dto.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	token, sess, err := session.Issue(s.db, user.ID, ip, ua)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	_ = s.db.Model(&user).Updates(map[string]interface{}{
		"last_login_time": &now,
		"last_login_ip":   ip,
	}).Error

	return &LoginResult{
		Token:     token,
		SessionID: sess.ID,
		Username:  user.Username,
		Name:      user.Name,
	}, sess, nil
}

// Refresh exchanges a live session id for a fresh access token.
func (s *Service) Refresh(sessionID string) (string, error) {
	token, _, err := session.Refresh(s.db, sessionID)
	if err != nil {
		return "", ErrSessionInvalid
	}
	return token, nil
}

// Logout revokes the session behind the given id.
func (s *Service) Logout(userID, sessionID string) error {
	return session.Revoke(s.db, userID, sessionID)
}

func (s *Service) GetUser(id string) (*models.UserModel, error) {
	var user models.UserModel
	err := s.db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword verifies the old password, stores the new hash and revokes
// every other session of the user.
func (s *Service) ChangePassword(userID, keepSessionID string, dto *ChangePasswordDTO) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.OldPassword)) != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.db.Model(user).Update("password", string(hashed)).Error; err != nil {
		return err
	}

	now := time.Now()
	return s.db.Model(&models.UserSession{}).
		Where("user_id = ? AND id <> ? AND revoked_at IS NULL", userID, keepSessionID).
		Update("revoked_at", &now).Error
}
