package session

import (
	"strings"
	"time"

	"github.com/lensframe/studio-core/internal/models"
	jwtpkg "github.com/lensframe/studio-core/internal/pkg/jwt"
	"gorm.io/gorm"
)

const (
	// AccessTTL is the lifetime of a signed access token.
	AccessTTL = 15 * time.Minute
	// RefreshTTL is the lifetime of the backing DB session.
	RefreshTTL = 30 * 24 * time.Hour
)

// Issue creates a DB session and signs an access JWT bound to it. The
// session id doubles as the refresh token carried in the cookie.
func Issue(db *gorm.DB, userID, ip, ua string) (string, *models.UserSession, error) {
	now := time.Now()
	s := &models.UserSession{
		UserID:    userID,
		IP:        strings.TrimSpace(ip),
		UA:        strings.TrimSpace(ua),
		ExpiresAt: now.Add(RefreshTTL),
	}
	if err := db.Create(s).Error; err != nil {
		return "", nil, err
	}

	token, err := jwtpkg.Sign(userID, s.ID, AccessTTL)
	if err != nil {
		_ = db.Delete(s).Error
		return "", nil, err
	}
	return token, s, nil
}

// Refresh signs a fresh access token when the session is still active.
func Refresh(db *gorm.DB, sessionID string) (string, *models.UserSession, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", nil, gorm.ErrRecordNotFound
	}
	var s models.UserSession
	err := db.Where("id = ? AND revoked_at IS NULL AND expires_at > ?", sessionID, time.Now()).
		First(&s).Error
	if err != nil {
		return "", nil, err
	}
	token, err := jwtpkg.Sign(s.UserID, s.ID, AccessTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &s, nil
}

// IsActive reports whether the session backing an access token is still valid.
func IsActive(db *gorm.DB, userID, sessionID string) (bool, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return false, nil
	}

	var count int64
	err := db.Model(&models.UserSession{}).
		Where("id = ? AND user_id = ? AND revoked_at IS NULL AND expires_at > ?", sessionID, userID, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Revoke invalidates one session (logout).
func Revoke(db *gorm.DB, userID, sessionID string) error {
	now := time.Now()
	res := db.Model(&models.UserSession{}).
		Where("id = ? AND user_id = ? AND revoked_at IS NULL", sessionID, userID).
		Update("revoked_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// PruneExpired removes sessions past their expiry. Run from cron.
func PruneExpired(db *gorm.DB) (int64, error) {
	res := db.Unscoped().
		Where("expires_at < ? OR revoked_at IS NOT NULL", time.Now().Add(-24*time.Hour)).
		Delete(&models.UserSession{})
	return res.RowsAffected, res.Error
}
