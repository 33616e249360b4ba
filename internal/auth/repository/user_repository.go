package repository

import (
	"errors"
	"strings"
	"time"

	authdomain "vidtube-backend/internal/auth/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(user *authdomain.User) error {
	user.ID = uuid.New().String()
	user.Username = strings.ToLower(user.Username)
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsernameOrEmail(username, email string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("username = ? OR email = ?", strings.ToLower(username), email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *authdomain.User) error {
	user.UpdatedAt = time.Now()
	return r.db.Save(user).Error
}

func (r *userRepository) UpdatePassword(userID, passwordHash string) error {
	return r.db.Model(&authdomain.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"password": passwordHash, "updated_at": time.Now()}).Error
}

func (r *userRepository) UpdateRefreshToken(userID, token string) error {
	// Column-level update: hooks and validation of the rest of the row must
	// not be able to block a token rotation.
	return r.db.Model(&authdomain.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"refresh_token": token, "updated_at": time.Now()}).Error
}

func (r *userRepository) ClearRefreshToken(userID string) error {
	return r.UpdateRefreshToken(userID, "")
}

// RotateRefreshToken is a compare-and-swap: the conditional UPDATE succeeds
// for at most one of any number of concurrent refreshes presenting the same
// token, which keeps rotation single-use under races.
func (r *userRepository) RotateRefreshToken(userID, presented, next string) (bool, error) {
	res := r.db.Model(&authdomain.User{}).
		Where("id = ? AND refresh_token = ?", userID, presented).
		Updates(map[string]interface{}{"refresh_token": next, "updated_at": time.Now()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash. An absent or malformed
// hash compares as a mismatch, never as an error the caller must handle.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
