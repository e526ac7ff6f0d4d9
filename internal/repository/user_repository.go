package repository

import (
	"strings"
	"time"

	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if user.LastSeen.IsZero() {
		user.LastSeen = time.Now()
	}
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", strings.ToLower(email)).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByIDs(ids []uint) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// UpdateProfile writes only the learner-editable profile columns.
func (r *UserRepository) UpdateProfile(id uint, fullName, avatarURL, description string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"full_name":   fullName,
			"avatar_url":  avatarURL,
			"description": description,
		}).Error
}

func (r *UserRepository) UpdateAvatar(id uint, avatarURL string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("avatar_url", avatarURL).Error
}

func (r *UserRepository) UpdateRole(id uint, role model.UserRole) error {
	res := r.DB.Model(&model.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Update("last_seen", time.Now()).Error
}

// Search matches name or email case-insensitively, newest first.
func (r *UserRepository) Search(term string) ([]model.User, error) {
	var users []model.User
	q := r.DB.Model(&model.User{}).Order("created_at DESC")
	if term = strings.TrimSpace(term); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	err := q.Find(&users).Error
	return users, err
}

func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Count(&count).Error
	return count, err
}
