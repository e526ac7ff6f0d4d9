package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrAvatarTooLarge is returned for uploads above util.MaxAvatarBytes.
var ErrAvatarTooLarge = fmt.Errorf("avatar exceeds %d MB", util.MaxAvatarBytes>>20)

var ErrInvalidAvatar = errors.New("avatar must be an image")

// ProfileUpdate holds the learner-editable profile fields.
type ProfileUpdate struct {
	FullName    string `json:"fullName" binding:"max=100"`
	AvatarURL   string `json:"avatarUrl" binding:"omitempty,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

// UserService serves profiles and the admin user list.
type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

func (s *UserService) GetProfile(id util.Identity) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(id util.Identity, in ProfileUpdate) (*model.User, error) {
	if _, err := s.GetProfile(id); err != nil {
		return nil, err
	}
	err := s.UserRepo.UpdateProfile(id.UserID,
		strings.TrimSpace(in.FullName),
		strings.TrimSpace(in.AvatarURL),
		strings.TrimSpace(in.Description),
	)
	if err != nil {
		return nil, err
	}
	return s.GetProfile(id)
}

// UploadAvatar validates an image upload, crops it to a square of
// util.AvatarSize pixels and stores it as PNG. It returns the new avatar URL.
func (s *UserService) UploadAvatar(ctx context.Context, id util.Identity, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, util.MaxAvatarBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > util.MaxAvatarBytes {
		return "", ErrAvatarTooLarge
	}
	if _, err := util.ValidateMimeType(bytes.NewReader(data), []string{util.MimeImage}); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAvatar, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAvatar, err)
	}
	img = imaging.Fill(img, util.AvatarSize, util.AvatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%d/%s.png", id.UserID, uuid.NewString())
	url, err := s.Storage.Upload(ctx, key, &buf, int64(buf.Len()), "image/png")
	if err != nil {
		return "", err
	}
	if err := s.UserRepo.UpdateAvatar(id.UserID, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *UserService) SearchUsers(term string) ([]model.User, error) {
	return s.UserRepo.Search(term)
}

func (s *UserService) ChangeRole(userID uint, role model.UserRole) error {
	switch role {
	case model.Student, model.Instructor, model.Admin:
	default:
		return util.ErrInvalidRole
	}
	if err := s.UserRepo.UpdateRole(userID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	return nil
}
