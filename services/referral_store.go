package services

import (
	"context"
	"errors"

	"franchise-membership-system/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormReferralStore backs the referral service with GORM. All calls are
// independent statements; nothing here opens a transaction.
type GormReferralStore struct {
	DB *gorm.DB
}

func (s *GormReferralStore) FindReferralsByReceiver(ctx context.Context, receiverID string) ([]models.Referral, error) {
	var referrals []models.Referral
	err := s.DB.WithContext(ctx).Where("receiver_id = ?", receiverID).Find(&referrals).Error
	return referrals, err
}

func (s *GormReferralStore) FindReferralsByCreator(ctx context.Context, creatorID string) ([]models.Referral, error) {
	var referrals []models.Referral
	err := s.DB.WithContext(ctx).Where("creator_id = ?", creatorID).Find(&referrals).Error
	return referrals, err
}

func (s *GormReferralStore) FindReferralByID(ctx context.Context, id string) (*models.Referral, error) {
	var referral models.Referral
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&referral).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &referral, nil
}

func (s *GormReferralStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormReferralStore) UserSummaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error) {
	out := make(map[string]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.User
	err := s.DB.WithContext(ctx).
		Select("id", "firstname", "lastname", "phone", "profile_image").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, u := range rows {
		out[u.ID] = models.UserSummary{
			ID:           u.ID,
			Firstname:    u.Firstname,
			Lastname:     u.Lastname,
			Phone:        u.Phone,
			ProfileImage: u.ProfileImage,
		}
	}
	return out, nil
}

func (s *GormReferralStore) CreateReferral(ctx context.Context, referral *models.Referral) error {
	return s.DB.WithContext(ctx).Create(referral).Error
}

func (s *GormReferralStore) SaveReferralUpdates(ctx context.Context, id string, updates datatypes.JSON) error {
	return s.DB.WithContext(ctx).
		Model(&models.Referral{}).
		Where("id = ?", id).
		Update("updates", updates).Error
}
