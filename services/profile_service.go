package services

import (
	"context"
	"errors"
	"fmt"

	"franchise-membership-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// GetProfile returns the session user with business and contact details.
func (s *ProfileService) GetProfile(ctx context.Context, sess Session) (*models.User, error) {
	if sess.UserID == "" {
		return nil, ErrUnauthorized
	}

	var user models.User
	err := s.DB.WithContext(ctx).
		Preload("BusinessDetails").
		Preload("ContactDetails").
		Where("id = ?", sess.UserID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", sess.UserID, err)
	}
	return &user, nil
}

type PersonalDetailsRequest struct {
	Firstname string `json:"firstname" validate:"required,max=100"`
	Lastname  string `json:"lastname" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
}

func (s *ProfileService) UpdatePersonalDetails(ctx context.Context, sess Session, req PersonalDetailsRequest) (*models.User, error) {
	if sess.UserID == "" {
		return nil, ErrUnauthorized
	}
	if err := validate.Struct(req); err != nil {
		return nil, validationErrorf("invalid personal details: %v", err)
	}

	updates := map[string]interface{}{
		"firstname": req.Firstname,
		"lastname":  req.Lastname,
		"phone":     req.Phone,
	}
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", sess.UserID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update personal details: %w", err)
	}
	return s.GetProfile(ctx, sess)
}

type BusinessDetailsRequest struct {
	CompanyName string `json:"companyName" validate:"required,max=200"`
	Industry    string `json:"industry" validate:"omitempty,max=100"`
	Title       string `json:"title" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Website     string `json:"website" validate:"omitempty,max=300"`
}

func (s *ProfileService) UpsertBusinessDetails(ctx context.Context, sess Session, req BusinessDetailsRequest) (*models.BusinessDetails, error) {
	if sess.UserID == "" {
		return nil, ErrUnauthorized
	}
	if err := validate.Struct(req); err != nil {
		return nil, validationErrorf("invalid business details: %v", err)
	}

	details := models.BusinessDetails{
		UserID:      sess.UserID,
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		Title:       req.Title,
		Description: req.Description,
		Website:     req.Website,
	}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company_name", "industry", "title", "description", "website", "updated_at",
		}),
	}).Create(&details).Error
	if err != nil {
		return nil, fmt.Errorf("upsert business details: %w", err)
	}
	return &details, nil
}

type ContactDetailsRequest struct {
	Phone     *string  `json:"phone"`
	Mobile    *string  `json:"mobile"`
	Website   *string  `json:"website"`
	Links     []string `json:"links" validate:"omitempty,max=20,dive,max=300"`
	HouseNo   *string  `json:"houseNo"`
	Pager     *string  `json:"pager"`
	VoiceMail *string  `json:"voiceMail"`
}

func (s *ProfileService) UpsertContactDetails(ctx context.Context, sess Session, req ContactDetailsRequest) (*models.ContactDetails, error) {
	if sess.UserID == "" {
		return nil, ErrUnauthorized
	}
	if err := validate.Struct(req); err != nil {
		return nil, validationErrorf("invalid contact details: %v", err)
	}

	details := models.ContactDetails{
		UserID:    sess.UserID,
		Phone:     req.Phone,
		Mobile:    req.Mobile,
		Website:   req.Website,
		Links:     models.StringList(req.Links),
		HouseNo:   req.HouseNo,
		Pager:     req.Pager,
		VoiceMail: req.VoiceMail,
	}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"phone", "mobile", "website", "links", "house_no", "pager", "voice_mail", "updated_at",
		}),
	}).Create(&details).Error
	if err != nil {
		return nil, fmt.Errorf("upsert contact details: %w", err)
	}
	return &details, nil
}

// GainsProfileData is the GAINS payload/response shape. Lists are always
// present, never null.
type GainsProfileData struct {
	Goals           []string `json:"goals"`
	Accomplishments []string `json:"accomplishments"`
	Interests       []string `json:"interests"`
	Networks        []string `json:"networks"`
	Skills          []string `json:"skills"`
}

// GetGainsProfile returns the target user's GAINS lists, empty when unset.
// Any authenticated member may read another member's GAINS profile.
func (s *ProfileService) GetGainsProfile(ctx context.Context, sess Session, targetUserID string) (*GainsProfileData, error) {
	if sess.UserID == "" {
		return nil, ErrUnauthorized
	}

	var profile models.GainsProfile
	err := s.DB.WithContext(ctx).Where("user_id = ?", targetUserID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load gains profile %s: %w", targetUserID, err)
	}

	return &GainsProfileData{
		Goals:           emptyIfNil(profile.Goals),
		Accomplishments: emptyIfNil(profile.Accomplishments),
		Interests:       emptyIfNil(profile.Interests),
		Networks:        emptyIfNil(profile.Networks),
		Skills:          emptyIfNil(profile.Skills),
	}, nil
}

// UpsertGainsProfile replaces the five lists. Only the profile owner may write.
func (s *ProfileService) UpsertGainsProfile(ctx context.Context, sess Session, targetUserID string, data GainsProfileData) (*GainsProfileData, error) {
	if sess.UserID == "" {
		return nil, ErrUnauthorized
	}
	if sess.UserID != targetUserID {
		return nil, ErrForbidden
	}

	profile := models.GainsProfile{
		UserID:          targetUserID,
		Goals:           models.StringList(emptyIfNil(data.Goals)),
		Accomplishments: models.StringList(emptyIfNil(data.Accomplishments)),
		Interests:       models.StringList(emptyIfNil(data.Interests)),
		Networks:        models.StringList(emptyIfNil(data.Networks)),
		Skills:          models.StringList(emptyIfNil(data.Skills)),
	}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"goals", "accomplishments", "interests", "networks", "skills", "updated_at",
		}),
	}).Create(&profile).Error
	if err != nil {
		return nil, fmt.Errorf("upsert gains profile: %w", err)
	}
	return s.GetGainsProfile(ctx, sess, targetUserID)
}

// UpdateProfileImage records the uploaded image's public URL on the user.
func (s *ProfileService) UpdateProfileImage(ctx context.Context, sess Session, url string) error {
	if sess.UserID == "" {
		return ErrUnauthorized
	}
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", sess.UserID).
		Update("profile_image", url).Error; err != nil {
		return fmt.Errorf("update profile image: %w", err)
	}
	return nil
}

// GetStats returns the denormalized referral counters for the session user.
// A missing row reads as all-zero rather than an error; the worker fills it
// in on its next sweep.
func (s *ProfileService) GetStats(ctx context.Context, sess Session) (*models.MemberStats, error) {
	if sess.UserID == "" {
		return nil, ErrUnauthorized
	}

	var stats models.MemberStats
	err := s.DB.WithContext(ctx).Where("user_id = ?", sess.UserID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.MemberStats{UserID: sess.UserID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load member stats %s: %w", sess.UserID, err)
	}
	return &stats, nil
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
