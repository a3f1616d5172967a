package services

import (
	"context"
	"errors"
	"fmt"

	"franchise-membership-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

type FranchiseService struct {
	DB *gorm.DB
}

func NewFranchiseService(db *gorm.DB) *FranchiseService {
	return &FranchiseService{DB: db}
}

var titleCaser = cases.Title(language.English)

// adminFor loads the caller's FranchiseAdmin row, nil when they hold none.
func (s *FranchiseService) adminFor(ctx context.Context, userID string) (*models.FranchiseAdmin, error) {
	var admin models.FranchiseAdmin
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load franchise admin %s: %w", userID, err)
	}
	return &admin, nil
}

type CreateRegionRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CreateRegion is restricted to SUPER admins.
func (s *FranchiseService) CreateRegion(ctx context.Context, sess Session, req CreateRegionRequest) (*models.Region, error) {
	if sess.UserID == "" {
		return nil, ErrUnauthorized
	}
	if err := validate.Struct(req); err != nil {
		return nil, validationErrorf("invalid region payload: %v", err)
	}

	admin, err := s.adminFor(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if admin == nil || admin.Role != models.RoleSuper {
		return nil, ErrForbidden
	}

	region := &models.Region{
		Name:        req.Name,
		DisplayName: titleCaser.String(req.Name),
	}
	if err := s.DB.WithContext(ctx).Create(region).Error; err != nil {
		return nil, fmt.Errorf("create region: %w", err)
	}
	return region, nil
}

// ListRegions returns regions with their clubs, scoped to the caller's
// jurisdiction: SUPER sees everything, REGIONAL their region, FRANCHISE the
// region of their club.
func (s *FranchiseService) ListRegions(ctx context.Context, sess Session) ([]models.Region, error) {
	if sess.UserID == "" {
		return nil, ErrUnauthorized
	}

	admin, err := s.adminFor(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrForbidden
	}

	q := s.DB.WithContext(ctx).Preload("Clubs")
	switch admin.Role {
	case models.RoleSuper:
		// unscoped
	case models.RoleRegional:
		if admin.RegionID == nil {
			return nil, ErrForbidden
		}
		q = q.Where("id = ?", *admin.RegionID)
	case models.RoleFranchise:
		if admin.ClubID == nil {
			return nil, ErrForbidden
		}
		var club models.Club
		if err := s.DB.WithContext(ctx).Where("id = ?", *admin.ClubID).First(&club).Error; err != nil {
			return nil, fmt.Errorf("load club %s: %w", *admin.ClubID, err)
		}
		q = q.Where("id = ?", club.RegionID)
	default:
		return nil, ErrForbidden
	}

	var regions []models.Region
	if err := q.Find(&regions).Error; err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	return regions, nil
}

type CreateClubRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	RegionID string `json:"regionId" validate:"required"`
}

// CreateClub is allowed for SUPER admins anywhere and REGIONAL admins in
// their own region. The slug is generated and kept unique with a short
// suffix on collision.
func (s *FranchiseService) CreateClub(ctx context.Context, sess Session, req CreateClubRequest) (*models.Club, error) {
	if sess.UserID == "" {
		return nil, ErrUnauthorized
	}
	if err := validate.Struct(req); err != nil {
		return nil, validationErrorf("invalid club payload: %v", err)
	}

	admin, err := s.adminFor(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	switch {
	case admin == nil:
		return nil, ErrForbidden
	case admin.Role == models.RoleSuper:
	case admin.Role == models.RoleRegional && admin.RegionID != nil && *admin.RegionID == req.RegionID:
	default:
		return nil, ErrForbidden
	}

	var region models.Region
	err = s.DB.WithContext(ctx).Where("id = ?", req.RegionID).First(&region).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load region %s: %w", req.RegionID, err)
	}

	clubSlug := slug.Make(req.Name)
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Club{}).Where("slug = ?", clubSlug).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check club slug: %w", err)
	}
	if count > 0 {
		clubSlug = fmt.Sprintf("%s-%s", clubSlug, uuid.NewString()[:8])
	}

	club := &models.Club{
		Name:     req.Name,
		Slug:     clubSlug,
		RegionID: req.RegionID,
	}
	if err := s.DB.WithContext(ctx).Create(club).Error; err != nil {
		return nil, fmt.Errorf("create club: %w", err)
	}
	return club, nil
}

type AppointAdminRequest struct {
	UserID   string `json:"userId" validate:"required"`
	RegionID string `json:"regionId"`
	ClubID   string `json:"clubId"`
}

// AppointRegionalAdmin grants REGIONAL over a region. SUPER only.
func (s *FranchiseService) AppointRegionalAdmin(ctx context.Context, sess Session, req AppointAdminRequest) (*models.FranchiseAdmin, error) {
	if sess.UserID == "" {
		return nil, ErrUnauthorized
	}
	if err := validate.Struct(req); err != nil {
		return nil, validationErrorf("invalid appointment payload: %v", err)
	}
	if req.RegionID == "" {
		return nil, validationErrorf("regionId is required for a regional admin")
	}

	admin, err := s.adminFor(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if admin == nil || admin.Role != models.RoleSuper {
		return nil, ErrForbidden
	}

	if err := s.ensureUserExists(ctx, req.UserID); err != nil {
		return nil, err
	}
	var region models.Region
	err = s.DB.WithContext(ctx).Where("id = ?", req.RegionID).First(&region).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load region %s: %w", req.RegionID, err)
	}

	appointment := &models.FranchiseAdmin{
		UserID:   req.UserID,
		Role:     models.RoleRegional,
		RegionID: &region.ID,
	}
	if err := s.DB.WithContext(ctx).Create(appointment).Error; err != nil {
		return nil, fmt.Errorf("appoint regional admin: %w", err)
	}
	return appointment, nil
}

// AppointFranchiseAdmin grants FRANCHISE over a club. SUPER anywhere,
// REGIONAL within their own region.
func (s *FranchiseService) AppointFranchiseAdmin(ctx context.Context, sess Session, req AppointAdminRequest) (*models.FranchiseAdmin, error) {
	if sess.UserID == "" {
		return nil, ErrUnauthorized
	}
	if err := validate.Struct(req); err != nil {
		return nil, validationErrorf("invalid appointment payload: %v", err)
	}
	if req.ClubID == "" {
		return nil, validationErrorf("clubId is required for a franchise admin")
	}

	admin, err := s.adminFor(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrForbidden
	}

	var club models.Club
	err = s.DB.WithContext(ctx).Where("id = ?", req.ClubID).First(&club).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load club %s: %w", req.ClubID, err)
	}

	switch {
	case admin.Role == models.RoleSuper:
	case admin.Role == models.RoleRegional && admin.RegionID != nil && *admin.RegionID == club.RegionID:
	default:
		return nil, ErrForbidden
	}

	if err := s.ensureUserExists(ctx, req.UserID); err != nil {
		return nil, err
	}

	appointment := &models.FranchiseAdmin{
		UserID: req.UserID,
		Role:   models.RoleFranchise,
		ClubID: &club.ID,
	}
	if err := s.DB.WithContext(ctx).Create(appointment).Error; err != nil {
		return nil, fmt.Errorf("appoint franchise admin: %w", err)
	}
	return appointment, nil
}

// RegionOverview is one row of the admin overview.
type RegionOverview struct {
	Region     models.Region `json:"region"`
	ClubCount  int64         `json:"clubCount"`
	AdminCount int64         `json:"adminCount"`
}

// Overview summarizes each visible region with club and admin counts.
func (s *FranchiseService) Overview(ctx context.Context, sess Session) ([]RegionOverview, error) {
	regions, err := s.ListRegions(ctx, sess)
	if err != nil {
		return nil, err
	}

	out := make([]RegionOverview, 0, len(regions))
	for _, region := range regions {
		var clubCount int64
		if err := s.DB.WithContext(ctx).Model(&models.Club{}).Where("region_id = ?", region.ID).Count(&clubCount).Error; err != nil {
			return nil, fmt.Errorf("count clubs for region %s: %w", region.ID, err)
		}

		clubIDs := make([]string, 0, len(region.Clubs))
		for _, c := range region.Clubs {
			clubIDs = append(clubIDs, c.ID)
		}
		var adminCount int64
		q := s.DB.WithContext(ctx).Model(&models.FranchiseAdmin{}).Where("region_id = ?", region.ID)
		if len(clubIDs) > 0 {
			q = s.DB.WithContext(ctx).Model(&models.FranchiseAdmin{}).
				Where("region_id = ? OR club_id IN ?", region.ID, clubIDs)
		}
		if err := q.Count(&adminCount).Error; err != nil {
			return nil, fmt.Errorf("count admins for region %s: %w", region.ID, err)
		}

		out = append(out, RegionOverview{Region: region, ClubCount: clubCount, AdminCount: adminCount})
	}
	return out, nil
}

func (s *FranchiseService) ensureUserExists(ctx context.Context, userID string) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return fmt.Errorf("check user %s: %w", userID, err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
