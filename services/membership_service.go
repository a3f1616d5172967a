package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"franchise-membership-system/models"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Paid tiers run for a year before the expiry sweep reverts them.
const membershipTerm = 365 * 24 * time.Hour

var ErrNotAnUpgrade = errors.New("requested tier is not an upgrade")

type MembershipService struct {
	DB *gorm.DB
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{DB: db}
}

type UpgradeRequest struct {
	Tier string `json:"tier" validate:"required,oneof=GOLD VIP"`
}

// Upgrade moves the session user to a higher tier and stamps the expiry.
// Downgrades and same-tier requests are rejected. Payment is out of scope;
// only the tier change is recorded.
func (s *MembershipService) Upgrade(ctx context.Context, sess Session, req UpgradeRequest) (*models.User, error) {
	if sess.UserID == "" {
		return nil, ErrUnauthorized
	}
	if err := validate.Struct(req); err != nil {
		return nil, validationErrorf("invalid upgrade payload: %v", err)
	}

	var user models.User
	err := s.DB.WithContext(ctx).Where("id = ?", sess.UserID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", sess.UserID, err)
	}

	target := models.UserMembershipType(req.Tier)
	if models.MembershipRank(target) <= models.MembershipRank(user.MembershipType) {
		return nil, ErrNotAnUpgrade
	}

	expiry := time.Now().UTC().Add(membershipTerm)
	user.MembershipType = target
	user.MembershipExpiresAt = &expiry
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"membership_type":       target,
		"membership_expires_at": expiry,
	}).Error; err != nil {
		return nil, fmt.Errorf("upgrade membership: %w", err)
	}
	return &user, nil
}

// SweepExpired reverts every paid membership whose expiry has passed back
// to FREE and clears the expiry. Returns the number of users downgraded.
func (s *MembershipService) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("membership_type <> ? AND membership_expires_at IS NOT NULL AND membership_expires_at <= ?",
			models.MembershipFree, now).
		Updates(map[string]interface{}{
			"membership_type":       models.MembershipFree,
			"membership_expires_at": nil,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("sweep expired memberships: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// StartExpiryScheduler runs the expiry sweep hourly.
func (s *MembershipService) StartExpiryScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			n, err := s.SweepExpired(context.Background(), time.Now().UTC())
			if err != nil {
				log.Printf("[Membership] expiry sweep failed: %v", err)
				return
			}
			if n > 0 {
				log.Printf("[Membership] downgraded %d expired membership(s)", n)
			}
		}),
	)
}
