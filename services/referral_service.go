package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"franchise-membership-system/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Referral validation errors. The messages are part of the wire contract
// and returned to the client verbatim.
var (
	ErrInvalidPriority           = errors.New("Invalid priority")
	ErrMissingReferralFields     = errors.New("receiverId and type are required")
	ErrReceiverNotMember         = errors.New("Receiver is not a member of your club")
	ErrThirdPartyDetailsRequired = errors.New("thirdPartyDetails required for THIRD_PARTY")
)

// ReferralStore is the persistence contract the referral service depends on.
// Lookup methods return (nil, nil) when no row matches.
type ReferralStore interface {
	FindReferralsByReceiver(ctx context.Context, receiverID string) ([]models.Referral, error)
	FindReferralsByCreator(ctx context.Context, creatorID string) ([]models.Referral, error)
	FindReferralByID(ctx context.Context, id string) (*models.Referral, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	UserSummaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error)
	CreateReferral(ctx context.Context, referral *models.Referral) error
	SaveReferralUpdates(ctx context.Context, id string, updates datatypes.JSON) error
}

type ReferralService struct {
	Store ReferralStore
}

func NewReferralService(db *gorm.DB) *ReferralService {
	return &ReferralService{Store: &GormReferralStore{DB: db}}
}

// CreateReferralRequest is the create payload. The capital-E "Email" key is
// preserved from the wire contract.
type CreateReferralRequest struct {
	ReceiverID        string         `json:"receiverId"`
	Type              string         `json:"type"`
	BusinessDetails   datatypes.JSON `json:"businessDetails"`
	Phone             string         `json:"phone"`
	Email             string         `json:"Email"`
	ThirdPartyDetails datatypes.JSON `json:"thirdPartyDetails"`
	Comments          string         `json:"comments"`
	Priority          string         `json:"priority"`
}

// Create validates and records a referral from the session user. Checks run
// in a fixed order and short-circuit on the first failure. The receiver
// check verifies existence only; no club co-membership is enforced (the
// message is kept for wire compatibility). The existence check and the
// insert are separate statements; a receiver deleted in between is
// tolerated as best-effort.
func (s *ReferralService) Create(ctx context.Context, sess Session, req CreateReferralRequest) (*models.Referral, error) {
	if sess.UserID == "" || sess.HomeClub == "" {
		return nil, ErrUnauthorized
	}

	if req.Priority != "" && !models.ValidPriority(models.PriorityType(req.Priority)) {
		return nil, ErrInvalidPriority
	}

	if req.ReceiverID == "" || req.Type == "" {
		return nil, ErrMissingReferralFields
	}

	receiver, err := s.Store.FindUserByID(ctx, req.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("lookup receiver %s: %w", req.ReceiverID, err)
	}
	if receiver == nil {
		return nil, ErrReceiverNotMember
	}

	if req.Type == string(models.ReferralThirdParty) && !jsonPresent(req.ThirdPartyDetails) {
		return nil, ErrThirdPartyDetailsRequired
	}

	referral := &models.Referral{
		Type:              models.ReferralType(req.Type),
		CreatorID:         sess.UserID,
		ReceiverID:        req.ReceiverID,
		BusinessDetails:   req.BusinessDetails,
		Phone:             req.Phone,
		Email:             req.Email,
		ThirdPartyDetails: req.ThirdPartyDetails,
		Comments:          req.Comments,
		Updates:           datatypes.JSON([]byte("[]")),
	}
	if req.Priority != "" {
		p := models.PriorityType(req.Priority)
		referral.Priority = &p
	}

	if err := s.Store.CreateReferral(ctx, referral); err != nil {
		return nil, fmt.Errorf("create referral: %w", err)
	}
	return referral, nil
}

// ListReceived returns every referral addressed to the session user, each
// embedding the creator's public fields. Ordering follows storage order and
// is not guaranteed.
func (s *ReferralService) ListReceived(ctx context.Context, sess Session) ([]models.ReferralWithCreator, error) {
	if sess.UserID == "" {
		return nil, ErrUnauthorized
	}

	referrals, err := s.Store.FindReferralsByReceiver(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("list received referrals: %w", err)
	}

	ids := make([]string, 0, len(referrals))
	for _, r := range referrals {
		ids = append(ids, r.CreatorID)
	}
	creators, err := s.Store.UserSummaries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load creator summaries: %w", err)
	}

	out := make([]models.ReferralWithCreator, len(referrals))
	for i, r := range referrals {
		out[i] = models.ReferralWithCreator{Referral: r, Creator: creators[r.CreatorID]}
	}
	return out, nil
}

// ListSent mirrors ListReceived for referrals the session user created.
func (s *ReferralService) ListSent(ctx context.Context, sess Session) ([]models.ReferralWithReceiver, error) {
	if sess.UserID == "" {
		return nil, ErrUnauthorized
	}

	referrals, err := s.Store.FindReferralsByCreator(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("list sent referrals: %w", err)
	}

	ids := make([]string, 0, len(referrals))
	for _, r := range referrals {
		ids = append(ids, r.ReceiverID)
	}
	receivers, err := s.Store.UserSummaries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load receiver summaries: %w", err)
	}

	out := make([]models.ReferralWithReceiver, len(referrals))
	for i, r := range referrals {
		out[i] = models.ReferralWithReceiver{Referral: r, Receiver: receivers[r.ReceiverID]}
	}
	return out, nil
}

// AppendUpdateRequest is the payload for appending to a referral's status log.
type AppendUpdateRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// AppendUpdate appends a status entry to the referral's log. Only the
// creator or the receiver may append; everyone else gets a not-found so the
// referral's existence is not revealed.
func (s *ReferralService) AppendUpdate(ctx context.Context, sess Session, referralID string, req AppendUpdateRequest) (*models.Referral, error) {
	if sess.UserID == "" {
		return nil, ErrUnauthorized
	}
	if req.Status == "" {
		return nil, validationErrorf("status is required")
	}

	referral, err := s.Store.FindReferralByID(ctx, referralID)
	if err != nil {
		return nil, fmt.Errorf("lookup referral %s: %w", referralID, err)
	}
	if referral == nil || (referral.CreatorID != sess.UserID && referral.ReceiverID != sess.UserID) {
		return nil, ErrNotFound
	}

	var log []models.ReferralUpdate
	if len(referral.Updates) > 0 {
		if err := json.Unmarshal(referral.Updates, &log); err != nil {
			return nil, fmt.Errorf("decode updates log for %s: %w", referralID, err)
		}
	}
	log = append(log, models.ReferralUpdate{
		Status:   req.Status,
		Note:     req.Note,
		ByUserID: sess.UserID,
		At:       time.Now().UTC(),
	})

	raw, err := json.Marshal(log)
	if err != nil {
		return nil, fmt.Errorf("encode updates log for %s: %w", referralID, err)
	}
	referral.Updates = datatypes.JSON(raw)

	if err := s.Store.SaveReferralUpdates(ctx, referralID, referral.Updates); err != nil {
		return nil, fmt.Errorf("save updates log for %s: %w", referralID, err)
	}
	return referral, nil
}

// jsonPresent reports whether a raw JSON field was supplied with a value.
func jsonPresent(b datatypes.JSON) bool {
	return len(b) > 0 && string(b) != "null"
}
