package workers

import (
	"context"
	"log"
	"time"

	"franchise-membership-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReferralStatsClient recomputes the denormalized per-member referral
// counters off the request path.
type ReferralStatsClient struct {
	DB *gorm.DB
}

func NewReferralStatsClient(db *gorm.DB) *ReferralStatsClient {
	return &ReferralStatsClient{DB: db}
}

type countRow struct {
	UserID string
	N      int64
}

// SweepOnce recomputes sent/received counts from the referrals table and
// upserts one MemberStats row per user seen. Returns the number of rows
// written.
func (c *ReferralStatsClient) SweepOnce(ctx context.Context) (int, error) {
	var sent []countRow
	err := c.DB.WithContext(ctx).
		Model(&models.Referral{}).
		Select("creator_id AS user_id, COUNT(*) AS n").
		Group("creator_id").
		Scan(&sent).Error
	if err != nil {
		return 0, err
	}

	var received []countRow
	err = c.DB.WithContext(ctx).
		Model(&models.Referral{}).
		Select("receiver_id AS user_id, COUNT(*) AS n").
		Group("receiver_id").
		Scan(&received).Error
	if err != nil {
		return 0, err
	}

	type counters struct{ sent, received int64 }
	merged := make(map[string]counters)
	for _, row := range sent {
		cur := merged[row.UserID]
		cur.sent = row.N
		merged[row.UserID] = cur
	}
	for _, row := range received {
		cur := merged[row.UserID]
		cur.received = row.N
		merged[row.UserID] = cur
	}

	if len(merged) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	rows := make([]models.MemberStats, 0, len(merged))
	for userID, n := range merged {
		rows = append(rows, models.MemberStats{
			UserID:            userID,
			ReferralsSent:     n.sent,
			ReferralsReceived: n.received,
			LastSyncedAt:      &now,
		})
	}

	err = c.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"referrals_sent", "referrals_received", "last_synced_at", "updated_at",
		}),
	}).Create(&rows).Error
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// PollReferralStats runs the sweep on a fixed interval until ctx is done.
func PollReferralStats(ctx context.Context, client *ReferralStatsClient, pollInterval time.Duration) {
	log.Println("Starting referral stats polling...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Referral stats polling stopped.")
			return
		case <-ticker.C:
			n, err := client.SweepOnce(ctx)
			if err != nil {
				log.Printf("[STATS] sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[STATS] refreshed counters for %d member(s)", n)
			}
		}
	}
}
