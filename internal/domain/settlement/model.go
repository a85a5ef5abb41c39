package settlement

import "time"

const (
	StatusPending   = "pending"
	StatusCommitted = "committed"
)

// Run is the marker that a (mess, period) settlement has been applied. It is
// inserted in the same transaction as the balance deductions, and the unique
// (mess, year, month) constraint is what makes re-running a period a no-op
// instead of a double deduction.
type Run struct {
	ID             string     `gorm:"type:uuid;primaryKey"`
	MessID         string     `gorm:"type:uuid;not null;uniqueIndex:idx_run_mess_period,priority:1"`
	Year           int        `gorm:"not null;uniqueIndex:idx_run_mess_period,priority:2"`
	Month          int        `gorm:"not null;uniqueIndex:idx_run_mess_period,priority:3"`
	Status         string     `gorm:"type:varchar(16);not null"`
	MealRate       float64    `gorm:"type:numeric(12,2);not null"`
	TotalMeals     float64    `gorm:"type:numeric(12,2);not null"`
	TotalDeposits  float64    `gorm:"type:numeric(12,2);not null"`
	MembersSettled int        `gorm:"not null"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	CommittedAt    *time.Time `gorm:""`
}

// MemberSettlement is one member's share of a committed run.
type MemberSettlement struct {
	MemberID string  `json:"member_id"`
	Units    float64 `json:"units"`
	Cost     float64 `json:"cost"`
}

// Outcome describes what one SettlePeriod call did.
type Outcome struct {
	Run     Run                `json:"run"`
	Members []MemberSettlement `json:"members"`
	Skipped bool               `json:"skipped"`
}

// BatchResult summarizes a SettleAll sweep across all messes.
type BatchResult struct {
	Committed int `json:"committed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}
