package mess

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type Mess struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Code      string    `gorm:"size:6;not null;uniqueIndex"`
	CreatedBy string    `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Member is a registered user. MessID is nil while the member has not joined
// a mess. TotalDeposit is the lifetime running balance: incremented by deposit
// entries, debited by monthly settlement. It is a different quantity than the
// period-scoped balance reported by the period report.
type Member struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"not null;uniqueIndex"`
	Role         string    `gorm:"type:varchar(16);not null;default:member"`
	MessID       *string   `gorm:"type:uuid;index"`
	TotalDeposit float64   `gorm:"type:numeric(14,2);not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (m *Member) InMess(messID string) bool {
	return m.MessID != nil && *m.MessID == messID
}

func (m *Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}
