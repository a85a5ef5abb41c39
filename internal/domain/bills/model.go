package bills

import "time"

// Bill is a lump expense split evenly across the roster as it stood at
// creation time. PerHeadAmount is frozen at split time and only ever
// recomputed against the frozen payment roster, never the live mess roster.
type Bill struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	MessID        string    `gorm:"type:uuid;index;not null"`
	Name          string    `gorm:"not null"`
	TotalAmount   float64   `gorm:"type:numeric(12,2);not null"`
	PerHeadAmount float64   `gorm:"type:numeric(12,2);not null"`
	Month         int       `gorm:"not null"`
	Year          int       `gorm:"not null"`
	Date          time.Time `gorm:"type:date;not null"`
	CreatedBy     string    `gorm:"type:uuid;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`

	Payments []Payment `gorm:"foreignKey:BillID;references:ID;constraint:OnDelete:CASCADE"`
}

// Payment is one frozen-roster member's paid/unpaid state on a bill.
type Payment struct {
	BillID   string     `gorm:"type:uuid;primaryKey"`
	MemberID string     `gorm:"type:uuid;primaryKey"`
	Paid     bool       `gorm:"not null;default:false"`
	PaidAt   *time.Time `gorm:""`
}

type CreateInput struct {
	MessID    string
	CreatedBy string
	Name      string
	Total     float64
	Date      time.Time
}

type ListFilter struct {
	Month int
	Year  int
}

type BillMemberSummary struct {
	MemberID string       `json:"member_id"`
	Name     string       `json:"name"`
	Owed     float64      `json:"owed"`
	Paid     float64      `json:"paid"`
	Pending  float64      `json:"pending"`
	Bills    []BillDetail `json:"bills"`
}

type BillDetail struct {
	BillID string  `json:"bill_id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Paid   bool    `json:"paid"`
}

type BillOverview struct {
	BillID        string    `json:"bill_id"`
	Name          string    `json:"name"`
	TotalAmount   float64   `json:"total_amount"`
	PerHeadAmount float64   `json:"per_head_amount"`
	Date          time.Time `json:"date"`
	PaidCount     int       `json:"paid_count"`
	TotalMembers  int       `json:"total_members"`
}

type PeriodSummary struct {
	Month         int                 `json:"month"`
	Year          int                 `json:"year"`
	TotalBills    int                 `json:"total_bills"`
	TotalAmount   float64             `json:"total_amount"`
	TotalPerHead  float64             `json:"total_per_head"`
	Bills         []BillOverview      `json:"bills"`
	MemberSummary []BillMemberSummary `json:"member_summary"`
}
