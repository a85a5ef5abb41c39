package notification

import (
	"encoding/json"
	"time"
)

type Category string

const (
	CategoryDeposit       Category = "deposit"
	CategoryMealEntry     Category = "meal_entry"
	CategoryBillCreated   Category = "bill_created"
	CategoryBillUpdated   Category = "bill_updated"
	CategoryBillPayment   Category = "bill_payment"
	CategoryMemberAdded   Category = "member_added"
	CategoryMemberRemoved Category = "member_removed"
	CategorySettlement    Category = "settlement"
	CategorySystem        Category = "system"
)

// Event is the payload of a notification. Each category has its own concrete
// type; there is no open bag of optional fields.
type Event interface {
	Category() Category
}

type DepositEvent struct {
	Amount     float64 `json:"amount"`
	RecordedBy string  `json:"recorded_by"`
}

func (DepositEvent) Category() Category { return CategoryDeposit }

type MealEntryEvent struct {
	Date      string `json:"date"`
	EnteredBy string `json:"entered_by"`
}

func (MealEntryEvent) Category() Category { return CategoryMealEntry }

type BillCreatedEvent struct {
	BillID      string  `json:"bill_id"`
	BillName    string  `json:"bill_name"`
	TotalAmount float64 `json:"total_amount"`
	CreatedBy   string  `json:"created_by"`
}

func (BillCreatedEvent) Category() Category { return CategoryBillCreated }

type BillUpdatedEvent struct {
	BillID        string  `json:"bill_id"`
	BillName      string  `json:"bill_name"`
	TotalAmount   float64 `json:"total_amount"`
	PerHeadAmount float64 `json:"per_head_amount"`
	UpdatedBy     string  `json:"updated_by"`
}

func (BillUpdatedEvent) Category() Category { return CategoryBillUpdated }

type BillPaymentEvent struct {
	BillID        string  `json:"bill_id"`
	BillName      string  `json:"bill_name"`
	PerHeadAmount float64 `json:"per_head_amount"`
	Paid          bool    `json:"paid"`
	ToggledBy     string  `json:"toggled_by"`
}

func (BillPaymentEvent) Category() Category { return CategoryBillPayment }

type SettlementEvent struct {
	Month    int     `json:"month"`
	Year     int     `json:"year"`
	Amount   float64 `json:"amount"`
	MealRate float64 `json:"meal_rate"`
}

func (SettlementEvent) Category() Category { return CategorySettlement }

type MemberAddedEvent struct {
	MemberID string `json:"member_id"`
}

func (MemberAddedEvent) Category() Category { return CategoryMemberAdded }

type MemberRemovedEvent struct {
	RemovedBy string `json:"removed_by"`
}

func (MemberRemovedEvent) Category() Category { return CategoryMemberRemoved }

// RoleChangedEvent announces a promotion or demotion within the mess.
type RoleChangedEvent struct {
	MemberID  string `json:"member_id"`
	Role      string `json:"role"`
	ChangedBy string `json:"changed_by"`
}

func (RoleChangedEvent) Category() Category { return CategorySystem }

type Notification struct {
	ID        string          `gorm:"type:uuid;primaryKey"`
	MemberID  string          `gorm:"type:uuid;index;not null"`
	MessID    string          `gorm:"type:uuid;index;not null"`
	Category  Category        `gorm:"type:varchar(32);not null"`
	Title     string          `gorm:"not null"`
	Message   string          `gorm:"not null"`
	Data      json.RawMessage `gorm:"type:jsonb"`
	IsRead    bool            `gorm:"not null;default:false"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

type Note struct {
	Title   string
	Message string
	Event   Event
}

type ListFilter struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}
