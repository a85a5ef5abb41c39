package integrity

type IssueType string

const (
	IssueMealCountMismatch       IssueType = "meal_count_mismatch"
	IssueDepositMismatch         IssueType = "deposit_mismatch"
	IssueBillCalculationMismatch IssueType = "bill_calculation_mismatch"
	IssueBillNoMembers           IssueType = "bill_no_members"
)

const (
	StatusHealthy     = "healthy"
	StatusIssuesFound = "issues_found"
)

// Tolerance is the absolute difference beyond which a cached value is
// considered divergent from its recomputation.
const Tolerance = 0.01

// Issue is one discrepancy between a stored cached value and its
// recomputation from primitive records. For IssueBillNoMembers the numeric
// fields are zero: an empty frozen roster is a structural fault, not a
// numeric mismatch.
type Issue struct {
	Type       IssueType `json:"type"`
	RecordID   string    `json:"record_id,omitempty"`
	MemberID   string    `json:"member_id,omitempty"`
	BillID     string    `json:"bill_id,omitempty"`
	Name       string    `json:"name,omitempty"`
	Date       string    `json:"date,omitempty"`
	Stored     float64   `json:"stored"`
	Recomputed float64   `json:"recomputed"`
	Difference float64   `json:"difference"`
}

type Breakdown struct {
	MealCountIssues int `json:"meal_count_issues"`
	DepositIssues   int `json:"deposit_issues"`
	BillIssues      int `json:"bill_issues"`
}

type Summary struct {
	TotalChecks int       `json:"total_checks"`
	TotalIssues int       `json:"total_issues"`
	Breakdown   Breakdown `json:"breakdown"`
}

type Report struct {
	Status  string  `json:"status"`
	Summary Summary `json:"summary"`
	Issues  []Issue `json:"issues"`
}

type Correction struct {
	Type     IssueType `json:"type"`
	RecordID string    `json:"record_id,omitempty"`
	MemberID string    `json:"member_id,omitempty"`
	BillID   string    `json:"bill_id,omitempty"`
	OldValue float64   `json:"old_value"`
	NewValue float64   `json:"new_value"`
}

type FixResult struct {
	FixedCount int          `json:"fixed_count"`
	Skipped    int          `json:"skipped"`
	Details    []Correction `json:"details"`
}

// BillCheck is the slice of a bill the checker needs: the cached per-head
// amount and the size of the frozen payment roster.
type BillCheck struct {
	ID          string
	Name        string
	TotalAmount float64
	PerHead     float64
	MemberCount int
}
