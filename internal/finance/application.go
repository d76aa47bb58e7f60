package finance

// Application statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Application is a financing request for a specific vehicle. Monetary and
// income fields stay strings because they arrive as free-form user input
// and are reviewed by a human, not computed on.
type Application struct {
	ID               int    `json:"applicationId"`
	Reference        string `json:"reference"`
	UserID           int    `json:"userId"`
	CarID            string `json:"carId"`
	CarName          string `json:"carName"`
	CarPrice         string `json:"carPrice"`
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	AnnualIncome     string `json:"annualIncome"`
	EmploymentStatus string `json:"employmentStatus"`
	CreditScoreRange string `json:"creditScoreRange,omitempty"`
	Address          string `json:"address"`
	SelectedPlan     string `json:"selectedPlan"`
	Status           string `json:"status"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

func validStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
