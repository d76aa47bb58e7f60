package activity

// Record is one immutable audit-trail entry. Records are only ever
// appended; nothing in the application updates or deletes them.
type Record struct {
	ID           int            `json:"activityId"`
	UserID       int            `json:"userId"`
	ActivityType string         `json:"activityType"`
	Description  string         `json:"description"`
	IPAddress    string         `json:"ipAddress,omitempty"`
	UserAgent    string         `json:"userAgent,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    string         `json:"createdAt"`
}

// Origin carries the caller-side metadata stored with a record.
type Origin struct {
	IP        string
	UserAgent string
}

// Known activity types. The column is free-form text, but the application
// only ever writes these values.
const (
	TypeLogin             = "login"
	TypeLogout            = "logout"
	TypeRegistration      = "registration"
	TypePurchaseInitiated = "purchase_initiated"
	TypePaymentSuccessful = "payment_successful"
	TypePaymentFailed     = "payment_failed"
	TypeOrderCancelled    = "order_cancelled"
	TypeFinanceSubmitted  = "finance_application_submitted"
)
