package activity

import (
	"time"

	"go.uber.org/zap"
)

// Recorder appends audit records on behalf of the rest of the application.
// Storage failures are logged and swallowed: audit logging must never fail
// the operation being audited.
type Recorder struct {
	repo Repository
	log  *zap.Logger
}

func NewRecorder(repo Repository, log *zap.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record appends one entry. It deliberately has no error return.
func (r *Recorder) Record(userID int, activityType, description string, metadata map[string]any, origin Origin) {
	rec := Record{
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
		IPAddress:    origin.IP,
		UserAgent:    origin.UserAgent,
		Metadata:     metadata,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := r.repo.Append(rec); err != nil {
		r.log.Error("could not append activity record",
			zap.Int("userId", userID),
			zap.String("activityType", activityType),
			zap.Error(err))
	}
}
