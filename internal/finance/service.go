package finance

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carhubteam/carhub-backend/internal/activity"
)

// ActivityRecorder appends audit records and never fails the caller.
type ActivityRecorder interface {
	Record(userID int, activityType, description string, metadata map[string]any, origin activity.Origin)
}

type Service struct {
	repo     Repository
	recorder ActivityRecorder
	log      *zap.Logger
}

func NewService(repo Repository, recorder ActivityRecorder, log *zap.Logger) *Service {
	return &Service{repo: repo, recorder: recorder, log: log}
}

// Submit files a new application. The reference is generated here so reviews
// can be tracked without exposing row ids to applicants.
func (s *Service) Submit(userID int, app Application, origin activity.Origin) (Application, error) {
	if app.CarName == "" || app.FullName == "" || app.Email == "" || app.Phone == "" ||
		app.AnnualIncome == "" || app.EmploymentStatus == "" || app.Address == "" || app.SelectedPlan == "" {
		return Application{}, ErrMissingFields
	}

	now := time.Now().UTC().Format(time.RFC3339)
	app.UserID = userID
	app.Reference = uuid.NewString()
	app.Status = StatusPending
	app.CreatedAt = now
	app.UpdatedAt = now

	created, err := s.repo.Create(app)
	if err != nil {
		return Application{}, err
	}

	s.log.Info("finance application submitted",
		zap.Int("applicationID", created.ID),
		zap.Int("userID", userID),
		zap.String("carName", created.CarName),
		zap.String("selectedPlan", created.SelectedPlan))

	s.recorder.Record(userID, activity.TypeFinanceSubmitted,
		"Submitted finance application for "+created.CarName,
		map[string]any{
			"car_name":       created.CarName,
			"car_price":      created.CarPrice,
			"selected_plan":  created.SelectedPlan,
			"annual_income":  created.AnnualIncome,
			"application_id": created.ID,
			"reference":      created.Reference,
		}, origin)
	return created, nil
}

func (s *Service) GetForUser(id, userID int) (Application, error) {
	app, err := s.repo.GetByID(id)
	if err != nil {
		return Application{}, err
	}
	if app.UserID != userID {
		return Application{}, ErrNotFound
	}
	return app, nil
}

func (s *Service) ListMine(userID int) ([]Application, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) ListAll() ([]Application, error) {
	return s.repo.ListAll()
}

func (s *Service) UpdateStatus(id int, status string) (Application, error) {
	if !validStatus(status) {
		return Application{}, ErrInvalidStatus
	}
	return s.repo.UpdateStatus(id, status, time.Now().UTC().Format(time.RFC3339))
}
