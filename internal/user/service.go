package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/carhubteam/carhub-backend/internal/activity"
)

// ActivityRecorder appends audit records and never fails the caller.
type ActivityRecorder interface {
	Record(userID int, activityType, description string, metadata map[string]any, origin activity.Origin)
}

type Service struct {
	repo     Repository
	recorder ActivityRecorder
}

func NewService(repo Repository, recorder ActivityRecorder) *Service {
	return &Service{repo: repo, recorder: recorder}
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByEmail(email string) (User, error) {
	return s.repo.GetByEmail(email)
}

func (s *Service) List() ([]User, error) {
	return s.repo.List()
}

func (s *Service) Register(u User, origin activity.Origin) (User, error) {
	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u.Password = string(hashed)

	now := time.Now().UTC().Format(time.RFC3339)
	u.CreatedAt = now
	u.UpdatedAt = now

	created, err := s.repo.Create(u)
	if err != nil {
		return User{}, err
	}

	s.recorder.Record(created.ID, activity.TypeRegistration, "New account registered",
		map[string]any{"email": created.Email}, origin)
	return created, nil
}

func (s *Service) Authenticate(email, password string, origin activity.Origin) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	s.recorder.Record(u.ID, activity.TypeLogin, "User logged in",
		map[string]any{"email": u.Email}, origin)
	return u, nil
}

// Logout only records the event. Tokens are stateless, the client discards
// its copy.
func (s *Service) Logout(userID int, origin activity.Origin) {
	s.recorder.Record(userID, activity.TypeLogout, "User logged out", nil, origin)
}

// UpsertGoogleUser links a federated sign-in to an account, creating one on
// first sight. Matching is by Google subject first, then by email.
func (s *Service) UpsertGoogleUser(googleID, email, name string, picture *string, origin activity.Origin) (User, error) {
	if existing, err := s.repo.GetByGoogleID(googleID); err == nil {
		s.recorder.Record(existing.ID, activity.TypeLogin, "User logged in via Google",
			map[string]any{"email": existing.Email}, origin)
		return existing, nil
	} else if err != ErrNotFound {
		return User{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)

	if existing, err := s.repo.GetByEmail(email); err == nil {
		existing.GoogleID = &googleID
		existing.Picture = picture
		existing.UpdatedAt = now
		linked, err := s.repo.Update(existing.ID, existing)
		if err != nil {
			return User{}, err
		}
		s.recorder.Record(linked.ID, activity.TypeLogin, "User logged in via Google",
			map[string]any{"email": linked.Email}, origin)
		return linked, nil
	} else if err != ErrNotFound {
		return User{}, err
	}

	created, err := s.repo.Create(User{
		Username:  name,
		Email:     email,
		GoogleID:  &googleID,
		Picture:   picture,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return User{}, err
	}
	s.recorder.Record(created.ID, activity.TypeRegistration, "New account registered via Google",
		map[string]any{"email": created.Email}, origin)
	return created, nil
}

func (s *Service) UpdateProfile(id int, update User) (User, error) {
	if update.Password != "" && !looksLikeBcrypt(update.Password) {
		hashed, err := bcrypt.GenerateFromPassword([]byte(update.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, err
		}
		update.Password = string(hashed)
	}

	update.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(id, update)
}

func looksLikeBcrypt(value string) bool {
	return len(value) > 4 && value[0:2] == "$2"
}
