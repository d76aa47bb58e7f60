package parts

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(category string) ([]Part, error) {
	if category != "" {
		return s.repo.ListByCategory(category)
	}
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Part, error) {
	return s.repo.GetByID(id)
}
