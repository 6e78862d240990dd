package user

import (
	"time"

	"admin-dashboard/internal/store"
)

// Repository is the persistence boundary for user records. Create and
// Update run their uniqueness checks atomically with the write.
type Repository interface {
	GetByID(id int64) (*store.User, error)
	List() ([]store.User, error)
	Create(u *store.User) error
	Update(id int64, mutate func(*store.User)) (*store.User, error)
	Delete(id int64) error
}

// Service performs user management business logic.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Create adds a user record. Status defaults to Active; the id is assigned
// by the repository.
func (s *Service) Create(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	status := dto.Status
	if status == "" {
		status = StatusActive
	}

	perms := dto.Permissions
	if perms == nil {
		perms = []string{}
	}

	record := &store.User{
		Name:        dto.Name,
		Email:       dto.Email,
		Phone:       dto.Phone,
		Age:         dto.Age,
		Status:      status,
		Role:        dto.Role,
		Permissions: perms,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(record); err != nil {
		return nil, err
	}

	return FromDataModel(record), nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(record), nil
}

// List returns every user record, unfiltered and unpaginated. Pagination
// is a presentation-layer concern.
func (s *Service) List() ([]*User, error) {
	records, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	users := make([]*User, 0, len(records))
	for i := range records {
		users = append(users, FromDataModel(&records[i]))
	}
	return users, nil
}

// Update merges the edit into the stored record. Empty strings, zero age
// and empty permission lists keep the prior value.
func (s *Service) Update(id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.Update(id, func(u *store.User) {
		if dto.Name != "" {
			u.Name = dto.Name
		}
		if dto.Email != "" {
			u.Email = dto.Email
		}
		if dto.Phone != "" {
			u.Phone = dto.Phone
		}
		if dto.Age != 0 {
			u.Age = dto.Age
		}
		if dto.Status != "" {
			u.Status = dto.Status
		}
		if dto.Role != "" {
			u.Role = dto.Role
		}
		if len(dto.Permissions) > 0 {
			u.Permissions = dto.Permissions
		}
	})
	if err != nil {
		return nil, err
	}

	return FromDataModel(record), nil
}

func (s *Service) Delete(id int64) error {
	return s.repo.Delete(id)
}

// Statistics aggregates over the full user collection. "Registered today"
// is midnight-aligned in server-local time; status counts are exact
// case-sensitive matches against the canonical enum.
func (s *Service) Statistics() (*StatsResponse, error) {
	records, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	now := s.now()
	year, month, day := now.Date()
	startOfDay := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	stats := &StatsResponse{TotalUsers: len(records)}
	for i := range records {
		created := records[i].CreatedAt.In(now.Location())
		if !created.Before(startOfDay) && created.Before(startOfDay.Add(24*time.Hour)) {
			stats.UsersRegisteredToday++
		}
		switch records[i].Status {
		case StatusActive:
			stats.ActiveUsers++
		case StatusInactive:
			stats.InactiveUsers++
		}
	}

	return stats, nil
}
