package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/common/page"
	"github.com/frahmantamala/employee-management/internal/core/events"
)

// RepositoryAPI is the employee store. Lookups return internal.ErrEmployeeNotFound
// and creator resolution returns internal.ErrCreatorNotFound.
type RepositoryAPI interface {
	Save(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindAll(ctx context.Context, req page.Request) ([]*Employee, int64, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
	FindCreatorID(ctx context.Context, identifier string) (int64, error)
	// Transaction runs fn against a repository bound to one database
	// transaction. fn returning an error rolls it back.
	Transaction(ctx context.Context, fn func(repo RepositoryAPI) error) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// SortableFields maps public sort keys to employee columns.
var SortableFields = map[string]string{
	"id":         "id",
	"name":       "name",
	"position":   "position",
	"department": "department",
	"hireDate":   "hire_date",
}

type Service struct {
	repo      RepositoryAPI
	publisher EventPublisher
	logger    *slog.Logger
}

// NewService builds the employee service. publisher may be nil.
func NewService(repo RepositoryAPI, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Create stores a new employee attributed to the user named by creatorIdentifier.
func (s *Service) Create(ctx context.Context, dto EmployeeDTO, creatorIdentifier string) (*View, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var created *Employee
	err := s.repo.Transaction(ctx, func(repo RepositoryAPI) error {
		creatorID, err := repo.FindCreatorID(ctx, creatorIdentifier)
		if err != nil {
			return err
		}

		now := time.Now()
		e := &Employee{CreatedByID: &creatorID, CreatedAt: now, UpdatedAt: now}
		e.Apply(dto)
		if err := repo.Save(ctx, e); err != nil {
			return err
		}
		created = e
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create employee", "creator", creatorIdentifier, "error", err)
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", created.ID, "creator", creatorIdentifier)
	s.publish(ctx, events.NewEmployeeCreatedEvent(created.ID, creatorIdentifier, string(created.Department)))

	v := created.ToView()
	return &v, nil
}

func (s *Service) List(ctx context.Context, req page.Request) (*page.Page[View], error) {
	employees, total, err := s.repo.FindAll(ctx, req)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	views := make([]View, len(employees))
	for i, e := range employees {
		views[i] = e.ToView()
	}
	return page.New(views, req, total), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*View, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := e.ToView()
	return &v, nil
}

// Update overwrites name, position, department and hire date. The creator is kept.
func (s *Service) Update(ctx context.Context, id int64, dto EmployeeDTO) (*View, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var updated *Employee
	err := s.repo.Transaction(ctx, func(repo RepositoryAPI) error {
		e, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		e.Apply(dto)
		e.UpdatedAt = time.Now()
		if err := repo.Save(ctx, e); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		s.logger.Warn("failed to update employee", "employee_id", id, "error", err)
		return nil, err
	}

	actor := internal.PrincipalNameFromContext(ctx)
	s.logger.Info("employee updated", "employee_id", id, "actor", actor)
	s.publish(ctx, events.NewEmployeeUpdatedEvent(id, actor, string(updated.Department)))

	v := updated.ToView()
	return &v, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Transaction(ctx, func(repo RepositoryAPI) error {
		exists, err := repo.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return internal.ErrEmployeeNotFound
		}
		return repo.DeleteByID(ctx, id)
	})
	if err != nil {
		s.logger.Warn("failed to delete employee", "employee_id", id, "error", err)
		return err
	}

	actor := internal.PrincipalNameFromContext(ctx)
	s.logger.Info("employee deleted", "employee_id", id, "actor", actor)
	s.publish(ctx, events.NewEmployeeDeletedEvent(id, actor))
	return nil
}

// publish runs after commit, so a failing subscriber is logged and does not
// fail the request.
func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
