package postgres

import (
	"context"
	"fmt"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/common/page"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	userDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/user"
	"github.com/frahmantamala/employee-management/internal/database"
	"github.com/frahmantamala/employee-management/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements employee.RepositoryAPI using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Transaction(ctx context.Context, fn func(repo employee.RepositoryAPI) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&EmployeeRepository{db: tx})
	})
}

// Save inserts e when it has no id and overwrites the row otherwise.
func (r *EmployeeRepository) Save(ctx context.Context, e *employee.Employee) error {
	model := employee.ToDataModel(e)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("save employee: %w", err)
	}
	e.ID = model.ID
	e.CreatedAt = model.CreatedAt
	e.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	var model employeeDatamodel.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee by id: %w", err)
	}
	return employee.FromDataModel(&model), nil
}

func (r *EmployeeRepository) FindAll(ctx context.Context, req page.Request) ([]*employee.Employee, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&employeeDatamodel.Employee{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	var models []employeeDatamodel.Employee
	err := r.db.WithContext(ctx).
		Order(req.OrderClause("id ASC")).
		Limit(req.Size).
		Offset(req.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}

	employees := make([]*employee.Employee, len(models))
	for i := range models {
		employees[i] = employee.FromDataModel(&models[i])
	}
	return employees, total, nil
}

func (r *EmployeeRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&employeeDatamodel.Employee{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check employee existence: %w", err)
	}
	return count > 0, nil
}

func (r *EmployeeRepository) DeleteByID(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&employeeDatamodel.Employee{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete employee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrEmployeeNotFound
	}
	return nil
}

// FindCreatorID resolves a username or email to a user id, preferring a
// username match.
func (r *EmployeeRepository) FindCreatorID(ctx context.Context, identifier string) (int64, error) {
	var users []userDatamodel.User
	err := r.db.WithContext(ctx).
		Select("id", "username").
		Where("username = ? OR email = ?", identifier, identifier).
		Limit(2).
		Find(&users).Error
	if err != nil {
		return 0, fmt.Errorf("find creator: %w", err)
	}
	if len(users) == 0 {
		return 0, internal.ErrCreatorNotFound
	}
	for _, u := range users {
		if u.Username == identifier {
			return u.ID, nil
		}
	}
	return users[0].ID, nil
}
