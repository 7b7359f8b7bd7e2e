package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/common/page"
	userDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/user"
	"github.com/frahmantamala/employee-management/internal/database"
	"github.com/frahmantamala/employee-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Save inserts u when it has no id and updates it otherwise. Unique index
// collisions surface as the duplicate username/email errors.
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	model := user.ToDataModel(u)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if detail, ok := database.UniqueViolation(err); ok {
			if strings.Contains(strings.ToLower(detail), "email") {
				return internal.ErrDuplicateEmail.WithCause(err)
			}
			return internal.ErrDuplicateUsername.WithCause(err)
		}
		return fmt.Errorf("save user: %w", err)
	}
	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	var model userDatamodel.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, internal.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return user.FromDataModel(&model), nil
}

// FindByUsernameOrEmail matches the identifier against both columns; usernames
// win when one account's username equals another's email.
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (*user.User, error) {
	var models []userDatamodel.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		Limit(2).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("find user by username or email: %w", err)
	}
	if len(models) == 0 {
		return nil, internal.ErrUserNotFound
	}
	for i := range models {
		if models[i].Username == identifier {
			return user.FromDataModel(&models[i]), nil
		}
	}
	return user.FromDataModel(&models[0]), nil
}

func (r *UserRepository) FindAll(ctx context.Context, req page.Request) ([]*user.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&userDatamodel.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	var models []userDatamodel.User
	err := r.db.WithContext(ctx).
		Order(req.OrderClause("id ASC")).
		Limit(req.Size).
		Offset(req.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = user.FromDataModel(&models[i])
	}
	return users, total, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *UserRepository) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userDatamodel.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check user existence: %w", err)
	}
	return count > 0, nil
}
