package employee

import (
	"strings"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/common/validation"
)

// EmployeeDTO is the body of create and update requests. HireDate is YYYY-MM-DD.
type EmployeeDTO struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	HireDate   string `json:"hireDate"`
}

func (d *EmployeeDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Position = strings.TrimSpace(d.Position)
	d.Department = strings.TrimSpace(d.Department)
	d.HireDate = strings.TrimSpace(d.HireDate)
}

func (d EmployeeDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("position", d.Position).Required().MaxLength(100)
	v.Field("department", d.Department).Required().OneOf(departmentNames(), internal.ErrCodeInvalidDepartment)
	v.Field("hireDate", d.HireDate).Required().Date()
	return v.Err()
}

// HireDateValue returns the hire date at UTC midnight, or the zero time when
// HireDate does not parse.
func (d EmployeeDTO) HireDateValue() time.Time {
	t, err := time.Parse(validation.DateLayout, d.HireDate)
	if err != nil {
		return time.Time{}
	}
	return t
}
