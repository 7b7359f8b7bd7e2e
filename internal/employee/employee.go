package employee

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-management/internal/core/common/validation"
)

type Department string

const (
	DepartmentEngineering Department = "ENGINEERING"
	DepartmentHR          Department = "HR"
	DepartmentFinance     Department = "FINANCE"
	DepartmentMarketing   Department = "MARKETING"
	DepartmentSales       Department = "SALES"
	DepartmentOperations  Department = "OPERATIONS"
)

// Departments lists every accepted department in display order.
var Departments = []Department{
	DepartmentEngineering,
	DepartmentHR,
	DepartmentFinance,
	DepartmentMarketing,
	DepartmentSales,
	DepartmentOperations,
}

func (d Department) Valid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

func departmentNames() []string {
	names := make([]string, len(Departments))
	for i, d := range Departments {
		names[i] = string(d)
	}
	return names
}

// Employee is a business record. CreatedByID is nil once the creating user
// has been removed.
type Employee struct {
	ID          int64
	Name        string
	Position    string
	Department  Department
	HireDate    time.Time
	CreatedByID *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// View is the employee as returned to clients. The creator is not exposed.
type View struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Position   string     `json:"position"`
	Department Department `json:"department"`
	HireDate   string     `json:"hireDate"`
}

// Apply overwrites every mutable field from dto. The dto must be validated.
func (e *Employee) Apply(dto EmployeeDTO) {
	e.Name = dto.Name
	e.Position = dto.Position
	e.Department = Department(dto.Department)
	e.HireDate = dto.HireDateValue()
}

func (e *Employee) ToView() View {
	return View{
		ID:         e.ID,
		Name:       e.Name,
		Position:   e.Position,
		Department: e.Department,
		HireDate:   e.HireDate.Format(validation.DateLayout),
	}
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:          e.ID,
		Name:        e.Name,
		Position:    e.Position,
		Department:  string(e.Department),
		HireDate:    e.HireDate,
		CreatedByID: e.CreatedByID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromDataModel(m *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:          m.ID,
		Name:        m.Name,
		Position:    m.Position,
		Department:  Department(m.Department),
		HireDate:    m.HireDate.UTC(),
		CreatedByID: m.CreatedByID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
