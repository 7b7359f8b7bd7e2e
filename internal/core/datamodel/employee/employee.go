package employee

import "time"

type Employee struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;size:100;not null"`
	Position    string    `gorm:"column:position;size:100;not null"`
	Department  string    `gorm:"column:department;size:32;not null;index"`
	HireDate    time.Time `gorm:"column:hire_date;type:date;not null"`
	CreatedByID *int64    `gorm:"column:created_by;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
