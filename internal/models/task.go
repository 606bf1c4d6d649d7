package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	DueDate     *time.Time `json:"due_date"`
	ProjectID   uint64     `gorm:"not null;index" json:"project_id"`
	OwnerID     uint64     `gorm:"not null;index" json:"owner_id"`
	CreatedByID *uint64    `json:"-"`
	UpdatedByID *uint64    `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Project   Project `gorm:"foreignKey:ProjectID" json:"-"`
	Owner     User    `gorm:"foreignKey:OwnerID" json:"-"`
	CreatedBy *User   `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
	UpdatedBy *User   `gorm:"foreignKey:UpdatedByID;constraint:OnDelete:SET NULL" json:"-"`
}

// OwnedBy reports whether the task belongs to the given user.
func (t *Task) OwnedBy(userID uint64) bool {
	return t.OwnerID == userID
}
