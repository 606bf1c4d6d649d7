package models

import "time"

type ProjectCategory string

const (
	CategoryPersonal ProjectCategory = "personal"
	CategoryWork     ProjectCategory = "work"
	CategoryHobby    ProjectCategory = "hobby"
	CategoryOther    ProjectCategory = "other"
)

type Project struct {
	ID          uint64          `gorm:"primarykey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Categories  ProjectCategory `gorm:"type:varchar(50);not null;default:'personal'" json:"categories"`
	// IsOwner is stored and exposed but never read by any business rule.
	IsOwner     bool      `gorm:"not null;default:true" json:"is_owner"`
	OwnerID     uint64    `gorm:"not null;index" json:"owner_id"`
	CreatedByID *uint64   `json:"-"`
	UpdatedByID *uint64   `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Owner     User   `gorm:"foreignKey:OwnerID" json:"-"`
	CreatedBy *User  `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
	UpdatedBy *User  `gorm:"foreignKey:UpdatedByID;constraint:OnDelete:SET NULL" json:"-"`
	Tasks     []Task `gorm:"foreignKey:ProjectID" json:"-"`
}

// OwnedBy reports whether the project belongs to the given user. Every
// read and write on a project must pass this check first.
func (p *Project) OwnedBy(userID uint64) bool {
	return p.OwnerID == userID
}
