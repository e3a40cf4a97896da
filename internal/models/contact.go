package models

type ContactMessage struct {
	BaseModel
	Name    string        `gorm:"not null" json:"name"`
	Email   string        `gorm:"not null" json:"email"`
	Subject string        `json:"subject"`
	Message string        `gorm:"not null" json:"message"`
	Status  ContactStatus `gorm:"type:varchar(20);default:'new'" json:"status"`
}
