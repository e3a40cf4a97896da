package models

// Трехуровневая таксономия маркетплейса услуг:
// категория -> подкатегория -> предложение; заявка ссылается на подкатегорию.

type ServiceCategory struct {
	BaseModel
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`

	Subcategories []ServiceSubcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
}

type ServiceSubcategory struct {
	BaseModel
	CategoryID  string `gorm:"not null;index" json:"category_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
}

type ServiceOffering struct {
	BaseModel
	SubcategoryID string  `gorm:"not null;index" json:"subcategory_id"`
	ProviderID    string  `gorm:"not null;index" json:"provider_id"` // business/agency пользователь
	Title         string  `gorm:"not null" json:"title"`
	Description   string  `json:"description"`
	PriceFrom     float64 `json:"price_from"`
	PriceTo       float64 `json:"price_to"`
	IsActive      bool    `gorm:"default:true" json:"is_active"`
}

type ServiceRequest struct {
	BaseModel
	SubcategoryID  string               `gorm:"not null;index" json:"subcategory_id"`
	UserID         string               `gorm:"index" json:"user_id"` // пусто для гостевых заявок
	ContactName    string               `gorm:"not null" json:"contact_name"`
	ContactEmail   string               `gorm:"not null" json:"contact_email"`
	ContactPhone   string               `json:"contact_phone"`
	ProjectDetails string               `json:"project_details"`
	Budget         string               `json:"budget"`
	Timeline       string               `json:"timeline"`
	Status         ServiceRequestStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
}
