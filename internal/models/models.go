package models

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Name         string `gorm:"not null"                 json:"name"`
	Birthday     string `json:"birthday,omitempty"`
	Admin        bool   `gorm:"default:false"            json:"admin"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null"     json:"name"`
}

type Item struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"      json:"id"`
	Name        string  `gorm:"uniqueIndex;not null"          json:"name"`
	CategoryID  uint    `gorm:"index;not null"                json:"category_id"`
	Price       float64 `gorm:"not null;check:price >= 0"     json:"price"`
	Quantity    uint    `json:"quantity"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
}

type Order struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint    `gorm:"index;not null"           json:"user_id"`
	Total     float64 `gorm:"not null"                 json:"total"`
	Status    string  `gorm:"not null"                 json:"status"`
	CreatedAt int64   `gorm:"not null"                 json:"created_at"`
}

type OrderItem struct {
	ID       uint `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID  uint `gorm:"index;not null"           json:"order_id"`
	UserID   uint `gorm:"not null"                 json:"user_id"`
	ItemID   uint `gorm:"not null"                 json:"item_id"`
	Quantity uint `gorm:"default:1"                json:"quantity"`
}

type Favourite struct {
	ID     uint `gorm:"primaryKey;autoIncrement"                json:"id"`
	UserID uint `gorm:"uniqueIndex:idx_favourite_user_item"     json:"user_id"`
	ItemID uint `gorm:"uniqueIndex:idx_favourite_user_item"     json:"item_id"`
}
