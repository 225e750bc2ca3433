package transport

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CreateItemRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    uint    `json:"quantity"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

type PatchItemRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PatchProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Birthday *string `json:"birthday"`
}

type OrderLine struct {
	ItemID   uint `json:"item_id"`
	Quantity uint `json:"quantity"`
}

type CreateOrderRequest struct {
	Items []OrderLine `json:"items"`
}
