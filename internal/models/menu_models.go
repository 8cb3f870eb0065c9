package models

import (
	"time"

	"github.com/menucat/menu-service/internal/menu"
)

// Category groups foods. It carries no pricing or availability fields of its
// own; its visible food list is derived from each food's schedule.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IconURL     *string   `json:"icon_url"`
	FoodsCount  int       `json:"foods_count"` // foods with the manual flag on
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Food is a priced, discountable, schedulable menu entry.
type Food struct {
	ID             int64    `json:"id"`
	CategoryID     int64    `json:"category_id"`
	Name           string   `json:"name"`
	Description    *string  `json:"description"`
	Price          float64  `json:"price"`
	Discount       *float64 `json:"discount"`
	menu.Schedule
	HeaderImageURL *string   `json:"header_image_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Populated on joined reads.
	Category *Category     `json:"category,omitempty"`
	Images   []FoodImage   `json:"images,omitempty"`
	Toppings []FoodTopping `json:"-"`
}

// FoodImage is an additional gallery image for a food. Only the URL is
// stored; binary storage lives elsewhere.
type FoodImage struct {
	ID        int64     `json:"id"`
	FoodID    int64     `json:"food_id"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Topping is an optional extra with its own price, discount and schedule.
type Topping struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       float64  `json:"price"`
	Discount    *float64 `json:"discount"`
	menu.Schedule
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FoodTopping links a food to a topping. The pair is unique and carries no
// schedule of its own; its availability follows the linked topping.
type FoodTopping struct {
	ID        int64     `json:"id"`
	FoodID    int64     `json:"food_id"`
	ToppingID int64     `json:"topping_id"`
	Topping   *Topping  `json:"topping,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
