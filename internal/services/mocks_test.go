package services

import (
	"fmt"
	"time"

	"github.com/menucat/menu-service/internal/menu"
	"github.com/menucat/menu-service/internal/models"
	"github.com/menucat/menu-service/internal/repositories"
)

func fptr(v float64) *float64 { return &v }

func ctptr(h, m int) *menu.ClockTime {
	ct := menu.MustClockTime(h, m)
	return &ct
}

// --------------------------------------------------
// Mock repositories
// --------------------------------------------------

type mockCategoryRepo struct {
	categories []models.Category
	nextID     int64
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{nextID: 1}
}

func (m *mockCategoryRepo) Create(_ repositories.SQLExecutor, category *models.Category) (int64, error) {
	for _, c := range m.categories {
		if c.Name == category.Name {
			return 0, fmt.Errorf("%w: category name '%s'", repositories.ErrDuplicateKey, category.Name)
		}
	}
	category.ID = m.nextID
	m.nextID++
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	m.categories = append(m.categories, *category)
	return category.ID, nil
}

func (m *mockCategoryRepo) GetByID(id int64) (*models.Category, error) {
	for i := range m.categories {
		if m.categories[i].ID == id {
			c := m.categories[i]
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockCategoryRepo) List(page, pageSize int) ([]models.Category, int, error) {
	return m.categories, len(m.categories), nil
}

func (m *mockCategoryRepo) ListAll() ([]models.Category, error) {
	return m.categories, nil
}

func (m *mockCategoryRepo) Update(_ repositories.SQLExecutor, category *models.Category) error {
	for i := range m.categories {
		if m.categories[i].ID == category.ID {
			m.categories[i] = *category
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *mockCategoryRepo) Delete(_ repositories.SQLExecutor, id int64) error {
	for i := range m.categories {
		if m.categories[i].ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type mockFoodRepo struct {
	foods  []models.Food
	links  []models.FoodTopping
	images []models.FoodImage
	nextID int64
}

func newMockFoodRepo() *mockFoodRepo {
	return &mockFoodRepo{nextID: 1}
}

func (m *mockFoodRepo) Create(_ repositories.SQLExecutor, food *models.Food) (int64, error) {
	food.ID = m.nextID
	m.nextID++
	food.CreatedAt = time.Now()
	food.UpdatedAt = food.CreatedAt
	m.foods = append(m.foods, *food)
	return food.ID, nil
}

func (m *mockFoodRepo) GetByID(id int64) (*models.Food, error) {
	for i := range m.foods {
		if m.foods[i].ID == id {
			food := m.foods[i]
			links, _ := m.ToppingLinks(id)
			food.Toppings = links
			return &food, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockFoodRepo) List(categoryID *int64, page, pageSize int) ([]models.Food, int, error) {
	filtered, _ := m.ListAll(categoryID)
	return filtered, len(filtered), nil
}

func (m *mockFoodRepo) ListAll(categoryID *int64) ([]models.Food, error) {
	result := []models.Food{}
	for _, food := range m.foods {
		if categoryID == nil || food.CategoryID == *categoryID {
			result = append(result, food)
		}
	}
	return result, nil
}

func (m *mockFoodRepo) Update(_ repositories.SQLExecutor, food *models.Food) error {
	for i := range m.foods {
		if m.foods[i].ID == food.ID {
			m.foods[i] = *food
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *mockFoodRepo) Delete(_ repositories.SQLExecutor, id int64) error {
	for i := range m.foods {
		if m.foods[i].ID == id {
			m.foods = append(m.foods[:i], m.foods[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *mockFoodRepo) AddImage(_ repositories.SQLExecutor, image *models.FoodImage) (int64, error) {
	if _, err := m.GetByID(image.FoodID); err != nil {
		return 0, repositories.ErrNotFound
	}
	image.ID = m.nextID
	m.nextID++
	m.images = append(m.images, *image)
	return image.ID, nil
}

func (m *mockFoodRepo) DeleteImage(_ repositories.SQLExecutor, imageID int64) error {
	for i := range m.images {
		if m.images[i].ID == imageID {
			m.images = append(m.images[:i], m.images[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *mockFoodRepo) ToppingLinks(foodID int64) ([]models.FoodTopping, error) {
	result := []models.FoodTopping{}
	for _, link := range m.links {
		if link.FoodID == foodID {
			result = append(result, link)
		}
	}
	return result, nil
}

func (m *mockFoodRepo) LinkTopping(_ repositories.SQLExecutor, foodID, toppingID int64) (*models.FoodTopping, error) {
	for _, link := range m.links {
		if link.FoodID == foodID && link.ToppingID == toppingID {
			return nil, fmt.Errorf("%w: food %d already has topping %d", repositories.ErrDuplicateKey, foodID, toppingID)
		}
	}
	link := models.FoodTopping{ID: m.nextID, FoodID: foodID, ToppingID: toppingID}
	m.nextID++
	m.links = append(m.links, link)
	return &link, nil
}

func (m *mockFoodRepo) UnlinkTopping(_ repositories.SQLExecutor, foodID, toppingID int64) error {
	for i := range m.links {
		if m.links[i].FoodID == foodID && m.links[i].ToppingID == toppingID {
			m.links = append(m.links[:i], m.links[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// linkWith registers a link with the topping already joined, the way the
// real repository returns them.
func (m *mockFoodRepo) linkWith(foodID int64, topping *models.Topping) {
	m.links = append(m.links, models.FoodTopping{
		ID:        m.nextID,
		FoodID:    foodID,
		ToppingID: topping.ID,
		Topping:   topping,
	})
	m.nextID++
}

type mockToppingRepo struct {
	toppings []models.Topping
	nextID   int64
}

func newMockToppingRepo() *mockToppingRepo {
	return &mockToppingRepo{nextID: 1}
}

func (m *mockToppingRepo) Create(_ repositories.SQLExecutor, topping *models.Topping) (int64, error) {
	topping.ID = m.nextID
	m.nextID++
	topping.CreatedAt = time.Now()
	topping.UpdatedAt = topping.CreatedAt
	m.toppings = append(m.toppings, *topping)
	return topping.ID, nil
}

func (m *mockToppingRepo) GetByID(id int64) (*models.Topping, error) {
	for i := range m.toppings {
		if m.toppings[i].ID == id {
			t := m.toppings[i]
			return &t, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockToppingRepo) List(page, pageSize int) ([]models.Topping, int, error) {
	return m.toppings, len(m.toppings), nil
}

func (m *mockToppingRepo) ListAll() ([]models.Topping, error) {
	return m.toppings, nil
}

func (m *mockToppingRepo) Update(_ repositories.SQLExecutor, topping *models.Topping) error {
	for i := range m.toppings {
		if m.toppings[i].ID == topping.ID {
			m.toppings[i] = *topping
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *mockToppingRepo) Delete(_ repositories.SQLExecutor, id int64) error {
	for i := range m.toppings {
		if m.toppings[i].ID == id {
			m.toppings = append(m.toppings[:i], m.toppings[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}
