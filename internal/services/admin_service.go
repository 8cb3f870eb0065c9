package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/menucat/menu-service/internal/cache"
	"github.com/menucat/menu-service/internal/menu"
	"github.com/menucat/menu-service/internal/models"
	"github.com/menucat/menu-service/internal/repositories"
	"github.com/menucat/menu-service/pkg/utils"
)

// --- Mutation DTOs ---

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	IconURL     *string `json:"icon_url"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IconURL     *string `json:"icon_url"`
}

type CreateFoodRequest struct {
	CategoryID     int64    `json:"category_id" binding:"required"`
	Name           string   `json:"name" binding:"required"`
	Description    *string  `json:"description"`
	Price          float64  `json:"price"`
	Discount       *float64 `json:"discount"`
	IsAvailable    *bool    `json:"is_available"` // defaults to true
	AvailableFrom  *string  `json:"available_from"`
	AvailableTo    *string  `json:"available_to"`
	HeaderImageURL *string  `json:"header_image_url"`
}

type UpdateFoodRequest struct {
	CategoryID     *int64   `json:"category_id"`
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Price          *float64 `json:"price"`
	Discount       *float64 `json:"discount"`
	IsAvailable    *bool    `json:"is_available"`
	AvailableFrom  *string  `json:"available_from"` // empty string clears the bound
	AvailableTo    *string  `json:"available_to"`
	HeaderImageURL *string  `json:"header_image_url"`
}

type CreateToppingRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   *string  `json:"description"`
	Price         float64  `json:"price"`
	Discount      *float64 `json:"discount"`
	IsAvailable   *bool    `json:"is_available"`
	AvailableFrom *string  `json:"available_from"`
	AvailableTo   *string  `json:"available_to"`
}

type UpdateToppingRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	Discount      *float64 `json:"discount"`
	IsAvailable   *bool    `json:"is_available"`
	AvailableFrom *string  `json:"available_from"`
	AvailableTo   *string  `json:"available_to"`
}

type AddFoodImageRequest struct {
	ImageURL string `json:"image_url" binding:"required"`
}

// ItemStatus is the admin display payload: availability badge plus the
// struck-through/discounted price pair.
type ItemStatus struct {
	ID                   int64             `json:"id"`
	Name                 string            `json:"name"`
	Status               menu.Availability `json:"status"`
	IsCurrentlyAvailable bool              `json:"is_currently_available"`
	Price                float64           `json:"price"`
	FinalPrice           float64           `json:"final_price"`
	HasDiscount          bool              `json:"has_discount"`
	DiscountAmount       float64           `json:"discount_amount"`
}

// --- AdminService ---

// AdminService is the write side of the catalog. Input invariants
// (non-negative price, discount within [0,100], parseable windows) are
// enforced here, at the mutation point, so the pricing and availability
// code can assume valid records.
type AdminService interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, categoryID int64, req UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, categoryID int64) error

	CreateFood(ctx context.Context, req CreateFoodRequest) (*models.Food, error)
	UpdateFood(ctx context.Context, foodID int64, req UpdateFoodRequest) (*models.Food, error)
	DeleteFood(ctx context.Context, foodID int64) error

	CreateTopping(ctx context.Context, req CreateToppingRequest) (*models.Topping, error)
	UpdateTopping(ctx context.Context, toppingID int64, req UpdateToppingRequest) (*models.Topping, error)
	DeleteTopping(ctx context.Context, toppingID int64) error

	AddFoodImage(ctx context.Context, foodID int64, req AddFoodImageRequest) (*models.FoodImage, error)
	DeleteFoodImage(ctx context.Context, imageID int64) error

	LinkTopping(ctx context.Context, foodID, toppingID int64) (*models.FoodTopping, error)
	UnlinkTopping(ctx context.Context, foodID, toppingID int64) error

	FoodStatus(ctx context.Context, foodID int64, now menu.ClockTime) (*ItemStatus, error)
	ToppingStatus(ctx context.Context, toppingID int64, now menu.ClockTime) (*ItemStatus, error)
}

type adminService struct {
	categoryRepo repositories.CategoryRepository
	foodRepo     repositories.FoodRepository
	toppingRepo  repositories.ToppingRepository
	db           *sql.DB
	cache        *cache.Cache
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	categoryRepo repositories.CategoryRepository,
	foodRepo repositories.FoodRepository,
	toppingRepo repositories.ToppingRepository,
	db *sql.DB,
	cch *cache.Cache,
) AdminService {
	return &adminService{
		categoryRepo: categoryRepo,
		foodRepo:     foodRepo,
		toppingRepo:  toppingRepo,
		db:           db,
		cache:        cch,
	}
}

// invalidate drops all cached listings after a mutation. Cache failures are
// logged, never surfaced: the write already succeeded.
func (s *adminService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidatePrefix(ctx, "catalog:"); err != nil {
		utils.LogError(err, "failed to invalidate catalog cache after mutation")
	}
}

// --- validation ---

func validatePricing(price float64, discount *float64) error {
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if discount != nil && (*discount < 0 || *discount > 100) {
		return fmt.Errorf("%w: discount must be between 0 and 100", ErrValidation)
	}
	return nil
}

// parseBound turns an optional "HH:MM" string into a clock time. An empty
// string clears the bound.
func parseBound(field string, value *string) (*menu.ClockTime, bool, error) {
	if value == nil {
		return nil, false, nil
	}
	if *value == "" {
		return nil, true, nil
	}
	ct, err := menu.ParseClockTime(*value)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrValidation, field, err)
	}
	return &ct, true, nil
}

// --- Categories ---

func (s *adminService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*models.Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: category name cannot be empty", ErrValidation)
	}
	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		IconURL:     req.IconURL,
	}
	id, err := s.categoryRepo.Create(s.db, category)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrNameConflict, err.Error())
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	s.invalidate(ctx)
	return s.categoryRepo.GetByID(id)
}

func (s *adminService) UpdateCategory(ctx context.Context, categoryID int64, req UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category for update: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: category name cannot be empty if provided", ErrValidation)
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = req.Description
	}
	if req.IconURL != nil {
		category.IconURL = req.IconURL
	}

	if err := s.categoryRepo.Update(s.db, category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrNameConflict, err.Error())
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	s.invalidate(ctx)
	return s.categoryRepo.GetByID(categoryID)
}

func (s *adminService) DeleteCategory(ctx context.Context, categoryID int64) error {
	if err := s.categoryRepo.Delete(s.db, categoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCategoryNotFound
		}
		if strings.Contains(err.Error(), "still has foods") {
			return fmt.Errorf("%w: category still has foods", ErrInUse)
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// --- Foods ---

func (s *adminService) CreateFood(ctx context.Context, req CreateFoodRequest) (*models.Food, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: food name cannot be empty", ErrValidation)
	}
	if err := validatePricing(req.Price, req.Discount); err != nil {
		return nil, err
	}
	from, _, err := parseBound("available_from", req.AvailableFrom)
	if err != nil {
		return nil, err
	}
	to, _, err := parseBound("available_to", req.AvailableTo)
	if err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.GetByID(req.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: category with ID %d not found", ErrCategoryNotFound, req.CategoryID)
		}
		return nil, fmt.Errorf("failed to validate category for food creation: %w", err)
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	food := &models.Food{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		Schedule: menu.Schedule{
			Available: available,
			From:      from,
			To:        to,
		},
		HeaderImageURL: req.HeaderImageURL,
	}

	id, err := s.foodRepo.Create(s.db, food)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrNameConflict, err.Error())
		}
		return nil, fmt.Errorf("failed to create food: %w", err)
	}
	s.invalidate(ctx)
	return s.foodRepo.GetByID(id)
}

func (s *adminService) UpdateFood(ctx context.Context, foodID int64, req UpdateFoodRequest) (*models.Food, error) {
	food, err := s.foodRepo.GetByID(foodID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, fmt.Errorf("failed to find food for update: %w", err)
	}

	if req.CategoryID != nil {
		if _, catErr := s.categoryRepo.GetByID(*req.CategoryID); catErr != nil {
			if errors.Is(catErr, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: new category with ID %d not found", ErrCategoryNotFound, *req.CategoryID)
			}
			return nil, fmt.Errorf("failed to validate new category for food update: %w", catErr)
		}
		food.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: food name cannot be empty if provided", ErrValidation)
		}
		food.Name = *req.Name
	}
	if req.Description != nil {
		food.Description = req.Description
	}
	if req.Price != nil {
		food.Price = *req.Price
	}
	if req.Discount != nil {
		food.Discount = req.Discount
	}
	if err := validatePricing(food.Price, food.Discount); err != nil {
		return nil, err
	}
	if req.IsAvailable != nil {
		food.Available = *req.IsAvailable
	}
	if from, set, err := parseBound("available_from", req.AvailableFrom); err != nil {
		return nil, err
	} else if set {
		food.From = from
	}
	if to, set, err := parseBound("available_to", req.AvailableTo); err != nil {
		return nil, err
	} else if set {
		food.To = to
	}
	if req.HeaderImageURL != nil {
		food.HeaderImageURL = req.HeaderImageURL
	}

	if err := s.foodRepo.Update(s.db, food); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrNameConflict, err.Error())
		}
		return nil, fmt.Errorf("failed to update food: %w", err)
	}
	s.invalidate(ctx)
	return s.foodRepo.GetByID(foodID)
}

func (s *adminService) DeleteFood(ctx context.Context, foodID int64) error {
	if err := s.foodRepo.Delete(s.db, foodID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFoodNotFound
		}
		return fmt.Errorf("failed to delete food: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// --- Toppings ---

func (s *adminService) CreateTopping(ctx context.Context, req CreateToppingRequest) (*models.Topping, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: topping name cannot be empty", ErrValidation)
	}
	if err := validatePricing(req.Price, req.Discount); err != nil {
		return nil, err
	}
	from, _, err := parseBound("available_from", req.AvailableFrom)
	if err != nil {
		return nil, err
	}
	to, _, err := parseBound("available_to", req.AvailableTo)
	if err != nil {
		return nil, err
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	topping := &models.Topping{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		Schedule: menu.Schedule{
			Available: available,
			From:      from,
			To:        to,
		},
	}

	id, err := s.toppingRepo.Create(s.db, topping)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrNameConflict, err.Error())
		}
		return nil, fmt.Errorf("failed to create topping: %w", err)
	}
	s.invalidate(ctx)
	return s.toppingRepo.GetByID(id)
}

func (s *adminService) UpdateTopping(ctx context.Context, toppingID int64, req UpdateToppingRequest) (*models.Topping, error) {
	topping, err := s.toppingRepo.GetByID(toppingID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrToppingNotFound
		}
		return nil, fmt.Errorf("failed to find topping for update: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: topping name cannot be empty if provided", ErrValidation)
		}
		topping.Name = *req.Name
	}
	if req.Description != nil {
		topping.Description = req.Description
	}
	if req.Price != nil {
		topping.Price = *req.Price
	}
	if req.Discount != nil {
		topping.Discount = req.Discount
	}
	if err := validatePricing(topping.Price, topping.Discount); err != nil {
		return nil, err
	}
	if req.IsAvailable != nil {
		topping.Available = *req.IsAvailable
	}
	if from, set, err := parseBound("available_from", req.AvailableFrom); err != nil {
		return nil, err
	} else if set {
		topping.From = from
	}
	if to, set, err := parseBound("available_to", req.AvailableTo); err != nil {
		return nil, err
	} else if set {
		topping.To = to
	}

	if err := s.toppingRepo.Update(s.db, topping); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrNameConflict, err.Error())
		}
		return nil, fmt.Errorf("failed to update topping: %w", err)
	}
	s.invalidate(ctx)
	return s.toppingRepo.GetByID(toppingID)
}

func (s *adminService) DeleteTopping(ctx context.Context, toppingID int64) error {
	if err := s.toppingRepo.Delete(s.db, toppingID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrToppingNotFound
		}
		if strings.Contains(err.Error(), "still linked") {
			return fmt.Errorf("%w: topping is still linked to foods", ErrInUse)
		}
		return fmt.Errorf("failed to delete topping: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// --- Images ---

func (s *adminService) AddFoodImage(ctx context.Context, foodID int64, req AddFoodImageRequest) (*models.FoodImage, error) {
	image := &models.FoodImage{FoodID: foodID, ImageURL: req.ImageURL}
	if _, err := s.foodRepo.AddImage(s.db, image); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, fmt.Errorf("failed to add food image: %w", err)
	}
	s.invalidate(ctx)
	return image, nil
}

func (s *adminService) DeleteFoodImage(ctx context.Context, imageID int64) error {
	if err := s.foodRepo.DeleteImage(s.db, imageID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrImageNotFound
		}
		return fmt.Errorf("failed to delete food image: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// --- Topping links ---

func (s *adminService) LinkTopping(ctx context.Context, foodID, toppingID int64) (*models.FoodTopping, error) {
	link, err := s.foodRepo.LinkTopping(s.db, foodID, toppingID)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrLinkExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: food %d or topping %d does not exist", ErrLinkNotFound, foodID, toppingID)
		}
		return nil, fmt.Errorf("failed to link topping: %w", err)
	}
	s.invalidate(ctx)
	return link, nil
}

func (s *adminService) UnlinkTopping(ctx context.Context, foodID, toppingID int64) error {
	if err := s.foodRepo.UnlinkTopping(s.db, foodID, toppingID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrLinkNotFound
		}
		return fmt.Errorf("failed to unlink topping: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// --- Status badges ---

func (s *adminService) FoodStatus(ctx context.Context, foodID int64, now menu.ClockTime) (*ItemStatus, error) {
	food, err := s.foodRepo.GetByID(foodID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, fmt.Errorf("failed to get food status: %w", err)
	}
	return itemStatus(food.ID, food.Name, food.Price, food.Discount, food.Schedule, now), nil
}

func (s *adminService) ToppingStatus(ctx context.Context, toppingID int64, now menu.ClockTime) (*ItemStatus, error) {
	topping, err := s.toppingRepo.GetByID(toppingID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrToppingNotFound
		}
		return nil, fmt.Errorf("failed to get topping status: %w", err)
	}
	return itemStatus(topping.ID, topping.Name, topping.Price, topping.Discount, topping.Schedule, now), nil
}

func itemStatus(id int64, name string, price float64, discount *float64, schedule menu.Schedule, now menu.ClockTime) *ItemStatus {
	return &ItemStatus{
		ID:                   id,
		Name:                 name,
		Status:               schedule.StatusAt(now),
		IsCurrentlyAvailable: schedule.IsAvailableAt(now),
		Price:                price,
		FinalPrice:           menu.FinalPrice(price, discount),
		HasDiscount:          menu.HasDiscount(discount),
		DiscountAmount:       menu.DiscountAmount(price, discount),
	}
}
