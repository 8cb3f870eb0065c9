package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/menucat/menu-service/internal/cache"
	"github.com/menucat/menu-service/internal/menu"
	"github.com/menucat/menu-service/internal/models"
	"github.com/menucat/menu-service/internal/repositories"
	"github.com/menucat/menu-service/pkg/utils"
)

// --- Read DTOs ---

// PricedTopping is a topping with its derived pricing and availability.
type PricedTopping struct {
	models.Topping
	FinalPrice           float64 `json:"final_price"`
	HasDiscount          bool    `json:"has_discount"`
	DiscountAmount       float64 `json:"discount_amount"`
	IsCurrentlyAvailable bool    `json:"is_currently_available"`
}

// LinkedTopping is a food-topping pairing as exposed on food payloads. Its
// availability is the linked topping's own evaluation; the link itself
// carries no schedule.
type LinkedTopping struct {
	ID                 int64         `json:"id"`
	ToppingID          int64         `json:"topping_id"`
	Topping            PricedTopping `json:"topping"`
	IsToppingAvailable bool          `json:"is_topping_available"`
}

// PricedFood is a food with its derived pricing and availability.
type PricedFood struct {
	models.Food
	FinalPrice           float64 `json:"final_price"`
	HasDiscount          bool    `json:"has_discount"`
	DiscountAmount       float64 `json:"discount_amount"`
	IsCurrentlyAvailable bool    `json:"is_currently_available"`
}

// FoodDetail adds the topping split: currently-available pairings for the
// public menu, plus the unfiltered list for admin-facing views.
type FoodDetail struct {
	PricedFood
	AvailableToppings []LinkedTopping `json:"toppings"`
	AllToppings       []LinkedTopping `json:"all_toppings"`
}

// MenuSection is one category of the grouped menu listing with only its
// currently-available foods.
type MenuSection struct {
	Category models.Category `json:"category"`
	Foods    []PricedFood    `json:"foods"`
}

// FoodFilters narrows the food listing.
type FoodFilters struct {
	CategoryID    *int64
	AvailableOnly bool
	Page          int
	PageSize      int
}

// --- CatalogService ---

// CatalogService is the public read side of the catalog. Every payload
// carries engine-computed final prices and availability; callers supply the
// evaluation instant so results are deterministic under test.
type CatalogService interface {
	GetMenu(ctx context.Context, now menu.ClockTime) ([]MenuSection, error)
	GetFoodDetail(ctx context.Context, foodID int64, now menu.ClockTime) (*FoodDetail, error)
	ListCategories(ctx context.Context, page, pageSize int) ([]models.Category, int, error)
	GetCategory(ctx context.Context, categoryID int64) (*models.Category, error)
	ListFoods(ctx context.Context, filters FoodFilters, now menu.ClockTime) ([]PricedFood, int, error)
	ListToppings(ctx context.Context, availableOnly bool, page, pageSize int, now menu.ClockTime) ([]PricedTopping, int, error)
	GetTopping(ctx context.Context, toppingID int64, now menu.ClockTime) (*PricedTopping, error)
}

type catalogService struct {
	categoryRepo repositories.CategoryRepository
	foodRepo     repositories.FoodRepository
	toppingRepo  repositories.ToppingRepository
	cache        *cache.Cache
}

// NewCatalogService creates a new CatalogService. A nil cache disables
// listing caching.
func NewCatalogService(
	categoryRepo repositories.CategoryRepository,
	foodRepo repositories.FoodRepository,
	toppingRepo repositories.ToppingRepository,
	cch *cache.Cache,
) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		foodRepo:     foodRepo,
		toppingRepo:  toppingRepo,
		cache:        cch,
	}
}

func priceFood(food models.Food, now menu.ClockTime) PricedFood {
	return PricedFood{
		Food:                 food,
		FinalPrice:           menu.FinalPrice(food.Price, food.Discount),
		HasDiscount:          menu.HasDiscount(food.Discount),
		DiscountAmount:       menu.DiscountAmount(food.Price, food.Discount),
		IsCurrentlyAvailable: food.IsAvailableAt(now),
	}
}

func priceTopping(topping models.Topping, now menu.ClockTime) PricedTopping {
	return PricedTopping{
		Topping:              topping,
		FinalPrice:           menu.FinalPrice(topping.Price, topping.Discount),
		HasDiscount:          menu.HasDiscount(topping.Discount),
		DiscountAmount:       menu.DiscountAmount(topping.Price, topping.Discount),
		IsCurrentlyAvailable: topping.IsAvailableAt(now),
	}
}

func linkTopping(link models.FoodTopping, now menu.ClockTime) LinkedTopping {
	priced := priceTopping(*link.Topping, now)
	return LinkedTopping{
		ID:                 link.ID,
		ToppingID:          link.ToppingID,
		Topping:            priced,
		IsToppingAvailable: priced.IsCurrentlyAvailable,
	}
}

func (s *catalogService) GetMenu(ctx context.Context, now menu.ClockTime) ([]MenuSection, error) {
	const cacheKey = "catalog:menu"
	var cached []MenuSection
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		utils.LogError(err, "GetMenu: cache read failed, falling through to database")
	} else if hit {
		return cached, nil
	}

	categories, err := s.categoryRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories for menu: %w", err)
	}
	foods, err := s.foodRepo.ListAll(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load foods for menu: %w", err)
	}

	byCategory := make(map[int64][]PricedFood)
	for _, food := range foods {
		if !food.IsAvailableAt(now) {
			continue
		}
		food.Category = nil // the section header already carries the category
		byCategory[food.CategoryID] = append(byCategory[food.CategoryID], priceFood(food, now))
	}

	// Categories left with no available food are omitted, not shown empty.
	sections := []MenuSection{}
	for _, category := range categories {
		if entries := byCategory[category.ID]; len(entries) > 0 {
			sections = append(sections, MenuSection{Category: category, Foods: entries})
		}
	}

	if err := s.cache.SetJSON(ctx, cacheKey, sections); err != nil {
		utils.LogError(err, "GetMenu: cache write failed")
	}
	return sections, nil
}

func (s *catalogService) GetFoodDetail(ctx context.Context, foodID int64, now menu.ClockTime) (*FoodDetail, error) {
	food, err := s.foodRepo.GetByID(foodID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, fmt.Errorf("failed to get food detail: %w", err)
	}

	detail := &FoodDetail{
		PricedFood:        priceFood(*food, now),
		AvailableToppings: []LinkedTopping{},
		AllToppings:       []LinkedTopping{},
	}
	for _, link := range food.Toppings {
		entry := linkTopping(link, now)
		detail.AllToppings = append(detail.AllToppings, entry)
		if entry.IsToppingAvailable {
			detail.AvailableToppings = append(detail.AvailableToppings, entry)
		}
	}
	return detail, nil
}

func (s *catalogService) ListCategories(ctx context.Context, page, pageSize int) ([]models.Category, int, error) {
	page, pageSize = normalizePage(page, pageSize)
	categories, totalCount, err := s.categoryRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, totalCount, nil
}

func (s *catalogService) GetCategory(ctx context.Context, categoryID int64) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *catalogService) ListFoods(ctx context.Context, filters FoodFilters, now menu.ClockTime) ([]PricedFood, int, error) {
	filters.Page, filters.PageSize = normalizePage(filters.Page, filters.PageSize)

	cacheKey := foodListKey(filters)
	var cached struct {
		Foods []PricedFood `json:"foods"`
		Total int          `json:"total"`
	}
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		utils.LogError(err, "ListFoods: cache read failed, falling through to database")
	} else if hit {
		return cached.Foods, cached.Total, nil
	}

	var foods []PricedFood
	var totalCount int

	if filters.AvailableOnly {
		// Availability is evaluated by the engine, not in SQL, so the
		// filtered listing fetches and pages in process.
		all, err := s.foodRepo.ListAll(filters.CategoryID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get foods: %w", err)
		}
		available := []PricedFood{}
		for _, food := range all {
			if food.IsAvailableAt(now) {
				available = append(available, priceFood(food, now))
			}
		}
		totalCount = len(available)
		foods = pageSlice(available, filters.Page, filters.PageSize)
	} else {
		page, total, err := s.foodRepo.List(filters.CategoryID, filters.Page, filters.PageSize)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get foods: %w", err)
		}
		totalCount = total
		foods = make([]PricedFood, 0, len(page))
		for _, food := range page {
			foods = append(foods, priceFood(food, now))
		}
	}

	cached.Foods, cached.Total = foods, totalCount
	if err := s.cache.SetJSON(ctx, cacheKey, cached); err != nil {
		utils.LogError(err, "ListFoods: cache write failed")
	}
	return foods, totalCount, nil
}

func (s *catalogService) ListToppings(ctx context.Context, availableOnly bool, page, pageSize int, now menu.ClockTime) ([]PricedTopping, int, error) {
	page, pageSize = normalizePage(page, pageSize)

	if availableOnly {
		all, err := s.toppingRepo.ListAll()
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get toppings: %w", err)
		}
		available := []PricedTopping{}
		for _, topping := range all {
			if topping.IsAvailableAt(now) {
				available = append(available, priceTopping(topping, now))
			}
		}
		return pageSlice(available, page, pageSize), len(available), nil
	}

	toppings, totalCount, err := s.toppingRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get toppings: %w", err)
	}
	priced := make([]PricedTopping, 0, len(toppings))
	for _, topping := range toppings {
		priced = append(priced, priceTopping(topping, now))
	}
	return priced, totalCount, nil
}

func (s *catalogService) GetTopping(ctx context.Context, toppingID int64, now menu.ClockTime) (*PricedTopping, error) {
	topping, err := s.toppingRepo.GetByID(toppingID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrToppingNotFound
		}
		return nil, fmt.Errorf("failed to get topping: %w", err)
	}
	priced := priceTopping(*topping, now)
	return &priced, nil
}

// --- helpers ---

func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return page, pageSize
}

func pageSlice[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func foodListKey(filters FoodFilters) string {
	category := "all"
	if filters.CategoryID != nil {
		category = fmt.Sprintf("%d", *filters.CategoryID)
	}
	return fmt.Sprintf("catalog:foods:%s:%t:%d:%d", category, filters.AvailableOnly, filters.Page, filters.PageSize)
}
