package services

import (
	"context"
	"errors"
	"testing"

	"github.com/menucat/menu-service/internal/menu"
	"github.com/menucat/menu-service/internal/models"
)

func newCatalogFixture() (*mockCategoryRepo, *mockFoodRepo, *mockToppingRepo, CatalogService) {
	categoryRepo := newMockCategoryRepo()
	foodRepo := newMockFoodRepo()
	toppingRepo := newMockToppingRepo()
	svc := NewCatalogService(categoryRepo, foodRepo, toppingRepo, nil)
	return categoryRepo, foodRepo, toppingRepo, svc
}

func TestGetMenuGroupsAndFilters(t *testing.T) {
	categoryRepo, foodRepo, _, svc := newCatalogFixture()

	categoryRepo.categories = []models.Category{
		{ID: 1, Name: "Pizza"},
		{ID: 2, Name: "Drinks"},
	}
	foodRepo.foods = []models.Food{
		{
			ID: 10, CategoryID: 1, Name: "Margherita", Price: 10.0, Discount: fptr(20),
			Schedule: menu.Schedule{Available: true},
		},
		{
			ID: 11, CategoryID: 2, Name: "Cola", Price: 3.0,
			Schedule: menu.Schedule{Available: false},
		},
	}

	noon := menu.MustClockTime(12, 0)
	sections, err := svc.GetMenu(context.Background(), noon)
	if err != nil {
		t.Fatalf("GetMenu returned error: %v", err)
	}

	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Category.Name != "Pizza" {
		t.Errorf("expected Pizza section, got %q", sections[0].Category.Name)
	}
	if len(sections[0].Foods) != 1 {
		t.Fatalf("expected 1 food in section, got %d", len(sections[0].Foods))
	}

	food := sections[0].Foods[0]
	if food.FinalPrice != 8.00 {
		t.Errorf("expected final price 8.00, got %v", food.FinalPrice)
	}
	if !food.HasDiscount {
		t.Error("expected HasDiscount true")
	}
	if !food.IsCurrentlyAvailable {
		t.Error("expected food to be available")
	}
}

func TestGetMenuOmitsCategoryWithOnlyWindowedOutFood(t *testing.T) {
	categoryRepo, foodRepo, _, svc := newCatalogFixture()

	categoryRepo.categories = []models.Category{{ID: 1, Name: "Breakfast"}}
	foodRepo.foods = []models.Food{
		{
			ID: 10, CategoryID: 1, Name: "Omelette", Price: 6.0,
			Schedule: menu.Schedule{Available: true, From: ctptr(7, 0), To: ctptr(11, 0)},
		},
	}

	sections, err := svc.GetMenu(context.Background(), menu.MustClockTime(15, 0))
	if err != nil {
		t.Fatalf("GetMenu returned error: %v", err)
	}
	if len(sections) != 0 {
		t.Fatalf("expected no sections at 15:00, got %d", len(sections))
	}

	sections, err = svc.GetMenu(context.Background(), menu.MustClockTime(9, 0))
	if err != nil {
		t.Fatalf("GetMenu returned error: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("expected 1 section at 09:00, got %d", len(sections))
	}
}

func TestGetFoodDetailSplitsToppings(t *testing.T) {
	_, foodRepo, _, svc := newCatalogFixture()

	foodRepo.foods = []models.Food{
		{
			ID: 10, CategoryID: 1, Name: "Margherita", Price: 10.0,
			Schedule: menu.Schedule{Available: true},
		},
	}
	cheese := &models.Topping{
		ID: 1, Name: "Extra Cheese", Price: 2.50, Discount: fptr(0),
		Schedule: menu.Schedule{Available: true},
	}
	truffle := &models.Topping{
		ID: 2, Name: "Truffle", Price: 5.0,
		Schedule: menu.Schedule{Available: false},
	}
	foodRepo.linkWith(10, cheese)
	foodRepo.linkWith(10, truffle)

	detail, err := svc.GetFoodDetail(context.Background(), 10, menu.MustClockTime(12, 0))
	if err != nil {
		t.Fatalf("GetFoodDetail returned error: %v", err)
	}

	if len(detail.AllToppings) != 2 {
		t.Fatalf("expected 2 toppings total, got %d", len(detail.AllToppings))
	}
	if len(detail.AvailableToppings) != 1 {
		t.Fatalf("expected 1 available topping, got %d", len(detail.AvailableToppings))
	}
	if detail.AvailableToppings[0].Topping.Name != "Extra Cheese" {
		t.Errorf("expected Extra Cheese to be the available topping, got %q", detail.AvailableToppings[0].Topping.Name)
	}

	// Zero discount passes the price through untouched.
	if got := detail.AvailableToppings[0].Topping.FinalPrice; got != 2.50 {
		t.Errorf("expected topping final price 2.50, got %v", got)
	}
	if detail.AvailableToppings[0].Topping.HasDiscount {
		t.Error("zero discount must not count as a discount")
	}

	for _, link := range detail.AllToppings {
		if link.ToppingID == 2 && link.IsToppingAvailable {
			t.Error("disabled topping must be reported unavailable on the pairing")
		}
	}
}

func TestGetFoodDetailPairingFollowsToppingNotFood(t *testing.T) {
	_, foodRepo, _, svc := newCatalogFixture()

	// The food itself is available all day; only the topping is off.
	foodRepo.foods = []models.Food{
		{ID: 10, CategoryID: 1, Name: "Burger", Price: 9.0, Schedule: menu.Schedule{Available: true}},
	}
	foodRepo.linkWith(10, &models.Topping{
		ID: 3, Name: "Bacon", Price: 1.5,
		Schedule: menu.Schedule{Available: false},
	})

	detail, err := svc.GetFoodDetail(context.Background(), 10, menu.MustClockTime(12, 0))
	if err != nil {
		t.Fatalf("GetFoodDetail returned error: %v", err)
	}
	if !detail.IsCurrentlyAvailable {
		t.Error("expected the food itself to be available")
	}
	if len(detail.AvailableToppings) != 0 {
		t.Error("pairing with a disabled topping must not be offered")
	}
}

func TestGetFoodDetailNotFound(t *testing.T) {
	_, _, _, svc := newCatalogFixture()

	_, err := svc.GetFoodDetail(context.Background(), 99, menu.MustClockTime(12, 0))
	if !errors.Is(err, ErrFoodNotFound) {
		t.Errorf("expected ErrFoodNotFound, got %v", err)
	}
}

func TestListFoodsAvailableOnly(t *testing.T) {
	_, foodRepo, _, svc := newCatalogFixture()

	foodRepo.foods = []models.Food{
		{ID: 1, CategoryID: 1, Name: "All day", Price: 5.0, Schedule: menu.Schedule{Available: true}},
		{ID: 2, CategoryID: 1, Name: "Disabled", Price: 5.0, Schedule: menu.Schedule{Available: false}},
		{
			ID: 3, CategoryID: 1, Name: "Night only", Price: 5.0,
			Schedule: menu.Schedule{Available: true, From: ctptr(22, 0), To: ctptr(2, 0)},
		},
	}

	noon := menu.MustClockTime(12, 0)
	foods, total, err := svc.ListFoods(context.Background(), FoodFilters{AvailableOnly: true}, noon)
	if err != nil {
		t.Fatalf("ListFoods returned error: %v", err)
	}
	if total != 1 || len(foods) != 1 {
		t.Fatalf("expected 1 available food at noon, got %d (total %d)", len(foods), total)
	}
	if foods[0].Name != "All day" {
		t.Errorf("unexpected food %q", foods[0].Name)
	}

	// The overnight window opens the third food after 22:00.
	night := menu.MustClockTime(23, 30)
	foods, total, err = svc.ListFoods(context.Background(), FoodFilters{AvailableOnly: true}, night)
	if err != nil {
		t.Fatalf("ListFoods returned error: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 available foods at night, got %d", total)
	}

	// Without the filter everything comes back.
	foods, total, err = svc.ListFoods(context.Background(), FoodFilters{}, noon)
	if err != nil {
		t.Fatalf("ListFoods returned error: %v", err)
	}
	if total != 3 || len(foods) != 3 {
		t.Fatalf("expected all 3 foods, got %d (total %d)", len(foods), total)
	}
}

func TestListFoodsByCategory(t *testing.T) {
	_, foodRepo, _, svc := newCatalogFixture()

	foodRepo.foods = []models.Food{
		{ID: 1, CategoryID: 1, Name: "Margherita", Price: 10.0, Schedule: menu.Schedule{Available: true}},
		{ID: 2, CategoryID: 2, Name: "Cola", Price: 3.0, Schedule: menu.Schedule{Available: true}},
	}

	categoryID := int64(2)
	foods, total, err := svc.ListFoods(context.Background(), FoodFilters{CategoryID: &categoryID, AvailableOnly: true}, menu.MustClockTime(12, 0))
	if err != nil {
		t.Fatalf("ListFoods returned error: %v", err)
	}
	if total != 1 || foods[0].Name != "Cola" {
		t.Fatalf("expected only Cola for category 2, got %d foods", total)
	}
}

func TestListToppingsAvailableOnly(t *testing.T) {
	_, _, toppingRepo, svc := newCatalogFixture()

	toppingRepo.toppings = []models.Topping{
		{ID: 1, Name: "Cheese", Price: 2.50, Schedule: menu.Schedule{Available: true}},
		{ID: 2, Name: "Bacon", Price: 1.50, Schedule: menu.Schedule{Available: false}},
	}

	toppings, total, err := svc.ListToppings(context.Background(), true, 1, 20, menu.MustClockTime(12, 0))
	if err != nil {
		t.Fatalf("ListToppings returned error: %v", err)
	}
	if total != 1 || len(toppings) != 1 {
		t.Fatalf("expected 1 available topping, got %d", total)
	}
	if toppings[0].Name != "Cheese" {
		t.Errorf("unexpected topping %q", toppings[0].Name)
	}
}

func TestGetToppingPricing(t *testing.T) {
	_, _, toppingRepo, svc := newCatalogFixture()

	toppingRepo.toppings = []models.Topping{
		{ID: 1, Name: "Cheese", Price: 2.50, Discount: fptr(10), Schedule: menu.Schedule{Available: false}},
	}

	topping, err := svc.GetTopping(context.Background(), 1, menu.MustClockTime(12, 0))
	if err != nil {
		t.Fatalf("GetTopping returned error: %v", err)
	}
	if topping.FinalPrice != 2.25 {
		t.Errorf("expected final price 2.25, got %v", topping.FinalPrice)
	}
	if topping.IsCurrentlyAvailable {
		t.Error("disabled topping must not be available even with a discount")
	}
}

func TestPageSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	if got := pageSlice(items, 1, 2); len(got) != 2 || got[0] != 1 {
		t.Errorf("page 1: got %v", got)
	}
	if got := pageSlice(items, 3, 2); len(got) != 1 || got[0] != 5 {
		t.Errorf("page 3: got %v", got)
	}
	if got := pageSlice(items, 4, 2); len(got) != 0 {
		t.Errorf("past the end: got %v", got)
	}
}
