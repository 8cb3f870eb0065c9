package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/menucat/menu-service/internal/models"

	"github.com/lib/pq"
)

// FoodRepository defines the database operations for foods, their gallery
// images and their topping links.
type FoodRepository interface {
	Create(executor SQLExecutor, food *models.Food) (int64, error)
	GetByID(id int64) (*models.Food, error) // joins category, loads images and topping links
	List(categoryID *int64, page, pageSize int) ([]models.Food, int, error)
	ListAll(categoryID *int64) ([]models.Food, error)
	Update(executor SQLExecutor, food *models.Food) error
	Delete(executor SQLExecutor, id int64) error

	AddImage(executor SQLExecutor, image *models.FoodImage) (int64, error)
	DeleteImage(executor SQLExecutor, imageID int64) error

	ToppingLinks(foodID int64) ([]models.FoodTopping, error)
	LinkTopping(executor SQLExecutor, foodID, toppingID int64) (*models.FoodTopping, error)
	UnlinkTopping(executor SQLExecutor, foodID, toppingID int64) error
}

type foodRepository struct {
	db *sql.DB
}

// NewFoodRepository creates a new instance of FoodRepository.
func NewFoodRepository(db *sql.DB) FoodRepository {
	return &foodRepository{db: db}
}

const foodSelect = `SELECT f.id, f.category_id, f.name, f.description, f.price, f.discount,
	    f.is_available, f.available_from, f.available_to, f.header_image_url,
	    f.created_at, f.updated_at,
	    c.id, c.name, c.description, c.icon_url, c.created_at, c.updated_at`

// scanFood reads one joined food row. The caller appends any extra
// destinations (e.g. the window total count) after the fixed columns.
func scanFood(scan func(dest ...interface{}) error, extra ...interface{}) (*models.Food, error) {
	food := &models.Food{}
	category := &models.Category{}
	var foodDesc, headerImage, catDesc, catIcon sql.NullString
	var discount sql.NullFloat64
	var availableFrom, availableTo sql.NullTime

	dest := []interface{}{
		&food.ID, &food.CategoryID, &food.Name, &foodDesc, &food.Price, &discount,
		&food.Available, &availableFrom, &availableTo, &headerImage,
		&food.CreatedAt, &food.UpdatedAt,
		&category.ID, &category.Name, &catDesc, &catIcon, &category.CreatedAt, &category.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := scan(dest...); err != nil {
		return nil, err
	}

	food.Description = nullStringPtr(foodDesc)
	food.Discount = nullFloatPtr(discount)
	food.From = nullClockPtr(availableFrom)
	food.To = nullClockPtr(availableTo)
	food.HeaderImageURL = nullStringPtr(headerImage)
	category.Description = nullStringPtr(catDesc)
	category.IconURL = nullStringPtr(catIcon)
	food.Category = category
	return food, nil
}

func (r *foodRepository) Create(executor SQLExecutor, food *models.Food) (int64, error) {
	query := `INSERT INTO foods
	          (category_id, name, description, price, discount, is_available, available_from, available_to, header_image_url, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id`
	currentTime := time.Now()
	err := executor.QueryRow(query,
		food.CategoryID, food.Name, food.Description, food.Price, food.Discount,
		food.Available, clockParam(food.From), clockParam(food.To), food.HeaderImageURL,
		currentTime, currentTime,
	).Scan(&food.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: creating food (constraint: %s): %v", ErrDuplicateKey, pqErr.Constraint, err)
			}
			if pqErr.Code.Name() == "foreign_key_violation" {
				return 0, fmt.Errorf("%w: invalid category_id %d (constraint: %s): %v", ErrDatabaseError, food.CategoryID, pqErr.Constraint, err)
			}
		}
		return 0, fmt.Errorf("%w: creating food: %v", ErrDatabaseError, err)
	}
	return food.ID, nil
}

func (r *foodRepository) GetByID(id int64) (*models.Food, error) {
	query := foodSelect + `
	          FROM foods f
	          JOIN categories c ON f.category_id = c.id
	          WHERE f.id = $1`
	food, err := scanFood(r.db.QueryRow(query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting food by ID %d: %v", ErrDatabaseError, id, err)
	}

	if food.Images, err = r.images(id); err != nil {
		return nil, err
	}
	if food.Toppings, err = r.ToppingLinks(id); err != nil {
		return nil, err
	}
	return food, nil
}

func (r *foodRepository) List(categoryID *int64, page, pageSize int) ([]models.Food, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(foodSelect)
	queryBuilder.WriteString(`,
	    COUNT(*) OVER() AS total_count
	  FROM foods f
	  JOIN categories c ON f.category_id = c.id`)

	var args []interface{}
	argCount := 1
	if categoryID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE f.category_id = $%d", argCount))
		args = append(args, *categoryID)
		argCount++
	}
	queryBuilder.WriteString(" ORDER BY f.name")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting foods: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	foods := []models.Food{}
	totalCount := 0
	for rows.Next() {
		food, err := scanFood(rows.Scan, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning food: %v", ErrDatabaseError, err)
		}
		foods = append(foods, *food)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating foods: %v", ErrDatabaseError, err)
	}
	return foods, totalCount, nil
}

func (r *foodRepository) ListAll(categoryID *int64) ([]models.Food, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(foodSelect)
	queryBuilder.WriteString(`
	  FROM foods f
	  JOIN categories c ON f.category_id = c.id`)

	var args []interface{}
	if categoryID != nil {
		queryBuilder.WriteString(" WHERE f.category_id = $1")
		args = append(args, *categoryID)
	}
	queryBuilder.WriteString(" ORDER BY c.name, f.name")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting all foods: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	foods := []models.Food{}
	for rows.Next() {
		food, err := scanFood(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning food: %v", ErrDatabaseError, err)
		}
		foods = append(foods, *food)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating foods: %v", ErrDatabaseError, err)
	}
	return foods, nil
}

func (r *foodRepository) Update(executor SQLExecutor, food *models.Food) error {
	query := `UPDATE foods SET
	            category_id = $1, name = $2, description = $3, price = $4, discount = $5,
	            is_available = $6, available_from = $7, available_to = $8, header_image_url = $9,
	            updated_at = $10
	          WHERE id = $11`
	result, err := executor.Exec(query,
		food.CategoryID, food.Name, food.Description, food.Price, food.Discount,
		food.Available, clockParam(food.From), clockParam(food.To), food.HeaderImageURL,
		time.Now(), food.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: updating food (constraint: %s): %v", ErrDuplicateKey, pqErr.Constraint, err)
			}
			if pqErr.Code.Name() == "foreign_key_violation" {
				return fmt.Errorf("%w: invalid category_id %d (constraint: %s): %v", ErrDatabaseError, food.CategoryID, pqErr.Constraint, err)
			}
		}
		return fmt.Errorf("%w: updating food ID %d: %v", ErrDatabaseError, food.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *foodRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM foods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting food ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Gallery images ---

func (r *foodRepository) images(foodID int64) ([]models.FoodImage, error) {
	query := `SELECT id, food_id, image_url, created_at, updated_at
	          FROM food_images WHERE food_id = $1 ORDER BY id`
	rows, err := r.db.Query(query, foodID)
	if err != nil {
		return nil, fmt.Errorf("%w: getting images for food %d: %v", ErrDatabaseError, foodID, err)
	}
	defer rows.Close()

	images := []models.FoodImage{}
	for rows.Next() {
		var img models.FoodImage
		if err := rows.Scan(&img.ID, &img.FoodID, &img.ImageURL, &img.CreatedAt, &img.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning food image: %v", ErrDatabaseError, err)
		}
		images = append(images, img)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating food images: %v", ErrDatabaseError, err)
	}
	return images, nil
}

func (r *foodRepository) AddImage(executor SQLExecutor, image *models.FoodImage) (int64, error) {
	query := `INSERT INTO food_images (food_id, image_url, created_at, updated_at)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	currentTime := time.Now()
	err := executor.QueryRow(query, image.FoodID, image.ImageURL, currentTime, currentTime).
		Scan(&image.ID, &image.CreatedAt, &image.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: adding image for food %d: %v", ErrDatabaseError, image.FoodID, err)
	}
	return image.ID, nil
}

func (r *foodRepository) DeleteImage(executor SQLExecutor, imageID int64) error {
	result, err := executor.Exec(`DELETE FROM food_images WHERE id = $1`, imageID)
	if err != nil {
		return fmt.Errorf("%w: deleting food image ID %d: %v", ErrDatabaseError, imageID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Topping links ---

func (r *foodRepository) ToppingLinks(foodID int64) ([]models.FoodTopping, error) {
	query := `SELECT ft.id, ft.food_id, ft.topping_id, ft.created_at, ft.updated_at,
	            t.id, t.name, t.description, t.price, t.discount,
	            t.is_available, t.available_from, t.available_to, t.created_at, t.updated_at
	          FROM food_toppings ft
	          JOIN toppings t ON ft.topping_id = t.id
	          WHERE ft.food_id = $1
	          ORDER BY t.name`
	rows, err := r.db.Query(query, foodID)
	if err != nil {
		return nil, fmt.Errorf("%w: getting topping links for food %d: %v", ErrDatabaseError, foodID, err)
	}
	defer rows.Close()

	links := []models.FoodTopping{}
	for rows.Next() {
		var link models.FoodTopping
		topping := &models.Topping{}
		var toppingDesc sql.NullString
		var discount sql.NullFloat64
		var availableFrom, availableTo sql.NullTime
		if err := rows.Scan(
			&link.ID, &link.FoodID, &link.ToppingID, &link.CreatedAt, &link.UpdatedAt,
			&topping.ID, &topping.Name, &toppingDesc, &topping.Price, &discount,
			&topping.Available, &availableFrom, &availableTo, &topping.CreatedAt, &topping.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning topping link: %v", ErrDatabaseError, err)
		}
		topping.Description = nullStringPtr(toppingDesc)
		topping.Discount = nullFloatPtr(discount)
		topping.From = nullClockPtr(availableFrom)
		topping.To = nullClockPtr(availableTo)
		link.Topping = topping
		links = append(links, link)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating topping links: %v", ErrDatabaseError, err)
	}
	return links, nil
}

func (r *foodRepository) LinkTopping(executor SQLExecutor, foodID, toppingID int64) (*models.FoodTopping, error) {
	link := &models.FoodTopping{FoodID: foodID, ToppingID: toppingID}
	query := `INSERT INTO food_toppings (food_id, topping_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	currentTime := time.Now()
	err := executor.QueryRow(query, foodID, toppingID, currentTime, currentTime).
		Scan(&link.ID, &link.CreatedAt, &link.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return nil, fmt.Errorf("%w: food %d already has topping %d (constraint: %s)", ErrDuplicateKey, foodID, toppingID, pqErr.Constraint)
			}
			if pqErr.Code.Name() == "foreign_key_violation" {
				return nil, ErrNotFound
			}
		}
		return nil, fmt.Errorf("%w: linking topping %d to food %d: %v", ErrDatabaseError, toppingID, foodID, err)
	}
	return link, nil
}

func (r *foodRepository) UnlinkTopping(executor SQLExecutor, foodID, toppingID int64) error {
	result, err := executor.Exec(`DELETE FROM food_toppings WHERE food_id = $1 AND topping_id = $2`, foodID, toppingID)
	if err != nil {
		return fmt.Errorf("%w: unlinking topping %d from food %d: %v", ErrDatabaseError, toppingID, foodID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
