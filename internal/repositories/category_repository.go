package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/menucat/menu-service/internal/models"

	"github.com/lib/pq"
)

// CategoryRepository defines the database operations for menu categories.
type CategoryRepository interface {
	Create(executor SQLExecutor, category *models.Category) (int64, error)
	GetByID(id int64) (*models.Category, error)
	List(page, pageSize int) ([]models.Category, int, error)
	ListAll() ([]models.Category, error)
	Update(executor SQLExecutor, category *models.Category) error
	Delete(executor SQLExecutor, id int64) error
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository.
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

const categorySelect = `SELECT c.id, c.name, c.description, c.icon_url, c.created_at, c.updated_at,
	       COUNT(f.id) FILTER (WHERE f.is_available) AS foods_count`

func (r *categoryRepository) Create(executor SQLExecutor, category *models.Category) (int64, error) {
	query := `INSERT INTO categories (name, description, icon_url, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	currentTime := time.Now()
	err := executor.QueryRow(query, category.Name, category.Description, category.IconURL, currentTime, currentTime).Scan(&category.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: category name '%s' already exists (constraint: %s)", ErrDuplicateKey, category.Name, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating category: %v", ErrDatabaseError, err)
	}
	return category.ID, nil
}

func (r *categoryRepository) GetByID(id int64) (*models.Category, error) {
	category := &models.Category{}
	query := categorySelect + `
	          FROM categories c
	          LEFT JOIN foods f ON f.category_id = c.id
	          WHERE c.id = $1
	          GROUP BY c.id`
	var description, iconURL sql.NullString
	err := r.db.QueryRow(query, id).Scan(
		&category.ID, &category.Name, &description, &iconURL,
		&category.CreatedAt, &category.UpdatedAt, &category.FoodsCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting category by ID %d: %v", ErrDatabaseError, id, err)
	}
	category.Description = nullStringPtr(description)
	category.IconURL = nullStringPtr(iconURL)
	return category, nil
}

func (r *categoryRepository) List(page, pageSize int) ([]models.Category, int, error) {
	query := categorySelect + `,
	          COUNT(*) OVER() AS total_count
	          FROM categories c
	          LEFT JOIN foods f ON f.category_id = c.id
	          GROUP BY c.id
	          ORDER BY c.name
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	categories := []models.Category{}
	totalCount := 0
	for rows.Next() {
		var category models.Category
		var description, iconURL sql.NullString
		if err := rows.Scan(
			&category.ID, &category.Name, &description, &iconURL,
			&category.CreatedAt, &category.UpdatedAt, &category.FoodsCount, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning category: %v", ErrDatabaseError, err)
		}
		category.Description = nullStringPtr(description)
		category.IconURL = nullStringPtr(iconURL)
		categories = append(categories, category)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating categories: %v", ErrDatabaseError, err)
	}
	return categories, totalCount, nil
}

func (r *categoryRepository) ListAll() ([]models.Category, error) {
	query := categorySelect + `
	          FROM categories c
	          LEFT JOIN foods f ON f.category_id = c.id
	          GROUP BY c.id
	          ORDER BY c.name`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting all categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		var description, iconURL sql.NullString
		if err := rows.Scan(
			&category.ID, &category.Name, &description, &iconURL,
			&category.CreatedAt, &category.UpdatedAt, &category.FoodsCount,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning category: %v", ErrDatabaseError, err)
		}
		category.Description = nullStringPtr(description)
		category.IconURL = nullStringPtr(iconURL)
		categories = append(categories, category)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating categories: %v", ErrDatabaseError, err)
	}
	return categories, nil
}

func (r *categoryRepository) Update(executor SQLExecutor, category *models.Category) error {
	query := `UPDATE categories SET name = $1, description = $2, icon_url = $3, updated_at = $4 WHERE id = $5`
	result, err := executor.Exec(query, category.Name, category.Description, category.IconURL, time.Now(), category.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: category name '%s' already exists (constraint: %s)", ErrDuplicateKey, category.Name, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating category ID %d: %v", ErrDatabaseError, category.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: category ID %d still has foods (constraint: %s)", ErrDatabaseError, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting category ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
