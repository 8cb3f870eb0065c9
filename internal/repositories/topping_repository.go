package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/menucat/menu-service/internal/models"

	"github.com/lib/pq"
)

// ToppingRepository defines the database operations for toppings.
type ToppingRepository interface {
	Create(executor SQLExecutor, topping *models.Topping) (int64, error)
	GetByID(id int64) (*models.Topping, error)
	List(page, pageSize int) ([]models.Topping, int, error)
	ListAll() ([]models.Topping, error)
	Update(executor SQLExecutor, topping *models.Topping) error
	Delete(executor SQLExecutor, id int64) error
}

type toppingRepository struct {
	db *sql.DB
}

// NewToppingRepository creates a new instance of ToppingRepository.
func NewToppingRepository(db *sql.DB) ToppingRepository {
	return &toppingRepository{db: db}
}

const toppingColumns = `id, name, description, price, discount, is_available, available_from, available_to, created_at, updated_at`

func scanTopping(scan func(dest ...interface{}) error, extra ...interface{}) (*models.Topping, error) {
	topping := &models.Topping{}
	var description sql.NullString
	var discount sql.NullFloat64
	var availableFrom, availableTo sql.NullTime

	dest := []interface{}{
		&topping.ID, &topping.Name, &description, &topping.Price, &discount,
		&topping.Available, &availableFrom, &availableTo, &topping.CreatedAt, &topping.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := scan(dest...); err != nil {
		return nil, err
	}

	topping.Description = nullStringPtr(description)
	topping.Discount = nullFloatPtr(discount)
	topping.From = nullClockPtr(availableFrom)
	topping.To = nullClockPtr(availableTo)
	return topping, nil
}

func (r *toppingRepository) Create(executor SQLExecutor, topping *models.Topping) (int64, error) {
	query := `INSERT INTO toppings (name, description, price, discount, is_available, available_from, available_to, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`
	currentTime := time.Now()
	err := executor.QueryRow(query,
		topping.Name, topping.Description, topping.Price, topping.Discount,
		topping.Available, clockParam(topping.From), clockParam(topping.To),
		currentTime, currentTime,
	).Scan(&topping.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: topping name '%s' already exists (constraint: %s)", ErrDuplicateKey, topping.Name, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating topping: %v", ErrDatabaseError, err)
	}
	return topping.ID, nil
}

func (r *toppingRepository) GetByID(id int64) (*models.Topping, error) {
	query := `SELECT ` + toppingColumns + ` FROM toppings WHERE id = $1`
	topping, err := scanTopping(r.db.QueryRow(query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting topping by ID %d: %v", ErrDatabaseError, id, err)
	}
	return topping, nil
}

func (r *toppingRepository) List(page, pageSize int) ([]models.Topping, int, error) {
	query := `SELECT ` + toppingColumns + `, COUNT(*) OVER() AS total_count
	          FROM toppings ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting toppings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	toppings := []models.Topping{}
	totalCount := 0
	for rows.Next() {
		topping, err := scanTopping(rows.Scan, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning topping: %v", ErrDatabaseError, err)
		}
		toppings = append(toppings, *topping)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating toppings: %v", ErrDatabaseError, err)
	}
	return toppings, totalCount, nil
}

func (r *toppingRepository) ListAll() ([]models.Topping, error) {
	query := `SELECT ` + toppingColumns + ` FROM toppings ORDER BY name`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting all toppings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	toppings := []models.Topping{}
	for rows.Next() {
		topping, err := scanTopping(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning topping: %v", ErrDatabaseError, err)
		}
		toppings = append(toppings, *topping)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating toppings: %v", ErrDatabaseError, err)
	}
	return toppings, nil
}

func (r *toppingRepository) Update(executor SQLExecutor, topping *models.Topping) error {
	query := `UPDATE toppings SET
	            name = $1, description = $2, price = $3, discount = $4,
	            is_available = $5, available_from = $6, available_to = $7, updated_at = $8
	          WHERE id = $9`
	result, err := executor.Exec(query,
		topping.Name, topping.Description, topping.Price, topping.Discount,
		topping.Available, clockParam(topping.From), clockParam(topping.To),
		time.Now(), topping.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: topping name '%s' already exists (constraint: %s)", ErrDuplicateKey, topping.Name, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating topping ID %d: %v", ErrDatabaseError, topping.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *toppingRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM toppings WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: topping ID %d is still linked to foods (constraint: %s)", ErrDatabaseError, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting topping ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
