package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kevscue/storefront/internal/core/domain"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// MySQLAdapter backs the catalog, order, customer and settings ports with the
// storefront's relational tables.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, description, image, category, price, stock
		FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Image, &p.Category, &p.Price, &p.Stock)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (m *MySQLAdapter) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	query := `
		SELECT id, name, description, image, category, price, stock
		FROM products ORDER BY name`
	args := []any{}
	if category != "" && category != "all" {
		query = `
		SELECT id, name, description, image, category, price, stock
		FROM products WHERE category = ? ORDER BY name`
		args = append(args, category)
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Image, &p.Category, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// DecrementStock takes stock down by amount, refusing to go below zero: the
// guarded UPDATE leaves the row untouched and ErrInsufficientStock is
// returned when the product is missing or short.
func (m *MySQLAdapter) DecrementStock(ctx context.Context, id string, amount int) (int, error) {
	result, err := m.db.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - ?
		WHERE id = ? AND stock >= ?`,
		amount, id, amount,
	)
	if err != nil {
		return 0, fmt.Errorf("update stock: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return 0, ErrInsufficientStock
	}

	var stock int
	if err := m.db.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = ?`, id).Scan(&stock); err != nil {
		return 0, fmt.Errorf("query stock: %w", err)
	}
	return stock, nil
}

func (m *MySQLAdapter) CreateOrder(ctx context.Context, header domain.OrderHeader) (string, error) {
	orderID := uuid.New().String()
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, subtotal, delivery_fee, delivery_address, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		orderID, header.CustomerID, header.Subtotal, header.DeliveryFee, header.DeliveryAddress,
		time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}
	return orderID, nil
}

func (m *MySQLAdapter) CreateOrderLines(ctx context.Context, orderID string, lines []domain.OrderLine) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, l := range lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, product_price, quantity)
			VALUES (?, ?, ?, ?, ?)`,
			orderID, l.ProductID, l.ProductName, l.ProductPrice, l.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (m *MySQLAdapter) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	var c domain.Customer
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, address
		FROM customers WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query customer: %w", err)
	}
	return &c, nil
}

func (m *MySQLAdapter) DeliveryFee(ctx context.Context) (int64, error) {
	var fee int64
	err := m.db.QueryRowContext(ctx, `SELECT base_fee FROM delivery_settings LIMIT 1`).Scan(&fee)
	if err != nil {
		return 0, fmt.Errorf("query delivery settings: %w", err)
	}
	return fee, nil
}
