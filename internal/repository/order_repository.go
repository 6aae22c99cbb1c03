package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auroranet/portal-service/internal/domain"
)

// OrderFilter captures admin order-list parameters.
type OrderFilter struct {
	CustomerID    *string
	Status        *domain.OrderStatus
	PaymentStatus *domain.PaymentStatus
	Limit         int
	Offset        int
}

// OrderRepository encapsulates order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	CountWithFilter(ctx context.Context, filter OrderFilter) (int, error)
	ListWithFilter(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	SearchUnpaginated(ctx context.Context, filter OrderFilter, customerIDs []string, term string) ([]domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, code, customer_id, plan_id, status, payment_status, totals, installation, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (code, customer_id, plan_id, status, payment_status, totals, installation)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		order.Code,
		order.CustomerID,
		order.PlanID,
		order.Status,
		order.PaymentStatus,
		order.Totals,
		order.Installation,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	return translateError(err)
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	const query = `
        UPDATE orders SET status=$1, payment_status=$2, totals=$3, installation=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		order.Status,
		order.PaymentStatus,
		order.Totals,
		order.Installation,
		order.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	if err := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id).Scan(
		&order.ID,
		&order.Code,
		&order.CustomerID,
		&order.PlanID,
		&order.Status,
		&order.PaymentStatus,
		&order.Totals,
		&order.Installation,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &order, nil
}

func orderFilterClauses(filter OrderFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.PaymentStatus != nil {
		args = append(args, *filter.PaymentStatus)
		clauses = append(clauses, fmt.Sprintf("payment_status=$%d", len(args)))
	}
	return clauses, args
}

func (r *orderRepository) CountWithFilter(ctx context.Context, filter OrderFilter) (int, error) {
	clauses, args := orderFilterClauses(filter)
	query := `SELECT COUNT(*) FROM orders WHERE ` + strings.Join(clauses, " AND ")

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *orderRepository) ListWithFilter(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	clauses, args := orderFilterClauses(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM orders WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		orderColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// SearchUnpaginated runs the combined OR query for search mode: orders whose
// customer matched the identity lookup, or whose code contains the term. The
// full match set is returned; the caller re-filters and slices the page.
func (r *orderRepository) SearchUnpaginated(ctx context.Context, filter OrderFilter, customerIDs []string, term string) ([]domain.Order, error) {
	clauses, args := orderFilterClauses(filter)

	or := []string{}
	if len(customerIDs) > 0 {
		args = append(args, customerIDs)
		or = append(or, fmt.Sprintf("customer_id = ANY($%d)", len(args)))
	}
	if term = strings.TrimSpace(term); term != "" {
		args = append(args, "%"+strings.ToLower(term)+"%")
		or = append(or, fmt.Sprintf("LOWER(code) LIKE $%d", len(args)))
	}
	if len(or) > 0 {
		clauses = append(clauses, "("+strings.Join(or, " OR ")+")")
	}

	query := fmt.Sprintf(`SELECT %s FROM orders WHERE %s ORDER BY created_at DESC`,
		orderColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	var result []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.Code,
			&order.CustomerID,
			&order.PlanID,
			&order.Status,
			&order.PaymentStatus,
			&order.Totals,
			&order.Installation,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}
