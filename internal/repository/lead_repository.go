package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/liorkima5-coder/CityPulseAI/internal/domain"
)

// LeadFilter captures lead listing parameters.
type LeadFilter struct {
	Status     *domain.LeadStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

// LeadRepository manages contact-form inquiry persistence.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]domain.Lead, error)
	UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) error
	Delete(ctx context.Context, id string) error
}

type leadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository instantiates the repository.
func NewLeadRepository(pool *pgxpool.Pool) LeadRepository {
	return &leadRepository{pool: pool}
}

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	const query = `
        INSERT INTO leads (full_name, phone, email, message, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		lead.FullName,
		lead.Phone,
		lead.Email,
		lead.Message,
		lead.Status,
	).Scan(&lead.ID, &lead.CreatedAt)
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	const query = `
        SELECT id, full_name, phone, email, message, status, created_at
        FROM leads WHERE id=$1`
	var lead domain.Lead
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&lead.ID,
		&lead.FullName,
		&lead.Phone,
		&lead.Email,
		&lead.Message,
		&lead.Status,
		&lead.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) List(ctx context.Context, filter LeadFilter) ([]domain.Lead, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(full_name) LIKE %s OR phone LIKE %s OR LOWER(message) LIKE %s)",
			placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT id, full_name, phone, email, message, status, created_at
        FROM leads WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Lead
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(&lead.ID, &lead.FullName, &lead.Phone, &lead.Email, &lead.Message, &lead.Status, &lead.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, lead)
	}
	return result, rows.Err()
}

func (r *leadRepository) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) error {
	const query = `UPDATE leads SET status=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM leads WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
