package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"boxtribute/internal/models"
)

// Database is the subset of pgxpool.Pool the repositories use; pgxmock
// satisfies it in tests.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BatchAuditRepository persists one row per batch-operation invocation.
// Writes are best-effort from the coordinators; reads back the history.
type BatchAuditRepository interface {
	Create(ctx context.Context, entry *models.BatchAuditEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BatchAuditEntry, error)
	List(ctx context.Context, filters *models.BatchAuditFilters) ([]*models.BatchAuditEntry, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type batchAuditRepo struct {
	db Database
}

func NewBatchAuditRepo(db Database) BatchAuditRepository {
	return &batchAuditRepo{db: db}
}

func (r *batchAuditRepo) Create(ctx context.Context, entry *models.BatchAuditEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()

	requested, err := json.Marshal(entry.Requested)
	if err != nil {
		return fmt.Errorf("failed to marshal requested identifiers: %w", err)
	}
	succeeded, err := json.Marshal(entry.Succeeded)
	if err != nil {
		return fmt.Errorf("failed to marshal succeeded identifiers: %w", err)
	}
	failed, err := json.Marshal(entry.Failed)
	if err != nil {
		return fmt.Errorf("failed to marshal failed identifiers: %w", err)
	}
	invalid, err := json.Marshal(entry.Invalid)
	if err != nil {
		return fmt.Errorf("failed to marshal invalid identifiers: %w", err)
	}

	query := `
		INSERT INTO batch_audit_logs (id, operation, actor, target_id, requested, succeeded, failed, invalid, outcome, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.db.Exec(ctx, query,
		entry.ID, entry.Operation, entry.Actor, entry.TargetID,
		requested, succeeded, failed, invalid, entry.Outcome, entry.CreatedAt)
	return err
}

func (r *batchAuditRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.BatchAuditEntry, error) {
	query := `
		SELECT id, operation, actor, target_id, requested, succeeded, failed, invalid, outcome, created_at
		FROM batch_audit_logs
		WHERE id = $1
	`
	return scanEntry(r.db.QueryRow(ctx, query, id))
}

func (r *batchAuditRepo) List(ctx context.Context, filters *models.BatchAuditFilters) ([]*models.BatchAuditEntry, error) {
	query := `
		SELECT id, operation, actor, target_id, requested, succeeded, failed, invalid, outcome, created_at
		FROM batch_audit_logs
		WHERE 1=1
	`
	args := []any{}
	argIdx := 1

	if filters != nil {
		if filters.Operation != nil {
			query += fmt.Sprintf(" AND operation = $%d", argIdx)
			args = append(args, *filters.Operation)
			argIdx++
		}
		if filters.Actor != nil {
			query += fmt.Sprintf(" AND actor = $%d", argIdx)
			args = append(args, *filters.Actor)
			argIdx++
		}
		if filters.Outcome != nil {
			query += fmt.Sprintf(" AND outcome = $%d", argIdx)
			args = append(args, *filters.Outcome)
			argIdx++
		}
		if filters.From != nil {
			query += fmt.Sprintf(" AND created_at >= $%d", argIdx)
			args = append(args, *filters.From)
			argIdx++
		}
		if filters.To != nil {
			query += fmt.Sprintf(" AND created_at <= $%d", argIdx)
			args = append(args, *filters.To)
			argIdx++
		}
	}

	query += " ORDER BY created_at DESC"

	limit := 50
	offset := 0
	if filters != nil {
		if filters.Limit > 0 {
			limit = filters.Limit
		}
		if filters.Offset > 0 {
			offset = filters.Offset
		}
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.BatchAuditEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *batchAuditRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM batch_audit_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanEntry(row pgx.Row) (*models.BatchAuditEntry, error) {
	entry := &models.BatchAuditEntry{}
	var requested, succeeded, failed, invalid []byte

	err := row.Scan(&entry.ID, &entry.Operation, &entry.Actor, &entry.TargetID,
		&requested, &succeeded, &failed, &invalid, &entry.Outcome, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}

	for _, pair := range []struct {
		data []byte
		dst  *[]string
	}{
		{requested, &entry.Requested},
		{succeeded, &entry.Succeeded},
		{failed, &entry.Failed},
		{invalid, &entry.Invalid},
	} {
		if len(pair.data) > 0 {
			if err := json.Unmarshal(pair.data, pair.dst); err != nil {
				return nil, fmt.Errorf("failed to unmarshal identifier list: %w", err)
			}
		}
	}
	return entry, nil
}
