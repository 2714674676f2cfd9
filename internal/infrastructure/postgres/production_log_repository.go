package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tallersur/taller-api/internal/domain/entity"
	"github.com/tallersur/taller-api/internal/domain/repository"
)

var _ repository.ProductionLogRepository = (*ProductionLogRepo)(nil)

// ProductionLogRepo implementación de partes de producción sobre PostgreSQL
// (usable con pool o tx).
type ProductionLogRepo struct {
	q Querier
}

// NewProductionLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionLogRepository(q Querier) *ProductionLogRepo {
	return &ProductionLogRepo{q: q}
}

// Create persiste un parte de producción.
func (r *ProductionLogRepo) Create(ctx context.Context, log *entity.ProductionLogEntry) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	query := `
		INSERT INTO production_logs (id, work_order_id, user_id, machine_id, horas, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		log.ID, log.WorkOrderID, log.UserID, log.MachineID, log.Horas, log.Date, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create production log: %w", err)
	}
	return nil
}

// ListByWorkOrder lista los partes de una OT de más antiguo a más reciente.
func (r *ProductionLogRepo) ListByWorkOrder(ctx context.Context, workOrderID string) ([]entity.ProductionLogEntry, error) {
	query := `
		SELECT id, work_order_id, user_id, machine_id, horas, date, created_at
		FROM production_logs WHERE work_order_id = $1
		ORDER BY date ASC, created_at ASC`
	rows, err := r.q.Query(ctx, query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("list production logs: %w", err)
	}
	defer rows.Close()

	var list []entity.ProductionLogEntry
	for rows.Next() {
		var l entity.ProductionLogEntry
		if err := rows.Scan(&l.ID, &l.WorkOrderID, &l.UserID, &l.MachineID, &l.Horas, &l.Date, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan production log: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
