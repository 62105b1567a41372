package stats

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ambulatorio/api/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) VisitsInWindow(ctx context.Context, clinicID, careType, start, end string) ([]Visit, error) {
	query := `SELECT patient_id, visit_date, procedures FROM appointments
		WHERE clinic = $1 AND visit_date >= $2 AND visit_date < $3`
	args := []interface{}{clinicID, start, end}
	if careType != "" {
		args = append(args, careType)
		query += fmt.Sprintf(" AND care_type = $%d", len(args))
	}

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.PatientID, &v.Date, &v.Procedures); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

func (r *repoPG) ImplantsInWindow(ctx context.Context, clinicID, start, end string) ([]Implant, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT patient_id, implant_date, catheter_type FROM implant_records
			WHERE clinic = $1 AND implant_date >= $2 AND implant_date < $3`,
		clinicID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query implants: %w", err)
	}
	defer rows.Close()

	var implants []Implant
	for rows.Next() {
		var im Implant
		if err := rows.Scan(&im.PatientID, &im.ImplantDate, &im.CatheterType); err != nil {
			return nil, fmt.Errorf("scan implant: %w", err)
		}
		implants = append(implants, im)
	}
	return implants, rows.Err()
}

func (r *repoPG) PatientIDs(ctx context.Context, clinicID string) (map[uuid.UUID]struct{}, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT id FROM patients WHERE clinic = $1`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("query patient ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan patient id: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}
