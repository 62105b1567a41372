package prescriptions

import (
	"context"
	"errors"

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

const prescriptionCols = `id, patient_id, clinic, start_date, duration_months, created_at, updated_at`

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.PatientID, &p.Clinic, &p.StartDate, &p.DurationMonths, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO prescriptions (id, patient_id, clinic, start_date, duration_months)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.PatientID, p.Clinic, p.StartDate, p.DurationMonths)
	return err
}

func (r *repoPG) GetByPatient(ctx context.Context, patientID uuid.UUID, clinic string) (*Prescription, error) {
	return scanPrescription(r.conn(ctx).QueryRow(ctx, `
		SELECT `+prescriptionCols+` FROM prescriptions
		WHERE patient_id = $1 AND clinic = $2`, patientID, clinic))
}

func (r *repoPG) Update(ctx context.Context, p *Prescription) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE prescriptions SET start_date=$2, duration_months=$3, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.StartDate, p.DurationMonths)
	return err
}

func (r *repoPG) DeleteByPatientClinic(ctx context.Context, patientID uuid.UUID, clinic string) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		DELETE FROM prescriptions WHERE patient_id = $1 AND clinic = $2`, patientID, clinic)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM prescriptions WHERE patient_id = $1`, patientID)
	return err
}

func (r *repoPG) ListByClinic(ctx context.Context, clinic string) ([]*Prescription, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+prescriptionCols+` FROM prescriptions WHERE clinic = $1 ORDER BY start_date DESC`, clinic)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
