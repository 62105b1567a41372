package registry

import (
	"context"
	"errors"
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

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const patientCols = `id, clinic, care_type, first_name, last_name, status,
	birth_date, tax_code, sex, phone, email, family_doctor,
	history, current_therapy, allergies, lesion_markers,
	discharge_reason, discharge_notes, suspend_notes, created_at, updated_at`

func (r *patientRepoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Clinic, &p.CareType, &p.FirstName, &p.LastName, &p.Status,
		&p.BirthDate, &p.TaxCode, &p.Sex, &p.Phone, &p.Email, &p.FamilyDoctor,
		&p.History, &p.CurrentTherapy, &p.Allergies, &p.LesionMarkers,
		&p.DischargeReason, &p.DischargeNotes, &p.SuspendNotes, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	if p.LesionMarkers == nil {
		p.LesionMarkers = []LesionMarker{}
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients (id, clinic, care_type, first_name, last_name, status,
			birth_date, tax_code, sex, phone, email, family_doctor,
			history, current_therapy, allergies, lesion_markers,
			discharge_reason, discharge_notes, suspend_notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`,
		p.ID, p.Clinic, p.CareType, p.FirstName, p.LastName, p.Status,
		p.BirthDate, p.TaxCode, p.Sex, p.Phone, p.Email, p.FamilyDoctor,
		p.History, p.CurrentTherapy, p.Allergies, p.LesionMarkers,
		p.DischargeReason, p.DischargeNotes, p.SuspendNotes)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET care_type=$2, first_name=$3, last_name=$4, status=$5,
			birth_date=$6, tax_code=$7, sex=$8, phone=$9, email=$10, family_doctor=$11,
			history=$12, current_therapy=$13, allergies=$14, lesion_markers=$15,
			discharge_reason=$16, discharge_notes=$17, suspend_notes=$18, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.CareType, p.FirstName, p.LastName, p.Status,
		p.BirthDate, p.TaxCode, p.Sex, p.Phone, p.Email, p.FamilyDoctor,
		p.History, p.CurrentTherapy, p.Allergies, p.LesionMarkers,
		p.DischargeReason, p.DischargeNotes, p.SuspendNotes)
	return err
}

func (r *patientRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	return err
}

func (r *patientRepoPG) List(ctx context.Context, clinic string, f ListFilter, limit, offset int) ([]*Patient, int, error) {
	where := ` FROM patients WHERE clinic = $1`
	args := []interface{}{clinic}
	idx := 2

	if f.Status != "" {
		where += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, f.Status)
		idx++
	}
	if f.CareType != "" {
		where += fmt.Sprintf(` AND care_type = $%d`, idx)
		args = append(args, f.CareType)
		idx++
	}
	if f.Search != "" {
		where += fmt.Sprintf(` AND (first_name ILIKE $%d OR last_name ILIKE $%d)`, idx, idx)
		args = append(args, "%"+f.Search+"%")
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + patientCols + where +
		fmt.Sprintf(` ORDER BY last_name ASC, first_name ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
