package scheduling

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

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const apptCols = `id, patient_id, patient_first_name, patient_last_name, clinic,
	visit_date, visit_time, care_type, procedures, notes, completed, created_at`

func (r *appointmentRepoPG) scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.PatientFirstName, &a.PatientLastName, &a.Clinic,
		&a.Date, &a.Time, &a.CareType, &a.Procedures, &a.Notes, &a.Completed, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &a, err
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	if a.Procedures == nil {
		a.Procedures = []string{}
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointments (id, patient_id, patient_first_name, patient_last_name, clinic,
			visit_date, visit_time, care_type, procedures, notes, completed)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		a.ID, a.PatientID, a.PatientFirstName, a.PatientLastName, a.Clinic,
		a.Date, a.Time, a.CareType, a.Procedures, a.Notes, a.Completed)
	return err
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return r.scanAppointment(r.conn(ctx).QueryRow(ctx, `SELECT `+apptCols+` FROM appointments WHERE id = $1`, id))
}

func (r *appointmentRepoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointments SET visit_date=$2, visit_time=$3, care_type=$4,
			procedures=$5, notes=$6, completed=$7
		WHERE id = $1`,
		a.ID, a.Date, a.Time, a.CareType, a.Procedures, a.Notes, a.Completed)
	return err
}

func (r *appointmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	return err
}

func (r *appointmentRepoPG) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointments WHERE patient_id = $1`, patientID)
	return err
}

func (r *appointmentRepoPG) List(ctx context.Context, clinic string, f ListFilter, limit, offset int) ([]*Appointment, int, error) {
	where := ` FROM appointments WHERE clinic = $1`
	args := []interface{}{clinic}
	idx := 2

	if f.Date != "" {
		where += fmt.Sprintf(` AND visit_date = $%d`, idx)
		args = append(args, f.Date)
		idx++
	} else if f.From != "" && f.To != "" {
		where += fmt.Sprintf(` AND visit_date >= $%d AND visit_date <= $%d`, idx, idx+1)
		args = append(args, f.From, f.To)
		idx += 2
	}
	if f.CareType != "" {
		where += fmt.Sprintf(` AND care_type = $%d`, idx)
		args = append(args, f.CareType)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + apptCols + where +
		fmt.Sprintf(` ORDER BY visit_date ASC, visit_time ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *appointmentRepoPG) CountSlot(ctx context.Context, clinic, date, time, careType string) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM appointments
		WHERE clinic = $1 AND visit_date = $2 AND visit_time = $3 AND care_type = $4`,
		clinic, date, time, careType).Scan(&n)
	return n, err
}
