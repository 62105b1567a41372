package forms

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

func conn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}

// -- Dressing records --

type dressingRepoPG struct{ pool *pgxpool.Pool }

func NewDressingRepoPG(pool *pgxpool.Pool) DressingRepository {
	return &dressingRepoPG{pool: pool}
}

const dressingCols = `id, patient_id, clinic, recorded_at, wound_bed, margins,
	perilesional_skin, exudate_amount, exudate_type, treatment,
	next_change, signature, photo_ids, created_at`

func scanDressing(row pgx.Row) (*DressingRecord, error) {
	var d DressingRecord
	err := row.Scan(&d.ID, &d.PatientID, &d.Clinic, &d.RecordedAt, &d.WoundBed, &d.Margins,
		&d.PerilesionalSkin, &d.ExudateAmount, &d.ExudateType, &d.Treatment,
		&d.NextChange, &d.Signature, &d.PhotoIDs, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &d, err
}

func (r *dressingRepoPG) Create(ctx context.Context, d *DressingRecord) error {
	d.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO dressing_records (id, patient_id, clinic, recorded_at, wound_bed, margins,
			perilesional_skin, exudate_amount, exudate_type, treatment, next_change, signature, photo_ids)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		d.ID, d.PatientID, d.Clinic, d.RecordedAt, d.WoundBed, d.Margins,
		d.PerilesionalSkin, d.ExudateAmount, d.ExudateType, d.Treatment,
		d.NextChange, d.Signature, d.PhotoIDs)
	return err
}

func (r *dressingRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*DressingRecord, error) {
	return scanDressing(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+dressingCols+` FROM dressing_records WHERE id = $1`, id))
}

func (r *dressingRepoPG) Update(ctx context.Context, d *DressingRecord) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE dressing_records SET recorded_at=$2, wound_bed=$3, margins=$4,
			perilesional_skin=$5, exudate_amount=$6, exudate_type=$7, treatment=$8,
			next_change=$9, signature=$10, photo_ids=$11
		WHERE id = $1`,
		d.ID, d.RecordedAt, d.WoundBed, d.Margins,
		d.PerilesionalSkin, d.ExudateAmount, d.ExudateType, d.Treatment,
		d.NextChange, d.Signature, d.PhotoIDs)
	return err
}

func (r *dressingRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM dressing_records WHERE id = $1`, id)
	return err
}

func (r *dressingRepoPG) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM dressing_records WHERE patient_id = $1`, patientID)
	return err
}

func (r *dressingRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, clinic string) ([]*DressingRecord, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+dressingCols+` FROM dressing_records
		WHERE patient_id = $1 AND clinic = $2 ORDER BY recorded_at DESC`, patientID, clinic)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*DressingRecord
	for rows.Next() {
		d, err := scanDressing(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// -- Implant records --

type implantRepoPG struct{ pool *pgxpool.Pool }

func NewImplantRepoPG(pool *pgxpool.Pool) ImplantRepository {
	return &implantRepoPG{pool: pool}
}

const implantCols = `id, patient_id, clinic, variant, implant_date, catheter_type, site,
	arm, vein, exit_site_cm, ultrasound, hand_hygiene, barrier_precautions,
	disinfectant, sutureless_device, transparent_dressing, occlusive_dressing,
	tunneled, xray_check, prior_xray_check, ecg_check, mode, reason, reason_other,
	implant_facility, referring_ward, site_assessment, operator, notes,
	attachment_ids, created_at, updated_at`

func scanImplant(row pgx.Row) (*ImplantRecord, error) {
	var r ImplantRecord
	err := row.Scan(&r.ID, &r.PatientID, &r.Clinic, &r.Variant, &r.ImplantDate, &r.CatheterType, &r.Site,
		&r.Arm, &r.Vein, &r.ExitSiteCM, &r.Ultrasound, &r.HandHygiene, &r.BarrierPrecautions,
		&r.Disinfectant, &r.SuturelessDevice, &r.TransparentDressing, &r.OcclusiveDressing,
		&r.Tunneled, &r.XRayCheck, &r.PriorXRayCheck, &r.ECGCheck, &r.Mode, &r.Reason, &r.ReasonOther,
		&r.ImplantFacility, &r.ReferringWard, &r.SiteAssessment, &r.Operator, &r.Notes,
		&r.AttachmentIDs, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &r, err
}

func (r *implantRepoPG) Create(ctx context.Context, rec *ImplantRecord) error {
	rec.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO implant_records (id, patient_id, clinic, variant, implant_date, catheter_type, site,
			arm, vein, exit_site_cm, ultrasound, hand_hygiene, barrier_precautions,
			disinfectant, sutureless_device, transparent_dressing, occlusive_dressing,
			tunneled, xray_check, prior_xray_check, ecg_check, mode, reason, reason_other,
			implant_facility, referring_ward, site_assessment, operator, notes, attachment_ids)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
			$21,$22,$23,$24,$25,$26,$27,$28,$29,$30)`,
		rec.ID, rec.PatientID, rec.Clinic, rec.Variant, rec.ImplantDate, rec.CatheterType, rec.Site,
		rec.Arm, rec.Vein, rec.ExitSiteCM, rec.Ultrasound, rec.HandHygiene, rec.BarrierPrecautions,
		rec.Disinfectant, rec.SuturelessDevice, rec.TransparentDressing, rec.OcclusiveDressing,
		rec.Tunneled, rec.XRayCheck, rec.PriorXRayCheck, rec.ECGCheck, rec.Mode, rec.Reason, rec.ReasonOther,
		rec.ImplantFacility, rec.ReferringWard, rec.SiteAssessment, rec.Operator, rec.Notes, rec.AttachmentIDs)
	return err
}

func (r *implantRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ImplantRecord, error) {
	return scanImplant(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+implantCols+` FROM implant_records WHERE id = $1`, id))
}

func (r *implantRepoPG) Update(ctx context.Context, rec *ImplantRecord) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE implant_records SET variant=$2, implant_date=$3, catheter_type=$4, site=$5,
			arm=$6, vein=$7, exit_site_cm=$8, ultrasound=$9, hand_hygiene=$10, barrier_precautions=$11,
			disinfectant=$12, sutureless_device=$13, transparent_dressing=$14, occlusive_dressing=$15,
			tunneled=$16, xray_check=$17, prior_xray_check=$18, ecg_check=$19, mode=$20, reason=$21,
			reason_other=$22, implant_facility=$23, referring_ward=$24, site_assessment=$25,
			operator=$26, notes=$27, attachment_ids=$28, updated_at=NOW()
		WHERE id = $1`,
		rec.ID, rec.Variant, rec.ImplantDate, rec.CatheterType, rec.Site,
		rec.Arm, rec.Vein, rec.ExitSiteCM, rec.Ultrasound, rec.HandHygiene, rec.BarrierPrecautions,
		rec.Disinfectant, rec.SuturelessDevice, rec.TransparentDressing, rec.OcclusiveDressing,
		rec.Tunneled, rec.XRayCheck, rec.PriorXRayCheck, rec.ECGCheck, rec.Mode, rec.Reason,
		rec.ReasonOther, rec.ImplantFacility, rec.ReferringWard, rec.SiteAssessment,
		rec.Operator, rec.Notes, rec.AttachmentIDs)
	return err
}

func (r *implantRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM implant_records WHERE id = $1`, id)
	return err
}

func (r *implantRepoPG) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM implant_records WHERE patient_id = $1`, patientID)
	return err
}

func (r *implantRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, clinic string) ([]*ImplantRecord, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+implantCols+` FROM implant_records
		WHERE patient_id = $1 AND clinic = $2 ORDER BY implant_date DESC`, patientID, clinic)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ImplantRecord
	for rows.Next() {
		rec, err := scanImplant(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	return items, rows.Err()
}

// -- Monthly logs --

type monthlyLogRepoPG struct{ pool *pgxpool.Pool }

func NewMonthlyLogRepoPG(pool *pgxpool.Pool) MonthlyLogRepository {
	return &monthlyLogRepoPG{pool: pool}
}

const monthlyCols = `id, patient_id, clinic, month, days, notes, created_at, updated_at`

func scanMonthly(row pgx.Row) (*MonthlyLog, error) {
	var l MonthlyLog
	err := row.Scan(&l.ID, &l.PatientID, &l.Clinic, &l.Month, &l.Days, &l.Notes, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &l, err
}

func (r *monthlyLogRepoPG) Create(ctx context.Context, l *MonthlyLog) error {
	l.ID = uuid.New()
	if l.Days == nil {
		l.Days = map[string]DayEntries{}
	}
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO monthly_logs (id, patient_id, clinic, month, days, notes)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		l.ID, l.PatientID, l.Clinic, l.Month, l.Days, l.Notes)
	return err
}

func (r *monthlyLogRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*MonthlyLog, error) {
	return scanMonthly(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+monthlyCols+` FROM monthly_logs WHERE id = $1`, id))
}

func (r *monthlyLogRepoPG) GetByPatientMonth(ctx context.Context, patientID uuid.UUID, clinic, month string) (*MonthlyLog, error) {
	return scanMonthly(conn(ctx, r.pool).QueryRow(ctx, `
		SELECT `+monthlyCols+` FROM monthly_logs
		WHERE patient_id = $1 AND clinic = $2 AND month = $3`, patientID, clinic, month))
}

func (r *monthlyLogRepoPG) Update(ctx context.Context, l *MonthlyLog) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE monthly_logs SET days=$2, notes=$3, updated_at=NOW() WHERE id = $1`,
		l.ID, l.Days, l.Notes)
	return err
}

func (r *monthlyLogRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM monthly_logs WHERE id = $1`, id)
	return err
}

func (r *monthlyLogRepoPG) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM monthly_logs WHERE patient_id = $1`, patientID)
	return err
}

func (r *monthlyLogRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, clinic, month string) ([]*MonthlyLog, error) {
	query := `SELECT ` + monthlyCols + ` FROM monthly_logs WHERE patient_id = $1 AND clinic = $2`
	args := []interface{}{patientID, clinic}
	if month != "" {
		query += ` AND month = $3`
		args = append(args, month)
	}
	query += ` ORDER BY month DESC`

	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*MonthlyLog
	for rows.Next() {
		l, err := scanMonthly(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}
