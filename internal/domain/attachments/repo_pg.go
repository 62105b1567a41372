package attachments

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

const attachmentCols = `id, patient_id, clinic, category, description, taken_at,
	content, file_kind, original_name, mime_type, dressing_record_id, created_at`

func scanAttachment(row pgx.Row) (*Attachment, error) {
	var a Attachment
	err := row.Scan(&a.ID, &a.PatientID, &a.Clinic, &a.Category, &a.Description, &a.Date,
		&a.Content, &a.FileKind, &a.OriginalName, &a.MimeType, &a.DressingRecordID, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Attachment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO attachments (id, patient_id, clinic, category, description, taken_at,
			content, file_kind, original_name, mime_type, dressing_record_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		a.ID, a.PatientID, a.Clinic, a.Category, a.Description, a.Date,
		a.Content, a.FileKind, a.OriginalName, a.MimeType, a.DressingRecordID)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Attachment, error) {
	return scanAttachment(r.conn(ctx).QueryRow(ctx, `SELECT `+attachmentCols+` FROM attachments WHERE id = $1`, id))
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	return err
}

func (r *repoPG) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM attachments WHERE patient_id = $1`, patientID)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, clinic, category string) ([]*Attachment, error) {
	query := `SELECT ` + attachmentCols + ` FROM attachments WHERE patient_id = $1 AND clinic = $2`
	args := []interface{}{patientID, clinic}
	if category != "" {
		query += ` AND category = $3`
		args = append(args, category)
	}
	query += ` ORDER BY taken_at DESC`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Attachment
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
