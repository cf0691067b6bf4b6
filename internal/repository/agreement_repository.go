package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/segyhp/leasing-engine/internal/domain"
	customError "github.com/segyhp/leasing-engine/pkg/errors"
)

const agreementColumns = `id, employee_id, item_id, company_id, start_date, end_date, status, price,
	currency, payment_frequency, metadata, created_at, updated_at`

const scheduleColumns = `id, agreement_id, seq, due_date, amount, status, attempt_count, payment_id, last_attempt_date`

// agreementRow carries the jsonb metadata column next to the domain fields
type agreementRow struct {
	domain.LeasingAgreement
	RawMetadata []byte `db:"metadata"`
}

func (r agreementRow) toDomain() (*domain.LeasingAgreement, error) {
	agreement := r.LeasingAgreement
	if len(r.RawMetadata) > 0 {
		if err := json.Unmarshal(r.RawMetadata, &agreement.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata of %s: %w", agreement.ID, err)
		}
	}
	return &agreement, nil
}

type agreementRepository struct {
	db *sqlx.DB
}

func NewAgreementRepository(db *sqlx.DB) AgreementRepository {
	return &agreementRepository{db: db}
}

func (r *agreementRepository) Save(ctx context.Context, agreement *domain.LeasingAgreement) (*domain.LeasingAgreement, error) {
	// jsonb is sent as text; lib/pq would send []byte as bytea
	var metadata sql.NullString
	if agreement.Metadata != nil {
		raw, err := json.Marshal(agreement.Metadata)
		if err != nil {
			return nil, fmt.Errorf("encode metadata: %w", err)
		}
		metadata = sql.NullString{String: string(raw), Valid: true}
	}

	agreementQuery := `
		INSERT INTO agreements (` + agreementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status, price = EXCLUDED.price, metadata = EXCLUDED.metadata, updated_at = EXCLUDED.updated_at
	`

	scheduleQuery := `
		INSERT INTO payment_schedules (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status, amount = EXCLUDED.amount, attempt_count = EXCLUDED.attempt_count,
			payment_id = EXCLUDED.payment_id, last_attempt_date = EXCLUDED.last_attempt_date
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, agreementQuery,
		agreement.ID,
		agreement.EmployeeID,
		agreement.ItemID,
		agreement.CompanyID,
		agreement.StartDate,
		agreement.EndDate,
		agreement.Status,
		agreement.Price,
		agreement.Currency,
		agreement.PaymentFrequency,
		metadata,
		agreement.CreatedAt,
		agreement.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, entry := range agreement.PaymentSchedule {
		_, err = tx.ExecContext(ctx, scheduleQuery,
			entry.ID,
			entry.AgreementID,
			entry.Sequence,
			entry.DueDate,
			entry.Amount,
			entry.Status,
			entry.AttemptCount,
			entry.PaymentID,
			entry.LastAttemptDate,
		)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return agreement, nil
}

func (r *agreementRepository) FindByID(ctx context.Context, id string) (*domain.LeasingAgreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM agreements WHERE id = $1`

	var row agreementRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.ErrAgreementNotFound
		}
		return nil, err
	}

	agreement, err := row.toDomain()
	if err != nil {
		return nil, err
	}

	agreements := []*domain.LeasingAgreement{agreement}
	if err := r.attachSchedules(ctx, agreements); err != nil {
		return nil, err
	}
	return agreement, nil
}

func (r *agreementRepository) FindByEmployeeID(ctx context.Context, employeeID string) ([]*domain.LeasingAgreement, error) {
	query := `
		SELECT ` + agreementColumns + `
		FROM agreements
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`
	return r.selectAgreements(ctx, query, employeeID)
}

func (r *agreementRepository) FindByStatus(ctx context.Context, status domain.AgreementStatus) ([]*domain.LeasingAgreement, error) {
	query := `
		SELECT ` + agreementColumns + `
		FROM agreements
		WHERE status = $1
		ORDER BY created_at
	`
	return r.selectAgreements(ctx, query, status)
}

func (r *agreementRepository) UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus) error {
	query := `
		UPDATE payment_schedules
		SET status = $2
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, paymentID, status)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return customError.ErrPaymentNotFound
	}
	return nil
}

func (r *agreementRepository) selectAgreements(ctx context.Context, query string, args ...interface{}) ([]*domain.LeasingAgreement, error) {
	var rows []agreementRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	agreements := make([]*domain.LeasingAgreement, 0, len(rows))
	for _, row := range rows {
		agreement, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		agreements = append(agreements, agreement)
	}

	if err := r.attachSchedules(ctx, agreements); err != nil {
		return nil, err
	}
	return agreements, nil
}

// attachSchedules loads the schedules of all given agreements in one query
func (r *agreementRepository) attachSchedules(ctx context.Context, agreements []*domain.LeasingAgreement) error {
	if len(agreements) == 0 {
		return nil
	}

	ids := make([]string, 0, len(agreements))
	byID := make(map[string]*domain.LeasingAgreement, len(agreements))
	for _, agreement := range agreements {
		ids = append(ids, agreement.ID)
		byID[agreement.ID] = agreement
		agreement.PaymentSchedule = []domain.PaymentSchedule{}
	}

	query, args, err := sqlx.In(`
		SELECT `+scheduleColumns+`
		FROM payment_schedules
		WHERE agreement_id IN (?)
		ORDER BY agreement_id, seq
	`, ids)
	if err != nil {
		return err
	}

	var entries []domain.PaymentSchedule
	if err := r.db.SelectContext(ctx, &entries, r.db.Rebind(query), args...); err != nil {
		return err
	}

	for _, entry := range entries {
		if agreement, ok := byID[entry.AgreementID]; ok {
			agreement.PaymentSchedule = append(agreement.PaymentSchedule, entry)
		}
	}
	return nil
}
