package claims

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nikhiljagtap3989/orbit-hr-suite/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Querier {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const claimCols = `id, claim_number, appointment_id, diagnosis_code, procedure_code,
	billed_amount, provider_npi, insurance_provider, insurance_policy_number,
	service_location, claim_notes, medical_report_id, billing_doc_id, status,
	denial_reason, created_at, updated_at`

func scanClaim(row pgx.Row) (*Claim, error) {
	var cl Claim
	err := row.Scan(&cl.ID, &cl.ClaimNumber, &cl.AppointmentID, &cl.DiagnosisCode, &cl.ProcedureCode,
		&cl.BilledAmount, &cl.ProviderNPI, &cl.InsuranceProvider, &cl.InsurancePolicyNumber,
		&cl.ServiceLocation, &cl.ClaimNotes, &cl.MedicalReportID, &cl.BillingDocID, &cl.Status,
		&cl.DenialReason, &cl.CreatedAt, &cl.UpdatedAt)
	return &cl, err
}

func (r *repoPG) Create(ctx context.Context, cl *Claim) error {
	cl.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO claims (id, claim_number, appointment_id, diagnosis_code, procedure_code,
			billed_amount, provider_npi, insurance_provider, insurance_policy_number,
			service_location, claim_notes, medical_report_id, billing_doc_id, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING created_at, updated_at`,
		cl.ID, cl.ClaimNumber, cl.AppointmentID, cl.DiagnosisCode, cl.ProcedureCode,
		cl.BilledAmount, cl.ProviderNPI, cl.InsuranceProvider, cl.InsurancePolicyNumber,
		cl.ServiceLocation, cl.ClaimNotes, cl.MedicalReportID, cl.BillingDocID, cl.Status).
		Scan(&cl.CreatedAt, &cl.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Claim, error) {
	return scanClaim(r.conn(ctx).QueryRow(ctx,
		`SELECT `+claimCols+` FROM claims WHERE id = $1`, id))
}

func (r *repoPG) GetByClaimNumber(ctx context.Context, claimNumber string) (*Claim, error) {
	return scanClaim(r.conn(ctx).QueryRow(ctx,
		`SELECT `+claimCols+` FROM claims WHERE claim_number = $1`, claimNumber))
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string, denialReason *string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE claims SET status = $2, denial_reason = $3, updated_at = NOW() WHERE id = $1`,
		id, status, denialReason)
	return err
}

func (r *repoPG) SetAttachments(ctx context.Context, id uuid.UUID, medicalReportID, billingDocID *uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE claims SET medical_report_id = $2, billing_doc_id = $3, updated_at = NOW() WHERE id = $1`,
		id, medicalReportID, billingDocID)
	return err
}

func (r *repoPG) List(ctx context.Context, status string, limit, offset int) ([]*Claim, int, error) {
	where := ""
	var args []interface{}
	if status != "" {
		where = ` WHERE status = $1`
		args = append(args, status)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM claims`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM claims%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		claimCols, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Claim
	for rows.Next() {
		cl, err := scanClaim(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, cl)
	}
	return items, total, rows.Err()
}
