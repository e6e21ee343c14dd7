package insurance

import (
	"context"

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

const verificationCols = `id, insurance_provider, policy_number, member_id, group_number,
	provider_phone, provider_address, insurance_type, verification_date,
	patient_first_name, patient_last_name, patient_dob, patient_gender,
	patient_address, patient_phone, patient_email, relationship_to_subscriber,
	subscriber_first_name, subscriber_last_name, subscriber_dob,
	service_type, service_date, diagnosis_codes, procedure_codes,
	referring_provider, facility, prior_authorization_number, status,
	deductible, copay, coinsurance, out_of_pocket_max, verified_by, verified_date,
	created_at, updated_at`

func scanVerification(row pgx.Row) (*Verification, error) {
	var v Verification
	err := row.Scan(&v.ID, &v.InsuranceProvider, &v.PolicyNumber, &v.MemberID, &v.GroupNumber,
		&v.ProviderPhone, &v.ProviderAddress, &v.InsuranceType, &v.VerificationDate,
		&v.PatientFirstName, &v.PatientLastName, &v.PatientDob, &v.PatientGender,
		&v.PatientAddress, &v.PatientPhone, &v.PatientEmail, &v.RelationshipToSubscriber,
		&v.SubscriberFirstName, &v.SubscriberLastName, &v.SubscriberDob,
		&v.ServiceType, &v.ServiceDate, &v.DiagnosisCodes, &v.ProcedureCodes,
		&v.ReferringProvider, &v.Facility, &v.PriorAuthorizationNumber, &v.Status,
		&v.Deductible, &v.Copay, &v.Coinsurance, &v.OutOfPocketMax, &v.VerifiedBy, &v.VerifiedDate,
		&v.CreatedAt, &v.UpdatedAt)
	return &v, err
}

func (r *repoPG) Create(ctx context.Context, v *Verification) error {
	v.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO insurance_verifications (id, insurance_provider, policy_number, member_id,
			group_number, provider_phone, provider_address, insurance_type, verification_date,
			patient_first_name, patient_last_name, patient_dob, patient_gender,
			patient_address, patient_phone, patient_email, relationship_to_subscriber,
			subscriber_first_name, subscriber_last_name, subscriber_dob,
			service_type, service_date, diagnosis_codes, procedure_codes,
			referring_provider, facility, prior_authorization_number, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
			$21,$22,$23,$24,$25,$26,$27,$28)
		RETURNING created_at, updated_at`,
		v.ID, v.InsuranceProvider, v.PolicyNumber, v.MemberID, v.GroupNumber,
		v.ProviderPhone, v.ProviderAddress, v.InsuranceType, v.VerificationDate,
		v.PatientFirstName, v.PatientLastName, v.PatientDob, v.PatientGender,
		v.PatientAddress, v.PatientPhone, v.PatientEmail, v.RelationshipToSubscriber,
		v.SubscriberFirstName, v.SubscriberLastName, v.SubscriberDob,
		v.ServiceType, v.ServiceDate, v.DiagnosisCodes, v.ProcedureCodes,
		v.ReferringProvider, v.Facility, v.PriorAuthorizationNumber, v.Status).
		Scan(&v.CreatedAt, &v.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Verification, error) {
	return scanVerification(r.conn(ctx).QueryRow(ctx,
		`SELECT `+verificationCols+` FROM insurance_verifications WHERE id = $1`, id))
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE insurance_verifications SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)
	return err
}

func (r *repoPG) RecordBenefits(ctx context.Context, id uuid.UUID, b *BenefitsRequest) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE insurance_verifications
		SET deductible = $2, copay = $3, coinsurance = $4, out_of_pocket_max = $5,
			verified_by = $6, verified_date = $7, status = $8, updated_at = NOW()
		WHERE id = $1`,
		id, b.Deductible, b.Copay, b.Coinsurance, b.OutOfPocketMax,
		b.VerifiedBy, b.VerifiedDate, StatusActive)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Verification, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM insurance_verifications`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+verificationCols+` FROM insurance_verifications ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collect(rows, total)
}

func (r *repoPG) ListByPatient(ctx context.Context, firstName, lastName string, limit, offset int) ([]*Verification, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM insurance_verifications WHERE patient_first_name = $1 AND patient_last_name = $2`,
		firstName, lastName).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+verificationCols+` FROM insurance_verifications
		 WHERE patient_first_name = $1 AND patient_last_name = $2
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		firstName, lastName, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collect(rows, total)
}

func collect(rows pgx.Rows, total int) ([]*Verification, int, error) {
	var items []*Verification
	for rows.Next() {
		v, err := scanVerification(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}
