package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"registration-backend/internal/domain"
	"registration-backend/internal/logger"
	"registration-backend/internal/repository"
)

type registrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) repository.RegistrationRepository {
	return &registrationRepository{db: db}
}

const registrationColumns = `id, reference_code, full_name, email, phone, institution, college, department, year,
	is_member, membership_number, stay_preference, stay_dates, stay_days, stay_price_per_day, stay_total_amount,
	ambassador_code, base_amount, total_amount, transaction_id, payment_status, status, registration_date,
	COALESCE(approved_by, ''), approved_at, rejected_at, COALESCE(rejection_reason, '')`

func scanRegistration(row interface{ Scan(...any) error }) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var approvedAt, rejectedAt sql.NullTime
	err := row.Scan(
		&reg.ID, &reg.ReferenceCode, &reg.FullName, &reg.Email, &reg.Phone,
		&reg.Institution, &reg.College, &reg.Department, &reg.Year,
		&reg.IsMember, &reg.MembershipNumber, &reg.StayPreference, pq.Array(&reg.StayDates),
		&reg.StayDays, &reg.StayPricePerDay, &reg.StayTotalAmount,
		&reg.AmbassadorCode, &reg.BaseAmount, &reg.TotalAmount,
		&reg.TransactionID, &reg.PaymentStatus, &reg.Status, &reg.RegistrationDate,
		&reg.ApprovedBy, &approvedAt, &rejectedAt, &reg.RejectionReason,
	)
	if err != nil {
		return nil, err
	}
	if approvedAt.Valid {
		t := approvedAt.Time
		reg.ApprovedAt = &t
	}
	if rejectedAt.Valid {
		t := rejectedAt.Time
		reg.RejectedAt = &t
	}
	if reg.StayDates == nil {
		reg.StayDates = []string{}
	}
	return reg, nil
}

// mapUniqueViolation converts postgres unique-index violations into the
// domain's duplicate errors.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "registrations_email_key":
			return domain.ErrDuplicateEmail
		case "registrations_transaction_id_key":
			return domain.ErrDuplicateTransactionID
		}
	}
	return err
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `INSERT INTO registrations (reference_code, full_name, email, phone, institution, college, department, year,
	            is_member, membership_number, stay_preference, stay_dates, stay_days, stay_price_per_day, stay_total_amount,
	            ambassador_code, base_amount, total_amount, transaction_id, payment_status, status, registration_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	          RETURNING id`
	reg.RegistrationDate = time.Now().UTC()
	logger.DatabaseCall("INSERT", "registrations", "email", reg.Email)
	err := r.db.QueryRowContext(ctx, query,
		reg.ReferenceCode, reg.FullName, reg.Email, reg.Phone, reg.Institution, reg.College, reg.Department, reg.Year,
		reg.IsMember, reg.MembershipNumber, reg.StayPreference, pq.Array(reg.StayDates), reg.StayDays,
		reg.StayPricePerDay, reg.StayTotalAmount, reg.AmbassadorCode, reg.BaseAmount, reg.TotalAmount,
		reg.TransactionID, reg.PaymentStatus, reg.Status, reg.RegistrationDate,
	).Scan(&reg.ID)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

// CreateWithStayCapacity inserts only while the active stay count is below
// ceiling. The guard and the insert are a single statement, so two
// concurrent submissions cannot both slip under the ceiling.
func (r *registrationRepository) CreateWithStayCapacity(ctx context.Context, reg *domain.Registration, ceiling int) error {
	query := `INSERT INTO registrations (reference_code, full_name, email, phone, institution, college, department, year,
	            is_member, membership_number, stay_preference, stay_dates, stay_days, stay_price_per_day, stay_total_amount,
	            ambassador_code, base_amount, total_amount, transaction_id, payment_status, status, registration_date)
	          SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
	          WHERE (SELECT COUNT(*) FROM registrations
	                 WHERE stay_preference = 'With Stay' AND status IN ('pending', 'approved')) < $23
	          RETURNING id`
	reg.RegistrationDate = time.Now().UTC()
	logger.DatabaseCall("INSERT", "registrations (conditional on stay capacity)", "email", reg.Email, "ceiling", ceiling)
	err := r.db.QueryRowContext(ctx, query,
		reg.ReferenceCode, reg.FullName, reg.Email, reg.Phone, reg.Institution, reg.College, reg.Department, reg.Year,
		reg.IsMember, reg.MembershipNumber, reg.StayPreference, pq.Array(reg.StayDates), reg.StayDays,
		reg.StayPricePerDay, reg.StayTotalAmount, reg.AmbassadorCode, reg.BaseAmount, reg.TotalAmount,
		reg.TransactionID, reg.PaymentStatus, reg.Status, reg.RegistrationDate, ceiling,
	).Scan(&reg.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrCapacityExhausted
	}
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id int32) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	reg, err := scanRegistration(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return reg, err
}

func (r *registrationRepository) GetByEmail(ctx context.Context, email string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE LOWER(email) = LOWER($1)`
	reg, err := scanRegistration(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return reg, err
}

func (r *registrationRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE transaction_id = $1`
	reg, err := scanRegistration(r.db.QueryRowContext(ctx, query, transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return reg, err
}

func (r *registrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	query := `UPDATE registrations SET status=$1, approved_by=$2, approved_at=$3, rejected_at=$4, rejection_reason=$5 WHERE id=$6`
	logger.DatabaseCall("UPDATE", "registrations", "id", reg.ID, "status", reg.Status)
	res, err := r.db.ExecContext(ctx, query, reg.Status, reg.ApprovedBy, reg.ApprovedAt, reg.RejectedAt, reg.RejectionReason, reg.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *registrationRepository) List(ctx context.Context, filter domain.ListFilter, page, pageSize int32) ([]domain.Registration, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Status != "" && domain.ValidRegistrationStatus(filter.Status) {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Institution != "" && domain.ValidInstitution(filter.Institution) {
		query += fmt.Sprintf(" AND institution = $%d", argIdx)
		args = append(args, filter.Institution)
		argIdx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (full_name ILIKE $%d OR email ILIKE $%d OR transaction_id ILIKE $%d OR college ILIKE $%d OR department ILIKE $%d OR ambassador_code ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	var count int64
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY registration_date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var regs []domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, 0, err
		}
		regs = append(regs, *reg)
	}
	return regs, count, rows.Err()
}

func (r *registrationRepository) CountActiveStay(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM registrations WHERE stay_preference = 'With Stay' AND status IN ('pending', 'approved')`
	var count int
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}

func (r *registrationRepository) Stats(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{
		ByInstitution:    map[string]int64{},
		ByStayPreference: map[string]int64{},
	}

	totalsQuery := `SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE status = 'pending'),
	       COUNT(*) FILTER (WHERE status = 'approved'),
	       COUNT(*) FILTER (WHERE status = 'rejected'),
	       COALESCE(SUM(total_amount) FILTER (WHERE status = 'approved'), 0),
	       COUNT(*) FILTER (WHERE ambassador_code <> '')
	  FROM registrations`
	err := r.db.QueryRowContext(ctx, totalsQuery).Scan(
		&stats.Total, &stats.Pending, &stats.Approved, &stats.Rejected,
		&stats.ApprovedRevenue, &stats.WithAmbassador,
	)
	if err != nil {
		return nil, err
	}

	instRows, err := r.db.QueryContext(ctx, `SELECT institution, COUNT(*) FROM registrations GROUP BY institution`)
	if err != nil {
		return nil, err
	}
	defer instRows.Close()
	for instRows.Next() {
		var inst string
		var n int64
		if err := instRows.Scan(&inst, &n); err != nil {
			return nil, err
		}
		stats.ByInstitution[inst] = n
	}
	if err := instRows.Err(); err != nil {
		return nil, err
	}

	stayRows, err := r.db.QueryContext(ctx, `SELECT stay_preference, COUNT(*) FROM registrations GROUP BY stay_preference`)
	if err != nil {
		return nil, err
	}
	defer stayRows.Close()
	for stayRows.Next() {
		var pref string
		var n int64
		if err := stayRows.Scan(&pref, &n); err != nil {
			return nil, err
		}
		stats.ByStayPreference[pref] = n
	}
	if err := stayRows.Err(); err != nil {
		return nil, err
	}

	ambRows, err := r.db.QueryContext(ctx,
		`SELECT ambassador_code, COUNT(*) FROM registrations WHERE ambassador_code <> '' GROUP BY ambassador_code ORDER BY COUNT(*) DESC LIMIT 10`)
	if err != nil {
		return nil, err
	}
	defer ambRows.Close()
	for ambRows.Next() {
		var rank domain.AmbassadorRank
		if err := ambRows.Scan(&rank.Code, &rank.Count); err != nil {
			return nil, err
		}
		stats.TopAmbassadors = append(stats.TopAmbassadors, rank)
	}
	return stats, ambRows.Err()
}
