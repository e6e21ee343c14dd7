package hr

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nikhiljagtap3989/orbit-hr-suite/internal/platform/db"
)

func connFor(ctx context.Context, pool *pgxpool.Pool) db.Querier {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return pool
}

// =========== Employee Repository ===========

type employeeRepoPG struct{ pool *pgxpool.Pool }

func NewEmployeeRepoPG(pool *pgxpool.Pool) EmployeeRepository { return &employeeRepoPG{pool: pool} }

const employeeCols = `id, first_name, last_name, email, phone, department, designation,
	join_date, active, created_at, updated_at`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.Department,
		&e.Designation, &e.JoinDate, &e.Active, &e.CreatedAt, &e.UpdatedAt)
	return &e, err
}

func (r *employeeRepoPG) Create(ctx context.Context, e *Employee) error {
	e.ID = uuid.New()
	return connFor(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO employees (id, first_name, last_name, email, phone, department, designation, join_date, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at`,
		e.ID, e.FirstName, e.LastName, e.Email, e.Phone, e.Department, e.Designation, e.JoinDate, e.Active).
		Scan(&e.CreatedAt, &e.UpdatedAt)
}

func (r *employeeRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	return scanEmployee(connFor(ctx, r.pool).QueryRow(ctx,
		`SELECT `+employeeCols+` FROM employees WHERE id = $1`, id))
}

func (r *employeeRepoPG) GetByEmail(ctx context.Context, email string) (*Employee, error) {
	return scanEmployee(connFor(ctx, r.pool).QueryRow(ctx,
		`SELECT `+employeeCols+` FROM employees WHERE email = $1`, email))
}

func (r *employeeRepoPG) Update(ctx context.Context, e *Employee) error {
	_, err := connFor(ctx, r.pool).Exec(ctx, `
		UPDATE employees SET first_name=$2, last_name=$3, email=$4, phone=$5, department=$6,
			designation=$7, join_date=$8, active=$9, updated_at=NOW()
		WHERE id = $1`,
		e.ID, e.FirstName, e.LastName, e.Email, e.Phone, e.Department, e.Designation, e.JoinDate, e.Active)
	return err
}

func (r *employeeRepoPG) List(ctx context.Context, department string, limit, offset int) ([]*Employee, int, error) {
	q := connFor(ctx, r.pool)

	var total int
	var rows pgx.Rows
	var err error
	if department != "" {
		if err = q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE department = $1`, department).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = q.Query(ctx,
			`SELECT `+employeeCols+` FROM employees WHERE department = $1 ORDER BY last_name, first_name LIMIT $2 OFFSET $3`,
			department, limit, offset)
	} else {
		if err = q.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = q.Query(ctx,
			`SELECT `+employeeCols+` FROM employees ORDER BY last_name, first_name LIMIT $1 OFFSET $2`,
			limit, offset)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}

// =========== Attendance Repository ===========

type attendanceRepoPG struct{ pool *pgxpool.Pool }

func NewAttendanceRepoPG(pool *pgxpool.Pool) AttendanceRepository { return &attendanceRepoPG{pool: pool} }

const attendanceCols = `id, employee_id, day, clock_in, clock_out, status, created_at`

func scanAttendance(row pgx.Row) (*AttendanceRecord, error) {
	var a AttendanceRecord
	err := row.Scan(&a.ID, &a.EmployeeID, &a.Day, &a.ClockIn, &a.ClockOut, &a.Status, &a.CreatedAt)
	return &a, err
}

func (r *attendanceRepoPG) Create(ctx context.Context, a *AttendanceRecord) error {
	a.ID = uuid.New()
	return connFor(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO attendance (id, employee_id, day, clock_in, clock_out, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		a.ID, a.EmployeeID, a.Day, a.ClockIn, a.ClockOut, a.Status).
		Scan(&a.CreatedAt)
}

func (r *attendanceRepoPG) Update(ctx context.Context, a *AttendanceRecord) error {
	_, err := connFor(ctx, r.pool).Exec(ctx,
		`UPDATE attendance SET clock_in=$2, clock_out=$3, status=$4 WHERE id = $1`,
		a.ID, a.ClockIn, a.ClockOut, a.Status)
	return err
}

func (r *attendanceRepoPG) GetByEmployeeAndDay(ctx context.Context, employeeID uuid.UUID, day string) (*AttendanceRecord, error) {
	return scanAttendance(connFor(ctx, r.pool).QueryRow(ctx,
		`SELECT `+attendanceCols+` FROM attendance WHERE employee_id = $1 AND day = $2`, employeeID, day))
}

func (r *attendanceRepoPG) ListByDay(ctx context.Context, day string, limit, offset int) ([]*AttendanceRecord, int, error) {
	q := connFor(ctx, r.pool)
	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance WHERE day = $1`, day).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := q.Query(ctx,
		`SELECT `+attendanceCols+` FROM attendance WHERE day = $1 ORDER BY clock_in LIMIT $2 OFFSET $3`,
		day, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectAttendance(rows, total)
}

func (r *attendanceRepoPG) ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*AttendanceRecord, int, error) {
	q := connFor(ctx, r.pool)
	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance WHERE employee_id = $1`, employeeID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := q.Query(ctx,
		`SELECT `+attendanceCols+` FROM attendance WHERE employee_id = $1 ORDER BY day DESC LIMIT $2 OFFSET $3`,
		employeeID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectAttendance(rows, total)
}

func collectAttendance(rows pgx.Rows, total int) ([]*AttendanceRecord, int, error) {
	var items []*AttendanceRecord
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

// =========== Leave Repository ===========

type leaveRepoPG struct{ pool *pgxpool.Pool }

func NewLeaveRepoPG(pool *pgxpool.Pool) LeaveRepository { return &leaveRepoPG{pool: pool} }

const leaveCols = `id, employee_id, leave_type, start_date, end_date, duration, reason, status,
	created_at, updated_at`

func scanLeave(row pgx.Row) (*LeaveRequest, error) {
	var l LeaveRequest
	err := row.Scan(&l.ID, &l.EmployeeID, &l.LeaveType, &l.StartDate, &l.EndDate, &l.Duration,
		&l.Reason, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	return &l, err
}

func (r *leaveRepoPG) Create(ctx context.Context, l *LeaveRequest) error {
	l.ID = uuid.New()
	return connFor(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO leave_requests (id, employee_id, leave_type, start_date, end_date, duration, reason, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		l.ID, l.EmployeeID, l.LeaveType, l.StartDate, l.EndDate, l.Duration, l.Reason, l.Status).
		Scan(&l.CreatedAt, &l.UpdatedAt)
}

func (r *leaveRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	return scanLeave(connFor(ctx, r.pool).QueryRow(ctx,
		`SELECT `+leaveCols+` FROM leave_requests WHERE id = $1`, id))
}

func (r *leaveRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := connFor(ctx, r.pool).Exec(ctx,
		`UPDATE leave_requests SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *leaveRepoPG) ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*LeaveRequest, int, error) {
	q := connFor(ctx, r.pool)
	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests WHERE employee_id = $1`, employeeID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := q.Query(ctx,
		`SELECT `+leaveCols+` FROM leave_requests WHERE employee_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		employeeID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectLeave(rows, total)
}

func (r *leaveRepoPG) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*LeaveRequest, int, error) {
	q := connFor(ctx, r.pool)
	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := q.Query(ctx,
		`SELECT `+leaveCols+` FROM leave_requests WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectLeave(rows, total)
}

// SumDurationByStatus totals the paid leave days an employee has in the given
// status for the year the leave starts in. Unpaid leave never counts against
// the allowance.
func (r *leaveRepoPG) SumDurationByStatus(ctx context.Context, employeeID uuid.UUID, status string, year int) (int, error) {
	var sum int
	err := connFor(ctx, r.pool).QueryRow(ctx, `
		SELECT COALESCE(SUM(duration), 0) FROM leave_requests
		WHERE employee_id = $1 AND status = $2 AND leave_type <> 'unpaid'
		  AND LEFT(start_date, 4)::INT = $3`,
		employeeID, status, year).Scan(&sum)
	return sum, err
}

func collectLeave(rows pgx.Rows, total int) ([]*LeaveRequest, int, error) {
	var items []*LeaveRequest
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, l)
	}
	return items, total, rows.Err()
}
