package finance

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const applicationColumns = `"applicationID", reference, "userID", "carID", "carName", "carPrice", "fullName", email, phone, "annualIncome", "employmentStatus", "creditScoreRange", address, "selectedPlan", status, "createdAt", "updatedAt"`

func (r *PostgresRepository) Create(app Application) (Application, error) {
	row := r.db.QueryRow(`INSERT INTO finance_applications (reference, "userID", "carID", "carName", "carPrice", "fullName", email, phone, "annualIncome", "employmentStatus", "creditScoreRange", address, "selectedPlan", status, "createdAt", "updatedAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
        RETURNING `+applicationColumns,
		app.Reference, app.UserID, app.CarID, app.CarName, app.CarPrice, app.FullName, app.Email, app.Phone,
		app.AnnualIncome, app.EmploymentStatus, app.CreditScoreRange, app.Address, app.SelectedPlan,
		app.Status, app.CreatedAt, app.UpdatedAt)
	return scanApplication(row)
}

func (r *PostgresRepository) GetByID(id int) (Application, error) {
	row := r.db.QueryRow(`SELECT `+applicationColumns+` FROM finance_applications WHERE "applicationID" = $1`, id)
	return scanApplication(row)
}

func (r *PostgresRepository) ListByUser(userID int) ([]Application, error) {
	rows, err := r.db.Query(`SELECT `+applicationColumns+` FROM finance_applications WHERE "userID" = $1 ORDER BY "applicationID" DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *PostgresRepository) ListAll() ([]Application, error) {
	rows, err := r.db.Query(`SELECT ` + applicationColumns + ` FROM finance_applications ORDER BY "applicationID" DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *PostgresRepository) UpdateStatus(id int, status, updatedAt string) (Application, error) {
	row := r.db.QueryRow(`UPDATE finance_applications SET status = $2, "updatedAt" = $3 WHERE "applicationID" = $1 RETURNING `+applicationColumns,
		id, status, updatedAt)
	return scanApplication(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var creditScore sql.NullString
	err := row.Scan(&app.ID, &app.Reference, &app.UserID, &app.CarID, &app.CarName, &app.CarPrice,
		&app.FullName, &app.Email, &app.Phone, &app.AnnualIncome, &app.EmploymentStatus,
		&creditScore, &app.Address, &app.SelectedPlan, &app.Status, &app.CreatedAt, &app.UpdatedAt)
	if err == sql.ErrNoRows {
		return Application{}, ErrNotFound
	}
	if err != nil {
		return Application{}, err
	}
	app.CreditScoreRange = creditScore.String
	return app, nil
}

func scanApplications(rows *sql.Rows) ([]Application, error) {
	apps := make([]Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}
