package user

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `"userID", username, email, password, "firstName", "lastName", phone, address, "googleID", picture, "createdAt", "updatedAt"`

func (r *PostgresRepository) GetByID(id int) (User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE "userID" = $1`, id)
	return scanUser(row)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresRepository) GetByGoogleID(googleID string) (User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE "googleID" = $1`, googleID)
	return scanUser(row)
}

func (r *PostgresRepository) List() ([]User, error) {
	rows, err := r.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY "userID"`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresRepository) Create(u User) (User, error) {
	row := r.db.QueryRow(`INSERT INTO users (username, email, password, "firstName", "lastName", phone, address, "googleID", picture, "createdAt", "updatedAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING `+userColumns,
		u.Username, u.Email, u.Password, u.FirstName, u.LastName, u.Phone, u.Address, u.GoogleID, u.Picture, u.CreatedAt, u.UpdatedAt)
	return scanUser(row)
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	row := r.db.QueryRow(`UPDATE users
		SET username = $2, email = $3,
		    password = CASE WHEN $4 <> '' THEN $4 ELSE password END,
		    "firstName" = $5, "lastName" = $6, phone = $7, address = $8,
		    "googleID" = COALESCE($9, "googleID"),
		    picture = COALESCE($10, picture),
		    "updatedAt" = $11
		WHERE "userID" = $1
		RETURNING `+userColumns,
		id, u.Username, u.Email, u.Password, u.FirstName, u.LastName, u.Phone, u.Address, u.GoogleID, u.Picture, u.UpdatedAt)
	return scanUser(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	var password, firstName, lastName, phone, address, createdAt, updatedAt sql.NullString
	err := row.Scan(&u.ID, &u.Username, &u.Email, &password, &firstName, &lastName, &phone, &address, &u.GoogleID, &u.Picture, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	u.Password = password.String
	u.FirstName = firstName.String
	u.LastName = lastName.String
	u.Phone = phone.String
	u.Address = address.String
	u.CreatedAt = createdAt.String
	u.UpdatedAt = updatedAt.String
	return u, nil
}
