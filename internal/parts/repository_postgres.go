package parts

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const partColumns = `"partID", name, description, price, image, brand, category, condition, warranty, "createdAt"`

func (r *PostgresRepository) List() ([]Part, error) {
	rows, err := r.db.Query(`SELECT ` + partColumns + ` FROM parts ORDER BY "partID"`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanParts(rows)
}

func (r *PostgresRepository) ListByCategory(category string) ([]Part, error) {
	rows, err := r.db.Query(`SELECT `+partColumns+` FROM parts WHERE category = $1 ORDER BY "partID"`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanParts(rows)
}

func (r *PostgresRepository) GetByID(id int) (Part, error) {
	row := r.db.QueryRow(`SELECT `+partColumns+` FROM parts WHERE "partID" = $1`, id)
	return scanPart(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPart(row rowScanner) (Part, error) {
	var p Part
	var description, image, brand, category, warranty, createdAt sql.NullString
	err := row.Scan(&p.ID, &p.Name, &description, &p.Price, &image, &brand, &category, &p.Condition, &warranty, &createdAt)
	if err == sql.ErrNoRows {
		return Part{}, ErrNotFound
	}
	if err != nil {
		return Part{}, err
	}
	p.Description = description.String
	p.Image = image.String
	p.Brand = brand.String
	p.Category = category.String
	p.Warranty = warranty.String
	p.CreatedAt = createdAt.String
	return p, nil
}

func scanParts(rows *sql.Rows) ([]Part, error) {
	parts := make([]Part, 0)
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}
