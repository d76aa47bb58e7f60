package catalog

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const vehicleColumns = `"vehicleID", name, slug, price, category, description, "videoURL", vin, year, engine, "createdAt"`

func (r *PostgresRepository) List() ([]Vehicle, error) {
	rows, err := r.db.Query(`SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVehicles(rows)
}

func (r *PostgresRepository) ListByCategory(category string) ([]Vehicle, error) {
	rows, err := r.db.Query(`SELECT `+vehicleColumns+` FROM vehicles WHERE category = $1 ORDER BY name`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVehicles(rows)
}

func (r *PostgresRepository) GetBySlug(slug string) (Vehicle, error) {
	row := r.db.QueryRow(`SELECT `+vehicleColumns+` FROM vehicles WHERE slug = $1`, slug)
	return scanVehicle(row)
}

func (r *PostgresRepository) GetByID(id int) (Vehicle, error) {
	row := r.db.QueryRow(`SELECT `+vehicleColumns+` FROM vehicles WHERE "vehicleID" = $1`, id)
	return scanVehicle(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (Vehicle, error) {
	var v Vehicle
	var createdAt sql.NullString
	err := row.Scan(&v.ID, &v.Name, &v.Slug, &v.Price, &v.Category, &v.Description, &v.VideoURL, &v.VIN, &v.Year, &v.Engine, &createdAt)
	if err == sql.ErrNoRows {
		return Vehicle{}, ErrNotFound
	}
	if err != nil {
		return Vehicle{}, err
	}
	v.CreatedAt = createdAt.String
	return v, nil
}

func scanVehicles(rows *sql.Rows) ([]Vehicle, error) {
	vehicles := make([]Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}
