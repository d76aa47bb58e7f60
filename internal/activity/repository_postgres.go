package activity

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(rec Record) (Record, error) {
	var metaJSON []byte
	if rec.Metadata != nil {
		var err error
		metaJSON, err = json.Marshal(rec.Metadata)
		if err != nil {
			return Record{}, err
		}
	}

	err := r.db.QueryRow(`INSERT INTO user_activity_log ("userID", "activityType", description, "ipAddress", "userAgent", metadata, "createdAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING "activityID"`,
		rec.UserID, rec.ActivityType, rec.Description, nullable(rec.IPAddress), nullable(rec.UserAgent), metaJSON, rec.CreatedAt).Scan(&rec.ID)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (r *PostgresRepository) ListByUser(userID int, limit int) ([]Record, error) {
	rows, err := r.db.Query(`SELECT "activityID", "userID", "activityType", description, "ipAddress", "userAgent", metadata, "createdAt"
		FROM user_activity_log
		WHERE "userID" = $1
		ORDER BY "activityID" DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *PostgresRepository) ListRecent(limit int) ([]Record, error) {
	rows, err := r.db.Query(`SELECT "activityID", "userID", "activityType", description, "ipAddress", "userAgent", metadata, "createdAt"
		FROM user_activity_log
		ORDER BY "activityID" DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	records := make([]Record, 0)
	for rows.Next() {
		var rec Record
		var ip, agent sql.NullString
		var metaJSON []byte
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ActivityType, &rec.Description, &ip, &agent, &metaJSON, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.IPAddress = ip.String
		rec.UserAgent = agent.String
		if len(metaJSON) > 0 {
			json.Unmarshal(metaJSON, &rec.Metadata)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
