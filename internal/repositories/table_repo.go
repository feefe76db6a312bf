package repositories

import (
	"context"

	"github.com/conterGui/Aconchego-Pap/internal/models"
)

type TableRepository interface {
	List(ctx context.Context) ([]models.Table, error)
}

type tableRepo struct {
	db Database
}

func NewTableRepo(db Database) TableRepository {
	return &tableRepo{db: db}
}

// List returns the floor plan ordered by table id.
func (r *tableRepo) List(ctx context.Context) ([]models.Table, error) {
	rows, err := r.db.Query(ctx, `SELECT id, capacity, pos_x, pos_y, shape, rotation FROM cafe_tables ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []models.Table{}
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(&t.ID, &t.Capacity, &t.X, &t.Y, &t.Shape, &t.Rotation); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}
