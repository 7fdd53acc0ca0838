package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/mireo/fitvault/internal/model"
	"github.com/mireo/fitvault/internal/pkg/dbutil"
	appErr "github.com/mireo/fitvault/internal/pkg/errors"
)

type ExerciseRepo struct {
	db *sql.DB
}

func NewExerciseRepo(db *sql.DB) *ExerciseRepo {
	return &ExerciseRepo{db: db}
}

func (r *ExerciseRepo) Create(ctx context.Context, exercise *model.Exercise) error {
	data := map[string]interface{}{
		"id":    exercise.ID,
		"name":  exercise.Name,
		"lot":   string(exercise.Lot),
		"ctime": exercise.Ctime,
		"mtime": exercise.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("exercises", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *ExerciseRepo) GetByID(ctx context.Context, exerciseID string) (*model.Exercise, error) {
	where := map[string]interface{}{"id": exerciseID}
	sqlStr, args, err := builder.BuildSelect("exercises", where, []string{"id", "name", "lot", "ctime", "mtime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	var exercise model.Exercise
	var lot string
	if err := row.Scan(&exercise.ID, &exercise.Name, &lot, &exercise.Ctime, &exercise.Mtime); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	exercise.Lot = model.ExerciseLot(lot)
	return &exercise, nil
}

// NameMap returns all exercises keyed by name. Import adapters use it
// for read-only exact-match resolution of external names.
func (r *ExerciseRepo) NameMap(ctx context.Context) (map[string]string, error) {
	const query = `SELECT name, id FROM exercises`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var name, id string
		if err := rows.Scan(&name, &id); err != nil {
			return nil, err
		}
		out[name] = id
	}
	return out, rows.Err()
}
