package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/didi/gendry/builder"

	"github.com/mireo/fitvault/internal/model"
	"github.com/mireo/fitvault/internal/pkg/dbutil"
	appErr "github.com/mireo/fitvault/internal/pkg/errors"
)

type WorkoutRepo struct {
	db *sql.DB
}

func NewWorkoutRepo(db *sql.DB) *WorkoutRepo {
	return &WorkoutRepo{db: db}
}

func (r *WorkoutRepo) Create(ctx context.Context, workout *model.Workout) error {
	summaryJSON, err := json.Marshal(workout.Summary)
	if err != nil {
		return err
	}
	infoJSON, err := json.Marshal(workout.Information)
	if err != nil {
		return err
	}
	data := map[string]interface{}{
		"id":               workout.ID,
		"user_id":          workout.UserID,
		"name":             workout.Name,
		"comment":          workout.Comment,
		"start_time":       workout.StartTime.Unix(),
		"end_time":         workout.EndTime.Unix(),
		"summary_json":     string(summaryJSON),
		"information_json": string(infoJSON),
	}
	sqlStr, args, err := builder.BuildInsert("workouts", []map[string]interface{}{data})
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

func (r *WorkoutRepo) GetByID(ctx context.Context, userID, workoutID string) (*model.Workout, error) {
	where := map[string]interface{}{"id": workoutID, "user_id": userID}
	sqlStr, args, err := builder.BuildSelect("workouts", where, workoutColumns())
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanWorkout(rows)
}

func (r *WorkoutRepo) List(ctx context.Context, userID string) ([]model.Workout, error) {
	where := map[string]interface{}{"user_id": userID, "_orderby": "start_time desc"}
	sqlStr, args, err := builder.BuildSelect("workouts", where, workoutColumns())
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	workouts := make([]model.Workout, 0)
	for rows.Next() {
		workout, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *workout)
	}
	return workouts, rows.Err()
}

func (r *WorkoutRepo) Delete(ctx context.Context, userID, workoutID string) error {
	const query = `DELETE FROM workouts WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, workoutID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func workoutColumns() []string {
	return []string{"id", "user_id", "name", "comment", "start_time", "end_time", "summary_json", "information_json"}
}

func scanWorkout(rows *sql.Rows) (*model.Workout, error) {
	var workout model.Workout
	var comment sql.NullString
	var startTime, endTime int64
	var summaryJSON, infoJSON string
	if err := rows.Scan(
		&workout.ID,
		&workout.UserID,
		&workout.Name,
		&comment,
		&startTime,
		&endTime,
		&summaryJSON,
		&infoJSON,
	); err != nil {
		return nil, err
	}
	if comment.Valid {
		workout.Comment = &comment.String
	}
	workout.StartTime = time.Unix(startTime, 0).UTC()
	workout.EndTime = time.Unix(endTime, 0).UTC()
	if err := json.Unmarshal([]byte(summaryJSON), &workout.Summary); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(infoJSON), &workout.Information); err != nil {
		return nil, err
	}
	return &workout, nil
}
