package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/didi/gendry/builder"

	"github.com/mireo/fitvault/internal/model"
	"github.com/mireo/fitvault/internal/pkg/dbutil"
	appErr "github.com/mireo/fitvault/internal/pkg/errors"
)

// AssociationRepo manages user_to_entity rows: one row per (user,
// exercise) or (user, media item), carrying the interaction counter and
// the exercise extra payload.
//
// Updates are plain read-modify-write; within one import job or commit
// they run sequentially, but concurrent jobs touching the same row race
// with last-writer-wins semantics.
type AssociationRepo struct {
	db *sql.DB
}

func NewAssociationRepo(db *sql.DB) *AssociationRepo {
	return &AssociationRepo{db: db}
}

func (r *AssociationRepo) Create(ctx context.Context, assoc *model.Association) error {
	data := map[string]interface{}{
		"id":                   assoc.ID,
		"user_id":              assoc.UserID,
		"exercise_id":          assoc.ExerciseID,
		"metadata_id":          assoc.MetadataID,
		"num_times_interacted": assoc.NumTimesInteracted,
		"last_updated_on":      assoc.LastUpdatedOn,
	}
	if assoc.ExerciseInformation != nil {
		extraJSON, err := json.Marshal(assoc.ExerciseInformation)
		if err != nil {
			return err
		}
		data["exercise_extra_json"] = string(extraJSON)
	}
	sqlStr, args, err := builder.BuildInsert("user_to_entity", []map[string]interface{}{data})
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

func (r *AssociationRepo) GetByExercise(ctx context.Context, userID, exerciseID string) (*model.Association, error) {
	return r.getOne(ctx, map[string]interface{}{"user_id": userID, "exercise_id": exerciseID})
}

func (r *AssociationRepo) GetByMetadata(ctx context.Context, userID, metadataID string) (*model.Association, error) {
	return r.getOne(ctx, map[string]interface{}{"user_id": userID, "metadata_id": metadataID})
}

func (r *AssociationRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.Association, error) {
	columns := []string{"id", "user_id", "exercise_id", "metadata_id", "num_times_interacted", "last_updated_on", "exercise_extra_json"}
	sqlStr, args, err := builder.BuildSelect("user_to_entity", where, columns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	var assoc model.Association
	var exerciseID, metadataID, extraJSON sql.NullString
	if err := row.Scan(
		&assoc.ID,
		&assoc.UserID,
		&exerciseID,
		&metadataID,
		&assoc.NumTimesInteracted,
		&assoc.LastUpdatedOn,
		&extraJSON,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	if exerciseID.Valid {
		assoc.ExerciseID = &exerciseID.String
	}
	if metadataID.Valid {
		assoc.MetadataID = &metadataID.String
	}
	if extraJSON.Valid && extraJSON.String != "" {
		var extra model.ExerciseExtra
		if err := json.Unmarshal([]byte(extraJSON.String), &extra); err != nil {
			return nil, err
		}
		assoc.ExerciseInformation = &extra
	}
	return &assoc, nil
}

// Update writes back the interaction counter, timestamp and exercise
// extra payload of an association row.
func (r *AssociationRepo) Update(ctx context.Context, assoc *model.Association) error {
	update := map[string]interface{}{
		"num_times_interacted": assoc.NumTimesInteracted,
		"last_updated_on":      assoc.LastUpdatedOn,
	}
	if assoc.ExerciseInformation != nil {
		extraJSON, err := json.Marshal(assoc.ExerciseInformation)
		if err != nil {
			return err
		}
		update["exercise_extra_json"] = string(extraJSON)
	}
	where := map[string]interface{}{"id": assoc.ID, "user_id": assoc.UserID}
	sqlStr, args, err := builder.BuildUpdate("user_to_entity", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	res, err := r.db.ExecContext(ctx, sqlStr, args...)
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

func (r *AssociationRepo) Delete(ctx context.Context, userID, associationID string) error {
	const query = `DELETE FROM user_to_entity WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, associationID, userID)
	return err
}
