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

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	prefsJSON, err := json.Marshal(user.Preferences)
	if err != nil {
		return err
	}
	data := map[string]interface{}{
		"id":               user.ID,
		"name":             user.Name,
		"preferences_json": string(prefsJSON),
		"ctime":            user.Ctime,
		"mtime":            user.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("users", []map[string]interface{}{data})
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

func (r *UserRepo) Get(ctx context.Context, userID string) (*model.User, error) {
	where := map[string]interface{}{"id": userID}
	sqlStr, args, err := builder.BuildSelect("users", where, []string{"id", "name", "preferences_json", "ctime", "mtime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	var user model.User
	var prefsJSON string
	if err := row.Scan(&user.ID, &user.Name, &prefsJSON, &user.Ctime, &user.Mtime); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(prefsJSON), &user.Preferences); err != nil {
		return nil, err
	}
	return &user, nil
}

// Preferences loads just the preference block for a user, applying
// defaults for unset fields.
func (r *UserRepo) Preferences(ctx context.Context, userID string) (model.Preferences, error) {
	user, err := r.Get(ctx, userID)
	if err != nil {
		return model.Preferences{}, err
	}
	prefs := user.Preferences
	if prefs.UnitSystem == "" {
		prefs.UnitSystem = model.UnitSystemMetric
	}
	if prefs.SaveHistory <= 0 {
		prefs.SaveHistory = 15
	}
	if prefs.ReviewScale == "" {
		prefs.ReviewScale = model.ReviewScaleOutOfHundred
	}
	return prefs, nil
}
