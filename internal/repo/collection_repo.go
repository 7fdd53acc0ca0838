package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/mireo/fitvault/internal/model"
	"github.com/mireo/fitvault/internal/pkg/dbutil"
	appErr "github.com/mireo/fitvault/internal/pkg/errors"
)

type CollectionRepo struct {
	db *sql.DB
}

func NewCollectionRepo(db *sql.DB) *CollectionRepo {
	return &CollectionRepo{db: db}
}

func (r *CollectionRepo) Create(ctx context.Context, collection *model.Collection) error {
	data := map[string]interface{}{
		"id":          collection.ID,
		"user_id":     collection.UserID,
		"name":        collection.Name,
		"description": collection.Description,
		"ctime":       collection.Ctime,
		"mtime":       collection.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("collections", []map[string]interface{}{data})
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

func (r *CollectionRepo) GetByName(ctx context.Context, userID, name string) (*model.Collection, error) {
	where := map[string]interface{}{"user_id": userID, "name": name}
	columns := []string{"id", "user_id", "name", "description", "ctime", "mtime"}
	sqlStr, args, err := builder.BuildSelect("collections", where, columns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	var collection model.Collection
	var description sql.NullString
	if err := row.Scan(&collection.ID, &collection.UserID, &collection.Name, &description, &collection.Ctime, &collection.Mtime); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	if description.Valid {
		collection.Description = &description.String
	}
	return &collection, nil
}

func (r *CollectionRepo) UpdateDescription(ctx context.Context, userID, collectionID string, description *string, mtime int64) error {
	update := map[string]interface{}{"description": description, "mtime": mtime}
	where := map[string]interface{}{"id": collectionID, "user_id": userID}
	sqlStr, args, err := builder.BuildUpdate("collections", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// AddEntity inserts a membership row; adding an entity that is already
// a member is a no-op.
func (r *CollectionRepo) AddEntity(ctx context.Context, entity *model.CollectionEntity) error {
	const query = `
		INSERT INTO collection_entities (collection_id, entity_id, entity_lot)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, entity.CollectionID, entity.EntityID, string(entity.EntityLot))
	return err
}

func (r *CollectionRepo) CountEntities(ctx context.Context, collectionID string) (int, error) {
	const query = `SELECT COUNT(*) FROM collection_entities WHERE collection_id = $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, collectionID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
