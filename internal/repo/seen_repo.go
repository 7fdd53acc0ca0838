package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/mireo/fitvault/internal/model"
	"github.com/mireo/fitvault/internal/pkg/dbutil"
)

type SeenRepo struct {
	db *sql.DB
}

func NewSeenRepo(db *sql.DB) *SeenRepo {
	return &SeenRepo{db: db}
}

func (r *SeenRepo) Create(ctx context.Context, seen *model.Seen) error {
	data := map[string]interface{}{
		"id":          seen.ID,
		"user_id":     seen.UserID,
		"metadata_id": seen.MetadataID,
		"progress":    seen.Progress,
		"started_on":  seen.StartedOn,
		"finished_on": seen.FinishedOn,
		"ctime":       seen.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("seen", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *SeenRepo) CountByMetadata(ctx context.Context, userID, metadataID string) (int, error) {
	const query = `SELECT COUNT(*) FROM seen WHERE user_id = $1 AND metadata_id = $2`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, metadataID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
