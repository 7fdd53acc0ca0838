package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/mireo/fitvault/internal/model"
	"github.com/mireo/fitvault/internal/pkg/dbutil"
	appErr "github.com/mireo/fitvault/internal/pkg/errors"
)

type MetadataRepo struct {
	db *sql.DB
}

func NewMetadataRepo(db *sql.DB) *MetadataRepo {
	return &MetadataRepo{db: db}
}

func (r *MetadataRepo) Create(ctx context.Context, metadata *model.Metadata) error {
	data := map[string]interface{}{
		"id":           metadata.ID,
		"lot":          string(metadata.Lot),
		"source":       string(metadata.Source),
		"identifier":   metadata.Identifier,
		"title":        metadata.Title,
		"description":  metadata.Description,
		"publish_year": metadata.PublishYear,
		"ctime":        metadata.Ctime,
		"mtime":        metadata.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("metadata", []map[string]interface{}{data})
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

// GetBySourceIdentifier looks up a catalog row by its upstream identity.
func (r *MetadataRepo) GetBySourceIdentifier(ctx context.Context, source model.MetadataSource, identifier string) (*model.Metadata, error) {
	where := map[string]interface{}{"source": string(source), "identifier": identifier}
	return r.getOne(ctx, where)
}

func (r *MetadataRepo) GetByID(ctx context.Context, metadataID string) (*model.Metadata, error) {
	return r.getOne(ctx, map[string]interface{}{"id": metadataID})
}

func (r *MetadataRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.Metadata, error) {
	columns := []string{"id", "lot", "source", "identifier", "title", "description", "publish_year", "ctime", "mtime"}
	sqlStr, args, err := builder.BuildSelect("metadata", where, columns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	var metadata model.Metadata
	var lot, source string
	var description sql.NullString
	var publishYear sql.NullInt64
	if err := row.Scan(
		&metadata.ID,
		&lot,
		&source,
		&metadata.Identifier,
		&metadata.Title,
		&description,
		&publishYear,
		&metadata.Ctime,
		&metadata.Mtime,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	metadata.Lot = model.MetadataLot(lot)
	metadata.Source = model.MetadataSource(source)
	if description.Valid {
		metadata.Description = &description.String
	}
	if publishYear.Valid {
		year := int(publishYear.Int64)
		metadata.PublishYear = &year
	}
	return &metadata, nil
}
