package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/mireo/fitvault/internal/model"
	"github.com/mireo/fitvault/internal/pkg/dbutil"
)

type ReviewRepo struct {
	db *sql.DB
}

func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func (r *ReviewRepo) Create(ctx context.Context, review *model.Review) error {
	data := map[string]interface{}{
		"id":          review.ID,
		"user_id":     review.UserID,
		"metadata_id": review.MetadataID,
		"rating":      review.Rating,
		"review_text": review.Text,
		"spoiler":     review.Spoiler,
		"posted_on":   review.PostedOn,
	}
	sqlStr, args, err := builder.BuildInsert("reviews", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *ReviewRepo) ListByMetadata(ctx context.Context, userID, metadataID string) ([]model.Review, error) {
	where := map[string]interface{}{"user_id": userID, "metadata_id": metadataID, "_orderby": "posted_on desc"}
	columns := []string{"id", "user_id", "metadata_id", "rating", "review_text", "spoiler", "posted_on"}
	sqlStr, args, err := builder.BuildSelect("reviews", where, columns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reviews := make([]model.Review, 0)
	for rows.Next() {
		var review model.Review
		var rating sql.NullFloat64
		var text sql.NullString
		if err := rows.Scan(&review.ID, &review.UserID, &review.MetadataID, &rating, &text, &review.Spoiler, &review.PostedOn); err != nil {
			return nil, err
		}
		if rating.Valid {
			review.Rating = &rating.Float64
		}
		if text.Valid {
			review.Text = &text.String
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}
