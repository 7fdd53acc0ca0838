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

type ImportReportRepo struct {
	db *sql.DB
}

func NewImportReportRepo(db *sql.DB) *ImportReportRepo {
	return &ImportReportRepo{db: db}
}

func (r *ImportReportRepo) Create(ctx context.Context, report *model.ImportReport) error {
	data := map[string]interface{}{
		"id":         report.ID,
		"user_id":    report.UserID,
		"source":     string(report.Source),
		"started_on": report.StartedOn,
	}
	sqlStr, args, err := builder.BuildInsert("import_reports", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// Finish writes the completion state of a job exactly once.
func (r *ImportReportRepo) Finish(ctx context.Context, report *model.ImportReport) error {
	detailsJSON := []byte("{}")
	if report.Details != nil {
		var err error
		detailsJSON, err = json.Marshal(report.Details)
		if err != nil {
			return err
		}
	}
	const query = `
		UPDATE import_reports
		SET finished_on = $1, success = $2, details_json = $3
		WHERE id = $4 AND user_id = $5 AND success IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, report.FinishedOn, report.Success, string(detailsJSON), report.ID, report.UserID)
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

func (r *ImportReportRepo) Get(ctx context.Context, userID, reportID string) (*model.ImportReport, error) {
	where := map[string]interface{}{"id": reportID, "user_id": userID}
	sqlStr, args, err := builder.BuildSelect("import_reports", where, reportColumns())
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
	return scanReport(rows)
}

// ListByUser returns a user's jobs, most recently started first.
func (r *ImportReportRepo) ListByUser(ctx context.Context, userID string) ([]model.ImportReport, error) {
	where := map[string]interface{}{"user_id": userID, "_orderby": "started_on desc"}
	sqlStr, args, err := builder.BuildSelect("import_reports", where, reportColumns())
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	return r.list(ctx, sqlStr, args)
}

// ListUnfinished returns all jobs with no success flag set, across users.
func (r *ImportReportRepo) ListUnfinished(ctx context.Context) ([]model.ImportReport, error) {
	const query = `
		SELECT id, user_id, source, started_on, finished_on, success, details_json
		FROM import_reports
		WHERE success IS NULL
	`
	return r.list(ctx, query, nil)
}

// MarkFailed sets the success flag to false without touching details.
func (r *ImportReportRepo) MarkFailed(ctx context.Context, reportID string, finishedOn int64) error {
	const query = `UPDATE import_reports SET success = FALSE, finished_on = $1 WHERE id = $2 AND success IS NULL`
	_, err := r.db.ExecContext(ctx, query, finishedOn, reportID)
	return err
}

func (r *ImportReportRepo) list(ctx context.Context, query string, args []interface{}) ([]model.ImportReport, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reports := make([]model.ImportReport, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, rows.Err()
}

func reportColumns() []string {
	return []string{"id", "user_id", "source", "started_on", "finished_on", "success", "details_json"}
}

func scanReport(rows *sql.Rows) (*model.ImportReport, error) {
	var report model.ImportReport
	var source string
	var finishedOn sql.NullInt64
	var success sql.NullBool
	var detailsJSON sql.NullString
	if err := rows.Scan(
		&report.ID,
		&report.UserID,
		&source,
		&report.StartedOn,
		&finishedOn,
		&success,
		&detailsJSON,
	); err != nil {
		return nil, err
	}
	report.Source = model.ImportSource(source)
	if finishedOn.Valid {
		report.FinishedOn = &finishedOn.Int64
	}
	if success.Valid {
		report.Success = &success.Bool
	}
	if detailsJSON.Valid && detailsJSON.String != "" && detailsJSON.String != "{}" {
		var details model.ImportResultResponse
		if err := json.Unmarshal([]byte(detailsJSON.String), &details); err == nil {
			report.Details = &details
		}
	}
	return &report, nil
}
