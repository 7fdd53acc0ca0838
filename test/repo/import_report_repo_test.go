package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mireo/fitvault/internal/model"
	appErr "github.com/mireo/fitvault/internal/pkg/errors"
	"github.com/mireo/fitvault/internal/repo"
	"github.com/mireo/fitvault/test/testutil"
)

func TestImportReportLifecycle(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	_, _ = db.ExecContext(ctx, `DELETE FROM import_reports WHERE user_id = 'ir-user-1'`)

	reports := repo.NewImportReportRepo(db)
	report := &model.ImportReport{
		ID:        "ir-report-1",
		UserID:    "ir-user-1",
		Source:    model.ImportSourceStrongApp,
		StartedOn: time.Now().Unix(),
	}
	require.NoError(t, reports.Create(ctx, report))

	unfinished, err := reports.ListUnfinished(ctx)
	require.NoError(t, err)
	require.True(t, containsReport(unfinished, "ir-report-1"))

	now := time.Now().Unix()
	success := true
	report.FinishedOn = &now
	report.Success = &success
	report.Details = &model.ImportResultResponse{
		Import: model.ImportDetails{Total: 3},
		FailedItems: []model.ImportFailedItem{
			{Step: model.ImportFailInputTransformation, Identifier: "Push Day", Error: "no sets"},
		},
	}
	require.NoError(t, reports.Finish(ctx, report))

	fetched, err := reports.Get(ctx, "ir-user-1", "ir-report-1")
	require.NoError(t, err)
	require.NotNil(t, fetched.Success)
	require.True(t, *fetched.Success)
	require.NotNil(t, fetched.Details)
	require.Equal(t, 3, fetched.Details.Import.Total)
	require.Len(t, fetched.Details.FailedItems, 1)

	// Finishing twice is rejected; the first outcome stands.
	require.ErrorIs(t, reports.Finish(ctx, report), appErr.ErrNotFound)

	unfinished, err = reports.ListUnfinished(ctx)
	require.NoError(t, err)
	require.False(t, containsReport(unfinished, "ir-report-1"))
}

func TestImportReportMarkFailedOnlyHitsUnfinished(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	_, _ = db.ExecContext(ctx, `DELETE FROM import_reports WHERE user_id = 'ir-user-2'`)

	reports := repo.NewImportReportRepo(db)
	stale := &model.ImportReport{
		ID:        "ir-report-stale",
		UserID:    "ir-user-2",
		Source:    model.ImportSourceMediaJSON,
		StartedOn: time.Now().Add(-25 * time.Hour).Unix(),
	}
	require.NoError(t, reports.Create(ctx, stale))
	require.NoError(t, reports.MarkFailed(ctx, "ir-report-stale", time.Now().Unix()))

	fetched, err := reports.Get(ctx, "ir-user-2", "ir-report-stale")
	require.NoError(t, err)
	require.NotNil(t, fetched.Success)
	require.False(t, *fetched.Success)
	require.NotNil(t, fetched.FinishedOn)

	// A second sweep leaves the recorded outcome untouched.
	require.NoError(t, reports.MarkFailed(ctx, "ir-report-stale", time.Now().Unix()))

	listed, err := reports.ListByUser(ctx, "ir-user-2")
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func containsReport(reports []model.ImportReport, id string) bool {
	for _, report := range reports {
		if report.ID == id {
			return true
		}
	}
	return false
}
