package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/mireo/fitvault/internal/filestore"
	"github.com/mireo/fitvault/internal/importer"
	"github.com/mireo/fitvault/internal/model"
	appErr "github.com/mireo/fitvault/internal/pkg/errors"
	"github.com/mireo/fitvault/internal/repo"
)

// staleJobAge is how long a job may stay unfinished before the
// invalidation sweep writes it off as crashed.
const staleJobAge = 24 * time.Hour

// ImporterService owns the import job lifecycle: deploying a job,
// running it in the background against the workout and media commit
// paths, and reporting the outcome.
type ImporterService struct {
	reports   *repo.ImportReportRepo
	exercises *repo.ExerciseRepo
	users     *repo.UserRepo
	workouts  *WorkoutService
	media     *MediaService
	files     filestore.Store
}

func NewImporterService(
	reports *repo.ImportReportRepo,
	exercises *repo.ExerciseRepo,
	users *repo.UserRepo,
	workouts *WorkoutService,
	media *MediaService,
	files filestore.Store,
) *ImporterService {
	return &ImporterService{
		reports:   reports,
		exercises: exercises,
		users:     users,
		workouts:  workouts,
		media:     media,
		files:     files,
	}
}

// Upload stores a raw export payload and returns the key the deploy
// call references it by.
func (s *ImporterService) Upload(ctx context.Context, r filestore.ReadSeekCloser, size int64) (string, error) {
	key := newID()
	if err := s.files.Save(ctx, key, r, size); err != nil {
		return "", err
	}
	return key, nil
}

// Deploy validates the input, records the job and kicks off the run in
// the background. It returns the job id immediately; progress is
// observable through the job listing.
func (s *ImporterService) Deploy(ctx context.Context, userID string, input model.DeployImportJobInput) (string, error) {
	switch input.Source {
	case model.ImportSourceStrongApp:
		if input.StrongApp == nil || input.StrongApp.ExportKey == "" {
			return "", fmt.Errorf("%w: strong_app deploy needs an export key", appErr.ErrInvalid)
		}
	case model.ImportSourceMediaJSON:
		if input.MediaJSON == nil || input.MediaJSON.Export == "" {
			return "", fmt.Errorf("%w: media_json deploy needs export contents", appErr.ErrInvalid)
		}
	default:
		return "", importer.ErrUnsupportedSource(input.Source)
	}
	report := &model.ImportReport{
		ID:        newID(),
		UserID:    userID,
		Source:    input.Source,
		StartedOn: time.Now().Unix(),
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return "", err
	}
	// The run outlives the request; it carries its own context.
	go s.run(context.Background(), report, input)
	return report.ID, nil
}

// Get returns one of the caller's jobs.
func (s *ImporterService) Get(ctx context.Context, userID, jobID string) (*model.ImportReport, error) {
	return s.reports.Get(ctx, userID, jobID)
}

// List returns the caller's jobs, most recently started first.
func (s *ImporterService) List(ctx context.Context, userID string) ([]model.ImportReport, error) {
	return s.reports.ListByUser(ctx, userID)
}

// InvalidateStaleJobs marks unfinished jobs older than staleJobAge as
// failed. Jobs still inside the window are left alone.
func (s *ImporterService) InvalidateStaleJobs(ctx context.Context) error {
	unfinished, err := s.reports.ListUnfinished(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	cutoff := now.Add(-staleJobAge).Unix()
	logger := logutil.GetLogger(ctx)
	swept := 0
	for _, report := range unfinished {
		if report.StartedOn >= cutoff {
			continue
		}
		if err := s.reports.MarkFailed(ctx, report.ID, now.Unix()); err != nil {
			logger.Error("mark stale job failed", zap.String("job_id", report.ID), zap.Error(err))
			continue
		}
		swept++
	}
	if swept > 0 {
		logger.Info("invalidated stale import jobs", zap.Int("count", swept))
	}
	return nil
}

func (s *ImporterService) run(ctx context.Context, report *model.ImportReport, input model.DeployImportJobInput) {
	logger := logutil.GetLogger(ctx).With(
		zap.String("job_id", report.ID),
		zap.String("user_id", report.UserID),
		zap.String("source", string(report.Source)),
	)
	result, err := s.extract(ctx, input)
	if err != nil {
		// A fatal adapter error fails the whole job; nothing was
		// committed yet.
		logger.Error("import extraction failed", zap.Error(err))
		s.finish(ctx, report, false, nil)
		return
	}

	var failed []model.ImportFailedItem
	failed = append(failed, result.FailedItems...)
	total := 0
	if importer.IsWorkoutSource(input.Source) {
		total = len(result.Workouts)
		failed = append(failed, s.reconcileWorkouts(ctx, report.UserID, result.Workouts)...)
	} else {
		total = len(result.Media)
		failed = append(failed, s.reconcileMedia(ctx, report.UserID, result)...)
	}

	details := &model.ImportResultResponse{
		Import:      model.ImportDetails{Total: total},
		FailedItems: failed,
	}
	logger.Info("import finished",
		zap.Int("total", total),
		zap.Int("failed", len(failed)))
	s.finish(ctx, report, true, details)
}

// extract runs the source adapter, producing the canonical batch.
func (s *ImporterService) extract(ctx context.Context, input model.DeployImportJobInput) (*model.ImportResult, error) {
	switch input.Source {
	case model.ImportSourceStrongApp:
		export, err := filestore.ReadAll(ctx, s.files, input.StrongApp.ExportKey)
		if err != nil {
			return nil, fmt.Errorf("load export %s: %w", input.StrongApp.ExportKey, err)
		}
		nameMap, err := s.exercises.NameMap(ctx)
		if err != nil {
			return nil, err
		}
		return importer.StrongApp(input.StrongApp, export, nameMap)
	case model.ImportSourceMediaJSON:
		return importer.MediaJSON(input.MediaJSON)
	default:
		return nil, importer.ErrUnsupportedSource(input.Source)
	}
}

// reconcileWorkouts replays adapter workouts through the commit
// engine. A rejected workout becomes a failed item, never a job
// failure.
func (s *ImporterService) reconcileWorkouts(ctx context.Context, userID string, workouts []model.WorkoutInput) []model.ImportFailedItem {
	failed := make([]model.ImportFailedItem, 0)
	for _, workout := range workouts {
		if _, err := s.workouts.Commit(ctx, userID, workout); err != nil {
			logutil.GetLogger(ctx).Error("import workout rejected",
				zap.String("name", workout.Name), zap.Error(err))
			failed = append(failed, model.ImportFailedItem{
				Step:       model.ImportFailInputTransformation,
				Identifier: workout.Name,
				Error:      err.Error(),
			})
		}
	}
	return failed
}

// reconcileMedia processes a media batch: collections first, then
// items densest first. Every sub-step failure is isolated to its item
// and tagged with the step it happened at.
func (s *ImporterService) reconcileMedia(ctx context.Context, userID string, result *model.ImportResult) []model.ImportFailedItem {
	logger := logutil.GetLogger(ctx)
	failed := make([]model.ImportFailedItem, 0)
	prefs, err := s.users.Preferences(ctx, userID)
	if err != nil {
		logger.Error("load preferences failed, using defaults", zap.Error(err))
		prefs = model.Preferences{ReviewScale: model.ReviewScaleOutOfHundred}
	}

	for _, collection := range result.Collections {
		if _, err := s.media.CreateOrUpdateCollection(ctx, userID, collection); err != nil {
			logger.Error("materialize collection failed",
				zap.String("name", collection.Name), zap.Error(err))
		}
	}

	items := make([]model.ImportMediaItem, len(result.Media))
	copy(items, result.Media)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Richness() > items[j].Richness()
	})

	for _, item := range items {
		metadata, err := s.commitItemMetadata(ctx, item)
		if err != nil {
			failed = append(failed, model.ImportFailedItem{
				Lot:        item.Lot,
				Step:       model.ImportFailMediaDetailsFromProvider,
				Identifier: item.SourceID,
				Error:      err.Error(),
			})
			continue
		}
		for _, seen := range item.SeenHistory {
			if err := s.media.ProgressUpdate(ctx, userID, metadata.ID, seen); err != nil {
				failed = append(failed, model.ImportFailedItem{
					Lot:        item.Lot,
					Step:       model.ImportFailSeenHistoryConversion,
					Identifier: item.SourceID,
					Error:      err.Error(),
				})
			}
		}
		for _, review := range item.Reviews {
			if review.Rating == nil && review.Text == nil {
				continue
			}
			rating := convertRating(review.Rating, prefs.ReviewScale)
			spoiler := review.Spoiler != nil && *review.Spoiler
			if err := s.media.PostReview(ctx, userID, metadata.ID, rating, review.Text, spoiler, review.Date); err != nil {
				failed = append(failed, model.ImportFailedItem{
					Lot:        item.Lot,
					Step:       model.ImportFailReviewConversion,
					Identifier: item.SourceID,
					Error:      err.Error(),
				})
			}
		}
		for _, name := range item.Collections {
			if err := s.media.AddEntityToCollection(ctx, userID, name, metadata.ID, model.EntityLotMedia); err != nil {
				logger.Error("add to collection failed",
					zap.String("collection", name),
					zap.String("metadata_id", metadata.ID),
					zap.Error(err))
			}
		}
	}
	return failed
}

func (s *ImporterService) commitItemMetadata(ctx context.Context, item model.ImportMediaItem) (*model.Metadata, error) {
	if item.Filled != nil {
		return s.media.CommitKnown(ctx, item.Filled)
	}
	if item.Identifier == nil {
		return nil, fmt.Errorf("%w: item %s has neither identifier nor filled metadata", appErr.ErrInvalid, item.SourceID)
	}
	return s.media.CommitMedia(ctx, item.Lot, item.Source, *item.Identifier)
}

func (s *ImporterService) finish(ctx context.Context, report *model.ImportReport, success bool, details *model.ImportResultResponse) {
	now := time.Now().Unix()
	report.FinishedOn = &now
	report.Success = &success
	report.Details = details
	if err := s.reports.Finish(ctx, report); err != nil {
		logutil.GetLogger(ctx).Error("record job completion failed",
			zap.String("job_id", report.ID), zap.Error(err))
	}
}

// convertRating maps a source rating (out of a hundred) onto the
// user's preferred review scale.
func convertRating(rating *float64, scale model.ReviewScale) *float64 {
	if rating == nil {
		return nil
	}
	value := *rating
	if scale == model.ReviewScaleOutOfFive {
		value = value / 20
	}
	return &value
}
