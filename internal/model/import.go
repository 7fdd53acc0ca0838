package model

// ImportSource identifies a supported external tracking service.
type ImportSource string

const (
	ImportSourceStrongApp ImportSource = "strong_app"
	ImportSourceMediaJSON ImportSource = "media_json"
)

// DeployStrongAppInput points at an uploaded strong-app CSV export and
// carries the user supplied exercise name mapping.
type DeployStrongAppInput struct {
	ExportKey string                 `json:"export_key"`
	Mapping   []StrongAppNameMapping `json:"mapping"`
}

type StrongAppNameMapping struct {
	SourceName string `json:"source_name"`
	TargetName string `json:"target_name"`
}

// DeployMediaJSONInput carries the raw JSON export contents.
type DeployMediaJSONInput struct {
	Export string `json:"export"`
}

// DeployImportJobInput is a tagged union keyed by Source; each adapter
// consumes only its own variant.
type DeployImportJobInput struct {
	Source    ImportSource          `json:"source"`
	StrongApp *DeployStrongAppInput `json:"strong_app,omitempty"`
	MediaJSON *DeployMediaJSONInput `json:"media_json,omitempty"`
}

// ImportFailStep names the stage at which one import item failed.
type ImportFailStep string

const (
	// Could not read or decode an item from the source export itself.
	ImportFailItemDetailsFromSource ImportFailStep = "item_details_from_source"
	// Could not resolve metadata details from the upstream catalog.
	ImportFailMediaDetailsFromProvider ImportFailStep = "media_details_from_provider"
	// Could not transform source data into the canonical shape.
	ImportFailInputTransformation ImportFailStep = "input_transformation"
	// Could not save a seen-history entry.
	ImportFailSeenHistoryConversion ImportFailStep = "seen_history_conversion"
	// Could not save a review or rating.
	ImportFailReviewConversion ImportFailStep = "review_conversion"
)

type ImportFailedItem struct {
	Lot        MetadataLot    `json:"lot"`
	Step       ImportFailStep `json:"step"`
	Identifier string         `json:"identifier"`
	Error      string         `json:"error,omitempty"`
}

// ImportSeenItem is one consumption-history entry from a source export.
type ImportSeenItem struct {
	Progress   *int   `json:"progress,omitempty"`
	StartedOn  *int64 `json:"started_on,omitempty"`
	FinishedOn *int64 `json:"finished_on,omitempty"`
}

// ImportReviewItem is one rating/review from a source export. Rating is
// on the source's 0-100 scale; conversion to the user's preferred scale
// happens during reconciliation.
type ImportReviewItem struct {
	Rating  *float64 `json:"rating,omitempty"`
	Text    *string  `json:"text,omitempty"`
	Spoiler *bool    `json:"spoiler,omitempty"`
	Date    *int64   `json:"date,omitempty"`
}

// ImportMediaItem is one media item in canonical form. Either
// Identifier is set (the catalog provider must be asked for details) or
// Filled carries already-complete metadata.
type ImportMediaItem struct {
	SourceID    string             `json:"source_id"`
	Lot         MetadataLot        `json:"lot"`
	Source      MetadataSource     `json:"source"`
	Identifier  *string            `json:"identifier,omitempty"`
	Filled      *Metadata          `json:"filled,omitempty"`
	SeenHistory []ImportSeenItem   `json:"seen_history"`
	Reviews     []ImportReviewItem `json:"reviews"`
	Collections []string           `json:"collections"`
}

// Richness is the heuristic activity count used to order media items
// within a batch, densest first.
func (m ImportMediaItem) Richness() int {
	return len(m.SeenHistory) + len(m.Reviews) + len(m.Collections)
}

// CreateCollectionInput requests that a collection exist before items
// referencing it are processed.
type CreateCollectionInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// ImportResult is the canonical adapter output.
type ImportResult struct {
	Collections []CreateCollectionInput `json:"collections"`
	Media       []ImportMediaItem       `json:"media"`
	FailedItems []ImportFailedItem      `json:"failed_items"`
	Workouts    []WorkoutInput          `json:"workouts"`
}

// ImportDetails summarizes a finished job.
type ImportDetails struct {
	Total int `json:"total"`
}

// ImportResultResponse is stored on the job row at completion.
type ImportResultResponse struct {
	Import      ImportDetails      `json:"import"`
	FailedItems []ImportFailedItem `json:"failed_items"`
}

// ImportReport is one import job row. Success stays nil while the job
// is running; the stale-job sweep flips long-unfinished rows to false.
type ImportReport struct {
	ID         string
	UserID     string
	Source     ImportSource
	StartedOn  int64
	FinishedOn *int64
	Success    *bool
	Details    *ImportResultResponse
}
