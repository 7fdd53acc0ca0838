package importer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mireo/fitvault/internal/model"
	appErr "github.com/mireo/fitvault/internal/pkg/errors"
)

// mediaJSONExport is the generic media export format: a flat dump of
// items with their activity attached, plus any collections to create
// up front.
type mediaJSONExport struct {
	Collections []model.CreateCollectionInput `json:"collections"`
	Media       []mediaJSONItem               `json:"media"`
}

type mediaJSONItem struct {
	SourceID    string                   `json:"source_id"`
	Lot         model.MetadataLot        `json:"lot"`
	Source      model.MetadataSource     `json:"source"`
	Identifier  string                   `json:"identifier"`
	SeenHistory []model.ImportSeenItem   `json:"seen_history"`
	Reviews     []model.ImportReviewItem `json:"reviews"`
	Collections []string                 `json:"collections"`
}

// MediaJSON decodes a media JSON export into canonical form. An
// undecodable payload is fatal; individual items missing their identity
// fields become failed items tagged at the transformation step and the
// rest of the batch survives.
func MediaJSON(input *model.DeployMediaJSONInput) (*model.ImportResult, error) {
	if input == nil || strings.TrimSpace(input.Export) == "" {
		return nil, fmt.Errorf("%w: empty export", appErr.ErrParse)
	}
	var payload mediaJSONExport
	if err := json.Unmarshal([]byte(input.Export), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrParse, err)
	}
	result := &model.ImportResult{
		Collections: payload.Collections,
		Media:       make([]model.ImportMediaItem, 0, len(payload.Media)),
		FailedItems: []model.ImportFailedItem{},
		Workouts:    []model.WorkoutInput{},
	}
	if result.Collections == nil {
		result.Collections = []model.CreateCollectionInput{}
	}
	for _, item := range payload.Media {
		if item.Lot == "" || item.Source == "" || item.Identifier == "" {
			result.FailedItems = append(result.FailedItems, model.ImportFailedItem{
				Lot:        item.Lot,
				Step:       model.ImportFailInputTransformation,
				Identifier: item.SourceID,
				Error:      "item is missing lot, source or identifier",
			})
			continue
		}
		identifier := item.Identifier
		media := model.ImportMediaItem{
			SourceID:    item.SourceID,
			Lot:         item.Lot,
			Source:      item.Source,
			Identifier:  &identifier,
			SeenHistory: item.SeenHistory,
			Reviews:     item.Reviews,
			Collections: item.Collections,
		}
		if media.SeenHistory == nil {
			media.SeenHistory = []model.ImportSeenItem{}
		}
		if media.Reviews == nil {
			media.Reviews = []model.ImportReviewItem{}
		}
		if media.Collections == nil {
			media.Collections = []string{}
		}
		result.Media = append(result.Media, media)
	}
	return result, nil
}
