package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/mireo/fitvault/internal/model"
	appErr "github.com/mireo/fitvault/internal/pkg/errors"
	"github.com/mireo/fitvault/internal/provider"
	"github.com/mireo/fitvault/internal/repo"
)

// MediaService is the media-side commit path: catalog rows, seen
// history, reviews and collections. The import pipeline drives it item
// by item; each method is independently usable by the API surface.
type MediaService struct {
	metadata     *repo.MetadataRepo
	seen         *repo.SeenRepo
	reviews      *repo.ReviewRepo
	collections  *repo.CollectionRepo
	associations *repo.AssociationRepo
	catalog      provider.MetadataProvider
}

func NewMediaService(
	metadata *repo.MetadataRepo,
	seen *repo.SeenRepo,
	reviews *repo.ReviewRepo,
	collections *repo.CollectionRepo,
	associations *repo.AssociationRepo,
	catalog provider.MetadataProvider,
) *MediaService {
	return &MediaService{
		metadata:     metadata,
		seen:         seen,
		reviews:      reviews,
		collections:  collections,
		associations: associations,
		catalog:      catalog,
	}
}

// CommitMedia resolves an external identifier into a catalog row,
// asking the upstream provider for details when the row does not exist
// yet.
func (s *MediaService) CommitMedia(ctx context.Context, lot model.MetadataLot, source model.MetadataSource, identifier string) (*model.Metadata, error) {
	existing, err := s.metadata.GetBySourceIdentifier(ctx, source, identifier)
	if err == nil {
		return existing, nil
	}
	if !appErr.IsNotFound(err) {
		return nil, err
	}
	details, err := s.catalog.Details(ctx, source, lot, identifier)
	if err != nil {
		return nil, fmt.Errorf("resolve %s/%s: %w", source, identifier, err)
	}
	now := time.Now().Unix()
	metadata := &model.Metadata{
		ID:          newID(),
		Lot:         details.Lot,
		Source:      source,
		Identifier:  details.Identifier,
		Title:       details.Title,
		Description: details.Description,
		PublishYear: details.PublishYear,
		Ctime:       now,
		Mtime:       now,
	}
	if err := s.metadata.Create(ctx, metadata); err != nil {
		if appErr.IsConflict(err) {
			// Another item in some batch won the race; use its row.
			return s.metadata.GetBySourceIdentifier(ctx, source, identifier)
		}
		return nil, err
	}
	return metadata, nil
}

// CommitKnown persists metadata the caller already has in full,
// reusing an existing row for the same upstream identity.
func (s *MediaService) CommitKnown(ctx context.Context, filled *model.Metadata) (*model.Metadata, error) {
	existing, err := s.metadata.GetBySourceIdentifier(ctx, filled.Source, filled.Identifier)
	if err == nil {
		return existing, nil
	}
	if !appErr.IsNotFound(err) {
		return nil, err
	}
	now := time.Now().Unix()
	metadata := &model.Metadata{
		ID:          newID(),
		Lot:         filled.Lot,
		Source:      filled.Source,
		Identifier:  filled.Identifier,
		Title:       filled.Title,
		Description: filled.Description,
		PublishYear: filled.PublishYear,
		Ctime:       now,
		Mtime:       now,
	}
	if err := s.metadata.Create(ctx, metadata); err != nil {
		return nil, err
	}
	return metadata, nil
}

// ProgressUpdate records one seen-history entry and bumps the user's
// association with the item.
func (s *MediaService) ProgressUpdate(ctx context.Context, userID, metadataID string, item model.ImportSeenItem) error {
	progress := 100
	if item.Progress != nil {
		progress = *item.Progress
	}
	if progress < 0 || progress > 100 {
		return fmt.Errorf("%w: progress %d out of range", appErr.ErrInvalid, progress)
	}
	seen := &model.Seen{
		ID:         newID(),
		UserID:     userID,
		MetadataID: metadataID,
		Progress:   progress,
		StartedOn:  item.StartedOn,
		FinishedOn: item.FinishedOn,
		Ctime:      time.Now().Unix(),
	}
	if err := s.seen.Create(ctx, seen); err != nil {
		return err
	}
	return s.touchAssociation(ctx, userID, metadataID)
}

// PostReview stores a review. Rating arrives already converted to the
// user's preferred scale; no scale handling happens here.
func (s *MediaService) PostReview(ctx context.Context, userID, metadataID string, rating *float64, text *string, spoiler bool, postedOn *int64) error {
	if rating == nil && text == nil {
		return fmt.Errorf("%w: review has no rating and no text", appErr.ErrInvalid)
	}
	posted := time.Now().Unix()
	if postedOn != nil {
		posted = *postedOn
	}
	review := &model.Review{
		ID:         newID(),
		UserID:     userID,
		MetadataID: metadataID,
		Rating:     rating,
		Text:       text,
		Spoiler:    spoiler,
		PostedOn:   posted,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return err
	}
	return s.touchAssociation(ctx, userID, metadataID)
}

// CreateOrUpdateCollection makes sure a named collection exists,
// refreshing its description when it already does.
func (s *MediaService) CreateOrUpdateCollection(ctx context.Context, userID string, input model.CreateCollectionInput) (*model.Collection, error) {
	existing, err := s.collections.GetByName(ctx, userID, input.Name)
	if err == nil {
		if input.Description != nil {
			if err := s.collections.UpdateDescription(ctx, userID, existing.ID, input.Description, time.Now().Unix()); err != nil {
				return nil, err
			}
			existing.Description = input.Description
		}
		return existing, nil
	}
	if !appErr.IsNotFound(err) {
		return nil, err
	}
	now := time.Now().Unix()
	collection := &model.Collection{
		ID:          newID(),
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Ctime:       now,
		Mtime:       now,
	}
	if err := s.collections.Create(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

// AddEntityToCollection places an entity into a named collection,
// creating the collection on demand. Idempotent.
func (s *MediaService) AddEntityToCollection(ctx context.Context, userID, collectionName, entityID string, entityLot model.EntityLot) error {
	collection, err := s.CreateOrUpdateCollection(ctx, userID, model.CreateCollectionInput{Name: collectionName})
	if err != nil {
		return err
	}
	return s.collections.AddEntity(ctx, &model.CollectionEntity{
		CollectionID: collection.ID,
		EntityID:     entityID,
		EntityLot:    entityLot,
	})
}

func (s *MediaService) touchAssociation(ctx context.Context, userID, metadataID string) error {
	assoc, err := s.associations.GetByMetadata(ctx, userID, metadataID)
	if err == nil {
		assoc.NumTimesInteracted += 1
		assoc.LastUpdatedOn = time.Now().Unix()
		return s.associations.Update(ctx, assoc)
	}
	if !appErr.IsNotFound(err) {
		return err
	}
	assoc = &model.Association{
		ID:                 newID(),
		UserID:             userID,
		MetadataID:         &metadataID,
		NumTimesInteracted: 1,
		LastUpdatedOn:      time.Now().Unix(),
	}
	if createErr := s.associations.Create(ctx, assoc); createErr != nil {
		if appErr.IsConflict(createErr) {
			logutil.GetLogger(ctx).Debug("association raced, retrying bump", zap.String("metadata_id", metadataID))
			return s.touchAssociation(ctx, userID, metadataID)
		}
		return createErr
	}
	return nil
}
