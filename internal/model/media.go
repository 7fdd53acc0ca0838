package model

// MetadataLot is the kind of media a catalog entry describes.
type MetadataLot string

const (
	MetadataLotBook    MetadataLot = "book"
	MetadataLotMovie   MetadataLot = "movie"
	MetadataLotShow    MetadataLot = "show"
	MetadataLotAnime   MetadataLot = "anime"
	MetadataLotManga   MetadataLot = "manga"
	MetadataLotPodcast MetadataLot = "podcast"
	MetadataLotGame    MetadataLot = "video_game"
)

// MetadataSource identifies the upstream catalog a metadata entry was
// resolved from.
type MetadataSource string

const (
	MetadataSourceOpenlibrary MetadataSource = "openlibrary"
	MetadataSourceTmdb        MetadataSource = "tmdb"
	MetadataSourceAnilist     MetadataSource = "anilist"
	MetadataSourceIgdb        MetadataSource = "igdb"
	MetadataSourceListennotes MetadataSource = "listennotes"
	MetadataSourceCustom      MetadataSource = "custom"
)

// Metadata is one catalog entry.
type Metadata struct {
	ID          string
	Lot         MetadataLot
	Source      MetadataSource
	Identifier  string
	Title       string
	Description *string
	PublishYear *int
	Ctime       int64
	Mtime       int64
}

// Seen is one consumption-history entry for a media item.
type Seen struct {
	ID         string
	UserID     string
	MetadataID string
	Progress   int
	StartedOn  *int64
	FinishedOn *int64
	Ctime      int64
}

// Review is a user review of a media item. Rating is stored on the
// user's preferred review scale.
type Review struct {
	ID         string
	UserID     string
	MetadataID string
	Rating     *float64
	Text       *string
	Spoiler    bool
	PostedOn   int64
}

// Collection is a named, user-owned group of entities.
type Collection struct {
	ID          string
	UserID      string
	Name        string
	Description *string
	Ctime       int64
	Mtime       int64
}

// EntityLot tags what kind of entity a collection entry points at.
type EntityLot string

const (
	EntityLotMedia    EntityLot = "media"
	EntityLotExercise EntityLot = "exercise"
)

// CollectionEntity is a membership row.
type CollectionEntity struct {
	CollectionID string
	EntityID     string
	EntityLot    EntityLot
}
