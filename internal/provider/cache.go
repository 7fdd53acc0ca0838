package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/mireo/fitvault/internal/model"
)

// WrapLruCache memoizes successful lookups. Imports often carry many
// entries for the same item (one per seen episode), so the densest-first
// batch ordering combined with this cache turns repeat lookups into hits.
func WrapLruCache(next MetadataProvider, size int, ttl time.Duration) MetadataProvider {
	if next == nil || size <= 0 || ttl <= 0 {
		return next
	}
	return &lruProvider{
		next:  next,
		cache: expirable.NewLRU[string, *Details](size, nil, ttl),
	}
}

type lruProvider struct {
	next  MetadataProvider
	cache *expirable.LRU[string, *Details]
}

func (l *lruProvider) Details(ctx context.Context, source model.MetadataSource, lot model.MetadataLot, identifier string) (*Details, error) {
	key := fmt.Sprintf("%s/%s/%s", source, lot, identifier)
	if cached, ok := l.cache.Get(key); ok {
		logutil.GetLogger(ctx).Debug("catalog cache hit", zap.String("key", key))
		copied := *cached
		return &copied, nil
	}
	details, err := l.next.Details(ctx, source, lot, identifier)
	if err != nil {
		return nil, err
	}
	copied := *details
	l.cache.Add(key, &copied)
	return details, nil
}
