package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	GemKeyPrefix     = "gem:%d"
	UserKeyPrefix    = "user:%d"
	GeocodeKeyPrefix = "geocode:%s"
)

const (
	GemTTL     = 10 * time.Minute
	UserTTL    = 5 * time.Minute
	GeocodeTTL = 24 * time.Hour
)

func GemKey(gemID uint) string {
	return fmt.Sprintf(GemKeyPrefix, gemID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

// GeocodeKey normalizes the place name so "New York" and "new york"
// share an entry.
func GeocodeKey(place string) string {
	return fmt.Sprintf(GeocodeKeyPrefix, strings.ToLower(strings.TrimSpace(place)))
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateGem(ctx context.Context, gemID uint) {
	Invalidate(ctx, GemKey(gemID))
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
