package agg

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/estersassis/busfactor/internal/contract"
	"github.com/estersassis/busfactor/schema"
	"github.com/sirupsen/logrus"
)

// currentCacheVersion defines the version of the cached record layout.
const currentCacheVersion = 1

// cacheTTL is how long a cached activity log stays fresh.
const cacheTTL = 7 * 24 * time.Hour

// cachedMineActivity serves parsed records from the activity store, mining and storing them on a miss.
func cachedMineActivity(ctx context.Context, cfg *contract.Config, client contract.GitClient, activity contract.CacheStore) ([]schema.CommitRecord, error) {
	key := generateCacheKey(ctx, cfg, client)

	if result := checkCacheHit(activity, key); result != nil {
		contract.Logger.WithField("key", key[:12]).Debug("activity cache hit")
		return result, nil
	}
	contract.Logger.WithField("key", key[:12]).Debug("activity cache miss")
	return computeAndStore(ctx, cfg, client, activity, key)
}

// checkCacheHit attempts to retrieve and validate a cached result.
func checkCacheHit(activity contract.CacheStore, key string) []schema.CommitRecord {
	data, version, ts, err := activity.Get(key)
	if err != nil {
		return nil
	}
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheTTL {
		return nil
	}
	var result []schema.CommitRecord
	if err := json.Unmarshal(data, &result); err != nil || result == nil {
		return nil
	}
	return result
}

// computeAndStore mines the records and stores them in cache. Store failures only warn.
func computeAndStore(ctx context.Context, cfg *contract.Config, client contract.GitClient, activity contract.CacheStore, key string) ([]schema.CommitRecord, error) {
	result, err := mineActivity(ctx, cfg, client)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []schema.CommitRecord{}
	}

	data, err := json.Marshal(result)
	if err != nil {
		return result, nil
	}
	if err := activity.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
		contract.Logger.WithFields(logrus.Fields{"repo": cfg.RepoPath}).WithError(err).Warn("failed to store activity cache entry")
	}
	return result, nil
}

// generateCacheKey hashes the repository, its HEAD and the time window.
// Scope and filters are applied after the cache and are not part of the key.
func generateCacheKey(ctx context.Context, cfg *contract.Config, client contract.GitClient) string {
	repoHash, err := client.GetRepoHash(ctx, cfg.RepoPath)
	if err != nil {
		repoHash = ""
	}
	key := fmt.Sprintf("%s:%d:%d:%s",
		cfg.RepoPath,
		unixOrZero(cfg.StartTime),
		unixOrZero(cfg.EndTime),
		repoHash,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

// unixOrZero truncates to the hour so relative bounds like "6 months ago" reuse an entry.
func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Truncate(time.Hour).Unix()
}
