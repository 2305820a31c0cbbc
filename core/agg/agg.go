// Package agg mines Git history into per-file commit records.
package agg

import (
	"context"
	"fmt"

	"github.com/estersassis/busfactor/internal/contract"
	"github.com/estersassis/busfactor/schema"
	"github.com/sirupsen/logrus"
)

// MineCommitRecords runs a single repository-wide git log over [cfg.StartTime, cfg.EndTime]
// and turns it into commit records. Parsed records are cached in the activity store when one
// is configured, and scope, --exclude and ignore-file filters run after the cache so every
// scope shares the same entry.
func MineCommitRecords(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) ([]schema.CommitRecord, error) {
	var (
		records []schema.CommitRecord
		err     error
	)
	if mgr == nil || mgr.GetActivityStore() == nil {
		records, err = mineActivity(ctx, cfg, client)
	} else {
		records, err = cachedMineActivity(ctx, cfg, client, mgr.GetActivityStore())
	}
	if err != nil {
		return nil, err
	}

	filtered := FilterRecords(records, cfg.Scope, cfg.Excludes, cfg.Ignore)
	contract.Logger.WithFields(logrus.Fields{
		"repo":     cfg.RepoPath,
		"mined":    len(records),
		"filtered": len(filtered),
		"scope":    cfg.Scope,
	}).Debug("mined commit records")
	return filtered, nil
}

// mineActivity fetches and parses the activity log without touching any cache.
func mineActivity(ctx context.Context, cfg *contract.Config, client contract.GitClient) ([]schema.CommitRecord, error) {
	out, err := client.GetActivityLog(ctx, cfg.RepoPath, cfg.StartTime, cfg.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to read git history: %w", err)
	}
	return ParseActivityLog(out), nil
}
