package agg

import (
	"github.com/estersassis/busfactor/internal/contract"
	"github.com/estersassis/busfactor/schema"
)

// FilterRecords keeps records whose file lies under scope and is matched by neither the
// exclude patterns nor the ignore rules. Input order is preserved.
func FilterRecords(records []schema.CommitRecord, scope string, excludes []string, ignore *contract.IgnoreMatcher) []schema.CommitRecord {
	out := make([]schema.CommitRecord, 0, len(records))
	for _, r := range records {
		if !contract.InScope(r.File, scope) {
			continue
		}
		if contract.ShouldIgnore(r.File, excludes) {
			continue
		}
		if ignore.Match(r.File) {
			continue
		}
		out = append(out, r)
	}
	return out
}
