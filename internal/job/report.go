package job

import "context"

// StatsSource is the slice of the appearance store the report needs.
type StatsSource interface {
	CountUnresolved(ctx context.Context) (int64, error)
	CountByConfidence(ctx context.Context) (map[string]int64, error)
}

// Report is a point-in-time census of the appearance table: how many rows
// are linked at each confidence tier and how many still wait.
type Report struct {
	Unresolved   int64
	ByConfidence map[string]int64
	Total        int64
}

// BuildReport gathers link statistics from the store. The two counts run
// as separate queries, so the totals can drift by whatever resolves in
// between; reports are indicative, not transactional.
func BuildReport(ctx context.Context, source StatsSource) (*Report, error) {
	unresolved, err := source.CountUnresolved(ctx)
	if err != nil {
		return nil, err
	}

	byConfidence, err := source.CountByConfidence(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Unresolved:   unresolved,
		ByConfidence: byConfidence,
		Total:        unresolved,
	}
	for _, count := range byConfidence {
		report.Total += count
	}

	return report, nil
}
