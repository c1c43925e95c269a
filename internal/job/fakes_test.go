package job

import (
	"context"
	"sort"

	"github.com/minhdao/carlex/internal/appearance"
	"github.com/minhdao/carlex/internal/catalog"
	"github.com/minhdao/carlex/pkg/pointer"
)

// memCheckpoints is an in-memory Checkpointer recording every call.
type memCheckpoints struct {
	cursors map[string]string
	saves   int
	cleared int
}

func newMemCheckpoints() *memCheckpoints {
	return &memCheckpoints{cursors: make(map[string]string)}
}

func (m *memCheckpoints) Load(_ context.Context, job string) (string, error) {
	return m.cursors[job], nil
}

func (m *memCheckpoints) Save(_ context.Context, job, cursor string) error {
	m.cursors[job] = cursor
	m.saves++
	return nil
}

func (m *memCheckpoints) Clear(_ context.Context, job string) error {
	delete(m.cursors, job)
	m.cleared++
	return nil
}

// memCatalog backs CatalogReader, GenerationMerger, and VariantCleaner.
type memCatalog struct {
	rows        []catalog.Row
	generations []catalog.Generation
	variants    []catalog.EngineVariant

	mergeCalls  [][]int64
	mergeErr    error
	updatedName map[int64]string
	updateErr   error
}

func (m *memCatalog) ListRows(context.Context) ([]catalog.Row, error) {
	return m.rows, nil
}

func (m *memCatalog) ListGenerations(context.Context) ([]catalog.Generation, error) {
	return m.generations, nil
}

func (m *memCatalog) MergeGenerations(_ context.Context, originalID int64, duplicateIDs []int64) (map[string]int64, error) {
	if m.mergeErr != nil {
		err := m.mergeErr
		m.mergeErr = nil // fail the first group only
		return nil, err
	}
	m.mergeCalls = append(m.mergeCalls, append([]int64{originalID}, duplicateIDs...))
	return map[string]int64{"catalog.engine_variant": int64(len(duplicateIDs))}, nil
}

func (m *memCatalog) ListEngineVariants(_ context.Context, afterID int64, limit int) ([]catalog.EngineVariant, error) {
	result := make([]catalog.EngineVariant, 0, limit)
	for _, v := range m.variants {
		if v.ID > afterID {
			result = append(result, v)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

func (m *memCatalog) UpdateEngineVariantName(_ context.Context, id int64, name string) error {
	if m.updateErr != nil {
		err := m.updateErr
		m.updateErr = nil
		return err
	}
	if m.updatedName == nil {
		m.updatedName = make(map[int64]string)
	}
	m.updatedName[id] = name
	return nil
}

// memAppearances backs AppearanceStore and AppearancePruner.
type memAppearances struct {
	rows map[string]*appearance.Appearance

	linkErrID  string
	linkErr    error
	deleted    [][]string
	deleteErr  error
	listsMade  int
}

func newMemAppearances(rows ...appearance.Appearance) *memAppearances {
	m := &memAppearances{rows: make(map[string]*appearance.Appearance, len(rows))}
	for i := range rows {
		r := rows[i]
		m.rows[r.ID] = &r
	}
	return m
}

func (m *memAppearances) list(resolved bool, afterID string, limit int) []appearance.Appearance {
	ids := make([]string, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]appearance.Appearance, 0, limit)
	for _, id := range ids {
		row := m.rows[id]
		if row.Resolved() != resolved || row.ID <= afterID {
			continue
		}
		result = append(result, *row)
		if len(result) == limit {
			break
		}
	}
	return result
}

func (m *memAppearances) ListUnresolved(_ context.Context, afterID string, limit int) ([]appearance.Appearance, error) {
	m.listsMade++
	return m.list(false, afterID, limit), nil
}

func (m *memAppearances) ListResolved(_ context.Context, afterID string, limit int) ([]appearance.Appearance, error) {
	return m.list(true, afterID, limit), nil
}

func (m *memAppearances) Link(_ context.Context, id string, generationID int64, confidence string) error {
	if m.linkErr != nil && id == m.linkErrID {
		return m.linkErr
	}
	row, ok := m.rows[id]
	if !ok {
		return nil
	}
	row.GenerationID = pointer.To(generationID)
	row.MatchConfidence = pointer.To(confidence)
	return nil
}

func (m *memAppearances) Delete(_ context.Context, ids []string) (int64, error) {
	if m.deleteErr != nil {
		err := m.deleteErr
		m.deleteErr = nil
		return 0, err
	}
	var n int64
	for _, id := range ids {
		if _, ok := m.rows[id]; ok {
			delete(m.rows, id)
			n++
		}
	}
	m.deleted = append(m.deleted, ids)
	return n, nil
}
