package appearance

import "context"

// Repository defines the storage contract for vehicle appearances.
type Repository interface {
	// ListUnresolved pages unlinked appearances by ascending id (keyset).
	ListUnresolved(ctx context.Context, afterID string, limit int) ([]Appearance, error)
	// ListResolved pages linked appearances by ascending id (keyset).
	ListResolved(ctx context.Context, afterID string, limit int) ([]Appearance, error)
	// Link attaches an appearance to a generation with the confidence tier
	// that produced the match.
	Link(ctx context.Context, id string, generationID int64, confidence string) error
	// Create inserts a new appearance and backfills its created_at.
	Create(ctx context.Context, a *Appearance) error
	// Delete removes the given appearances and returns how many rows went.
	Delete(ctx context.Context, ids []string) (int64, error)
	// CountUnresolved returns the number of appearances awaiting a link.
	CountUnresolved(ctx context.Context) (int64, error)
	// CountByConfidence returns resolved-row counts grouped by tier.
	CountByConfidence(ctx context.Context) (map[string]int64, error)
}
