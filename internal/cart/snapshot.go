package cart

import (
	"context"
	"encoding/json"
	"time"
)

// SnapshotVersion tags the persisted cart shape. Snapshots carrying
// any other version are treated as corrupt and reset, not migrated.
const SnapshotVersion = 3

// DefaultSnapshotMaxAge is the session timeout: older snapshots reset
// to an empty cart at load time.
const DefaultSnapshotMaxAge = 4 * time.Hour

// Snapshot is the persisted cart layout: the aggregate plus a version
// tag and the last-write instant.
type Snapshot struct {
	Version       int            `json:"version"`
	Items         []Line         `json:"items"`
	RestaurantID  string         `json:"restaurant_id,omitempty"`
	TableID       string         `json:"table_id,omitempty"`
	AppliedCoupon *AppliedCoupon `json:"applied_coupon,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
}

// EncodeSnapshot serializes state with the current version and write
// instant. Write-through: called after every mutation.
func EncodeSnapshot(s State, now time.Time) ([]byte, error) {
	return json.Marshal(Snapshot{
		Version:       SnapshotVersion,
		Items:         s.Items,
		RestaurantID:  s.RestaurantID,
		TableID:       s.TableID,
		AppliedCoupon: s.AppliedCoupon,
		Timestamp:     now,
	})
}

// DecodeSnapshot parses a persisted snapshot. It returns ok=false and
// an empty, context-free state when the payload is unparseable, carries
// an unknown version, or is older than maxAge. Corruption is an
// expected branch here, not an error to propagate.
func DecodeSnapshot(data []byte, now time.Time, maxAge time.Duration) (State, bool) {
	if maxAge <= 0 {
		maxAge = DefaultSnapshotMaxAge
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return State{}, false
	}

	if snap.Version != SnapshotVersion {
		return State{}, false
	}

	if snap.Timestamp.IsZero() || now.Sub(snap.Timestamp) > maxAge {
		return State{}, false
	}

	return State{
		Items:         snap.Items,
		RestaurantID:  snap.RestaurantID,
		TableID:       snap.TableID,
		AppliedCoupon: snap.AppliedCoupon,
	}, true
}

// Store persists snapshots keyed by session. Implementations live at
// the repository layer; the aggregate never writes itself.
type Store interface {
	Load(ctx context.Context, sessionID string) ([]byte, bool, error)
	Save(ctx context.Context, sessionID string, data []byte) error
	Delete(ctx context.Context, sessionID string) error
}
