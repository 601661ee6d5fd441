package weathercache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/linjia/ai-closet/internal/domain/weather"
)

// ValkeyStore caches weather snapshots in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	ttl    time.Duration
}

// NewValkeyStore constructs a store backed by Valkey. The TTL doubles the
// service-side staleness check so stale keys eventually disappear.
func NewValkeyStore(client valkey.Client, ttl time.Duration) *ValkeyStore {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &ValkeyStore{client: client, ttl: ttl}
}

// Get implements weather.Store.
func (s *ValkeyStore) Get(ctx context.Context, key string) (weather.Snapshot, bool, error) {
	cmd := s.client.B().Get().Key(key).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return weather.Snapshot{}, false, nil
		}
		return weather.Snapshot{}, false, err
	}
	var snapshot weather.Snapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return weather.Snapshot{}, false, err
	}
	return snapshot, true, nil
}

// Save implements weather.Store.
func (s *ValkeyStore) Save(ctx context.Context, key string, snapshot weather.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	ttl := s.ttl
	if ttl < time.Second {
		ttl = time.Second
	}
	cmd := s.client.B().Set().Key(key).Value(string(payload)).Ex(2 * ttl).Build()
	return s.client.Do(ctx, cmd).Error()
}

var _ weather.Store = (*ValkeyStore)(nil)
