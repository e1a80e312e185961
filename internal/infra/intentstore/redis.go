package intentstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/rental"
	"github.com/maysqunaibi/strollers-mvp/internal/infra"

	"github.com/redis/go-redis/v9"
)

// Single named slot per rental session, mirroring the SPA's
// localStorage key. Writing overwrites any prior uncommitted selection.
const slotName = "pending_payment_selection"

type intentRecord struct {
	DeviceNo      string  `json:"deviceNo"`
	CartNo        *string `json:"cartNo,omitempty"`
	CartIndex     int     `json:"cartIndex"`
	SiteNo        *string `json:"siteNo,omitempty"`
	AmountHalalas int64   `json:"amountHalalas"`
}

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

func slotKey(sessionID string) string {
	return slotName + ":" + sessionID
}

func (s *Store) Put(ctx context.Context, sessionID string, intent *rental.Intent) error {
	record := intentRecord{
		DeviceNo:      intent.DeviceNo(),
		CartNo:        intent.CartNo(),
		CartIndex:     intent.CartIndex(),
		SiteNo:        intent.SiteNo(),
		AmountHalalas: intent.AmountHalalas(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return infra.WrapRepoErr("failed to encode rental intent", err)
	}

	if err := s.client.Set(ctx, slotKey(sessionID), data, s.ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to store rental intent", err, infra.KindUnavailable)
	}

	return nil
}

// Get is non-destructive; a missing or corrupted slot is reported as
// KindNotFound so the return flow can fail fast without a network call.
func (s *Store) Get(ctx context.Context, sessionID string) (*rental.Intent, error) {
	data, err := s.client.Get(ctx, slotKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, infra.WrapRepoErr("rental intent not found", err, infra.KindNotFound)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load rental intent", err, infra.KindUnavailable)
	}

	var record intentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, infra.WrapRepoErr("corrupted rental intent", err, infra.KindNotFound)
	}

	intent, err := rental.NewIntent(record.DeviceNo, record.CartNo, record.CartIndex, record.SiteNo, record.AmountHalalas)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid rental intent", err, infra.KindNotFound)
	}

	return intent, nil
}

func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, slotKey(sessionID)).Err(); err != nil {
		return infra.WrapRepoErr("failed to clear rental intent", err, infra.KindUnavailable)
	}
	return nil
}
