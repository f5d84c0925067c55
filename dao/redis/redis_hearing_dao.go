package redis

import (
	"encoding/json"
	"errors"
	"fmt"

	"hearing-server/db"
	"hearing-server/models/hearing"
)

const HEARINGS_SNAPSHOT_KEY_V1 = "hearings_snapshot_v1"

// HEARING_CASE_KEY_FORMAT is used to cache each case of the latest snapshot by id.
const HEARING_CASE_KEY_FORMAT = "hearing_case_v1:%s"

// ErrNoSnapshot is returned when no refresh has stored a snapshot yet.
var ErrNoSnapshot = errors.New("no hearings snapshot cached yet")

// ErrCaseNotFound is returned when the latest snapshot has no case with the id.
var ErrCaseNotFound = errors.New("case not found")

// RedisHearingDAO stores the latest case store snapshot in Redis.
type RedisHearingDAO struct {
	client db.RedisClient
}

// NewRedisHearingDAO initializes a RedisHearingDAO with the Redis client.
func NewRedisHearingDAO(client db.RedisClient) *RedisHearingDAO {
	return &RedisHearingDAO{client: client}
}

// SaveSnapshot replaces the cached snapshot and the per-case entries in one
// transaction. Case entries that are not part of the new snapshot are removed.
// On failure the previous snapshot and its cases stay as they were.
func (dao *RedisHearingDAO) SaveSnapshot(s *hearing.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot %s: %w", s.ID, err)
	}

	values := make(map[string]string, len(s.Records)+1)
	values[HEARINGS_SNAPSHOT_KEY_V1] = string(data)
	for _, rec := range s.Records {
		recJSON, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal case %s: %w", rec.ID, err)
		}
		values[fmt.Sprintf(HEARING_CASE_KEY_FORMAT, rec.ID)] = string(recJSON)
	}

	existing, err := dao.client.Keys(fmt.Sprintf(HEARING_CASE_KEY_FORMAT, "*"))
	if err != nil {
		return fmt.Errorf("failed to list case keys: %w", err)
	}
	var stale []string
	for _, k := range existing {
		if _, ok := values[k]; !ok {
			stale = append(stale, k)
		}
	}

	if err := dao.client.ReplaceKeys(values, stale); err != nil {
		return fmt.Errorf("failed to store snapshot %s in redis: %w", s.ID, err)
	}
	return nil
}

// GetSnapshot returns the latest snapshot or ErrNoSnapshot.
func (dao *RedisHearingDAO) GetSnapshot() (*hearing.Snapshot, error) {
	str, err := dao.client.Get(HEARINGS_SNAPSHOT_KEY_V1)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to get snapshot from redis: %w", err)
	}
	var s hearing.Snapshot
	if err := json.Unmarshal([]byte(str), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot JSON: %w", err)
	}
	return &s, nil
}

// GetCase returns a single cached case by id.
func (dao *RedisHearingDAO) GetCase(id string) (*hearing.HearingRecord, error) {
	str, err := dao.client.Get(fmt.Sprintf(HEARING_CASE_KEY_FORMAT, id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to get case %s from redis: %w", id, err)
	}
	var rec hearing.HearingRecord
	if err := json.Unmarshal([]byte(str), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal case JSON: %w", err)
	}
	return &rec, nil
}
