package repository

import (
	"encoding/json"
	"time"

	"github.com/F3NN3X/vbz-departures-service/dlog"
	"github.com/F3NN3X/vbz-departures-service/model"
	"github.com/gomodule/redigo/redis"
	"github.com/pkg/errors"
)

// DefaultSnapshotKey is where the latest snapshot lives when the caller
// does not pick a key.
const DefaultSnapshotKey = "vbz:latest-snapshot"

// SnapshotStore keeps only the most recent snapshot in Redis. Each save
// replaces the previous value; no history accumulates.
type SnapshotStore struct {
	Logger dlog.Logger
	Pool   *redis.Pool
	Key    string
	// TTL expires a stale snapshot when polling stops; zero keeps it
	// until the next save.
	TTL time.Duration
}

// Save serializes the snapshot and replaces the stored one.
func (s *SnapshotStore) Save(snapshot model.Snapshot) (err error) {
	logger := dlog.OrNop(s.Logger)
	logger.Debugf("save snapshot from %s", snapshot.Timestamp.Format(time.RFC3339))

	payload, err := json.Marshal(&snapshot)
	if err != nil {
		return errors.Wrap(err, "cannot marshal snapshot")
	}

	conn := s.Pool.Get()
	defer func() {
		if ferr := conn.Close(); ferr != nil && err == nil {
			err = errors.Wrap(ferr, "cannot close Redis connection")
		}
	}()

	if s.TTL > 0 {
		_, err = conn.Do("SET", s.key(), payload, "PX", int64(s.TTL/time.Millisecond))
	} else {
		_, err = conn.Do("SET", s.key(), payload)
	}

	return errors.Wrap(err, "cannot store latest snapshot")
}

// Latest returns the stored snapshot, or nil when none has been saved.
func (s *SnapshotStore) Latest() (snapshot *model.Snapshot, err error) {
	dlog.OrNop(s.Logger).Debugf("load latest snapshot")

	conn := s.Pool.Get()
	defer func() {
		if ferr := conn.Close(); ferr != nil && err == nil {
			err = errors.Wrap(ferr, "cannot close Redis connection")
		}
	}()

	payload, err := redis.Bytes(conn.Do("GET", s.key()))
	if err == redis.ErrNil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot load latest snapshot")
	}

	snapshot = &model.Snapshot{}
	if err := json.Unmarshal(payload, snapshot); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal stored snapshot")
	}

	return snapshot, nil
}

func (s *SnapshotStore) key() string {
	if s.Key != "" {
		return s.Key
	}
	return DefaultSnapshotKey
}
