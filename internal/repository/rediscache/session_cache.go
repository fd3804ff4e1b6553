package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"ref-intake-be/internal/entity"
	"ref-intake-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionCache is the cross-instance variant of the hot session cache, for
// deployments where turns for one session may land on different instances.
// Failures degrade to a cache miss; redis being down never fails a turn.
type SessionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionCache(rdb *redis.Client, ttl time.Duration) contract.SessionCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionCache{rdb: rdb, ttl: ttl}
}

func key(id uuid.UUID) string {
	return "intake:session:" + id.String()
}

func (c *SessionCache) Get(id uuid.UUID) (*entity.IntakeSession, bool) {
	data, err := c.rdb.Get(context.Background(), key(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var session entity.IntakeSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, false
	}
	return &session, true
}

func (c *SessionCache) Save(session *entity.IntakeSession) {
	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	c.rdb.Set(context.Background(), key(session.Id), data, c.ttl)
}

func (c *SessionCache) Delete(id uuid.UUID) {
	c.rdb.Del(context.Background(), key(id))
}
