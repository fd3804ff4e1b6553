package memory

import (
	"time"

	"ref-intake-be/internal/entity"
	"ref-intake-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type SessionCache struct {
	cache *cache.Cache
}

// NewSessionCache keeps hot sessions for an hour and purges expired entries
// every 10 minutes. The cache is instance-local: losing it only costs a DB
// read (or, at worst, a client recovery snapshot).
func NewSessionCache(ttl time.Duration) contract.SessionCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionCache{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (c *SessionCache) Get(id uuid.UUID) (*entity.IntakeSession, bool) {
	if x, found := c.cache.Get(id.String()); found {
		return x.(*entity.IntakeSession), true
	}
	return nil, false
}

func (c *SessionCache) Save(session *entity.IntakeSession) {
	c.cache.Set(session.Id.String(), session, cache.DefaultExpiration)
}

func (c *SessionCache) Delete(id uuid.UUID) {
	c.cache.Delete(id.String())
}
