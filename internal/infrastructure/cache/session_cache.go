package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"contacts-service/internal/domain/entities"
)

// cachedUser is the projection of a user stored in Redis. It deliberately
// omits the password hash.
type cachedUser struct {
	ID        uint          `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Role      entities.Role `json:"role"`
	Avatar    string        `json:"avatar"`
	Confirmed bool          `json:"confirmed"`
}

// SessionCache maps username -> user snapshot with a TTL equal to the
// access-token lifetime. It is best-effort: any failure reads as a miss.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{client: client, ttl: ttl}
}

// Get returns the cached projection for the username, or nil when absent.
// Absence means "not cached", not "does not exist".
func (c *SessionCache) Get(ctx context.Context, username string) (*entities.User, error) {
	if c.client == nil {
		return nil, nil
	}
	payload, err := c.client.Get(ctx, sessionKey(username)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("session cache read failed for %q: %v", username, err)
		}
		return nil, nil
	}

	var cached cachedUser
	if err := json.Unmarshal([]byte(payload), &cached); err != nil {
		// Corrupt entry; fall through to the primary store.
		log.Printf("session cache entry for %q is not decodable: %v", username, err)
		return nil, nil
	}

	return &entities.User{
		ID:        cached.ID,
		Username:  cached.Username,
		Email:     cached.Email,
		Role:      cached.Role,
		Avatar:    cached.Avatar,
		Confirmed: cached.Confirmed,
	}, nil
}

// Put stores the user's projection under its username.
func (c *SessionCache) Put(ctx context.Context, user *entities.User) error {
	if c.client == nil {
		return nil
	}
	payload, err := json.Marshal(cachedUser{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		Avatar:    user.Avatar,
		Confirmed: user.Confirmed,
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, sessionKey(user.Username), payload, c.ttl).Err()
}

func sessionKey(username string) string {
	return "user:" + username
}
