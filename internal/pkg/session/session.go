package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/storage/redis"

	"github.com/socialhubhq/socialhub/internal/pkg/cache"
	"github.com/socialhubhq/socialhub/internal/pkg/env"
)

// TTL is the sliding session lifetime. Every authenticated request pushes
// the expiry out by this much.
const TTL = 24 * time.Hour

// Data is what a session token resolves to.
type Data struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Store is the session backend. The Redis implementation is used in the
// server; tests inject the in-memory one. A process restart no longer
// invalidates sessions as long as Redis survives it.
type Store interface {
	// Get resolves a token and slides its expiry. Returns nil when the
	// token is unknown or expired.
	Get(token string) (*Data, error)
	Set(token string, data *Data) error
	Delete(token string) error
	// DeleteForAdmin drops every session belonging to the given admin
	// (password change, account removal, deactivation).
	DeleteForAdmin(username string) error
}

var store Store

// GetStore returns the active session store, initializing the Redis-backed
// one on first use.
func GetStore() Store {
	if store == nil {
		store = NewRedisStore()
	}
	return store
}

// SetStore injects a session store; used by tests.
func SetStore(s Store) {
	store = s
}

// GenerateToken returns a fresh 64-hex-char session token.
func GenerateToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// RedisStore keeps session payloads in Redis database 1 (cache uses DB 0)
// and a per-admin token index in the shared cache client.
type RedisStore struct {
	storage *redis.Storage
	ttl     time.Duration
}

func NewRedisStore() *RedisStore {
	// Get Redis client configuration from existing cache setup
	cacheClient := cache.GetClient()
	host := "localhost"
	port := 6379
	password := env.GetEnv("CACHE_PASSWORD", "")
	if cacheClient != nil {
		addr := cacheClient.Options().Addr
		if h, p, err := net.SplitHostPort(addr); err == nil {
			host = h
			if v, err := strconv.Atoi(p); err == nil {
				port = v
			}
		}
		// Prefer password from the underlying client if present
		if p := cacheClient.Options().Password; p != "" {
			password = p
		}
	}

	storage := redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: password,
		Database: 1, // Separate database for sessions
		Reset:    false,
	})

	return &RedisStore{storage: storage, ttl: TTL}
}

func sessionKey(token string) string {
	return "session:" + token
}

func adminIndexKey(username string) string {
	return "admin_sessions:" + username
}

func (s *RedisStore) Get(token string) (*Data, error) {
	raw, err := s.storage.Get(sessionKey(token))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	// Slide the expiry by rewriting the entry with a fresh TTL.
	if err := s.storage.Set(sessionKey(token), raw, s.ttl); err != nil {
		return nil, err
	}

	return &data, nil
}

func (s *RedisStore) Set(token string, data *Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err := s.storage.Set(sessionKey(token), raw, s.ttl); err != nil {
		return err
	}
	// Index the token so DeleteForAdmin can find it. The index entry lives
	// slightly longer than the session itself.
	rdb := cache.GetClient()
	ctx := context.Background()
	if err := rdb.SAdd(ctx, adminIndexKey(data.Username), token).Err(); err != nil {
		return err
	}
	return rdb.Expire(ctx, adminIndexKey(data.Username), s.ttl+time.Hour).Err()
}

func (s *RedisStore) Delete(token string) error {
	return s.storage.Delete(sessionKey(token))
}

func (s *RedisStore) DeleteForAdmin(username string) error {
	rdb := cache.GetClient()
	ctx := context.Background()
	tokens, err := rdb.SMembers(ctx, adminIndexKey(username)).Result()
	if err != nil {
		return err
	}
	for _, token := range tokens {
		if derr := s.storage.Delete(sessionKey(token)); derr != nil {
			err = derr
		}
	}
	if derr := rdb.Del(ctx, adminIndexKey(username)).Err(); derr != nil {
		err = derr
	}
	return err
}

// MemoryStore is a map-backed Store for tests. It mirrors the sliding-expiry
// behavior of the Redis store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     TTL,
		now:     time.Now,
	}
}

// SetClock overrides the store's notion of now; used by expiry tests.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStore) Get(token string) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return nil, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, token)
		return nil, nil
	}

	entry.expiresAt = s.now().Add(s.ttl)
	s.entries[token] = entry

	data := entry.data
	return &data, nil
}

func (s *MemoryStore) Set(token string, data *Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{data: *data, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

func (s *MemoryStore) DeleteForAdmin(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, entry := range s.entries {
		if entry.data.Username == username {
			delete(s.entries, token)
		}
	}
	return nil
}
