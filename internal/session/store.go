package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store 记录浏览器会话 ID 及其最近活跃时间，不保存任何对话历史。
// 条目数不超过 max，超出时淘汰最久未活跃的会话。
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	max      int
	now      func() time.Time
	sessions map[string]time.Time
}

// NewStore 创建会话表，ttl <= 0 表示永不过期，max <= 0 表示不限数量。
func NewStore(ttl time.Duration, max int) *Store {
	return &Store{
		ttl:      ttl,
		max:      max,
		now:      time.Now,
		sessions: make(map[string]time.Time),
	}
}

// Ensure 返回仍然有效的 id；id 为空、未知或已过期时签发新的 ID，第二个返回值表示是否新建。
func (s *Store) Ensure(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if id != "" {
		if seen, ok := s.sessions[id]; ok && !s.expired(seen, now) {
			s.sessions[id] = now
			return id, false
		}
	}

	s.pruneLocked(now)
	s.evictLocked()
	id = uuid.NewString()
	s.sessions[id] = now
	return id, true
}

// Forget 移除会话 ID，对应前端的“清空对话”。
func (s *Store) Forget(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len 返回当前记录的会话数量。
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) expired(seen, now time.Time) bool {
	return s.ttl > 0 && now.Sub(seen) > s.ttl
}

func (s *Store) pruneLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, seen := range s.sessions {
		if s.expired(seen, now) {
			delete(s.sessions, id)
		}
	}
}

// evictLocked 为即将插入的新会话腾出位置。
func (s *Store) evictLocked() {
	if s.max <= 0 {
		return
	}
	for len(s.sessions) >= s.max {
		var (
			oldestID string
			oldest   time.Time
		)
		for id, seen := range s.sessions {
			if oldestID == "" || seen.Before(oldest) {
				oldestID, oldest = id, seen
			}
		}
		delete(s.sessions, oldestID)
	}
}
