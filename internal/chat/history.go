package chat

import (
	"fmt"
	"sync"

	"github.com/dgraph-io/ristretto"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// ContextTurns is how many of the latest turns are fed to the model.
	ContextTurns = 10
	// RecentTurns is how many of the latest turns drive suggestion topics.
	RecentTurns = 6
)

// Turn is one message in a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// History keeps per-user conversation turns in a bounded in-process cache.
// Histories are ephemeral: they do not survive a restart, and rarely-used
// usernames get evicted when the cache is full. Appends for the same username
// are serialized so concurrent chat requests cannot interleave half-exchanges.
type History struct {
	cache *ristretto.Cache

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

func NewHistory() (*History, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,     // usernames tracked for admission frequency
		MaxCost:     1 << 14, // max total stored turns across all users
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache: %w", err)
	}

	return &History{
		cache:     cache,
		userLocks: make(map[string]*sync.Mutex),
	}, nil
}

func (h *History) userLock(username string) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()

	lock, ok := h.userLocks[username]
	if !ok {
		lock = &sync.Mutex{}
		h.userLocks[username] = lock
	}
	return lock
}

// Append adds one turn to the user's conversation.
func (h *History) Append(username, role, content string) {
	lock := h.userLock(username)
	lock.Lock()
	defer lock.Unlock()

	turns := h.turns(username)
	turns = append(turns, Turn{Role: role, Content: content})

	h.cache.Set(username, turns, int64(len(turns)))
	// Set is buffered; wait so a subsequent read sees this append
	h.cache.Wait()
}

// ContextWindow returns the most recent turns, up to max.
func (h *History) ContextWindow(username string, max int) []Turn {
	lock := h.userLock(username)
	lock.Lock()
	defer lock.Unlock()

	turns := h.turns(username)
	if len(turns) > max {
		turns = turns[len(turns)-max:]
	}

	window := make([]Turn, len(turns))
	copy(window, turns)
	return window
}

// Reset discards the user's whole conversation. No-op for unknown users.
func (h *History) Reset(username string) {
	lock := h.userLock(username)
	lock.Lock()
	defer lock.Unlock()

	h.cache.Del(username)
	h.cache.Wait()
}

func (h *History) turns(username string) []Turn {
	val, found := h.cache.Get(username)
	if !found {
		return nil
	}
	turns, ok := val.([]Turn)
	if !ok {
		return nil
	}
	return turns
}
