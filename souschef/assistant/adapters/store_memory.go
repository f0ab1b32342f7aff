package adapters

import (
	"hash/fnv"
	"sync"

	ports "github.com/hearthware/souschef/souschef/assistant/ports"
)

const shardCount = 32

// ShardedConversationStore is an in-memory ConversationStore sharded by
// user id, so appends for one user never contend with reads for another.
// Each user's history is a FIFO window: once capacity is reached the
// oldest entry is evicted on append.
type ShardedConversationStore struct {
	capacity int
	shards   [shardCount]*storeShard
}

type storeShard struct {
	mu    sync.RWMutex
	users map[string][]ports.ConversationEntry
}

// NewShardedConversationStore creates a store holding at most capacity
// entries per user.
func NewShardedConversationStore(capacity int) *ShardedConversationStore {
	if capacity <= 0 {
		capacity = 5
	}
	s := &ShardedConversationStore{capacity: capacity}
	for i := range s.shards {
		s.shards[i] = &storeShard{users: make(map[string][]ports.ConversationEntry)}
	}
	return s
}

// Append inserts at the tail, evicting the head when the window is full.
func (s *ShardedConversationStore) Append(userID string, entry ports.ConversationEntry) {
	shard := s.shard(userID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	entries := shard.users[userID]
	if len(entries) >= s.capacity {
		entries = entries[1:]
	}
	shard.users[userID] = append(entries, entry)
}

// Recent returns up to limit entries, most-recent-last. Unknown users
// yield an empty result.
func (s *ShardedConversationStore) Recent(userID string, limit int) []ports.ConversationEntry {
	shard := s.shard(userID)
	shard.mu.RLock()
	defer shard.mu.RUnlock()

	entries := shard.users[userID]
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	out := make([]ports.ConversationEntry, len(entries))
	copy(out, entries)
	return out
}

// Clear drops all entries for the user.
func (s *ShardedConversationStore) Clear(userID string) {
	shard := s.shard(userID)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	delete(shard.users, userID)
}

func (s *ShardedConversationStore) shard(userID string) *storeShard {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return s.shards[h.Sum32()%shardCount]
}

var _ ports.ConversationStore = (*ShardedConversationStore)(nil)
