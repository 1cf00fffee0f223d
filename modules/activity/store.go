package activity

import (
	"sort"
	"sync"
	"time"
)

// DefaultMaxRecent is the default number of recent entries retained.
const DefaultMaxRecent = 100

// Entry is one recorded chat action.
type Entry struct {
	Kind     string    `json:"kind"`
	Username string    `json:"username"`
	At       time.Time `json:"at"`
}

// Entry kinds.
const (
	KindJoined  = "joined"
	KindLeft    = "left"
	KindMessage = "message"
)

// UserStats tracks messages per display name.
type UserStats struct {
	Username     string    `json:"username"`
	Messages     int64     `json:"messages"`
	CodeMessages int64     `json:"code_messages"`
	LastMessage  time.Time `json:"last_message"`
}

// Stats is a snapshot of chat activity since process start.
type Stats struct {
	Joins        int64       `json:"joins"`
	Leaves       int64       `json:"leaves"`
	Messages     int64       `json:"messages"`
	CodeMessages int64       `json:"code_messages"`
	Online       int         `json:"online"`
	PeakOnline   int         `json:"peak_online"`
	LastMessage  *time.Time  `json:"last_message,omitempty"`
	TopSenders   []UserStats `json:"top_senders"`
	Recent       []Entry     `json:"recent"`
}

// Store provides thread-safe storage for activity counters.
type Store struct {
	mu          sync.RWMutex
	joins       int64
	leaves      int64
	messages    int64
	code        int64
	online      int
	peakOnline  int
	lastMessage time.Time
	users       map[string]*UserStats
	recent      []Entry
	maxRecent   int
}

// NewStore creates a store retaining up to maxRecent entries.
func NewStore(maxRecent int) *Store {
	if maxRecent <= 0 {
		maxRecent = DefaultMaxRecent
	}
	return &Store{
		users:     make(map[string]*UserStats),
		recent:    make([]Entry, 0),
		maxRecent: maxRecent,
	}
}

// RecordJoin records a join; online is the count after it.
func (s *Store) RecordJoin(username string, online int, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.joins++
	s.setOnline(online)
	s.appendRecent(Entry{Kind: KindJoined, Username: username, At: at})
}

// RecordLeave records a departure; online is the count after it.
func (s *Store) RecordLeave(username string, online int, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.leaves++
	s.setOnline(online)
	s.appendRecent(Entry{Kind: KindLeft, Username: username, At: at})
}

// RecordMessage records a relayed message.
func (s *Store) RecordMessage(username string, isCode bool, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages++
	if isCode {
		s.code++
	}
	if at.After(s.lastMessage) {
		s.lastMessage = at
	}

	user, ok := s.users[username]
	if !ok {
		user = &UserStats{Username: username}
		s.users[username] = user
	}
	user.Messages++
	if isCode {
		user.CodeMessages++
	}
	user.LastMessage = at

	s.appendRecent(Entry{Kind: KindMessage, Username: username, At: at})
}

// Snapshot returns the current stats with up to topN senders.
func (s *Store) Snapshot(topN int) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Joins:        s.joins,
		Leaves:       s.leaves,
		Messages:     s.messages,
		CodeMessages: s.code,
		Online:       s.online,
		PeakOnline:   s.peakOnline,
		TopSenders:   make([]UserStats, 0, len(s.users)),
		Recent:       make([]Entry, len(s.recent)),
	}
	if !s.lastMessage.IsZero() {
		last := s.lastMessage
		stats.LastMessage = &last
	}
	copy(stats.Recent, s.recent)

	for _, u := range s.users {
		stats.TopSenders = append(stats.TopSenders, *u)
	}
	sort.Slice(stats.TopSenders, func(i, j int) bool {
		a, b := stats.TopSenders[i], stats.TopSenders[j]
		if a.Messages != b.Messages {
			return a.Messages > b.Messages
		}
		return a.Username < b.Username
	})
	if topN >= 0 && len(stats.TopSenders) > topN {
		stats.TopSenders = stats.TopSenders[:topN]
	}
	return stats
}

func (s *Store) setOnline(online int) {
	s.online = online
	if online > s.peakOnline {
		s.peakOnline = online
	}
}

// appendRecent keeps the newest maxRecent entries.
func (s *Store) appendRecent(e Entry) {
	s.recent = append(s.recent, e)
	if len(s.recent) > s.maxRecent {
		excess := len(s.recent) - s.maxRecent
		s.recent = s.recent[excess:]
	}
}
