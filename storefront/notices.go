package storefront

import (
	"sync"
	"time"
)

type NoticeLevel string

const (
	NOTICE_INFO    NoticeLevel = "INFO"
	NOTICE_WARNING NoticeLevel = "WARNING"
	NOTICE_ERROR   NoticeLevel = "ERROR"
)

type Notice struct {
	Message   string
	Level     NoticeLevel
	ExpiresAt time.Time
}

// Notices holds transient banner messages. A submission failure posted
// here survives the page navigation that follows it, but only for the
// bounded display duration.
type Notices struct {
	mu    sync.Mutex
	items []Notice
	now   func() time.Time
}

func NewNotices() *Notices {
	return &Notices{
		now: time.Now,
	}
}

func (n *Notices) Put(message string, level NoticeLevel, ttl time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.items = append(n.items, Notice{
		Message:   message,
		Level:     level,
		ExpiresAt: n.now().Add(ttl),
	})
}

// Active returns the notices still within their display duration and drops
// the expired ones.
func (n *Notices) Active() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	kept := n.items[:0]
	for _, item := range n.items {
		if item.ExpiresAt.After(now) {
			kept = append(kept, item)
		}
	}
	n.items = kept

	out := make([]Notice, len(kept))
	copy(out, kept)
	return out
}
