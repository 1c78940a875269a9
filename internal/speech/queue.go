// ABOUTME: Asynchronous cue delivery so slow speech never delays the workout clock.
// ABOUTME: Cues are spoken in order by a single worker goroutine.
package speech

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultQueueSize bounds the number of cues waiting to be spoken.
const DefaultQueueSize = 8

// Queue speaks cues in the background through an underlying Speaker.
// Cues arriving while the buffer is full are dropped.
type Queue struct {
	speaker Speaker
	log     *log.Logger
	cues    chan string
	done    chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewQueue starts a worker speaking through s until Close is called or ctx ends.
func NewQueue(ctx context.Context, s Speaker, size int, logger *log.Logger) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	q := &Queue{
		speaker: s,
		log:     logger,
		cues:    make(chan string, size),
		done:    make(chan struct{}),
	}
	go q.run(ctx)
	return q
}

func (q *Queue) run(ctx context.Context) {
	defer close(q.done)
	for text := range q.cues {
		if ctx.Err() != nil {
			continue
		}
		if err := q.speaker.Speak(ctx, text); err != nil && q.log != nil {
			q.log.Warn("speak cue", "text", text, "err", err)
		}
	}
}

// Speak enqueues text without waiting for it to be spoken.
func (q *Queue) Speak(_ context.Context, text string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	select {
	case q.cues <- text:
	default:
		if q.log != nil {
			q.log.Warn("speech queue full, dropping cue", "text", text)
		}
	}
	return nil
}

// Close stops accepting cues and waits for queued ones to finish.
func (q *Queue) Close() error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.cues)
	}
	q.mu.Unlock()
	<-q.done
	return nil
}
