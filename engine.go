package main

import (
	"context"
	"sync"
	"time"

	"pong-server/pong"
)

type matchTask struct {
	match  *pong.Match
	cancel context.CancelFunc
}

// MatchEngine owns the live matches, keyed by room id, and runs one tick
// task per match. Every method except Stop expects the caller to hold lock;
// the tick tasks take it themselves.
type MatchEngine struct {
	lock     sync.Locker
	out      Broadcaster
	interval time.Duration
	matches  map[string]*matchTask
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewMatchEngine(lock sync.Locker, out Broadcaster, interval time.Duration) *MatchEngine {
	ctx, cancel := context.WithCancel(context.Background())
	return &MatchEngine{
		lock:     lock,
		out:      out,
		interval: interval,
		matches:  make(map[string]*matchTask),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start takes ownership of match for roomID and starts its tick task.
func (e *MatchEngine) Start(roomID string, match *pong.Match) {
	if old, exists := e.matches[roomID]; exists {
		old.cancel()
	}
	ctx, cancel := context.WithCancel(e.ctx)
	task := &matchTask{match: match, cancel: cancel}
	e.matches[roomID] = task
	e.wg.Add(1)
	go e.run(ctx, roomID, task)
}

func (e *MatchEngine) Get(roomID string) (*pong.Match, bool) {
	task, exists := e.matches[roomID]
	if !exists {
		return nil, false
	}
	return task.match, true
}

// Remove destroys the match of roomID and cancels its tick task.
func (e *MatchEngine) Remove(roomID string) {
	task, exists := e.matches[roomID]
	if !exists {
		return
	}
	task.cancel()
	delete(e.matches, roomID)
}

func (e *MatchEngine) Len() int {
	return len(e.matches)
}

func (e *MatchEngine) run(ctx context.Context, roomID string, task *matchTask) {
	defer e.wg.Done()
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !e.step(roomID, task) {
				return
			}
		}
	}
}

// step advances one tick and pushes the result to the room. It reports
// false once the task has nothing left to drive: its match was removed or
// replaced, or has ended.
func (e *MatchEngine) step(roomID string, task *matchTask) bool {
	e.lock.Lock()
	defer e.lock.Unlock()
	if current, exists := e.matches[roomID]; !exists || current != task {
		return false
	}
	if task.match.Status == pong.StatusEnd {
		return false
	}
	task.match.Tick()
	e.out.SendRoom(roomID, EventRefreshMatch, task.match.Snapshot())
	return true
}

// Stop cancels every tick task and waits for them to return. It must be
// called without holding lock.
func (e *MatchEngine) Stop() {
	e.cancel()
	e.wg.Wait()
}
