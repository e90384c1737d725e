package rail

import (
	"slices"
	"sync"
	"time"
)

// FrameID 已登记帧回调的句柄，0 表示无
type FrameID uint64

// Scheduler 逐帧回调调度器
// RequestFrame 登记的回调在下一帧执行一次；CancelFrame 撤销尚未执行的回调
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// frameQueue 两种调度器共用的待执行队列
type frameQueue struct {
	mu      sync.Mutex
	next    FrameID
	pending map[FrameID]func()
}

func (q *frameQueue) request(fn func()) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending == nil {
		q.pending = make(map[FrameID]func())
	}
	q.next++
	q.pending[q.next] = fn
	return q.next
}

func (q *frameQueue) cancel(id FrameID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, id)
}

// take 取出当前帧要执行的全部回调，执行期间新登记的回调留到下一帧
func (q *frameQueue) take() []func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	ids := make([]FrameID, 0, len(q.pending))
	for id := range q.pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, q.pending[id])
		delete(q.pending, id)
	}
	return fns
}

func (q *frameQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// TickerScheduler 以固定间隔出帧
type TickerScheduler struct {
	queue  frameQueue
	ticker *time.Ticker
	stop   chan struct{}
	once   sync.Once
}

// NewTickerScheduler 启动调度器，interval 通常为 16ms（约 60fps）
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	s := &TickerScheduler{
		ticker: time.NewTicker(interval),
		stop:   make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *TickerScheduler) loop() {
	for {
		select {
		case <-s.stop:
			return
		case <-s.ticker.C:
			for _, fn := range s.queue.take() {
				fn()
			}
		}
	}
}

// RequestFrame 登记下一帧回调
func (s *TickerScheduler) RequestFrame(fn func()) FrameID {
	return s.queue.request(fn)
}

// CancelFrame 撤销回调
func (s *TickerScheduler) CancelFrame(id FrameID) {
	s.queue.cancel(id)
}

// Close 停止出帧，未执行的回调被丢弃
func (s *TickerScheduler) Close() {
	s.once.Do(func() {
		s.ticker.Stop()
		close(s.stop)
	})
}

// StepScheduler 手动出帧，每次 Flush 即一帧
type StepScheduler struct {
	queue frameQueue
}

// NewStepScheduler 创建手动调度器
func NewStepScheduler() *StepScheduler {
	return &StepScheduler{}
}

// RequestFrame 登记下一帧回调
func (s *StepScheduler) RequestFrame(fn func()) FrameID {
	return s.queue.request(fn)
}

// CancelFrame 撤销回调
func (s *StepScheduler) CancelFrame(id FrameID) {
	s.queue.cancel(id)
}

// Flush 执行一帧，返回执行的回调数
func (s *StepScheduler) Flush() int {
	fns := s.queue.take()
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Pending 待执行回调数
func (s *StepScheduler) Pending() int {
	return s.queue.len()
}
