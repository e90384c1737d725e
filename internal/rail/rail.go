// Package rail 实现横向列表的“悬停边缘自动滚动”。
//
// 指针靠近列表左/右边缘（宽度的 30% 以内）时，按固定步长逐帧滚动；
// 回到中间区域后下一帧停止，指针离开时立即撤销待执行的帧。
// 滚动速度只取决于帧率，与指针事件的频率无关。
package rail

import "sync"

// Direction 滚动方向
type Direction int

const (
	Stop  Direction = 0
	Left  Direction = -1
	Right Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "stop"
	}
}

const (
	// EdgeRatio 边缘触发区占列表宽度的比例
	EdgeRatio = 0.3
	// DefaultStep 每帧滚动的像素数
	DefaultStep = 5.0
)

// Rail 单个横向列表的滚动状态
// 任意时刻至多有一个待执行的帧回调
type Rail struct {
	sched    Scheduler
	step     float64
	onScroll func(pos float64)

	mu      sync.Mutex
	dir     Direction
	frame   FrameID
	token   uint64
	pos     float64
	max     float64
	bounded bool
}

// Option Rail 可选项
type Option func(*Rail)

// WithStep 设置每帧步长
func WithStep(step float64) Option {
	return func(r *Rail) { r.step = step }
}

// OnScroll 位置发生变化时回调（在帧内、锁外调用）
func OnScroll(fn func(pos float64)) Option {
	return func(r *Rail) { r.onScroll = fn }
}

// New 创建 Rail
func New(sched Scheduler, opts ...Option) *Rail {
	r := &Rail{sched: sched, step: DefaultStep}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DirectionAt 根据指针在列表内的横向偏移计算方向
func DirectionAt(x, width float64) Direction {
	if width <= 0 {
		return Stop
	}
	threshold := width * EdgeRatio
	switch {
	case x < threshold:
		return Left
	case x > width-threshold:
		return Right
	default:
		return Stop
	}
}

// PointerMove 指针在列表内移动，x 为相对列表左边缘的偏移
func (r *Rail) PointerMove(x, width float64) Direction {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dir = DirectionAt(x, width)
	if r.dir != Stop && r.frame == 0 {
		r.scheduleLocked()
	}
	return r.dir
}

// PointerLeave 指针离开：停止并立即撤销待执行的帧
func (r *Rail) PointerLeave() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dir = Stop
	if r.frame != 0 {
		r.sched.CancelFrame(r.frame)
		r.frame = 0
	}
}

// Resize 设置可视宽度与内容宽度，位置会被收敛到新范围内
func (r *Rail) Resize(viewport, content float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.max = content - viewport
	if r.max < 0 {
		r.max = 0
	}
	r.bounded = true
	r.pos = r.clampLocked(r.pos)
}

// ScrollTo 直接设置位置
func (r *Rail) ScrollTo(pos float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pos = r.clampLocked(pos)
}

// Position 当前滚动位置
func (r *Rail) Position() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pos
}

// Direction 当前方向
func (r *Rail) Direction() Direction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dir
}

// Scheduled 是否有待执行的帧
func (r *Rail) Scheduled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame != 0
}

// Close 释放待执行的帧
func (r *Rail) Close() {
	r.PointerLeave()
}

func (r *Rail) scheduleLocked() {
	r.token++
	tok := r.token
	r.frame = r.sched.RequestFrame(func() { r.tick(tok) })
}

// tick 一帧：方向为 Stop 时结束本轮滚动，否则移动一步并登记下一帧
func (r *Rail) tick(tok uint64) {
	r.mu.Lock()
	// 已被撤销或被新的登记取代
	if tok != r.token || r.frame == 0 {
		r.mu.Unlock()
		return
	}
	if r.dir == Stop {
		r.frame = 0
		r.mu.Unlock()
		return
	}

	prev := r.pos
	r.pos = r.clampLocked(r.pos + float64(r.dir)*r.step)
	r.scheduleLocked()
	pos, moved := r.pos, r.pos != prev
	notify := r.onScroll
	r.mu.Unlock()

	if moved && notify != nil {
		notify(pos)
	}
}

func (r *Rail) clampLocked(pos float64) float64 {
	if pos < 0 {
		return 0
	}
	if r.bounded && pos > r.max {
		return r.max
	}
	return pos
}
