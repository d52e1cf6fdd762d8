package game

import "sort"

// FrameHandle 帧回调句柄，0 表示无效
type FrameHandle uint64

// IntervalHandle 定时回调句柄，0 表示无效
type IntervalHandle uint64

// Scheduler 单线程协作式调度器
//
// 提供两种回调：
//   - 帧回调（RequestFrame）：一次性，在下一次 Advance 时触发，需要在回调内重新请求以形成循环
//   - 定时回调（SetInterval）：按固定周期重复触发，直到 ClearInterval
//
// 时间只由 Advance 推进（ebiten 的 Update 或终端前端的主循环），
// 所有回调都在调用 Advance 的 goroutine 上依次执行，因此不需要锁。
type Scheduler struct {
	now        float64
	nextHandle uint64
	frames     map[FrameHandle]func(now float64)
	intervals  map[IntervalHandle]*interval
}

type interval struct {
	period float64
	due    float64
	fn     func()
}

// intervalEpsilon 吸收浮点累加误差（60 次 1/60 不一定精确等于 1）
const intervalEpsilon = 1e-9

// NewScheduler 创建调度器，时钟从 0 开始
func NewScheduler() *Scheduler {
	return &Scheduler{
		frames:    make(map[FrameHandle]func(now float64)),
		intervals: make(map[IntervalHandle]*interval),
	}
}

// Now 返回调度器当前时间（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// RequestFrame 请求在下一帧执行 fn
func (s *Scheduler) RequestFrame(fn func(now float64)) FrameHandle {
	s.nextHandle++
	h := FrameHandle(s.nextHandle)
	s.frames[h] = fn
	return h
}

// CancelFrame 取消尚未执行的帧回调，对无效或已执行的句柄无影响
func (s *Scheduler) CancelFrame(h FrameHandle) {
	delete(s.frames, h)
}

// SetInterval 每隔 period 秒执行一次 fn
// period 必须为正数，否则按 1 秒处理
func (s *Scheduler) SetInterval(period float64, fn func()) IntervalHandle {
	if period <= 0 {
		period = 1
	}
	s.nextHandle++
	h := IntervalHandle(s.nextHandle)
	s.intervals[h] = &interval{period: period, due: s.now + period, fn: fn}
	return h
}

// ClearInterval 取消定时回调，对无效句柄无影响
func (s *Scheduler) ClearInterval(h IntervalHandle) {
	delete(s.intervals, h)
}

// PendingFrames 返回等待执行的帧回调数量
func (s *Scheduler) PendingFrames() int {
	return len(s.frames)
}

// ActiveIntervals 返回活动的定时回调数量
func (s *Scheduler) ActiveIntervals() int {
	return len(s.intervals)
}

// Advance 推进时钟 dt 秒并执行到期的回调
//
// 先执行到期的定时回调（一次 Advance 跨越多个周期时会补齐多次），
// 再执行 Advance 开始前请求的帧回调；回调中新请求的帧留到下一次 Advance。
// 回调中取消的句柄立即生效。
func (s *Scheduler) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt

	// 只执行 Advance 开始前已经请求的帧
	frames := make([]FrameHandle, 0, len(s.frames))
	for h := range s.frames {
		frames = append(frames, h)
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i] < frames[j] })

	for _, h := range s.sortedIntervals() {
		for {
			iv, ok := s.intervals[h]
			if !ok || iv.due > s.now+intervalEpsilon {
				break
			}
			iv.due += iv.period
			iv.fn()
		}
	}

	for _, h := range frames {
		fn, ok := s.frames[h]
		if !ok {
			continue // 被之前的回调取消
		}
		delete(s.frames, h)
		fn(s.now)
	}
}

func (s *Scheduler) sortedIntervals() []IntervalHandle {
	handles := make([]IntervalHandle, 0, len(s.intervals))
	for h := range s.intervals {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	return handles
}
