package clog

import "sync"

// EntryKind 区分 Recorder 捕获的记录类型
type EntryKind int

const (
	KindMessage    EntryKind = iota // 通道输出
	KindGroupStart                  // Group 调用
	KindGroupEnd                    // GroupEnd 调用
)

// Entry Recorder 捕获的一条记录
//
// Depth 是记录发生时所处的分组深度；GroupStart 记录的是开启前的深度。
type Entry struct {
	Kind    EntryKind
	Channel Channel
	Message string
	Depth   int
}

// Recorder 把所有输出保存在内存中的 Console 实现，用于测试断言
//
// 示例：
//
//	rec := clog.NewRecorder()
//	facade, _ := dlog.NewApp(dlog.WithConsole(rec))
//	facade.Info("ready")
//	rec.Messages(clog.InfoChannel) // ["[StardynApp v1.0.0] ready"]
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
	depth   int
	hook    func(Entry)
}

// NewRecorder 创建一个空的 Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Log(msg string)   { r.record(KindMessage, LogChannel, msg) }
func (r *Recorder) Info(msg string)  { r.record(KindMessage, InfoChannel, msg) }
func (r *Recorder) Warn(msg string)  { r.record(KindMessage, WarnChannel, msg) }
func (r *Recorder) Error(msg string) { r.record(KindMessage, ErrorChannel, msg) }
func (r *Recorder) Debug(msg string) { r.record(KindMessage, DebugChannel, msg) }

func (r *Recorder) Group(label string) { r.record(KindGroupStart, LogChannel, label) }
func (r *Recorder) GroupEnd()          { r.record(KindGroupEnd, LogChannel, "") }

// Close 没有需要释放的资源，记录的内容仍然可以读取
func (r *Recorder) Close() error { return nil }

// OnEntry 注册一个在每条记录写入后同步调用的钩子，传 nil 取消
//
// 钩子在调用方的 goroutine 中执行，可用于观察输出发生那一刻的外部状态。
func (r *Recorder) OnEntry(fn func(Entry)) {
	r.mu.Lock()
	r.hook = fn
	r.mu.Unlock()
}

func (r *Recorder) record(kind EntryKind, ch Channel, msg string) {
	r.mu.Lock()
	e := Entry{Kind: kind, Channel: ch, Message: msg, Depth: r.depth}
	switch kind {
	case KindGroupStart:
		r.depth++
	case KindGroupEnd:
		if r.depth > 0 {
			r.depth--
		}
		e.Depth = r.depth
	}
	r.entries = append(r.entries, e)
	hook := r.hook
	r.mu.Unlock()

	if hook != nil {
		hook(e)
	}
}

// Entries 返回所有记录的副本
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages 返回指定通道上的所有消息，不包含分组记录
func (r *Recorder) Messages(ch Channel) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		if e.Kind == KindMessage && e.Channel == ch {
			out = append(out, e.Message)
		}
	}
	return out
}

// Len 返回记录总数（包含分组记录）
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Depth 返回当前分组深度
func (r *Recorder) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.depth
}

// Reset 清空所有记录和分组深度
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.depth = 0
}
