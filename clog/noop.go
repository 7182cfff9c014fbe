package clog

// noopConsole 是一个什么都不做的 Console 实现（内部使用）
type noopConsole struct{}

// Discard 创建一个静默的 Console 实例
//
// 返回的 Console 实现了 Console 接口，但所有方法体都是空操作。
func Discard() Console {
	return noopConsole{}
}

func (noopConsole) Log(string)   {}
func (noopConsole) Info(string)  {}
func (noopConsole) Warn(string)  {}
func (noopConsole) Error(string) {}
func (noopConsole) Debug(string) {}
func (noopConsole) Group(string) {}
func (noopConsole) GroupEnd()    {}
func (noopConsole) Close() error { return nil }
