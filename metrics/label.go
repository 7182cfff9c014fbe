package metrics

// Label 指标的一个维度
//
// 标签值应当低基数：作用域名、操作名、结果，而不是请求 ID。
type Label struct {
	Key   string
	Value string
}

// L 创建 Label
func L(key, value string) Label {
	return Label{Key: key, Value: value}
}
