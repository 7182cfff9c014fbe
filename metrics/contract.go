package metrics

const (
	// 常见的标签
	LabelScope     = "scope"
	LabelKey       = "key"
	LabelOperation = "operation"
	LabelOutcome   = "outcome"
)

const (
	// 常见的结果
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Outcome 根据错误返回结果标签值
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
