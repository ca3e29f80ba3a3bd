// Package fallback carries collaborator answers together with a marker telling whether
// the value is live data or a documented placeholder.
package fallback

// Result holds either live data or a fallback value substituted after a collaborator
// was unavailable or unconfigured.
type Result[T any] struct {
	Data     T      `json:"data"`
	Degraded bool   `json:"degraded"`
	Reason   string `json:"reason,omitempty"`
}

// Live wraps data obtained from a collaborator.
func Live[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

// Degrade wraps a placeholder value and the reason it was used.
func Degrade[T any](data T, reason string) Result[T] {
	if reason == "" {
		reason = "unavailable"
	}
	return Result[T]{Data: data, Degraded: true, Reason: reason}
}

// From returns Live(data) when err is nil and Degrade(placeholder, err) otherwise.
func From[T any](data T, err error, placeholder T) Result[T] {
	if err != nil {
		return Degrade(placeholder, err.Error())
	}
	return Live(data)
}
