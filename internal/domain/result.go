package domain

import "encoding/json"

// Result is the tagged envelope every store operation resolves to.
// Warning marks a degraded success; Error marks a failure.
type Result[T any] struct {
	Success bool
	Data    T
	Error   string
	Warning string
	Message string

	// Err keeps the classified cause for callers that branch on it.
	Err error
}

func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func OKWithMessage[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Data: data, Message: message}
}

func Degraded[T any](data T, warning string) Result[T] {
	return Result[T]{Success: true, Data: data, Warning: warning}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{Success: false, Error: err.Error(), Err: err}
}

// MapResult converts the payload of a successful result, keeping the tags.
func MapResult[T, U any](r Result[T], fn func(T) U) Result[U] {
	out := Result[U]{Success: r.Success, Error: r.Error, Warning: r.Warning, Message: r.Message, Err: r.Err}
	if r.Success {
		out.Data = fn(r.Data)
	}
	return out
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Warning string `json:"warning,omitempty"`
	Message string `json:"message,omitempty"`
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	e := envelope{Success: r.Success, Error: r.Error, Warning: r.Warning, Message: r.Message}
	if r.Success {
		e.Data = r.Data
	}
	return json.Marshal(e)
}
