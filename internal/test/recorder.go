package test

import (
	"encoding/json"
	"net/http/httptest"
)

// JSONResponseRecorder 可以按目标类型解析 JSON 响应体
type JSONResponseRecorder[T any] struct {
	*httptest.ResponseRecorder
}

func NewJSONResponseRecorder[T any]() *JSONResponseRecorder[T] {
	return &JSONResponseRecorder[T]{
		ResponseRecorder: httptest.NewRecorder(),
	}
}

func (r *JSONResponseRecorder[T]) Scan() (Result[T], error) {
	var res Result[T]
	err := json.NewDecoder(r.Body).Decode(&res)
	return res, err
}

// MustScan 解析失败时返回零值，断言交给调用方
func (r *JSONResponseRecorder[T]) MustScan() Result[T] {
	res, _ := r.Scan()
	return res
}
