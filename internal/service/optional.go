package service

import (
	"encoding/json"
	"strings"
)

// Optional 区分 PATCH 请求体中的三种状态：字段缺失、显式 null、有值
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some 构造有值的 Optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null 构造显式 null 的 Optional
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Ptr null 时返回 nil
func (o Optional[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}

func setString(dst *string, o Optional[string]) {
	if !o.Set {
		return
	}
	if o.Null {
		*dst = ""
		return
	}
	*dst = strings.TrimSpace(o.Value)
}

func setPtr[T any](dst **T, o Optional[T]) {
	if o.Set {
		*dst = o.Ptr()
	}
}
