package service

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/hashicorp/go-hclog"
)

// jsonField 取 JSON 对象中的某个字段，raw 不是对象或字段不存在时返回 nil
func jsonField(raw json.RawMessage, key string) json.RawMessage {
	fields, ok := objectFields(raw)
	if !ok {
		return nil
	}
	return fields[key]
}

// jsonPath 逐层取字段，任意一层缺失或不是对象都返回 nil
func jsonPath(raw json.RawMessage, keys ...string) json.RawMessage {
	for _, key := range keys {
		raw = jsonField(raw, key)
		if raw == nil {
			return nil
		}
	}
	return raw
}

func objectFields(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, false
	}
	return fields, true
}

// decodeInt 解码整数，null、缺失或类型不符都返回 0
func decodeInt(raw json.RawMessage) int {
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	return n
}

// decodeObject 解码单个对象，raw 不是对象时返回 nil
// 整体解码失败时逐字段解码：required 中的字段失败则整条视为缺失，其余失败字段保持零值
func decodeObject[T any](raw json.RawMessage, logger hclog.Logger, required ...string) *T {
	fields, ok := objectFields(raw)
	if !ok {
		return nil
	}
	var out T
	if err := json.Unmarshal(bytes.TrimSpace(raw), &out); err == nil {
		return &out
	}

	out = *new(T)
	for key, value := range fields {
		one, err := json.Marshal(map[string]json.RawMessage{key: value})
		if err != nil {
			continue
		}
		if err := json.Unmarshal(one, &out); err != nil {
			if slices.Contains(required, key) {
				logger.Debug("标识字段无法解析，按缺失处理", "field", key, "error", err)
				return nil
			}
			logger.Debug("字段类型不符，使用占位", "field", key, "error", err)
		}
	}
	return &out
}

// decodeList 解码列表，data 不是数组时返回空列表，无法解码的元素直接跳过
func decodeList[T any](raw json.RawMessage, logger hclog.Logger) []T {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []T{}
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return []T{}
	}
	out := make([]T, 0, len(elems))
	for i, elem := range elems {
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			logger.Debug("跳过无法解析的列表元素", "index", i, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}
