package util

import (
	"strconv"
)

// StrSliceToUInt64Slice 字符串切片转 uint64 切片，遇到非法值直接报错
func StrSliceToUInt64Slice(strs []string) ([]uint64, error) {
	out := make([]uint64, 0, len(strs))
	for _, s := range strs {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
