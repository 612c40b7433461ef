package util

import "strings"

// NormalizeCity 城市名归一化：去首尾空格、压缩连续空白、统一小写。
// 订阅匹配按归一化后的值做等值比较，写入时即归一化。
func NormalizeCity(city string) string {
	city = strings.TrimSpace(city)
	city = strings.Join(strings.Fields(city), " ")
	return strings.ToLower(city)
}
