package util

import (
	"io"
	"net/http"
)

// GetSafeContentType 按文件头嗅探内容类型，不信任客户端声明；读完后把 reader 重置回开头
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := reader.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}
