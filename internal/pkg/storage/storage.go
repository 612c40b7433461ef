package storage

import (
	"context"
	"io"
)

// FileStorage 媒体存储的抽象契约。
// 核心只持有不透明的 mediaID，不关心底层是本地盘还是对象存储。
type FileStorage interface {
	// Save 保存文件，返回 mediaID
	Save(ctx context.Context, reader io.Reader, size int64, contentType, ext string) (string, error)
	// Resolve 把 mediaID 换成可访问的 URL；文件不存在返回 ErrMediaNotFound
	Resolve(ctx context.Context, mediaID string) (string, error)
	// Delete 删除文件，幂等
	Delete(ctx context.Context, mediaID string) error
}
