package consts

const (
	MimePrefixImage = "image"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)
