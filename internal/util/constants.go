package util

const (
	DateFormat  = "2006-01-02"
	TimeFormat  = "2006-01-02 15:04:05"
	ClockFormat = "15:04"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeImage = "image/"
)

// AvatarSize is the edge length, in pixels, avatars are resized to.
const AvatarSize = 256

// MaxAvatarBytes bounds avatar uploads.
const MaxAvatarBytes = 5 << 20
