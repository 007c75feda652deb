package domain

import "strings"

// Image описывает изображение, которое хранится в S3
type Image struct {
	ObjectKey   string // имя объекта в бакете, генерируется вызывающей стороной
	Bytes       []byte
	Size        int64
	ContentType string // Example: "image/png"
}

func NewImage(objectKey string, data []byte, size int64, contentType string) *Image {
	return &Image{
		ObjectKey:   objectKey,
		Bytes:       data,
		Size:        size,
		ContentType: contentType,
	}
}

// ObjectKeyFromURL возвращает последний сегмент пути URL, он же имя объекта в хранилище.
func ObjectKeyFromURL(url string) string {
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		return url[i+1:]
	}

	return url
}
