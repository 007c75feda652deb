package infrastructure

import (
	"fmt"
	"strings"
	"time"

	"github.com/DRSN-tech/hardware-catalog/pkg/e"
	"github.com/google/uuid"
)

// GetExtensionFromMIME возвращает расширение файла по MIME-типу изображения.
// Поддерживает jpeg, jpg, png, webp. Для прочих типов возвращает e.ErrInvalidImage.
func GetExtensionFromMIME(mime string) (string, error) {
	switch strings.ToLower(mime) {
	case "image/jpeg", "image/jpg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	default:
		return "bin", e.ErrInvalidImage
	}
}

// NewObjectKey генерирует имя объекта вида <unix-ms>_<token>.<ext>.
func NewObjectKey(now time.Time, ext string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%d_%s.%s", now.UnixMilli(), token, ext)
}
