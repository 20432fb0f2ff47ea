package http

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
)

// MaxImageSize tamaño máximo aceptado para imágenes de producto (5 MB).
const MaxImageSize = 5 * 1024 * 1024

// Extensiones de imagen aceptadas.
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// EnsureUploadDirs crea (idempotente) los directorios de subida antes de
// arrancar el servidor.
func EnsureUploadDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("crear directorio de subida %s: %w", dir, err)
		}
	}
	return nil
}

// validateImageUpload verifica extensión y tamaño del archivo subido.
// Devuelve la extensión en minúsculas.
func validateImageUpload(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", domain.ErrInvalidInput
	}
	if file.Size > MaxImageSize {
		return "", domain.ErrInvalidInput
	}
	return ext, nil
}

// imageFilename nombre único para la imagen subida (timestamp en nanos).
func imageFilename(ext string) string {
	return fmt.Sprintf("product-%d%s", time.Now().UnixNano(), ext)
}
