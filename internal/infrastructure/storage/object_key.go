// Package storage implementa ports.AttachmentStore: bucket S3 (o compatible) y almacén en memoria.
package storage

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Brewlog-api/internal/application/ports"
	"github.com/jhoicas/Brewlog-api/internal/domain"
)

var allowedImages = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// objectKey "<folder>/<userID>/<uuid><ext>".
func objectKey(folder, userID string, a ports.Attachment) string {
	ext := strings.ToLower(path.Ext(a.Filename))
	if ext == "" {
		ext = allowedImages[a.ContentType]
	}
	return path.Join(folder, userID, uuid.New().String()+ext)
}

// checkAttachment rechaza archivos vacíos, demasiado grandes o que no son imagen.
func checkAttachment(a ports.Attachment, maxBytes int64) error {
	if len(a.Data) == 0 {
		return fmt.Errorf("%w: el archivo está vacío", domain.ErrValidation)
	}
	if maxBytes > 0 && int64(len(a.Data)) > maxBytes {
		return fmt.Errorf("%w: el archivo supera %d bytes", domain.ErrValidation, maxBytes)
	}
	if _, ok := allowedImages[a.ContentType]; !ok {
		return fmt.Errorf("%w: tipo de archivo no admitido (%s)", domain.ErrValidation, a.ContentType)
	}
	return nil
}
