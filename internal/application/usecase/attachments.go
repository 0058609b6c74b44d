package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/application/ports"
)

// attachmentFlow ordena subida y borrado de adjuntos alrededor de la escritura del registro:
// se sube primero, el objeto anterior se borra solo después de que la escritura tuvo éxito
// y un objeto recién subido se borra si la escritura falla.
type attachmentFlow struct {
	store ports.AttachmentStore
	log   zerolog.Logger
}

// upload sube in (si viene) y devuelve su URL; "" si no hay adjunto.
// Un error aquí aborta la mutación antes de tocar el registro.
func (f attachmentFlow) upload(ctx context.Context, folder, userID string, in *dto.AttachmentInput) (string, error) {
	if in == nil {
		return "", nil
	}
	att, err := in.Decode()
	if err != nil {
		return "", err
	}
	return f.store.Upload(ctx, folder, userID, att)
}

// release borra url sin propagar el error: el registro ya quedó consistente.
func (f attachmentFlow) release(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := f.store.Delete(context.WithoutCancel(ctx), url); err != nil {
		f.log.Warn().Err(err).Str("url", url).Msg("no se pudo eliminar el adjunto")
	}
}

// resolve calcula la URL final de un campo de imagen en un update.
// Devuelve la URL nueva, la recién subida (para revertir) y la anterior a liberar tras el éxito.
func (f attachmentFlow) resolve(ctx context.Context, folder, userID, current string, in *dto.AttachmentInput, remove bool) (next, uploaded, stale string, err error) {
	switch {
	case in != nil:
		uploaded, err = f.upload(ctx, folder, userID, in)
		if err != nil {
			return current, "", "", err
		}
		return uploaded, uploaded, current, nil
	case remove:
		return "", "", current, nil
	default:
		return current, "", "", nil
	}
}
