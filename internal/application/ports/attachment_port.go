package ports

import "context"

// Carpetas de adjuntos, una por tipo de imagen.
const (
	FolderBrewImages    = "brew-images"
	FolderBrewers       = "brewers"
	FolderRoasteryLogos = "roastery-logos"
	FolderAvatars       = "avatars"
)

// Attachment archivo binario recibido en un formulario.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AttachmentStore almacén de objetos para imágenes (bucket S3 o memoria).
type AttachmentStore interface {
	// Upload guarda el archivo bajo folder/userID y devuelve su URL pública.
	Upload(ctx context.Context, folder, userID string, a Attachment) (string, error)
	// Delete elimina el objeto referenciado por url. Una url ajena al almacén se ignora.
	Delete(ctx context.Context, url string) error
}
