package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jhoicas/Brewlog-api/internal/application/ports"
	"github.com/jhoicas/Brewlog-api/internal/domain"
	"github.com/jhoicas/Brewlog-api/pkg/config"
)

var _ ports.AttachmentStore = (*S3Store)(nil)

// objectAPI subconjunto del cliente S3 que usa el adaptador.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store guarda adjuntos en un bucket S3 (o compatible: MinIO, R2) y devuelve URLs públicas.
type S3Store struct {
	client   objectAPI
	bucket   string
	baseURL  string
	maxBytes int64
}

// NewS3Store construye el cliente a partir de la configuración. Sin access key usa la
// cadena de credenciales por defecto del SDK (env, perfil, rol de instancia).
func NewS3Store(ctx context.Context, cfg config.StorageConfig) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("cargar configuración AWS: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return newS3Store(client, cfg.Bucket, publicBaseURL(cfg), cfg.UploadMaxBytes), nil
}

func newS3Store(client objectAPI, bucket, baseURL string, maxBytes int64) *S3Store {
	return &S3Store{
		client:   client,
		bucket:   bucket,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
	}
}

// publicBaseURL S3_PUBLIC_BASE_URL si está definido; si no, la URL virtual-hosted del bucket.
func publicBaseURL(cfg config.StorageConfig) string {
	if cfg.PublicBaseURL != "" {
		return cfg.PublicBaseURL
	}
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

// Upload sube el archivo y devuelve su URL pública.
func (s *S3Store) Upload(ctx context.Context, folder, userID string, a ports.Attachment) (string, error) {
	if err := checkAttachment(a, s.maxBytes); err != nil {
		return "", err
	}
	key := objectKey(folder, userID, a)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(a.Data),
		ContentType:   aws.String(a.ContentType),
		ContentLength: aws.Int64(int64(len(a.Data))),
	})
	if err != nil {
		return "", fmt.Errorf("%w: subir %s: %v", domain.ErrStoreUnavailable, key, err)
	}
	return s.baseURL + "/" + key, nil
}

// Delete elimina el objeto referenciado por url. Las URLs de otro origen se ignoran.
func (s *S3Store) Delete(ctx context.Context, url string) error {
	key, ok := s.keyFromURL(url)
	if !ok {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: eliminar %s: %v", domain.ErrStoreUnavailable, key, err)
	}
	return nil
}

func (s *S3Store) keyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}
