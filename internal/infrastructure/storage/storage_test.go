package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Brewlog-api/internal/application/ports"
	"github.com/jhoicas/Brewlog-api/internal/domain"
	"github.com/jhoicas/Brewlog-api/pkg/config"
)

type fakeS3 struct {
	puts    map[string][]byte
	deletes []string
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.puts[aws.ToString(in.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deletes = append(f.deletes, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

var png = ports.Attachment{Filename: "v60.PNG", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}

func TestS3Store_UploadYDelete(t *testing.T) {
	fake := &fakeS3{puts: map[string][]byte{}}
	s := newS3Store(fake, "brewlog", "https://cdn.example.com/", 1024)

	url, err := s.Upload(context.Background(), ports.FolderBrewers, "u1", png)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/brewers/u1/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	require.Len(t, fake.puts, 1)

	require.NoError(t, s.Delete(context.Background(), url))
	require.Len(t, fake.deletes, 1)
	assert.Equal(t, strings.TrimPrefix(url, "https://cdn.example.com/"), fake.deletes[0])
}

func TestS3Store_URLAjenaSeIgnora(t *testing.T) {
	fake := &fakeS3{puts: map[string][]byte{}}
	s := newS3Store(fake, "brewlog", "https://cdn.example.com", 0)
	require.NoError(t, s.Delete(context.Background(), "https://otro.example.com/a.png"))
	assert.Empty(t, fake.deletes)
}

func TestS3Store_FalloDeRedEsStoreUnavailable(t *testing.T) {
	fake := &fakeS3{puts: map[string][]byte{}, err: errors.New("dial tcp: connection refused")}
	s := newS3Store(fake, "brewlog", "https://cdn.example.com", 0)
	_, err := s.Upload(context.Background(), ports.FolderAvatars, "u1", png)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestCheckAttachment(t *testing.T) {
	assert.ErrorIs(t, checkAttachment(ports.Attachment{ContentType: "image/png"}, 0), domain.ErrValidation)
	assert.ErrorIs(t, checkAttachment(png, 2), domain.ErrValidation)
	assert.ErrorIs(t, checkAttachment(ports.Attachment{ContentType: "application/pdf", Data: []byte("x")}, 0), domain.ErrValidation)
	assert.NoError(t, checkAttachment(png, 0))
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://b.s3.us-east-1.amazonaws.com", publicBaseURL(config.StorageConfig{Bucket: "b", Region: "us-east-1"}))
	assert.Equal(t, "http://localhost:9000/b", publicBaseURL(config.StorageConfig{Bucket: "b", Endpoint: "http://localhost:9000/"}))
	assert.Equal(t, "https://cdn.x", publicBaseURL(config.StorageConfig{Bucket: "b", PublicBaseURL: "https://cdn.x"}))
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore(0)
	url, err := m.Upload(context.Background(), ports.FolderBrewImages, "u1", png)
	require.NoError(t, err)
	assert.True(t, m.Has(url))

	require.NoError(t, m.Delete(context.Background(), url))
	assert.False(t, m.Has(url))

	m.FailUploads(errors.New("bucket caído"))
	_, err = m.Upload(context.Background(), ports.FolderBrewImages, "u1", png)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
