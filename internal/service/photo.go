package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"time"

	"palcolivre/api/internal/ids"
	"palcolivre/api/internal/media/sniffer"
	"palcolivre/api/internal/models"
)

type PhotoUpload struct {
	File   multipart.File
	Header *multipart.FileHeader
}

type PhotoService interface {
	// SetProfilePhoto stores the image and makes it the user's principal
	// photo, demoting any previous one. Returns the public URL.
	SetProfilePhoto(ctx context.Context, userID string, upload PhotoUpload) (string, error)
	// ProfilePhotoURL returns nil when the user has no photo.
	ProfilePhotoURL(ctx context.Context, userID string) (*string, error)
	SetInstrumentPhoto(ctx context.Context, instrumentID string, upload PhotoUpload) (string, error)
	// URL maps a stored object key to its public address.
	URL(objectKey string) string
}

type photoService struct {
	photos      PhotoStore
	instruments InstrumentStore
	blobs       BlobStore
}

func NewPhotoService(photos PhotoStore, instruments InstrumentStore, blobs BlobStore) PhotoService {
	return &photoService{
		photos:      photos,
		instruments: instruments,
		blobs:       blobs,
	}
}

func (s *photoService) SetProfilePhoto(ctx context.Context, userID string, upload PhotoUpload) (string, error) {
	photo := models.Photo{
		ID:     ids.New(),
		UserID: &userID,
	}
	return s.store(ctx, photo, upload)
}

func (s *photoService) SetInstrumentPhoto(ctx context.Context, instrumentID string, upload PhotoUpload) (string, error) {
	if _, err := s.instruments.GetByID(ctx, instrumentID); err != nil {
		return "", err
	}

	photo := models.Photo{
		ID:           ids.New(),
		InstrumentID: &instrumentID,
	}
	return s.store(ctx, photo, upload)
}

func (s *photoService) ProfilePhotoURL(ctx context.Context, userID string) (*string, error) {
	photo, err := s.photos.PrincipalForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	url := s.blobs.URL(photo.ObjectKey)
	return &url, nil
}

func (s *photoService) URL(objectKey string) string {
	return s.blobs.URL(objectKey)
}

func (s *photoService) store(ctx context.Context, photo models.Photo, upload PhotoUpload) (string, error) {
	if upload.File == nil || upload.Header == nil {
		return "", ValidationError("arquivo de foto é obrigatório")
	}

	data, err := io.ReadAll(upload.File)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return "", ValidationError("arquivo vazio")
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	result, err := sniffer.DetectHead(head)
	if err != nil {
		return "", ValidationError("formato de imagem não suportado")
	}

	declared := sniffer.MimeTypeFromHTTP(http.Header(upload.Header.Header))
	if declared != "" && declared != result.MIME {
		return "", ValidationError(fmt.Sprintf("tipo declarado %s não corresponde ao conteúdo %s", declared, result.MIME))
	}

	photo.ObjectKey = buildObjectKey(photo.ID, string(result.Type))
	if err := s.blobs.Put(ctx, photo.ObjectKey, result.MIME, data); err != nil {
		return "", err
	}

	if err := s.photos.SetPrincipal(ctx, photo); err != nil {
		return "", err
	}

	return s.blobs.URL(photo.ObjectKey), nil
}

func buildObjectKey(photoID string, ext string) string {
	datePrefix := time.Now().UTC().Format("2006/01/02")
	return path.Join(datePrefix, fmt.Sprintf("%s.%s", photoID, ext))
}
