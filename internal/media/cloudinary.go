package media

import (
	"context"
	"fmt"
	"io"

	"unilodge-backend/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Store wraps the Cloudinary uploader. Uploaded image URLs are treated as
// opaque strings everywhere else in the system.
type Store struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewStore(cfg *config.Config) (*Store, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &Store{cld: cld, folder: cfg.CloudinaryFolder}, nil
}

func (s *Store) UploadImage(ctx context.Context, file io.Reader, filename string) (url, publicID string, err error) {
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: s.folder})
	if err != nil {
		return "", "", fmt.Errorf("upload %s: %w", filename, err)
	}
	return res.SecureURL, res.PublicID, nil
}

func (s *Store) Delete(ctx context.Context, publicID string) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("destroy %s: %w", publicID, err)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("destroy %s: %s", publicID, res.Result)
	}
	return nil
}
