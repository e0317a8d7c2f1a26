package storage

import (
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const productsDir = "products"

var ErrInvalidExtension = fmt.Errorf("invalid file type, allowed: %s", strings.Join(constants.AllowedImageExtensions, ", "))

type IImageStorage interface {
	// SaveProductImage 以 <uuid>.<ext> 存檔並回傳檔名
	SaveProductImage(originalName string, r io.Reader) (string, error)
	// ListProductGallery 列出 img/products/product<id>/ 目錄下的圖片 url
	ListProductGallery(productID uint) ([]string, error)
	FileSystem() afero.Fs
}

// ImageStorage 所有路徑都相對於 media root
type ImageStorage struct {
	fs       afero.Fs
	mediaURL string
}

// NewImageStorage fs 通常為 afero.NewBasePathFs(afero.NewOsFs(), mediaRoot)
func NewImageStorage(fs afero.Fs, mediaURL string) *ImageStorage {
	return &ImageStorage{fs: fs, mediaURL: strings.TrimRight(mediaURL, "/")}
}

func NewOsImageStorage(mediaRoot, mediaURL string) *ImageStorage {
	return NewImageStorage(afero.NewBasePathFs(afero.NewOsFs(), mediaRoot), mediaURL)
}

func (s *ImageStorage) FileSystem() afero.Fs {
	return s.fs
}

// AllowedImageFile 副檔名不分大小寫
func AllowedImageFile(name string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return "", false
	}
	for _, allowed := range constants.AllowedImageExtensions {
		if ext == allowed {
			return ext, true
		}
	}
	return "", false
}

func (s *ImageStorage) SaveProductImage(originalName string, r io.Reader) (string, error) {
	ext, ok := AllowedImageFile(originalName)
	if !ok {
		return "", ErrInvalidExtension
	}
	if err := s.fs.MkdirAll(productsDir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s.%s", strings.ReplaceAll(uuid.NewString(), "-", ""), ext)
	f, err := s.fs.Create(path.Join(productsDir, filename))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return filename, nil
}

func (s *ImageStorage) ListProductGallery(productID uint) ([]string, error) {
	relDir := path.Join("img", "products", fmt.Sprintf("product%d", productID))

	exists, err := afero.DirExists(s.fs, relDir)
	if err != nil {
		return nil, err
	}
	urls := []string{}
	if !exists {
		return urls, nil
	}

	infos, err := afero.ReadDir(s.fs, relDir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		if _, ok := AllowedImageFile(info.Name()); ok {
			names = append(names, info.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		urls = append(urls, fmt.Sprintf("%s/%s/%s", s.mediaURL, relDir, name))
	}
	return urls, nil
}

var _ IImageStorage = (*ImageStorage)(nil)
