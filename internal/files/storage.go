package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrFileTooLarge    = errors.New("dosya boyutu limiti aşıyor")
	ErrForbiddenType   = errors.New("dosya türüne izin verilmiyor")
	ErrOutsideRoot     = errors.New("dosya yolu depolama dizini dışında")
	ErrEmptyPath       = errors.New("dosya yolu boş")
	ErrInvalidFileName = errors.New("geçersiz dosya adı")
)

// Sunucuda çalıştırılabilecek veya tarayıcıda script olarak yorumlanacak
// uzantılar. Ana dosyalar için sadece bunlar engellenir, gerisi serbest.
var dangerousExtensions = map[string]bool{
	"php": true, "phtml": true, "php3": true, "php4": true, "php5": true,
	"cgi": true, "pl": true, "asp": true, "aspx": true, "jsp": true,
	"htm": true, "html": true, "js": true, "exe": true, "msi": true,
	"com": true, "scr": true, "bat": true, "cmd": true, "sh": true,
	"vbs": true, "wsf": true,
}

// Küçük resimler sadece görüntü olabilir
var thumbnailExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true,
}

// Storage: Sipariş dosyalarını diskte order-<id>/ alt dizinlerinde tutar.
// Veritabanında sadece köke göre relative yol saklanır; kök taşınırsa
// kayıtlar bozulmaz.
type Storage struct {
	root    string
	maxSize int64
}

func NewStorage(root string, maxSizeMB int) *Storage {
	return &Storage{
		root:    root,
		maxSize: int64(maxSizeMB) * 1024 * 1024,
	}
}

func (s *Storage) MaxSize() int64 {
	return s.maxSize
}

func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// sanitizeFileName: Dosya adını güvenli karakterlere indirger.
// Yol ayracı, kontrol karakteri ve benzeri her şey alt çizgi olur.
func sanitizeFileName(name string) string {
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), "._")
	return cleaned
}

// Prepare: Yüklenecek dosya için relative ve absolute yolu üretir,
// boyut ve uzantı kontrollerini yapar, sipariş dizinini açar.
// Ad çakışmasın diye her dosya uuid son eki alır.
func (s *Storage) Prepare(orderID uint, originalName string, size int64, thumbnail bool) (string, string, error) {
	if s.maxSize > 0 && size > s.maxSize {
		return "", "", fmt.Errorf("%w: %d bayt", ErrFileTooLarge, size)
	}

	ext := extension(originalName)
	if thumbnail {
		if !thumbnailExtensions[ext] {
			return "", "", fmt.Errorf("%w: küçük resim görüntü olmalı (.%s)", ErrForbiddenType, ext)
		}
	} else if dangerousExtensions[ext] {
		return "", "", fmt.Errorf("%w: .%s", ErrForbiddenType, ext)
	}

	name := sanitizeFileName(originalName)
	if name == "" {
		if ext == "" {
			return "", "", ErrInvalidFileName
		}
		name = "dosya." + ext
	}

	suffix := uuid.NewString()[:8]
	base := strings.TrimSuffix(name, filepath.Ext(name))
	stored := base + "_" + suffix
	if e := filepath.Ext(name); e != "" {
		stored += e
	}
	if thumbnail {
		stored = "thumb_" + stored
	}

	orderDir := fmt.Sprintf("order-%d", orderID)
	if err := os.MkdirAll(filepath.Join(s.root, orderDir), 0o755); err != nil {
		return "", "", fmt.Errorf("sipariş dizini oluşturulamadı: %w", err)
	}

	rel := filepath.Join(orderDir, stored)
	return rel, filepath.Join(s.root, rel), nil
}

// Resolve: Relative yolu absolute yola çevirir. Kök dizin dışına çıkan
// yollar (".." vb.) reddedilir.
func (s *Storage) Resolve(relPath string) (string, error) {
	if relPath == "" {
		return "", ErrEmptyPath
	}

	abs := filepath.Join(s.root, relPath)

	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	fileAbs, err := filepath.Abs(abs)
	if err != nil {
		return "", err
	}

	if fileAbs != rootAbs && !strings.HasPrefix(fileAbs, rootAbs+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, relPath)
	}
	return fileAbs, nil
}

// Delete: Fiziksel dosyayı siler. Dosya zaten yoksa başarı sayılır;
// kayıt silme akışı yarıda kalmasın.
func (s *Storage) Delete(relPath string) error {
	abs, err := s.Resolve(relPath)
	if err != nil {
		return err
	}

	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
