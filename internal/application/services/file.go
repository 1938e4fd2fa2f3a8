package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"pdf-collab-api/internal/application/ports"
	domain "pdf-collab-api/internal/domain/file"
	"pdf-collab-api/internal/domain/user"
	"pdf-collab-api/internal/infrastructure/mq"
)

const (
	pdfMimeType    = "application/pdf"
	maxBaseNameLen = 100
)

var (
	ErrUnsupportedMediaType = errors.New("only PDF files are allowed")
	ErrFileNotFound         = errors.New("file not found")
	ErrNotFileOwner         = errors.New("not authorized to share this file")
	ErrShareWithOwner       = errors.New("cannot share a file with its owner")
	ErrNoFileAccess         = errors.New("no access to this file")

	windowsReserved = map[string]struct{}{
		"con": {}, "prn": {}, "aux": {}, "nul": {},
		"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {}, "com6": {}, "com7": {}, "com8": {}, "com9": {},
		"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {}, "lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
	}
	fileSafeRe    = regexp.MustCompile(`[^A-Za-z0-9\.\_\- ]+`)
	leadingDotsRe = regexp.MustCompile(`^\.+`)
)

type FileService struct {
	s3             ports.S3Client
	fileRepository domain.Repository
	userRepository user.Repository
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
}

func NewFileService(
	s3 ports.S3Client,
	fileRepository domain.Repository,
	userRepository user.Repository,
	mqPort ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.FileService {
	return &FileService{
		s3:             s3,
		fileRepository: fileRepository,
		userRepository: userRepository,
		mq:             mqPort,
		mCounter:       mCounter,
	}
}

func (fs *FileService) FindOwnedFiles(ctx context.Context, ownerUUID user.UUID) (domain.Files, error) {
	id, err := fs.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	return fs.fileRepository.FetchFilesByOwner(ctx, id)
}

// SearchOwnedFiles matches the owner's files whose original name contains
// query, case-insensitive. An empty query behaves like FindOwnedFiles.
func (fs *FileService) SearchOwnedFiles(ctx context.Context, ownerUUID user.UUID, query string) (domain.Files, error) {
	id, err := fs.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	return fs.fileRepository.SearchFilesByOwner(ctx, id, query)
}

func (fs *FileService) FindSharedWithMe(ctx context.Context, userUUID user.UUID) (domain.Files, error) {
	return fs.fileRepository.FetchFilesSharedWith(ctx, userUUID)
}

// UploadFile gates on the declared media type, streams the bytes to the
// object store and only then inserts the metadata row. A failed write
// therefore never leaves a record behind.
func (fs *FileService) UploadFile(
	ctx context.Context,
	ownerUUID user.UUID,
	in *multipart.FileHeader,
) (*domain.File, error) {
	if in.Header.Get("Content-Type") != pdfMimeType {
		return nil, ErrUnsupportedMediaType
	}

	id, err := fs.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	uf := fs.fillMetaData(in, ownerUUID)

	f, err := in.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err = fs.s3.PutObject(ctx, uf.StorageKey, uf.MimeType, f, in.Size); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	out, err := fs.fileRepository.CreateFile(ctx, id, uf)
	if err != nil {
		return nil, err
	}

	fs.mq.GetInputChan() <- mq.Event{
		Id:     uuid.New(),
		TS:     time.Now(),
		Action: mq.ActionFileUpload,
		UserID: ownerUUID.String(),
		Payload: map[string]string{
			"file_uuid": out.UUID.String(),
			"file_name": out.FileName,
		},
	}

	fs.mCounter.WithLabelValues("file_uploaded_total").Inc()

	return out, nil
}

// ShareFile grants target read access. Only the owner may share, the
// owner is never a member of its own share list, and repeating a share
// is a no-op returning the unchanged file.
func (fs *FileService) ShareFile(
	ctx context.Context,
	callerUUID user.UUID,
	fileUUID, target uuid.UUID,
) (*domain.File, error) {
	f, err := fs.fileRepository.FetchFileByUUID(ctx, fileUUID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFileNotFound
	}
	if f.OwnerUUID != callerUUID {
		return nil, ErrNotFileOwner
	}
	if target == f.OwnerUUID {
		return nil, ErrShareWithOwner
	}
	if f.SharedWithContains(target) {
		return f, nil
	}

	out, err := fs.fileRepository.AppendSharedUser(ctx, fileUUID, target)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrFileNotFound
	}

	fs.mq.GetInputChan() <- mq.Event{
		Id:     uuid.New(),
		TS:     time.Now(),
		Action: mq.ActionFileShare,
		UserID: callerUUID.String(),
		Payload: map[string]string{
			"file_uuid":   out.UUID.String(),
			"shared_with": target.String(),
		},
	}

	fs.mCounter.WithLabelValues("file_shared_total").Inc()

	return out, nil
}

// DownloadURL mints a fresh presigned link for the owner or a user the
// file was shared with.
func (fs *FileService) DownloadURL(
	ctx context.Context,
	callerUUID user.UUID,
	fileUUID uuid.UUID,
) (string, error) {
	f, err := fs.fileRepository.FetchFileByUUID(ctx, fileUUID)
	if err != nil {
		return "", err
	}
	if f == nil {
		return "", ErrFileNotFound
	}
	if f.OwnerUUID != callerUUID && !f.SharedWithContains(callerUUID) {
		return "", ErrNoFileAccess
	}

	return fs.s3.PresignDownloadURL(ctx, f.StorageKey)
}

func (fs *FileService) fillMetaData(in *multipart.FileHeader, ownerUUID user.UUID) *domain.File {
	uf := new(domain.File)

	safe := sanitizeFileName(in.Filename)
	uf.OriginalName = filepath.Base(strings.TrimSpace(in.Filename))
	uf.FileName = fmt.Sprintf("%d-%s", time.Now().UnixMilli(), safe)
	uf.MimeType = in.Header.Get("Content-Type")
	uf.SizeBytes = uint64(in.Size)
	uf.Bucket = fs.s3.GetBucket()
	uf.StorageKey = genStorageKey(uf.FileName, ownerUUID)
	uf.DownloadURL = fs.s3.GetPublicURL(uf.StorageKey)

	return uf
}

// genStorageKey: "uploads/YYYY/MM/DD/<useruuid>/<filename>.ext"
func genStorageKey(fileName string, ownerUUID user.UUID) string {
	clean := strings.TrimSpace(fileName)
	clean = strings.Map(func(r rune) rune {
		if r == '\x00' || r < 0x20 {
			return -1
		}
		return r
	}, clean)
	clean = leadingDotsRe.ReplaceAllString(clean, "")

	ext := strings.ToLower(filepath.Ext(clean))
	base := strings.TrimSuffix(clean, ext)

	base = fileSafeRe.ReplaceAllString(base, "-")
	base = strings.Trim(base, "- .")

	if len(base) > maxBaseNameLen {
		base = base[:maxBaseNameLen]
	}

	if base == "" {
		base = "file"
	}

	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if ext == "" {
		ext = ".pdf"
	}

	now := time.Now().UTC()
	return fmt.Sprintf(
		"uploads/%04d/%02d/%02d/%s/%s",
		now.Year(), int(now.Month()), now.Day(),
		strings.ToLower(strings.ReplaceAll(ownerUUID.String(), "-", "")),
		base+ext,
	)
}

// sanitizeFileName make file name ASCII standard
func sanitizeFileName(original string) string {
	if original == "" {
		return "file"
	}

	s := strings.TrimSpace(original)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)

	if s == "." || s == ".." || s == "" {
		return "file"
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	s, _, _ = transform.String(t, s)

	ext := strings.ToLower(path.Ext(s))
	base := strings.TrimSuffix(s, ext)

	//  [a-z0-9], '-' и '_', dot/space → '-'
	var b strings.Builder
	b.Grow(len(base))
	prevDash := false
	for _, r := range base {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevDash = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			prevDash = false
		case r == '-' || r == '_':
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		case r == '.' || unicode.IsSpace(r):
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		default:
		}
	}
	base = strings.Trim(b.String(), "-")

	if base == "" {
		base = "file"
	}
	if _, bad := windowsReserved[base]; bad {
		base = "_" + base
	}

	for utf8.RuneCountInString(base)+len(ext) > maxBaseNameLen {
		_, size := utf8.DecodeLastRuneInString(base)
		if size <= 0 || size > len(base) {
			break
		}
		base = base[:len(base)-size]
	}

	return base + ext
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
