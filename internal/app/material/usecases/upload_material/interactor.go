package upload_material

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/clock"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/logger"
)

// Request contains the upload form.
type Request struct {
	Caller      domain.Caller
	Title       string
	Description string
	CategoryID  string
	Tags        []string
	License     string

	FileName    string
	ContentType string
	Data        []byte
}

// Policy bounds accepted files.
type Policy struct {
	MaxBytes     int64
	AllowedTypes []string
}

// Result identifies the stored material.
type Result struct {
	MaterialID string `json:"materialId"`
	ImageURL   string `json:"imageUrl"`
	ThumbURL   string `json:"thumbUrl"`
	Status     string `json:"status"`
}

// Interactor handles the upload material use case.
type Interactor struct {
	repo        contracts.MaterialRepository
	users       contracts.UserStore
	categories  contracts.CategoryStore
	blobs       contracts.BlobStorage
	thumbnailer contracts.Thumbnailer
	policy      Policy
	clock       clock.Clock
	logger      *logger.Logger
}

// NewInteractor creates a new upload material interactor.
func NewInteractor(
	repo contracts.MaterialRepository,
	users contracts.UserStore,
	categories contracts.CategoryStore,
	blobs contracts.BlobStorage,
	thumbnailer contracts.Thumbnailer,
	policy Policy,
	clk clock.Clock,
	log *logger.Logger,
) *Interactor {
	return &Interactor{
		repo:        repo,
		users:       users,
		categories:  categories,
		blobs:       blobs,
		thumbnailer: thumbnailer,
		policy:      policy,
		clock:       clk,
		logger:      log.With("component", "upload_material"),
	}
}

// Execute stores the file and its thumbnail and persists a PENDING material.
// Owner and category are resolved before anything is written.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	// 1. Require an identity
	if !req.Caller.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}

	// 2. Validate request
	ext, contentType, err := i.validate(req)
	if err != nil {
		return nil, err
	}

	// 3. Resolve owner and category
	owner, err := i.users.FindByUsername(ctx, req.Caller.Username)
	if err != nil {
		return nil, err
	}
	if owner.IsBlocked() {
		return nil, domain.ErrAccountBlocked
	}
	if _, err := i.categories.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	// 4. Store the file and its thumbnail
	materialID := uuid.New().String()
	now := i.clock.Now()
	prefix := fmt.Sprintf("materials/%s/%s", now.Format("2006/01"), materialID)

	imageURL, err := i.blobs.Store(ctx, prefix+ext, contentType, req.Data)
	if err != nil {
		return nil, wrapBlob(err)
	}
	thumbURL := i.storeThumbnail(ctx, prefix, req.Data, imageURL)

	// 5. Create domain aggregate
	material, err := domain.NewMaterial(domain.NewMaterialParams{
		ID:          materialID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    imageURL,
		ThumbURL:    thumbURL,
		CategoryID:  req.CategoryID,
		OwnerID:     owner.ID,
		Tags:        req.Tags,
		License:     req.License,
	}, now)
	if err != nil {
		i.discard(ctx, imageURL, thumbURL)
		return nil, err
	}

	// 6. Persist with outbox events
	events, err := contracts.EnrichEvents(material.DomainEvents())
	if err != nil {
		i.discard(ctx, imageURL, thumbURL)
		return nil, err
	}
	if err := i.repo.Create(ctx, material, events); err != nil {
		i.discard(ctx, imageURL, thumbURL)
		return nil, fmt.Errorf("failed to create material: %w", err)
	}
	material.ClearEvents()

	i.logger.Info("material uploaded", "material_id", material.ID(), "owner_id", owner.ID, "bytes", len(req.Data))

	return &Result{
		MaterialID: material.ID(),
		ImageURL:   material.ImageURL(),
		ThumbURL:   material.ThumbURL(),
		Status:     string(material.Status()),
	}, nil
}

// validate checks the form fields and the file. It returns the file
// extension and the effective content type.
func (i *Interactor) validate(req *Request) (string, string, error) {
	if err := domain.ValidateTitle(req.Title); err != nil {
		return "", "", err
	}
	if err := domain.ValidateDescription(req.Description); err != nil {
		return "", "", err
	}
	if strings.TrimSpace(req.CategoryID) == "" {
		return "", "", domain.ErrMissingCategory
	}
	if _, err := domain.NormalizeTags(req.Tags); err != nil {
		return "", "", err
	}

	if len(req.Data) == 0 {
		return "", "", domain.ErrEmptyFile
	}
	if i.policy.MaxBytes > 0 && int64(len(req.Data)) > i.policy.MaxBytes {
		return "", "", domain.ErrFileTooLarge
	}

	name := path.Base(strings.ReplaceAll(req.FileName, "\\", "/"))
	ext := strings.ToLower(path.Ext(name))
	if name == "." || name == "/" || ext == "" || ext == name {
		return "", "", domain.ErrInvalidFileName
	}

	// The declared type must be allowed and agree with the file content.
	declared := strings.ToLower(strings.TrimSpace(strings.Split(req.ContentType, ";")[0]))
	sniffed := http.DetectContentType(req.Data)
	if !i.allowed(declared) || !i.allowed(sniffed) {
		return "", "", domain.ErrUnsupportedType
	}
	return ext, sniffed, nil
}

func (i *Interactor) allowed(contentType string) bool {
	for _, t := range i.policy.AllowedTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}

// storeThumbnail falls back to the image itself when no thumbnail can be made.
func (i *Interactor) storeThumbnail(ctx context.Context, prefix string, data []byte, imageURL string) string {
	thumb, contentType, err := i.thumbnailer.CreateThumbnail(data)
	if err != nil {
		i.logger.Warn("thumbnail generation failed", "key", prefix, "error", err)
		return imageURL
	}
	url, err := i.blobs.Store(ctx, prefix+"_thumb.jpg", contentType, thumb)
	if err != nil {
		i.logger.Warn("thumbnail upload failed", "key", prefix, "error", err)
		return imageURL
	}
	return url
}

func (i *Interactor) discard(ctx context.Context, urls ...string) {
	seen := map[string]bool{}
	for _, url := range urls {
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		if err := i.blobs.Remove(ctx, url); err != nil {
			i.logger.Warn("blob cleanup failed", "url", url, "error", err)
		}
	}
}

func wrapBlob(err error) error {
	if errors.Is(err, contracts.ErrBlobStorage) {
		return err
	}
	return fmt.Errorf("%w: %v", contracts.ErrBlobStorage, err)
}
