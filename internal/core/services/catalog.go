package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driven"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driving"
	"github.com/maktaba-labs/maktaba-cli/internal/core/query"
	"github.com/maktaba-labs/maktaba-cli/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService manages catalog entries.
type CatalogService struct {
	store driven.CatalogStore
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store driven.CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// Add registers a stored file under fileName.
// An empty fileReference gets a generated one.
func (s *CatalogService) Add(ctx context.Context, fileReference, fileName string) (*domain.CatalogEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("add entry: %w", domain.ErrStoreUnavailable)
	}

	fileName = strings.TrimSpace(fileName)
	fileReference = strings.TrimSpace(fileReference)
	if fileName == "" {
		return nil, fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}
	searchText := query.SearchNormalizer.Normalize(fileName)
	if searchText == "" {
		return nil, fmt.Errorf("%w: file name %q has no searchable text", domain.ErrInvalidInput, fileName)
	}
	if fileReference == "" {
		fileReference = uuid.NewString()
	}

	entry := &domain.CatalogEntry{
		FileReference: fileReference,
		FileName:      fileName,
	}
	if err := s.store.Add(ctx, entry, searchText); err != nil {
		return nil, fmt.Errorf("add entry: %w", err)
	}
	logger.Debug("Added catalog entry %d (%q -> %q)", entry.ID, fileName, searchText)
	return entry, nil
}

// Get retrieves an entry by ID.
func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.CatalogEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("get entry: %w", domain.ErrStoreUnavailable)
	}
	entry, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get entry %d: %w", id, err)
	}
	return entry, nil
}

// GetByReference retrieves an entry by file reference.
func (s *CatalogService) GetByReference(ctx context.Context, fileReference string) (*domain.CatalogEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("get entry: %w", domain.ErrStoreUnavailable)
	}
	fileReference = strings.TrimSpace(fileReference)
	if fileReference == "" {
		return nil, fmt.Errorf("%w: file reference is required", domain.ErrInvalidInput)
	}
	entry, err := s.store.GetByReference(ctx, fileReference)
	if err != nil {
		return nil, fmt.Errorf("get entry %q: %w", fileReference, err)
	}
	return entry, nil
}

// List returns a page of entries, newest first.
func (s *CatalogService) List(ctx context.Context, page, pageSize int) (domain.Page[domain.CatalogEntry], error) {
	if s.store == nil {
		return domain.Page[domain.CatalogEntry]{}, fmt.Errorf("list entries: %w", domain.ErrStoreUnavailable)
	}
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	if page < 0 {
		return domain.Page[domain.CatalogEntry]{}, domain.ErrInvalidNavigation
	}

	total, err := s.store.Count(ctx)
	if err != nil {
		return domain.Page[domain.CatalogEntry]{}, fmt.Errorf("count entries: %w", err)
	}
	if total > 0 && !domain.ValidPage(total, pageSize, page) {
		return domain.Page[domain.CatalogEntry]{}, domain.ErrInvalidNavigation
	}

	items, err := s.store.List(ctx, page*pageSize, pageSize)
	if err != nil {
		return domain.Page[domain.CatalogEntry]{}, fmt.Errorf("list entries: %w", err)
	}
	if items == nil {
		items = []domain.CatalogEntry{}
	}

	return domain.Page[domain.CatalogEntry]{
		Items:      items,
		Index:      page,
		TotalPages: domain.TotalPages(total, pageSize),
		Total:      total,
		HasPrev:    page > 0,
		HasNext:    (page+1)*pageSize < total,
	}, nil
}

// Remove deletes an entry.
func (s *CatalogService) Remove(ctx context.Context, id int64) error {
	if s.store == nil {
		return fmt.Errorf("remove entry: %w", domain.ErrStoreUnavailable)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove entry %d: %w", id, err)
	}
	return nil
}
