package service

import (
	"bytes"
	"context"
	"errors"
	"sort"

	"github.com/openshelf/storefront/internal/domain"
	"github.com/openshelf/storefront/internal/store"
)

var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrPageNotFound   = errors.New("page not found")
)

type PageService struct {
	pages domain.PageStore
}

func NewPageService(pages domain.PageStore) *PageService {
	return &PageService{pages: pages}
}

func (s *PageService) Get(ctx context.Context, slug string) (*domain.Page, error) {
	p, err := s.pages.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	orderSections(p.Sections)
	return p, nil
}

func (s *PageService) Home(ctx context.Context) (*domain.Page, error) {
	p, err := s.pages.GetHome(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	orderSections(p.Sections)
	return p, nil
}

func (s *PageService) List(ctx context.Context) ([]domain.PageSummary, error) {
	return s.pages.ListSummaries(ctx)
}

// orderSections enforces the total section order (sort ascending, id
// ascending on ties) regardless of what the store returned. The comparison
// is a strict total order, so repeated reads yield identical sequences.
func orderSections(sections []domain.Section) {
	sort.Slice(sections, func(i, j int) bool {
		if sections[i].Sort != sections[j].Sort {
			return sections[i].Sort < sections[j].Sort
		}
		return bytes.Compare(sections[i].ID[:], sections[j].ID[:]) < 0
	})
}
