package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/openshelf/storefront/internal/domain"
	"github.com/openshelf/storefront/internal/store"
)

// mockPageStore implements domain.PageStore for testing.
type mockPageStore struct {
	pages    map[string]*domain.Page
	home     *domain.Page
	failWith error
}

func newMockPageStore() *mockPageStore {
	return &mockPageStore{pages: make(map[string]*domain.Page)}
}

func (m *mockPageStore) GetBySlug(ctx context.Context, slug string) (*domain.Page, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	p, ok := m.pages[slug]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p, nil
}

func (m *mockPageStore) GetHome(ctx context.Context) (*domain.Page, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if m.home == nil {
		return nil, store.ErrNotFound
	}
	return m.home, nil
}

func (m *mockPageStore) ListSummaries(ctx context.Context) ([]domain.PageSummary, error) {
	return nil, nil
}

func (m *mockPageStore) Create(ctx context.Context, p *domain.Page) error { return nil }

func TestPageService_GetOrdersSections(t *testing.T) {
	ms := newMockPageStore()
	lowID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	highID := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	// Store returns sections out of order, with a sort tie between two ids.
	ms.pages["home"] = &domain.Page{
		Slug: "home",
		Sections: []domain.Section{
			{ID: uuid.New(), Type: "rich_text", Sort: 5},
			{ID: highID, Type: "product_grid", Sort: 1},
			{ID: lowID, Type: "hero", Sort: 1},
		},
	}

	s := NewPageService(ms)
	p, err := s.Get(context.Background(), "home")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(p.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(p.Sections))
	}
	if p.Sections[0].ID != lowID {
		t.Fatal("sort tie must break by ascending id")
	}
	if p.Sections[1].ID != highID {
		t.Fatal("expected the higher id second within the tie")
	}
	if p.Sections[2].Type != "rich_text" {
		t.Fatal("expected highest sort last")
	}

	// Deterministic: a second read yields the identical ordering.
	again, err := s.Get(context.Background(), "home")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for i := range p.Sections {
		if p.Sections[i].ID != again.Sections[i].ID {
			t.Fatal("repeated reads must yield identical ordering")
		}
	}
}

func TestPageService_GetNotFound(t *testing.T) {
	s := NewPageService(newMockPageStore())

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestPageService_DataErrorNotRemapped(t *testing.T) {
	ms := newMockPageStore()
	boom := errors.New("connection reset")
	ms.failWith = boom

	s := NewPageService(ms)
	_, err := s.Get(context.Background(), "home")
	if !errors.Is(err, boom) {
		t.Fatalf("expected raw data error, got %v", err)
	}
	if errors.Is(err, ErrPageNotFound) {
		t.Fatal("data error must stay distinguishable from absence")
	}
}

func TestPageService_HomeNotFound(t *testing.T) {
	s := NewPageService(newMockPageStore())

	_, err := s.Home(context.Background())
	if !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}
