package brand

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Service defines brand registry business logic.
type Service interface {
	RegisterBrand(ctx context.Context, req RegisterBrandRequest) (*Brand, error)
	GetBrand(ctx context.Context, id string) (*Brand, error)
	GetBrandBySlug(ctx context.Context, slug string) (*Brand, error)
	ListBrands(ctx context.Context) ([]*Brand, error)
}

type service struct{ repo Repository }

// NewService creates a new brand service.
func NewService(repo Repository) Service { return &service{repo: repo} }

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func (s *service) RegisterBrand(ctx context.Context, req RegisterBrandRequest) (*Brand, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if slug == "" {
		return nil, fmt.Errorf("slug is required")
	}
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("invalid slug %q: lowercase letters, digits, and hyphens only", slug)
	}
	if existing, err := s.repo.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, fmt.Errorf("slug %q is already registered", slug)
	}

	b := &Brand{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Slug:         slug,
		CustomDomain: strings.TrimSpace(req.CustomDomain),
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to persist brand: %w", err)
	}
	return b, nil
}

func (s *service) GetBrand(ctx context.Context, id string) (*Brand, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBrandBySlug(ctx context.Context, slug string) (*Brand, error) {
	return s.repo.GetBySlug(ctx, strings.ToLower(slug))
}

func (s *service) ListBrands(ctx context.Context) ([]*Brand, error) {
	return s.repo.List(ctx)
}
