package catalog

import "context"

// Service is the storefront's read view of the catalog. Admin writes go
// straight to the Repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Browse(ctx context.Context, f Filter, sortBy string) ([]Product, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return Apply(products, f, sortBy), nil
}

// Product hides inactive products from visitors.
func (s *Service) Product(ctx context.Context, id string) (Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if !p.IsActive {
		return Product{}, ErrNotFound
	}
	return p, nil
}
