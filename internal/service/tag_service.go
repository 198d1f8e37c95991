package service

import (
	"context"
	"strings"
	"time"

	"notetaking-be/internal/repository/specification"
	"notetaking-be/internal/repository/unitofwork"

	"github.com/patrickmn/go-cache"
)

type ITagService interface {
	List(ctx context.Context, search string) ([]string, error)
	FlushCache()
}

// tagService serves the global tag listing. The listing is read-heavy and
// tolerates short staleness, so results are cached per search key and flushed
// when a note creates tags.
type tagService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
}

func NewTagService(uowFactory unitofwork.RepositoryFactory) ITagService {
	return &tagService{
		uowFactory: uowFactory,
		cache:      cache.New(1*time.Minute, 5*time.Minute),
	}
}

func (s *tagService) List(ctx context.Context, search string) ([]string, error) {
	key := "tags:" + strings.ToLower(strings.TrimSpace(search))
	if cached, found := s.cache.Get(key); found {
		return cached.([]string), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "name"},
	}
	if strings.TrimSpace(search) != "" {
		specs = append(specs, specification.TagNameContains{Search: search})
	}

	tags, err := uow.TagRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}

	s.cache.Set(key, names, cache.DefaultExpiration)
	return names, nil
}

func (s *tagService) FlushCache() {
	s.cache.Flush()
}
