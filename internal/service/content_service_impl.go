package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/psyche/internal/db"
	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/alexanderramin/psyche/internal/repository"
)

type contentService struct {
	content  repository.ContentRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

// NewContentService creates a new ContentService.
func NewContentService(content repository.ContentRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ContentService {
	return &contentService{
		content:  content,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      systemNow,
	}
}

// Import stores items in file order: each new item is stamped one
// microsecond after the previous so catalog order follows the file.
// Either every item is stored or none is.
func (s *contentService) Import(ctx context.Context, items []domain.ContentItem) (n int, err error) {
	startedAt := time.Now()
	fields := map[string]any{"items": len(items)}
	defer observe(ctx, s.observer, "import-content", startedAt, fields, &err)

	base := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteContentRepo(tx)
		for i := range items {
			item := items[i]
			item.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
			if err := repo.Upsert(ctx, &item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("importing content: %w", err)
	}
	return len(items), nil
}

func (s *contentService) List(ctx context.Context, category string) ([]*domain.ContentItem, error) {
	if category == "" {
		return s.content.List(ctx)
	}
	return s.content.ListByCategory(ctx, category)
}
