package implementation

import (
	"context"
	"fmt"
	"strings"

	"baristabox-be/internal/entity"
	"baristabox-be/internal/mapper"
	"baristabox-be/internal/repository/contract"
)

type BeanRepositoryImpl struct {
	tables TableAccess
	mapper *mapper.BeanMapper
}

func NewBeanRepository(tables TableAccess) contract.BeanRepository {
	return &BeanRepositoryImpl{
		tables: tables,
		mapper: mapper.NewBeanMapper(),
	}
}

func (r *BeanRepositoryImpl) Create(ctx context.Context, bean *entity.Bean) error {
	return r.tables.update(beansFile, func(t *knowledgeTables) error {
		for _, b := range t.beans {
			if b.Id == bean.Id {
				return fmt.Errorf("bean %s already exists: %w", bean.Id, entity.ErrConflict)
			}
		}
		t.beans = append(t.beans, *r.mapper.ToModel(bean))
		return nil
	})
}

func (r *BeanRepositoryImpl) Update(ctx context.Context, bean *entity.Bean) error {
	return r.tables.update(beansFile, func(t *knowledgeTables) error {
		for i := range t.beans {
			if t.beans[i].Id == bean.Id {
				t.beans[i] = *r.mapper.ToModel(bean)
				return nil
			}
		}
		return entity.ErrBeanNotFound
	})
}

func (r *BeanRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.tables.update(beansFile, func(t *knowledgeTables) error {
		for i := range t.beans {
			if t.beans[i].Id == id {
				t.beans = append(t.beans[:i], t.beans[i+1:]...)
				return nil
			}
		}
		return entity.ErrBeanNotFound
	})
}

func (r *BeanRepositoryImpl) FindOne(ctx context.Context, id string) (*entity.Bean, error) {
	var found *entity.Bean
	err := r.tables.view(func(t *knowledgeTables) error {
		for i := range t.beans {
			if t.beans[i].Id == id {
				found = r.mapper.ToEntity(&t.beans[i])
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *BeanRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Bean, error) {
	var res []*entity.Bean
	err := r.tables.view(func(t *knowledgeTables) error {
		res = make([]*entity.Bean, 0, len(t.beans))
		for i := range t.beans {
			res = append(res, r.mapper.ToEntity(&t.beans[i]))
		}
		return nil
	})
	return res, err
}

func (r *BeanRepositoryImpl) FindFirstNamedIn(ctx context.Context, text string) (*entity.Bean, error) {
	haystack := strings.ToLower(text)
	var found *entity.Bean
	err := r.tables.view(func(t *knowledgeTables) error {
		for i := range t.beans {
			name := strings.ToLower(t.beans[i].Name)
			if name != "" && strings.Contains(haystack, name) {
				found = r.mapper.ToEntity(&t.beans[i])
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *BeanRepositoryImpl) Count(ctx context.Context) (int, error) {
	var n int
	err := r.tables.view(func(t *knowledgeTables) error {
		n = len(t.beans)
		return nil
	})
	return n, err
}
