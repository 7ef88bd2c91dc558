package brewer

import (
	"context"
	"strings"

	"baristabox-be/internal/entity"
)

// KnownBrewMethods are matched in this order against the lower-cased query.
var KnownBrewMethods = func() []string {
	methods := make([]string, len(entity.BrewMethods))
	for i, m := range entity.BrewMethods {
		methods[i] = strings.ToLower(m)
	}
	return methods
}()

// Entities is what Extract found in a query. Either field may be empty.
type Entities struct {
	Bean   *entity.Bean
	Method string
}

func (e Entities) Complete() bool {
	return e.Bean != nil && e.Method != ""
}

// Extract finds the first bean, in store order, whose name appears in the
// query, and the first known brew method that appears in it.
func (b *Brewer) Extract(ctx context.Context, query string) (Entities, error) {
	bean, err := b.uowFactory.NewUnitOfWork(ctx).BeanRepository().FindFirstNamedIn(ctx, query)
	if err != nil {
		return Entities{}, err
	}
	return Entities{Bean: bean, Method: matchMethod(query)}, nil
}

func matchMethod(query string) string {
	q := strings.ToLower(query)
	for _, m := range KnownBrewMethods {
		if strings.Contains(q, m) {
			return m
		}
	}
	return ""
}
