package services

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Counter is any repository that can count its rows.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Stats are the dashboard totals.
type Stats struct {
	Articles   int64 `json:"articles"`
	Sections   int64 `json:"sections"`
	Events     int64 `json:"events"`
	Categories int64 `json:"categories"`
}

type DashboardService struct {
	articles, sections, events, categories Counter
}

func NewDashboardService(articles, sections, events, categories Counter) *DashboardService {
	return &DashboardService{articles: articles, sections: sections, events: events, categories: categories}
}

// Stats counts each collection concurrently.
func (s *DashboardService) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	g, ctx := errgroup.WithContext(ctx)
	count := func(c Counter, dst *int64) {
		g.Go(func() error {
			n, err := c.Count(ctx)
			*dst = n
			return err
		})
	}
	count(s.articles, &st.Articles)
	count(s.sections, &st.Sections)
	count(s.events, &st.Events)
	count(s.categories, &st.Categories)
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return st, nil
}
