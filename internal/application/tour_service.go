package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"tourbook/internal/domain/entity"
	repo "tourbook/internal/domain/repository"
	"tourbook/pkg/query"
)

// TourService covers the tour catalog: CRUD, the aggregation endpoints and
// full-text search. Writes mirror the tour into Elasticsearch best-effort.
type TourService struct {
	Tours        repo.TourRepository
	Reviews      repo.ReviewRepository
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESToursIndex string
}

func NewTourService(tours repo.TourRepository, reviews repo.ReviewRepository, logger *logrus.Logger, es *elasticsearch.Client, esToursIndex string) *TourService {
	return &TourService{Tours: tours, Reviews: reviews, Logger: logger, ES: es, ESToursIndex: esToursIndex}
}

// TourWithReviews is the detail view: the tour plus its populated reviews.
type TourWithReviews struct {
	entity.Tour
	Reviews []entity.Review `json:"reviews"`
}

func (s *TourService) Create(ctx context.Context, cols map[string]any) (*entity.Tour, error) {
	if name, ok := cols["name"].(string); ok {
		cols["slug"] = slugify(name)
	}
	t, err := s.Tours.Create(ctx, cols)
	if err != nil {
		return nil, err
	}
	s.indexTour(ctx, t)
	return t, nil
}

// Get returns a tour with its reviews populated, mirroring the virtual
// populate of the detail route.
func (s *TourService) Get(ctx context.Context, id string) (*TourWithReviews, error) {
	t, err := s.Tours.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.Reviews.List(ctx, query.Options{Page: query.DefaultPage, Limit: query.DefaultLimit}, map[string]any{"tour_id": t.ID})
	if err != nil {
		return nil, err
	}
	return &TourWithReviews{Tour: *t, Reviews: reviews}, nil
}

func (s *TourService) List(ctx context.Context, opts query.Options) ([]entity.Tour, error) {
	return s.Tours.List(ctx, opts, nil)
}

func (s *TourService) Update(ctx context.Context, id string, cols map[string]any) (*entity.Tour, error) {
	if name, ok := cols["name"].(string); ok {
		cols["slug"] = slugify(name)
	}
	t, err := s.Tours.Update(ctx, id, cols)
	if err != nil {
		return nil, err
	}
	s.indexTour(ctx, t)
	return t, nil
}

func (s *TourService) Delete(ctx context.Context, id string) error {
	if err := s.Tours.Delete(ctx, id); err != nil {
		return err
	}
	s.deindexTour(ctx, id)
	return nil
}

func (s *TourService) Stats(ctx context.Context) ([]entity.TourStats, error) {
	return s.Tours.Stats(ctx)
}

func (s *TourService) MonthlyPlan(ctx context.Context, year int) ([]entity.MonthlyPlan, error) {
	return s.Tours.MonthlyPlan(ctx, year)
}

// Search does a multi_match over name, summary and description.
func (s *TourService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESToursIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "summary", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(body)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESToursIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *TourService) indexTour(ctx context.Context, t *entity.Tour) {
	if s.ES == nil || s.ESToursIndex == "" || t.Secret {
		return
	}
	doc := map[string]any{
		"id":          t.ID,
		"name":        t.Name,
		"slug":        t.Slug,
		"difficulty":  t.Difficulty,
		"price":       t.Price,
		"summary":     t.Summary,
		"description": t.Description,
		"updated_at":  t.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESToursIndex, DocumentID: t.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("tour_id", t.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("tour_id", t.ID).Warn("es index response error")
	}
}

func (s *TourService) deindexTour(ctx context.Context, id string) {
	if s.ES == nil || s.ESToursIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESToursIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("tour_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

// slugify lowercases and dashes a tour name for URL use.
func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
