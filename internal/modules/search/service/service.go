package service

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"scopri.app/eventilocali/internal/entity"
)

const eventsIndex = "events"

// EventSearchService mirrors the event store into a Meilisearch index so the
// admin dashboard can search by name, location and reporter without regex
// scans on the primary database.
type EventSearchService interface {
	IndexEvent(event *entity.Event) error
	DeleteEvent(id uuid.UUID) error
	SearchEvents(query, status, category string, offset, limit int) ([]uuid.UUID, int64, error)
}

type eventSearchService struct {
	client meilisearch.ServiceManager
}

func NewEventSearchService(client meilisearch.ServiceManager) EventSearchService {
	s := &eventSearchService{client: client}
	s.initIndex()
	return s
}

func (s *eventSearchService) initIndex() {
	filterableAttrs := []string{"status", "category"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(eventsIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Printf("Failed to update events filterable attributes: %v", err)
	}

	sortableAttrs := []string{"created_at", "click_count"}
	if _, err := s.client.Index(eventsIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update events sortable attributes: %v", err)
	}
}

type meiliEventDoc struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Location   string `json:"location"`
	Status     string `json:"status"`
	ReportedBy string `json:"reported_by"`
	ClickCount int    `json:"click_count"`
	CreatedAt  int64  `json:"created_at"`
}

func (s *eventSearchService) IndexEvent(event *entity.Event) error {
	doc := meiliEventDoc{
		ID:         event.ID.String(),
		Name:       event.Name,
		Category:   event.Category,
		Location:   event.Location,
		Status:     event.Status,
		ReportedBy: event.ReporterName(),
		ClickCount: event.ClickCount,
		CreatedAt:  event.CreatedAt.Unix(),
	}

	_, err := s.client.Index(eventsIndex).AddDocuments([]meiliEventDoc{doc}, strPtr("id"))
	return err
}

func strPtr(s string) *string {
	return &s
}

// quoteFilterValue renders a value for a Meilisearch filter expression.
// Quoting keeps user-supplied categories from breaking the expression.
func quoteFilterValue(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}

func (s *eventSearchService) DeleteEvent(id uuid.UUID) error {
	_, err := s.client.Index(eventsIndex).DeleteDocument(id.String())
	return err
}

func (s *eventSearchService) SearchEvents(query, status, category string, offset, limit int) ([]uuid.UUID, int64, error) {
	filter := ""
	if status != "" {
		filter = "status = " + quoteFilterValue(status)
	}
	if category != "" {
		if filter != "" {
			filter += " AND "
		}
		filter += "category = " + quoteFilterValue(category)
	}

	req := &meilisearch.SearchRequest{
		Offset: int64(offset),
		Limit:  int64(limit),
	}
	if filter != "" {
		req.Filter = filter
	}

	res, err := s.client.Index(eventsIndex).Search(query, req)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(res.Hits))
	for _, hit := range res.Hits {
		raw, ok := hit["id"]
		if !ok {
			continue
		}
		var idStr string
		if err := json.Unmarshal(raw, &idStr); err != nil {
			continue
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, res.EstimatedTotalHits, nil
}
