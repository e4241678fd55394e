package service

import (
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/forgelabs-dev/fitforge/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const (
	workoutIndex   = "workouts"
	highlightIndex = "highlights"
)

type MeiliSearchService interface {
	IndexWorkout(workout *model.Workout) error
	IndexHighlight(highlight *model.WorkoutHighlight) error
	DeleteHighlight(id string) error
	SearchWorkouts(query, userID string, limit int) ([]map[string]any, error)
	SearchHighlights(query string, limit int) ([]map[string]any, error)
}

type meiliSearchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewMeiliSearchService(client meilisearch.ServiceManager) MeiliSearchService {
	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	workoutFilterable := []any{"user_id", "completed"}
	if _, err := s.client.Index(workoutIndex).UpdateFilterableAttributes(&workoutFilterable); err != nil {
		log.Printf("Failed to update workouts filterable attributes: %v", err)
	}

	workoutSortable := []string{"created_at"}
	if _, err := s.client.Index(workoutIndex).UpdateSortableAttributes(&workoutSortable); err != nil {
		log.Printf("Failed to update workouts sortable attributes: %v", err)
	}

	highlightFilterable := []any{"user_id", "highlight_type"}
	if _, err := s.client.Index(highlightIndex).UpdateFilterableAttributes(&highlightFilterable); err != nil {
		log.Printf("Failed to update highlights filterable attributes: %v", err)
	}

	highlightSortable := []string{"created_at", "likes"}
	if _, err := s.client.Index(highlightIndex).UpdateSortableAttributes(&highlightSortable); err != nil {
		log.Printf("Failed to update highlights sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

type meiliWorkoutDoc struct {
	ID        string   `json:"id"`
	UserID    string   `json:"user_id"`
	Exercises []string `json:"exercises"`
	Notes     string   `json:"notes"`
	Completed bool     `json:"completed"`
	CreatedAt int64    `json:"created_at"`
}

type meiliHighlightDoc struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	HighlightType string `json:"highlight_type"`
	Likes         int    `json:"likes"`
	CreatedAt     int64  `json:"created_at"`
}

func (s *meiliSearchService) cleanForIndex(content string) string {
	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)
	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *meiliSearchService) IndexWorkout(workout *model.Workout) error {
	names := make([]string, 0, len(workout.Exercises))
	for _, ex := range workout.Exercises {
		names = append(names, s.cleanForIndex(ex.Name))
	}

	notes := ""
	if workout.Notes != nil {
		notes = s.cleanForIndex(*workout.Notes)
	}

	doc := meiliWorkoutDoc{
		ID:        workout.ID.String(),
		UserID:    workout.UserID.String(),
		Exercises: names,
		Notes:     notes,
		Completed: workout.Completed,
		CreatedAt: workout.CreatedAt.Unix(),
	}

	task, err := s.client.Index(workoutIndex).AddDocuments([]meiliWorkoutDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed workout %s, task id: %d", workout.ID, task.TaskUID)
	return nil
}

func (s *meiliSearchService) IndexHighlight(highlight *model.WorkoutHighlight) error {
	doc := meiliHighlightDoc{
		ID:            highlight.ID.String(),
		UserID:        highlight.UserID.String(),
		Title:         s.cleanForIndex(highlight.Title),
		Description:   s.cleanForIndex(highlight.Description),
		HighlightType: highlight.HighlightType,
		Likes:         highlight.Likes,
		CreatedAt:     highlight.CreatedAt.Unix(),
	}

	task, err := s.client.Index(highlightIndex).AddDocuments([]meiliHighlightDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed highlight %s, task id: %d", highlight.ID, task.TaskUID)
	return nil
}

func (s *meiliSearchService) DeleteHighlight(id string) error {
	_, err := s.client.Index(highlightIndex).DeleteDocument(id)
	return err
}

func (s *meiliSearchService) SearchWorkouts(query, userID string, limit int) ([]map[string]any, error) {
	req := &meilisearch.SearchRequest{
		Limit: int64(limit),
	}
	if userID != "" {
		req.Filter = fmt.Sprintf("user_id = %q", userID)
	}

	res, err := s.client.Index(workoutIndex).Search(query, req)
	if err != nil {
		return nil, err
	}
	return hitsToMaps(res.Hits), nil
}

func (s *meiliSearchService) SearchHighlights(query string, limit int) ([]map[string]any, error) {
	res, err := s.client.Index(highlightIndex).Search(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}
	return hitsToMaps(res.Hits), nil
}

func hitsToMaps(hits meilisearch.Hits) []map[string]any {
	out := make([]map[string]any, 0, len(hits))
	for _, hit := range hits {
		m := make(map[string]any, len(hit))
		if err := hit.Decode(&m); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out
}

func strPtr(s string) *string {
	return &s
}
