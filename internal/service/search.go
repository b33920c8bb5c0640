package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/msomdec/movie-shelf/internal/domain"
	"github.com/msomdec/movie-shelf/internal/omdb"
)

// MovieResult is a normalized search result from the external provider.
type MovieResult struct {
	Title  string
	Year   string
	Poster *string
	ImdbID string
}

// SearchService proxies title searches to OMDb and normalizes the
// response. It is stateless and persists nothing.
type SearchService struct {
	client *omdb.Client
}

// NewSearchService creates a new SearchService.
func NewSearchService(client *omdb.Client) *SearchService {
	return &SearchService{client: client}
}

// Search queries OMDb for movies matching the title. An empty title is
// rejected before any upstream call. The "N/A" poster sentinel is
// normalized to absent.
func (s *SearchService) Search(ctx context.Context, title string) ([]MovieResult, int, error) {
	if strings.TrimSpace(title) == "" {
		return nil, 0, fmt.Errorf("%w: movie title is required", domain.ErrInvalidInput)
	}

	resp, err := s.client.Search(ctx, title)
	if err != nil {
		if errors.Is(err, omdb.ErrInvalidAPIKey) {
			return nil, 0, domain.ErrUpstreamConfig
		}
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	if resp.Response == "False" {
		msg := resp.Error
		if msg == "" {
			msg = "No movies found"
		}
		return nil, 0, &domain.NoResultsError{Message: msg}
	}

	results := make([]MovieResult, 0, len(resp.Search))
	for _, item := range resp.Search {
		result := MovieResult{
			Title:  item.Title,
			Year:   item.Year,
			ImdbID: item.ImdbID,
		}
		if item.Poster != "" && item.Poster != "N/A" {
			poster := item.Poster
			result.Poster = &poster
		}
		results = append(results, result)
	}

	total, err := strconv.Atoi(resp.TotalResults)
	if err != nil {
		total = len(results)
	}
	return results, total, nil
}
