package article

import "newsdiary/internal/domain/entity"

// DTO is the wire form of an article.
type DTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	CollectedAt string `json:"collected_at"`
	Source      string `json:"source"`
	IsFavorite  bool   `json:"is_favorite"`
}

func toDTO(a entity.Article) DTO {
	return DTO{
		ID:          a.ID,
		Title:       a.Title,
		URL:         a.URL,
		Category:    a.Category.String(),
		CollectedAt: a.CollectedAt.String(),
		Source:      a.Source,
		IsFavorite:  a.IsFavorite,
	}
}

func toDTOs(articles []entity.Article) []DTO {
	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toDTO(a))
	}
	return out
}

// DeleteRequest selects articles by ID.
type DeleteRequest struct {
	IDs []string `json:"ids"`
}

// DeleteResponse reports how many articles were removed.
type DeleteResponse struct {
	DeletedCount int `json:"deleted_count"`
}

// FavoriteResponse is the favorite flag after a toggle.
type FavoriteResponse struct {
	ID         string `json:"id"`
	IsFavorite bool   `json:"is_favorite"`
}
