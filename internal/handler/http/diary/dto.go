package diary

import "newsdiary/internal/domain/entity"

// DTO is the wire form of a diary entry.
type DTO struct {
	ID        string `json:"id"`
	ArticleID string `json:"article_id"`
	Content   string `json:"content"`
	Summary   string `json:"summary"`
	Opinion   string `json:"opinion"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toDTO(e entity.DiaryEntry) DTO {
	return DTO{
		ID:        e.ID,
		ArticleID: e.ArticleID,
		Content:   e.Content,
		Summary:   e.Summary,
		Opinion:   e.Opinion,
		CreatedAt: e.CreatedAt.String(),
		UpdatedAt: e.UpdatedAt.String(),
	}
}

// PutRequest is the full text of an article's entry.
type PutRequest struct {
	Content string `json:"content"`
	Summary string `json:"summary"`
	Opinion string `json:"opinion"`
}

// PatchRequest changes only the fields present in the body.
type PatchRequest struct {
	Content *string `json:"content"`
	Summary *string `json:"summary"`
	Opinion *string `json:"opinion"`
}
