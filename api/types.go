package api

import (
	"time"

	"github.com/picko-ai/picko/core"
)

// RecommendationRequest asks for recommendations for one or more tasks.
type RecommendationRequest struct {
	Tasks []string `json:"tasks" validate:"required,min=1,max=20,dive,max=1000"`
}

// TaskResult holds the recommendations for one task.
type TaskResult struct {
	Task  string         `json:"task"`
	Tools []ToolResponse `json:"tools"`
}

// RecommendationResponse lists results in request order.
type RecommendationResponse struct {
	Results []TaskResult `json:"results"`
}

// NewRecommendationResponse pairs each task with its tools. batch must be aligned with tasks.
func NewRecommendationResponse(tasks []string, batch [][]*core.Tool) RecommendationResponse {
	resp := RecommendationResponse{Results: make([]TaskResult, len(tasks))}
	for i, task := range tasks {
		resp.Results[i] = TaskResult{Task: task, Tools: toToolResponses(batch[i])}
	}
	return resp
}

// ToolResponse is the public view of a tool.
type ToolResponse struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Category             string `json:"category_kr"`
	SecondaryCategory    string `json:"futurepedia_category,omitempty"`
	Strength             string `json:"strength,omitempty"`
	StrengthLocalized    string `json:"strength_kr,omitempty"`
	Description          string `json:"description,omitempty"`
	DescriptionLocalized string `json:"description_kr,omitempty"`
	Free                 bool   `json:"free"`
	Link                 string `json:"link,omitempty"`
}

func toToolResponses(tools []*core.Tool) []ToolResponse {
	out := make([]ToolResponse, len(tools))
	for i, t := range tools {
		out[i] = ToolResponse{
			ID:                   string(t.Id),
			Name:                 t.Name,
			Category:             t.Category,
			SecondaryCategory:    t.SecondaryCategory,
			Strength:             t.Strength,
			StrengthLocalized:    t.StrengthLocalized,
			Description:          t.Description,
			DescriptionLocalized: t.DescriptionLocalized,
			Free:                 t.Free,
			Link:                 t.Link,
		}
	}
	return out
}

// FavoriteRequest favorites or unfavorites a tool. An empty session id starts a new session.
type FavoriteRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=128"`
	ToolID    string `json:"tool_id" validate:"required,max=128"`
	ToolName  string `json:"tool_name" validate:"max=256"`
	Favorited bool   `json:"favorited"`
}

// RatingRequest rates a tool from 1 to 5. An empty session id starts a new session.
type RatingRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=128"`
	ToolID    string `json:"tool_id" validate:"required,max=128"`
	ToolName  string `json:"tool_name" validate:"max=256"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
}

// InteractionResponse is the public view of a saved interaction.
type InteractionResponse struct {
	SessionID string    `json:"session_id"`
	ToolID    string    `json:"tool_id"`
	ToolName  string    `json:"tool_name"`
	Type      string    `json:"type"`
	Favorited *bool     `json:"favorited,omitempty"`
	Rating    int       `json:"rating,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewInteractionResponse converts a saved interaction.
func NewInteractionResponse(i *core.Interaction) InteractionResponse {
	resp := InteractionResponse{
		SessionID: i.SessionID,
		ToolID:    string(i.ToolID),
		ToolName:  i.ToolName,
		Type:      i.Type.String(),
		UpdatedAt: i.UpdatedAt,
	}
	switch i.Type {
	case core.InteractionFavorite:
		favorited := i.IsFavorited
		resp.Favorited = &favorited
	case core.InteractionRating:
		resp.Rating = i.Rating
	}
	return resp
}

// InteractionsResponse lists a session's interactions.
type InteractionsResponse struct {
	SessionID    string                `json:"session_id"`
	Interactions []InteractionResponse `json:"interactions"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
