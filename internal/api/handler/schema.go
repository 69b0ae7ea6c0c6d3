package handler

import (
	"time"

	"github.com/taskforge/rewards-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Task requests ---

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Points      int    `json:"points"      validate:"gte=0"`
}

type submitTaskRequest struct {
	MediaURL string `json:"mediaUrl" validate:"omitempty,url"`
}

type rejectSubmissionRequest struct {
	DeclineReason string `json:"declineReason" validate:"required"`
}

// --- Shop requests ---

type createItemRequest struct {
	Name        string `json:"name"           validate:"required"`
	Description string `json:"description"    validate:"required"`
	Cost        int    `json:"cost"           validate:"gte=0"`
	FormLink    string `json:"googleFormLink" validate:"omitempty,url"`
}

type redeemRequest struct {
	ItemID string `json:"itemId" validate:"required"`
}

type redemptionActionRequest struct {
	ItemID string `json:"itemId" validate:"required"`
	UserID string `json:"userId" validate:"required"`
}

// --- Shared token requests ---

type generateTokenRequest struct {
	UID       string `json:"uid"       validate:"required"`
	DaysValid int    `json:"daysValid" validate:"omitempty,gt=0"`
}

type sharedLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

// --- Responses owned by the transport layer ---
// Intentionally separate from ports/domain types so the JSON contract is not
// coupled to internal service changes.

type taskRefResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

type userRefResponse struct {
	UID   string `json:"uid"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type submissionResponse struct {
	ID            string           `json:"id"`
	Task          taskRefResponse  `json:"task"`
	User          *userRefResponse `json:"user,omitempty"`
	Status        string           `json:"status"`
	MediaURL      string           `json:"mediaUrl,omitempty"`
	DeclineReason string           `json:"declineReason,omitempty"`
	SubmittedAt   time.Time        `json:"submittedAt"`
}

// toSubmissionResponse maps a service detail to the wire shape. The owner
// block is only included on admin views.
func toSubmissionResponse(d *ports.SubmissionDetail, includeUser bool) submissionResponse {
	resp := submissionResponse{
		ID: d.ID,
		Task: taskRefResponse{
			ID:          d.Task.ID,
			Title:       d.Task.Title,
			Description: d.Task.Description,
			Points:      d.Task.Points,
		},
		Status:        d.Status,
		MediaURL:      d.MediaURL,
		DeclineReason: d.DeclineReason,
		SubmittedAt:   d.SubmittedAt,
	}
	if includeUser {
		resp.User = &userRefResponse{
			UID:   d.User.UID,
			Name:  d.User.Name,
			Email: d.User.Email,
		}
	}
	return resp
}

type quoteResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TokenCost   int    `json:"tokenCost"`
	FormLink    string `json:"googleFormLink,omitempty"`
}

type confirmResponse struct {
	Success         bool `json:"success"`
	RemainingTokens int  `json:"remainingTokens"`
}

type cancelResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type leaderboardEntryResponse struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	Points      int    `json:"points"`
	Tokens      int    `json:"tokens"`
}

type sharedTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
