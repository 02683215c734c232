package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/redditdevs/VerifyBot_Go/internal/domain"
	"github.com/redditdevs/VerifyBot_Go/internal/logger"
	"github.com/redditdevs/VerifyBot_Go/internal/verification"
)

// BeginLinkRequest starts the flow: the user claims a Discord username and
// picks role categories.
type BeginLinkRequest struct {
	UserID          string               `json:"user_id" validate:"required"`
	RedditUsername  string               `json:"reddit_username" validate:"required"`
	DiscordUsername string               `json:"discord_username" validate:"required,max=32"`
	CommentID       string               `json:"comment_id"`
	Selection       domain.RoleSelection `json:"selection"`
}

// ConfirmCodeRequest submits the code received by DM. The selection is sent
// again because it is read fresh at confirm time.
type ConfirmCodeRequest struct {
	UserID         string               `json:"user_id" validate:"required"`
	RedditUsername string               `json:"reddit_username" validate:"required"`
	Code           string               `json:"code" validate:"required"`
	Selection      domain.RoleSelection `json:"selection"`
}

// UpdateRolesRequest changes the category selection of a verified link.
type UpdateRolesRequest struct {
	UserID    string               `json:"user_id" validate:"required"`
	Selection domain.RoleSelection `json:"selection"`
}

// UnlinkRequest removes the link.
type UnlinkRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn("Failed to decode request body", "error", err)
		writeError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return false
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Warn("Request validation failed", "fields", FormatValidationError(err))
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  ErrMsgInvalidRequest,
			"fields": FormatValidationError(err),
		})
		return false
	}
	return true
}

// HandleGetStatus returns the safe record for a user, or 404 while unlinked.
// The presentation layer uses it to decide which screen to render.
// @Summary Get link status
// @Description Returns the code-stripped record for a Reddit user id
// @Tags verification
// @Produce json
// @Param user_id query string true "Reddit user id"
// @Success 200 {object} domain.SafeUserRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /verification/status [get]
func HandleGetStatus(service verification.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "user_id"))
			return
		}

		record, err := service.Status(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

// HandleBeginLink handles the username-and-roles form submission.
// @Summary Begin a link
// @Description Resolves the claimed Discord username and DMs a one-time code
// @Tags verification
// @Accept json
// @Produce json
// @Param request body BeginLinkRequest true "Username and role selection"
// @Success 201 {object} domain.SafeUserRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "User does not exist on server"
// @Failure 502 {object} ErrorResponse
// @Router /verification/begin [post]
func HandleBeginLink(service verification.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BeginLinkRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		record, err := service.BeginLink(r.Context(), verification.BeginLinkParams{
			UserID:          req.UserID,
			RedditUsername:  req.RedditUsername,
			DiscordUsername: req.DiscordUsername,
			CommentID:       req.CommentID,
			Selection:       req.Selection,
		})
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, record)
	}
}

// HandleConfirmCode handles the code form submission.
// @Summary Confirm a verification code
// @Description Verifies the link and grants the selected roles on exact code match
// @Tags verification
// @Accept json
// @Produce json
// @Param request body ConfirmCodeRequest true "Code and role selection"
// @Success 200 {object} domain.SafeUserRecord
// @Failure 400 {object} ErrorResponse "Invalid verification code"
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /verification/confirm [post]
func HandleConfirmCode(service verification.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConfirmCodeRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		record, err := service.ConfirmCode(r.Context(), verification.ConfirmCodeParams{
			UserID:         req.UserID,
			RedditUsername: req.RedditUsername,
			Code:           req.Code,
			Selection:      req.Selection,
		})
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

// HandleUpdateRoles handles the update-roles action for a verified link.
// @Summary Update category roles
// @Description Replaces the member's category roles with the fresh selection
// @Tags verification
// @Accept json
// @Produce json
// @Param request body UpdateRolesRequest true "Role selection"
// @Success 200 {object} domain.SafeUserRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No linked account"
// @Failure 502 {object} ErrorResponse
// @Router /verification/roles [post]
func HandleUpdateRoles(service verification.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateRolesRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		record, err := service.UpdateRoles(r.Context(), verification.UpdateRolesParams{
			UserID:    req.UserID,
			Selection: req.Selection,
		})
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

// HandleUnlink handles the unlink action. Unlinking an already-unlinked
// user succeeds.
// @Summary Unlink an account
// @Description Revokes roles, posts the revocation notice, and deletes the record
// @Tags verification
// @Accept json
// @Produce json
// @Param request body UnlinkRequest true "Reddit user id"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /verification/unlink [post]
func HandleUnlink(service verification.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UnlinkRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		if err := service.Unlink(r.Context(), req.UserID); err != nil {
			respondServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageResponse{Message: MsgUnlinked})
	}
}
