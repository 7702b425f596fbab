package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/genomelens-backend/internal/apperr"
	"github.com/yungbote/genomelens-backend/internal/requestdata"
	"github.com/yungbote/genomelens-backend/internal/services"
	"github.com/yungbote/genomelens-backend/internal/types"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type createProfileRequest struct {
	Name string `json:"name"`
}

func (ph *ProfileHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondServiceError(c, apperr.ErrUnauthorized)
		return
	}
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	profile, err := ph.profileService.Create(c.Request.Context(), rd.UserID, req.Name)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (ph *ProfileHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondServiceError(c, apperr.ErrUnauthorized)
		return
	}
	profiles, err := ph.profileService.ListForUser(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"profiles": profiles})
}

func (ph *ProfileHandler) Get(c *gin.Context) {
	profile, ok := ownedProfile(c, ph.profileService)
	if !ok {
		return
	}
	RespondOK(c, profile)
}

// ownedProfile resolves the :profileID path param and checks the profile
// belongs to the authenticated user. A foreign profile reads as not found.
func ownedProfile(c *gin.Context, ps services.ProfileService) (*types.Profile, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondServiceError(c, apperr.ErrUnauthorized)
		return nil, false
	}
	profileID, err := uuid.Parse(c.Param("profileID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_profile_id", err)
		return nil, false
	}
	profile, err := ps.GetByID(c.Request.Context(), profileID)
	if err != nil {
		RespondServiceError(c, err)
		return nil, false
	}
	if profile.UserID != rd.UserID {
		RespondServiceError(c, apperr.ErrNotFound)
		return nil, false
	}
	return profile, true
}
