package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/genomelens-backend/internal/services"
)

type TraitHandler struct {
	profileService services.ProfileService
	traitService   services.TraitService
}

func NewTraitHandler(profileService services.ProfileService, traitService services.TraitService) *TraitHandler {
	return &TraitHandler{profileService: profileService, traitService: traitService}
}

func (th *TraitHandler) Get(c *gin.Context) {
	profile, ok := ownedProfile(c, th.profileService)
	if !ok {
		return
	}
	doc, err := th.traitService.GetForProfile(c.Request.Context(), profile.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, doc)
}

type traitValuesRequest struct {
	Values map[string]interface{} `json:"values"`
}

func (th *TraitHandler) Merge(c *gin.Context) {
	profile, ok := ownedProfile(c, th.profileService)
	if !ok {
		return
	}
	var req traitValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := th.traitService.Merge(c.Request.Context(), profile.UserID, profile.ID, req.Values); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"merged": len(req.Values)})
}

func (th *TraitHandler) Replace(c *gin.Context) {
	profile, ok := ownedProfile(c, th.profileService)
	if !ok {
		return
	}
	var req traitValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := th.traitService.Replace(c.Request.Context(), profile.ID, req.Values); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"replaced": true})
}
