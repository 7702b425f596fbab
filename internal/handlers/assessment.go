package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/genomelens-backend/internal/services"
	"github.com/yungbote/genomelens-backend/internal/types"
)

type AssessmentHandler struct {
	profileService    services.ProfileService
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(profileService services.ProfileService, assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{profileService: profileService, assessmentService: assessmentService}
}

func (ah *AssessmentHandler) SubmitGeneA(c *gin.Context) {
	profile, ok := ownedProfile(c, ah.profileService)
	if !ok {
		return
	}
	var responses types.GeneARawResponses
	if err := c.ShouldBindJSON(&responses); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := ah.assessmentService.SubmitGeneA(c.Request.Context(), profile.UserID, profile.ID, responses)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (ah *AssessmentHandler) List(c *gin.Context) {
	profile, ok := ownedProfile(c, ah.profileService)
	if !ok {
		return
	}
	assessments, err := ah.assessmentService.ListForProfile(c.Request.Context(), profile.ID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"assessments": assessments})
}
