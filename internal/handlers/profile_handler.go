package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// ProfileHandler handles profile management requests.
type ProfileHandler struct {
	profileService services.ProfileServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.ProfileServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileRequest carries a profile name.
type ProfileRequest struct {
	Name string `json:"name" binding:"required,min=1,max=64"`
}

// Create creates a profile
// @Summary     Create a profile
// @Tags        profiles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ProfileRequest true "Profile name"
// @Success     201 {object} models.Profile "Profile created"
// @Failure     409 {object} ErrorResponse "Duplicate profile name"
// @Router      /profiles [post]
func (h *ProfileHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.profileService.CreateProfile(userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

// List lists the user's profiles
// @Summary     List profiles
// @Tags        profiles
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Profile "Profiles"
// @Router      /profiles [get]
func (h *ProfileHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profiles, err := h.profileService.GetUserProfiles(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

// Get retrieves one profile
// @Summary     Get a profile
// @Tags        profiles
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Success     200 {object} models.Profile "Profile"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profiles/{profileID} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	profileID, err := getProfileID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfileByID(userID, profileID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// Rename renames a profile
// @Summary     Rename a profile
// @Tags        profiles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Param       request body ProfileRequest true "New name"
// @Success     200 {object} models.Profile "Profile renamed"
// @Failure     409 {object} ErrorResponse "Duplicate profile name"
// @Router      /profiles/{profileID} [put]
func (h *ProfileHandler) Rename(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	profileID, err := getProfileID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.profileService.RenameProfile(userID, profileID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// Switch stamps a profile as most recently used
// @Summary     Switch to a profile
// @Description Record the profile as the most recently used one. Scoping stays explicit per request.
// @Tags        profiles
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Success     200 {object} models.Profile "Profile switched"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profiles/{profileID}/switch [post]
func (h *ProfileHandler) Switch(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	profileID, err := getProfileID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.SwitchProfile(userID, profileID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// Delete removes an empty profile
// @Summary     Delete a profile
// @Description Delete a profile that has no accounts left
// @Tags        profiles
// @Produce     json
// @Security    BearerAuth
// @Param       profileID path string true "Profile ID"
// @Success     200 {object} map[string]string "Profile deleted"
// @Failure     400 {object} ErrorResponse "Profile still has accounts"
// @Router      /profiles/{profileID} [delete]
func (h *ProfileHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	profileID, err := getProfileID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.profileService.DeleteProfile(userID, profileID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
}
