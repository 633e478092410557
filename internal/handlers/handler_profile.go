package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nepalfund/nepalfund_backend/internal/apperrors"
	portssvc "github.com/nepalfund/nepalfund_backend/internal/core/ports/services"
	"github.com/nepalfund/nepalfund_backend/internal/dto"
	"github.com/nepalfund/nepalfund_backend/internal/middleware"
)

const photoField = "photo"

// PhotoStore persists an uploaded photo and returns its public URL.
type PhotoStore interface {
	Save(ctx context.Context, r io.Reader) (string, error)
}

type profileHandler struct {
	userService portssvc.UserSvcFacade
	photos      PhotoStore
}

func newProfileHandler(us portssvc.UserSvcFacade, photos PhotoStore) *profileHandler {
	return &profileHandler{userService: us, photos: photos}
}

func registerProfileRoutes(r *gin.Engine, services *portssvc.ServiceContainer, photos PhotoStore) {
	h := newProfileHandler(services.User, photos)

	auth := r.Group("/auth")
	{
		auth.GET("/profile", h.getProfile)
		auth.PUT("/profile", h.updateProfile)
		auth.POST("/google-register", h.googleRegister)
	}
}

// getProfile godoc
// @Summary Get a profile by email
// @Tags profile
// @Produce json
// @Param email query string true "Account email"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/profile [get]
func (h *profileHandler) getProfile(c *gin.Context) {
	var q dto.ProfileQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := h.userService.GetProfile(c.Request.Context(), q.Email)
	if err != nil {
		respondError(c, err, "Profile lookup failed")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(user))
}

// updateProfile godoc
// @Summary Update a profile
// @Description Multipart update of profile fields with an optional photo. Always marks the profile completed.
// @Description A photo that cannot be stored is dropped and reported with photoUploaded=false.
// @Tags profile
// @Accept mpfd
// @Produce json
// @Param email formData string true "Account email"
// @Param firstName formData string false "First name"
// @Param lastName formData string false "Last name"
// @Param username formData string false "Username"
// @Param bio formData string false "Bio"
// @Param gender formData string false "Gender"
// @Param photo formData file false "Profile photo (jpeg, png or gif)"
// @Success 200 {object} dto.UpdateProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/profile [put]
func (h *profileHandler) updateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	update := portssvc.ProfileUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Bio:       req.Bio,
		Gender:    req.Gender,
	}

	var photoUploaded *bool
	if fh, err := c.FormFile(photoField); err == nil {
		url, err := h.savePhoto(ctx, fh)
		switch {
		case err == nil:
			update.Photo = &url
			ok := true
			photoUploaded = &ok
		case errors.Is(err, apperrors.ErrValidation):
			respondError(c, err, "Rejected profile photo")
			return
		default:
			// the profile update proceeds without the photo
			middleware.GetLoggerFromCtx(ctx).Warn("Profile photo upload failed; continuing without photo",
				slog.String("error", err.Error()))
			failed := false
			photoUploaded = &failed
		}
	}

	user, err := h.userService.UpdateProfile(ctx, update)
	if err != nil {
		respondError(c, err, "Profile update failed")
		return
	}
	c.JSON(http.StatusOK, dto.UpdateProfileResponse{
		Success:       true,
		User:          dto.ToProfileResponse(user),
		PhotoUploaded: photoUploaded,
	})
}

func (h *profileHandler) savePhoto(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open upload: %w", apperrors.ErrUploadFailed, err)
	}
	defer f.Close()
	return h.photos.Save(ctx, f)
}

// googleRegister godoc
// @Summary Complete onboarding for a Google account
// @Tags profile
// @Accept json
// @Produce json
// @Param body body dto.GoogleRegisterRequest true "Confirmed name and phone"
// @Success 200 {object} dto.UpdateProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/google-register [post]
func (h *profileHandler) googleRegister(c *gin.Context) {
	var req dto.GoogleRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.CompleteGoogleProfile(c.Request.Context(), req.Email, req.Name, req.PhoneNumber)
	if err != nil {
		respondError(c, err, "Google profile completion failed")
		return
	}
	c.JSON(http.StatusOK, dto.UpdateProfileResponse{
		Success: true,
		User:    dto.ToProfileResponse(user),
	})
}
