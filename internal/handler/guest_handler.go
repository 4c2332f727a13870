package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"wedding-invite/internal/dto"
	"wedding-invite/internal/middleware"
	"wedding-invite/internal/service"
	"wedding-invite/pkg/musicsearch"
)

type GuestHandler struct {
	svc   service.PreferenceService
	music *musicsearch.Client
}

func NewGuestHandler(svc service.PreferenceService, music *musicsearch.Client) *GuestHandler {
	return &GuestHandler{svc: svc, music: music}
}

func (h *GuestHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/invite/:token", h.ResolveInvite, middleware.RequireTokenFormat)
	e.GET("/api/v1/music-search", h.MusicSearch)

	guests := e.Group("/api/v1/guests")
	guests.PUT("/:id/rsvp", h.UpdateRSVP)
	guests.PUT("/:id/menu", h.UpdateMenu)
	guests.PUT("/:id/allergies", h.UpdateAllergies)
	guests.PUT("/:id/alcohol", h.UpdateAlcohol)
	guests.PUT("/:id/transfer", h.UpdateTransfer)
	guests.PUT("/:id/accommodation", h.UpdateAccommodation)
	guests.PUT("/:id/second-day", h.UpdateSecondDay)
	guests.PUT("/:id/tracks", h.UpdateTracks)

	households := e.Group("/api/v1/households")
	households.PUT("/:id/transfer", h.UpdateHouseholdTransfer)
	households.PUT("/:id/accommodation", h.UpdateHouseholdAccommodation)
	households.PUT("/:id/second-day", h.UpdateHouseholdSecondDay)
}

// respondError maps service errors onto the response envelope. Validation
// errors keep their specific message; anything unexpected surfaces as the
// generic persistence message.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidReference),
		errors.Is(err, service.ErrInvalidValue),
		errors.Is(err, service.ErrTooManyTracks):
		return c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
	case errors.Is(err, service.ErrGuestNotFound),
		errors.Is(err, service.ErrHouseholdEmpty):
		return c.JSON(http.StatusNotFound, dto.Fail(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, dto.Fail(service.ErrPersistence.Error()))
	}
}

func (h *GuestHandler) UpdateRSVP(c echo.Context) error {
	var req dto.RSVPRequest
	if err := c.Bind(&req); err != nil || req.IsAttending == nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(service.ErrInvalidValue.Error()))
	}

	guest, err := h.svc.UpdateRSVP(c.Request().Context(), c.Param("id"), *req.IsAttending)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.OK(dto.ToRSVPData(guest)))
}

func (h *GuestHandler) UpdateMenu(c echo.Context) error {
	var req dto.MenuRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(service.ErrInvalidValue.Error()))
	}

	q, err := h.svc.UpdateMenu(c.Request().Context(), c.Param("id"), req.MenuChoice)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.OK(dto.ToQuestionnaireData(q)))
}

func (h *GuestHandler) UpdateAllergies(c echo.Context) error {
	var req dto.AllergiesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(service.ErrInvalidValue.Error()))
	}

	q, err := h.svc.UpdateAllergies(c.Request().Context(), c.Param("id"), req.Allergies, req.AllergiesOther, req.HasNoAllergies)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.OK(dto.ToQuestionnaireData(q)))
}

func (h *GuestHandler) UpdateAlcohol(c echo.Context) error {
	var req dto.AlcoholRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(service.ErrInvalidValue.Error()))
	}

	q, err := h.svc.UpdateAlcohol(c.Request().Context(), c.Param("id"), req.AlcoholPreferences)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.OK(dto.ToQuestionnaireData(q)))
}

func (h *GuestHandler) UpdateTransfer(c echo.Context) error {
	var req dto.TransferRequest
	if err := c.Bind(&req); err != nil || req.NeedsTransfer == nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(service.ErrInvalidValue.Error()))
	}

	q, err := h.svc.UpdateTransfer(c.Request().Context(), c.Param("id"), *req.NeedsTransfer)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.OK(dto.ToQuestionnaireData(q)))
}

func (h *GuestHandler) UpdateAccommodation(c echo.Context) error {
	var req dto.AccommodationRequest
	if err := c.Bind(&req); err != nil || req.HasAccommodation == nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(service.ErrInvalidValue.Error()))
	}

	q, err := h.svc.UpdateAccommodation(c.Request().Context(), c.Param("id"), *req.HasAccommodation)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.OK(dto.ToQuestionnaireData(q)))
}

func (h *GuestHandler) UpdateSecondDay(c echo.Context) error {
	var req dto.SecondDayRequest
	if err := c.Bind(&req); err != nil || req.WantsSecondDay == nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(service.ErrInvalidValue.Error()))
	}

	q, err := h.svc.UpdateSecondDay(c.Request().Context(), c.Param("id"), *req.WantsSecondDay)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.OK(dto.ToQuestionnaireData(q)))
}

func (h *GuestHandler) UpdateTracks(c echo.Context) error {
	var req dto.TracksRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(service.ErrInvalidValue.Error()))
	}

	q, err := h.svc.UpdateSuggestedTracks(c.Request().Context(), c.Param("id"), req.SuggestedTracks)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.OK(dto.ToQuestionnaireData(q)))
}

func (h *GuestHandler) updateHousehold(c echo.Context, update func(string, bool) (int64, error), value *bool) error {
	if value == nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(service.ErrInvalidValue.Error()))
	}
	count, err := update(c.Param("id"), *value)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.OK(dto.BulkUpdateData{
		UpdatedCount: count,
		UpdatedAt:    time.Now().UTC(),
	}))
}

func (h *GuestHandler) UpdateHouseholdTransfer(c echo.Context) error {
	var req dto.TransferRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(service.ErrInvalidValue.Error()))
	}
	ctx := c.Request().Context()
	return h.updateHousehold(c, func(id string, v bool) (int64, error) {
		return h.svc.UpdateHouseholdTransfer(ctx, id, v)
	}, req.NeedsTransfer)
}

func (h *GuestHandler) UpdateHouseholdAccommodation(c echo.Context) error {
	var req dto.AccommodationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(service.ErrInvalidValue.Error()))
	}
	ctx := c.Request().Context()
	return h.updateHousehold(c, func(id string, v bool) (int64, error) {
		return h.svc.UpdateHouseholdAccommodation(ctx, id, v)
	}, req.HasAccommodation)
}

func (h *GuestHandler) UpdateHouseholdSecondDay(c echo.Context) error {
	var req dto.SecondDayRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.Fail(service.ErrInvalidValue.Error()))
	}
	ctx := c.Request().Context()
	return h.updateHousehold(c, func(id string, v bool) (int64, error) {
		return h.svc.UpdateHouseholdSecondDay(ctx, id, v)
	}, req.WantsSecondDay)
}

func (h *GuestHandler) ResolveInvite(c echo.Context) error {
	page, err := h.svc.ResolveInvite(c.Request().Context(), c.Param("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.OK(dto.ToInviteData(page)))
}

// MusicSearch proxies the iTunes Search API for track autocomplete. Upstream
// failures degrade to an empty result list rather than an error.
func (h *GuestHandler) MusicSearch(c echo.Context) error {
	query := c.QueryParam("q")
	results, err := h.music.Search(c.Request().Context(), query)
	if err != nil || results == nil {
		results = []musicsearch.Result{}
	}
	return c.JSON(http.StatusOK, map[string]any{"results": results})
}
