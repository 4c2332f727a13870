package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-invite/internal/dto"
	"wedding-invite/internal/models"
	"wedding-invite/internal/service"
	"wedding-invite/pkg/musicsearch"
)

// --- Mock PreferenceService ---

type mockPreferenceService struct {
	updateRSVPFn      func(ctx context.Context, guestID string, isAttending bool) (*models.Guest, error)
	updateMenuFn      func(ctx context.Context, guestID string, choice *models.MenuChoice) (*models.GuestQuestionnaire, error)
	updateTracksFn    func(ctx context.Context, guestID string, tracks []string) (*models.GuestQuestionnaire, error)
	householdBulkFn   func(ctx context.Context, householdID string, value bool) (int64, error)
	resolveInviteFn   func(ctx context.Context, token string) (*service.InvitePage, error)
	updateTriStateFn  func(ctx context.Context, guestID string, value bool) (*models.GuestQuestionnaire, error)
	updateAllergiesFn func(ctx context.Context, guestID string, allergies []models.AllergenType, other string, hasNoAllergies bool) (*models.GuestQuestionnaire, error)
	updateAlcoholFn   func(ctx context.Context, guestID string, prefs []models.AlcoholPreference) (*models.GuestQuestionnaire, error)
}

func (m *mockPreferenceService) UpdateRSVP(ctx context.Context, guestID string, isAttending bool) (*models.Guest, error) {
	return m.updateRSVPFn(ctx, guestID, isAttending)
}
func (m *mockPreferenceService) UpdateMenu(ctx context.Context, guestID string, choice *models.MenuChoice) (*models.GuestQuestionnaire, error) {
	return m.updateMenuFn(ctx, guestID, choice)
}
func (m *mockPreferenceService) UpdateAllergies(ctx context.Context, guestID string, allergies []models.AllergenType, other string, hasNoAllergies bool) (*models.GuestQuestionnaire, error) {
	return m.updateAllergiesFn(ctx, guestID, allergies, other, hasNoAllergies)
}
func (m *mockPreferenceService) UpdateAlcohol(ctx context.Context, guestID string, prefs []models.AlcoholPreference) (*models.GuestQuestionnaire, error) {
	return m.updateAlcoholFn(ctx, guestID, prefs)
}
func (m *mockPreferenceService) UpdateTransfer(ctx context.Context, guestID string, v bool) (*models.GuestQuestionnaire, error) {
	return m.updateTriStateFn(ctx, guestID, v)
}
func (m *mockPreferenceService) UpdateAccommodation(ctx context.Context, guestID string, v bool) (*models.GuestQuestionnaire, error) {
	return m.updateTriStateFn(ctx, guestID, v)
}
func (m *mockPreferenceService) UpdateSecondDay(ctx context.Context, guestID string, v bool) (*models.GuestQuestionnaire, error) {
	return m.updateTriStateFn(ctx, guestID, v)
}
func (m *mockPreferenceService) UpdateSuggestedTracks(ctx context.Context, guestID string, tracks []string) (*models.GuestQuestionnaire, error) {
	return m.updateTracksFn(ctx, guestID, tracks)
}
func (m *mockPreferenceService) UpdateHouseholdTransfer(ctx context.Context, householdID string, v bool) (int64, error) {
	return m.householdBulkFn(ctx, householdID, v)
}
func (m *mockPreferenceService) UpdateHouseholdAccommodation(ctx context.Context, householdID string, v bool) (int64, error) {
	return m.householdBulkFn(ctx, householdID, v)
}
func (m *mockPreferenceService) UpdateHouseholdSecondDay(ctx context.Context, householdID string, v bool) (int64, error) {
	return m.householdBulkFn(ctx, householdID, v)
}
func (m *mockPreferenceService) ResolveInvite(ctx context.Context, token string) (*service.InvitePage, error) {
	return m.resolveInviteFn(ctx, token)
}

// --- Helpers ---

func doRequest(t *testing.T, svc service.PreferenceService, music *musicsearch.Client, method, path, body string) (*httptest.ResponseRecorder, dto.Envelope) {
	t.Helper()

	e := echo.New()
	NewGuestHandler(svc, music).RegisterRoutes(e)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env dto.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

// --- Tests ---

func TestUpdateRSVP_Handler_Success(t *testing.T) {
	attending := true
	svc := &mockPreferenceService{
		updateRSVPFn: func(ctx context.Context, guestID string, isAttending bool) (*models.Guest, error) {
			id, _ := uuid.Parse(guestID)
			return &models.Guest{ID: id, GuestName: "Anton", IsAttending: &attending}, nil
		},
	}

	rec, env := doRequest(t, svc, nil, http.MethodPut,
		"/api/v1/guests/"+uuid.NewString()+"/rsvp", `{"is_attending": true}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	data := env.Data.(map[string]any)
	assert.Equal(t, "Anton", data["guest_name"])
	assert.Equal(t, true, data["is_attending"])
}

func TestUpdateRSVP_Handler_MissingValue(t *testing.T) {
	svc := &mockPreferenceService{}

	rec, env := doRequest(t, svc, nil, http.MethodPut,
		"/api/v1/guests/"+uuid.NewString()+"/rsvp", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestUpdateRSVP_Handler_NotFound(t *testing.T) {
	svc := &mockPreferenceService{
		updateRSVPFn: func(ctx context.Context, guestID string, isAttending bool) (*models.Guest, error) {
			return nil, service.ErrGuestNotFound
		},
	}

	rec, env := doRequest(t, svc, nil, http.MethodPut,
		"/api/v1/guests/"+uuid.NewString()+"/rsvp", `{"is_attending": false}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, service.ErrGuestNotFound.Error(), env.Error)
}

func TestUpdateMenu_Handler_Success(t *testing.T) {
	svc := &mockPreferenceService{
		updateMenuFn: func(ctx context.Context, guestID string, choice *models.MenuChoice) (*models.GuestQuestionnaire, error) {
			id, _ := uuid.Parse(guestID)
			return &models.GuestQuestionnaire{GuestID: id, MenuChoice: choice}, nil
		},
	}

	rec, env := doRequest(t, svc, nil, http.MethodPut,
		"/api/v1/guests/"+uuid.NewString()+"/menu", `{"menu_choice": "fish"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	data := env.Data.(map[string]any)
	assert.Equal(t, "fish", data["menu_choice"])
}

func TestUpdateTracks_Handler_TooMany(t *testing.T) {
	svc := &mockPreferenceService{
		updateTracksFn: func(ctx context.Context, guestID string, tracks []string) (*models.GuestQuestionnaire, error) {
			return nil, service.ErrTooManyTracks
		},
	}

	rec, env := doRequest(t, svc, nil, http.MethodPut,
		"/api/v1/guests/"+uuid.NewString()+"/tracks",
		`{"suggested_tracks": ["1","2","3","4","5","6"]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrTooManyTracks.Error(), env.Error)
}

func TestUpdateHouseholdTransfer_Handler_Success(t *testing.T) {
	svc := &mockPreferenceService{
		householdBulkFn: func(ctx context.Context, householdID string, value bool) (int64, error) {
			return 3, nil
		},
	}

	rec, env := doRequest(t, svc, nil, http.MethodPut,
		"/api/v1/households/"+uuid.NewString()+"/transfer", `{"needs_transfer": true}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	data := env.Data.(map[string]any)
	assert.Equal(t, float64(3), data["updated_count"])
}

func TestUpdateHouseholdTransfer_Handler_MaskedFailure(t *testing.T) {
	svc := &mockPreferenceService{
		householdBulkFn: func(ctx context.Context, householdID string, value bool) (int64, error) {
			return 0, service.ErrPersistence
		},
	}

	rec, env := doRequest(t, svc, nil, http.MethodPut,
		"/api/v1/households/"+uuid.NewString()+"/transfer", `{"needs_transfer": true}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, service.ErrPersistence.Error(), env.Error)
}

func TestResolveInvite_Handler_MalformedToken(t *testing.T) {
	svc := &mockPreferenceService{}

	rec, env := doRequest(t, svc, nil, http.MethodGet, "/api/v1/invite/not-a-token", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
}

func TestResolveInvite_Handler_Success(t *testing.T) {
	householdID := uuid.New()
	guest := models.Guest{ID: uuid.New(), GuestName: "Anton", IsHeadOfHousehold: true, HouseholdID: householdID}
	svc := &mockPreferenceService{
		resolveInviteFn: func(ctx context.Context, token string) (*service.InvitePage, error) {
			return &service.InvitePage{
				Guest:     &guest,
				Household: &models.Household{ID: householdID, HouseholdName: "Test Family"},
				Guests:    []models.Guest{guest},
			}, nil
		},
	}

	rec, env := doRequest(t, svc, nil, http.MethodGet, "/api/v1/invite/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	data := env.Data.(map[string]any)
	assert.Equal(t, "Test Family", data["household_name"])
}

func TestMusicSearch_Handler_UpstreamFailureDegrades(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	e := echo.New()
	NewGuestHandler(&mockPreferenceService{}, musicsearch.New(upstream.URL)).RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/music-search?q=abba", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Results []musicsearch.Result `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Results)
}
