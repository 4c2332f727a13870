package client

import (
	"context"

	"wedding-invite/internal/models"
	"wedding-invite/internal/service"
)

// ServiceAPI adapts the in-process preference service to the controller's API.
// The controller only needs success or failure; result payloads are dropped.
type ServiceAPI struct {
	svc service.PreferenceService
}

func NewServiceAPI(svc service.PreferenceService) *ServiceAPI {
	return &ServiceAPI{svc: svc}
}

func (a *ServiceAPI) UpdateRSVP(ctx context.Context, guestID string, isAttending bool) error {
	_, err := a.svc.UpdateRSVP(ctx, guestID, isAttending)
	return err
}

func (a *ServiceAPI) UpdateMenu(ctx context.Context, guestID string, choice *models.MenuChoice) error {
	_, err := a.svc.UpdateMenu(ctx, guestID, choice)
	return err
}

func (a *ServiceAPI) UpdateAllergies(ctx context.Context, guestID string, allergies []models.AllergenType, other string, hasNoAllergies bool) error {
	_, err := a.svc.UpdateAllergies(ctx, guestID, allergies, other, hasNoAllergies)
	return err
}

func (a *ServiceAPI) UpdateAlcohol(ctx context.Context, guestID string, prefs []models.AlcoholPreference) error {
	_, err := a.svc.UpdateAlcohol(ctx, guestID, prefs)
	return err
}

func (a *ServiceAPI) UpdateTransfer(ctx context.Context, guestID string, needsTransfer bool) error {
	_, err := a.svc.UpdateTransfer(ctx, guestID, needsTransfer)
	return err
}

func (a *ServiceAPI) UpdateAccommodation(ctx context.Context, guestID string, hasAccommodation bool) error {
	_, err := a.svc.UpdateAccommodation(ctx, guestID, hasAccommodation)
	return err
}

func (a *ServiceAPI) UpdateSecondDay(ctx context.Context, guestID string, wantsSecondDay bool) error {
	_, err := a.svc.UpdateSecondDay(ctx, guestID, wantsSecondDay)
	return err
}

func (a *ServiceAPI) UpdateSuggestedTracks(ctx context.Context, guestID string, tracks []string) error {
	_, err := a.svc.UpdateSuggestedTracks(ctx, guestID, tracks)
	return err
}

func (a *ServiceAPI) UpdateHouseholdTransfer(ctx context.Context, householdID string, needsTransfer bool) error {
	_, err := a.svc.UpdateHouseholdTransfer(ctx, householdID, needsTransfer)
	return err
}

func (a *ServiceAPI) UpdateHouseholdAccommodation(ctx context.Context, householdID string, hasAccommodation bool) error {
	_, err := a.svc.UpdateHouseholdAccommodation(ctx, householdID, hasAccommodation)
	return err
}

func (a *ServiceAPI) UpdateHouseholdSecondDay(ctx context.Context, householdID string, wantsSecondDay bool) error {
	_, err := a.svc.UpdateHouseholdSecondDay(ctx, householdID, wantsSecondDay)
	return err
}
