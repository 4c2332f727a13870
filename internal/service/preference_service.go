package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"wedding-invite/internal/models"
	"wedding-invite/internal/repository"
	"wedding-invite/internal/validation"
)

var (
	ErrInvalidReference = errors.New("invalid guest or household id")
	ErrInvalidValue     = errors.New("invalid value")
	ErrGuestNotFound    = errors.New("guest not found")
	ErrHouseholdEmpty   = errors.New("household has no guests")
	ErrTooManyTracks    = errors.New("no more than 5 tracks allowed")

	// ErrPersistence masks any unexpected infrastructure failure behind a
	// single user-facing message. The cause is logged for operators only.
	ErrPersistence = errors.New("something went wrong, please try again")
)

// InvitePage is the landing payload resolved from a guest's invite token.
type InvitePage struct {
	Guest          *models.Guest
	Household      *models.Household
	Guests         []models.Guest
	Questionnaires []models.GuestQuestionnaire
}

// PreferenceService exposes one state-transition operation per preference
// dimension, applied per-guest or bulk per-household. Every operation is an
// atomic upsert and idempotent; identity resolution (token to guest) is
// assumed already performed upstream.
type PreferenceService interface {
	UpdateRSVP(ctx context.Context, guestID string, isAttending bool) (*models.Guest, error)
	UpdateMenu(ctx context.Context, guestID string, choice *models.MenuChoice) (*models.GuestQuestionnaire, error)
	UpdateAllergies(ctx context.Context, guestID string, allergies []models.AllergenType, other string, hasNoAllergies bool) (*models.GuestQuestionnaire, error)
	UpdateAlcohol(ctx context.Context, guestID string, prefs []models.AlcoholPreference) (*models.GuestQuestionnaire, error)
	UpdateTransfer(ctx context.Context, guestID string, needsTransfer bool) (*models.GuestQuestionnaire, error)
	UpdateAccommodation(ctx context.Context, guestID string, hasAccommodation bool) (*models.GuestQuestionnaire, error)
	UpdateSecondDay(ctx context.Context, guestID string, wantsSecondDay bool) (*models.GuestQuestionnaire, error)
	UpdateSuggestedTracks(ctx context.Context, guestID string, tracks []string) (*models.GuestQuestionnaire, error)

	UpdateHouseholdTransfer(ctx context.Context, householdID string, needsTransfer bool) (int64, error)
	UpdateHouseholdAccommodation(ctx context.Context, householdID string, hasAccommodation bool) (int64, error)
	UpdateHouseholdSecondDay(ctx context.Context, householdID string, wantsSecondDay bool) (int64, error)

	ResolveInvite(ctx context.Context, token string) (*InvitePage, error)
}

// Publisher emits preference-change notifications. A nil publisher disables
// messaging.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

type preferenceService struct {
	guestRepo     repository.GuestRepository
	householdRepo repository.HouseholdRepository
	qRepo         repository.QuestionnaireRepository
	publisher     Publisher
	log           zerolog.Logger
}

func NewPreferenceService(
	guestRepo repository.GuestRepository,
	householdRepo repository.HouseholdRepository,
	qRepo repository.QuestionnaireRepository,
	publisher Publisher,
	log zerolog.Logger,
) PreferenceService {
	return &preferenceService{
		guestRepo:     guestRepo,
		householdRepo: householdRepo,
		qRepo:         qRepo,
		publisher:     publisher,
		log:           log,
	}
}

func (s *preferenceService) masked(op string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg("persistence failure")
	return ErrPersistence
}

func (s *preferenceService) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		s.log.Error().Err(err).Str("routing_key", routingKey).Msg("publish failed")
	}
}

func (s *preferenceService) UpdateRSVP(ctx context.Context, guestID string, isAttending bool) (*models.Guest, error) {
	id, err := validation.ParseReference(guestID)
	if err != nil {
		return nil, ErrInvalidReference
	}

	guest, err := s.guestRepo.UpdateAttendance(ctx, id, isAttending)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, s.masked("rsvp", err)
	}

	s.publish("rsvp.updated", map[string]any{
		"guest_id":     guest.ID,
		"guest_name":   guest.GuestName,
		"is_attending": isAttending,
	})
	return guest, nil
}

// upsert validates the guest reference and patches the questionnaire, masking
// infrastructure errors. Shared by every single-guest questionnaire operation.
func (s *preferenceService) upsert(ctx context.Context, op, guestID string, fields map[string]any) (*models.GuestQuestionnaire, error) {
	id, err := validation.ParseReference(guestID)
	if err != nil {
		return nil, ErrInvalidReference
	}
	q, err := s.qRepo.UpsertFields(ctx, id, fields)
	if err != nil {
		return nil, s.masked(op, err)
	}
	return q, nil
}

func (s *preferenceService) UpdateMenu(ctx context.Context, guestID string, choice *models.MenuChoice) (*models.GuestQuestionnaire, error) {
	if !validation.IsValidMenuChoice(choice) {
		return nil, ErrInvalidValue
	}
	var value any
	if choice != nil {
		value = string(*choice)
	}
	return s.upsert(ctx, "menu", guestID, map[string]any{"menu_choice": value})
}

// UpdateAllergies stores the allergen set, free text and the "no allergies"
// flag exactly as given. Reconciling the flag against the set is a client-side
// policy, not enforced here.
func (s *preferenceService) UpdateAllergies(ctx context.Context, guestID string, allergies []models.AllergenType, other string, hasNoAllergies bool) (*models.GuestQuestionnaire, error) {
	list := make(pq.StringArray, 0, len(allergies))
	for _, a := range allergies {
		if !validation.IsValidAllergen(a) {
			return nil, ErrInvalidValue
		}
		list = append(list, string(a))
	}
	return s.upsert(ctx, "allergies", guestID, map[string]any{
		"allergies":        list,
		"allergies_other":  strings.TrimSpace(other),
		"has_no_allergies": hasNoAllergies,
	})
}

func (s *preferenceService) UpdateAlcohol(ctx context.Context, guestID string, prefs []models.AlcoholPreference) (*models.GuestQuestionnaire, error) {
	for _, p := range prefs {
		if !validation.IsValidAlcoholPreference(p) {
			return nil, ErrInvalidValue
		}
	}
	normalized := validation.NormalizeAlcohol(prefs)
	list := make(pq.StringArray, 0, len(normalized))
	for _, p := range normalized {
		list = append(list, string(p))
	}
	return s.upsert(ctx, "alcohol", guestID, map[string]any{"alcohol_preferences": list})
}

func (s *preferenceService) UpdateTransfer(ctx context.Context, guestID string, needsTransfer bool) (*models.GuestQuestionnaire, error) {
	return s.upsert(ctx, "transfer", guestID, map[string]any{"needs_transfer": needsTransfer})
}

func (s *preferenceService) UpdateAccommodation(ctx context.Context, guestID string, hasAccommodation bool) (*models.GuestQuestionnaire, error) {
	return s.upsert(ctx, "accommodation", guestID, map[string]any{"has_accommodation": hasAccommodation})
}

func (s *preferenceService) UpdateSecondDay(ctx context.Context, guestID string, wantsSecondDay bool) (*models.GuestQuestionnaire, error) {
	return s.upsert(ctx, "second_day", guestID, map[string]any{"wants_second_day": wantsSecondDay})
}

// UpdateSuggestedTracks rejects raw input above the cap before any cleaning,
// then stores the trimmed, non-empty entries. Deduplication is left to the
// client.
func (s *preferenceService) UpdateSuggestedTracks(ctx context.Context, guestID string, tracks []string) (*models.GuestQuestionnaire, error) {
	if len(tracks) > validation.MaxSuggestedTracks {
		return nil, ErrTooManyTracks
	}
	return s.upsert(ctx, "tracks", guestID, map[string]any{
		"suggested_tracks": pq.StringArray(validation.CleanTracks(tracks)),
	})
}

// bulkUpsert fans one field write out to every guest in the household,
// regardless of attendance status.
func (s *preferenceService) bulkUpsert(ctx context.Context, op, householdID string, fields map[string]any) (int64, error) {
	id, err := validation.ParseReference(householdID)
	if err != nil {
		return 0, ErrInvalidReference
	}

	guests, err := s.guestRepo.FindByHousehold(ctx, id)
	if err != nil {
		return 0, s.masked(op, err)
	}
	if len(guests) == 0 {
		return 0, ErrHouseholdEmpty
	}

	guestIDs := make([]uuid.UUID, len(guests))
	for i, g := range guests {
		guestIDs[i] = g.ID
	}

	count, err := s.qRepo.BulkUpsertFields(ctx, guestIDs, fields)
	if err != nil {
		return 0, s.masked(op, err)
	}

	s.publish("questionnaire.updated", map[string]any{
		"household_id":  id,
		"op":            op,
		"updated_count": count,
	})
	return count, nil
}

func (s *preferenceService) UpdateHouseholdTransfer(ctx context.Context, householdID string, needsTransfer bool) (int64, error) {
	return s.bulkUpsert(ctx, "household_transfer", householdID, map[string]any{"needs_transfer": needsTransfer})
}

func (s *preferenceService) UpdateHouseholdAccommodation(ctx context.Context, householdID string, hasAccommodation bool) (int64, error) {
	return s.bulkUpsert(ctx, "household_accommodation", householdID, map[string]any{"has_accommodation": hasAccommodation})
}

func (s *preferenceService) UpdateHouseholdSecondDay(ctx context.Context, householdID string, wantsSecondDay bool) (int64, error) {
	return s.bulkUpsert(ctx, "household_second_day", householdID, map[string]any{"wants_second_day": wantsSecondDay})
}

func (s *preferenceService) ResolveInvite(ctx context.Context, token string) (*InvitePage, error) {
	if _, err := validation.ParseReference(token); err != nil {
		return nil, ErrInvalidReference
	}

	guest, err := s.guestRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, s.masked("invite", err)
	}

	household, err := s.householdRepo.FindByID(ctx, guest.HouseholdID)
	if err != nil {
		return nil, s.masked("invite", err)
	}

	guests, err := s.guestRepo.FindByHousehold(ctx, guest.HouseholdID)
	if err != nil {
		return nil, s.masked("invite", err)
	}

	guestIDs := make([]uuid.UUID, len(guests))
	for i, g := range guests {
		guestIDs[i] = g.ID
	}
	questionnaires, err := s.qRepo.FindByGuestIDs(ctx, guestIDs)
	if err != nil {
		return nil, s.masked("invite", err)
	}

	return &InvitePage{
		Guest:          guest,
		Household:      household,
		Guests:         guests,
		Questionnaires: questionnaires,
	}, nil
}
