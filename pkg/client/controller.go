package client

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"wedding-invite/internal/models"
	"wedding-invite/internal/validation"
)

// API is the preference surface the controller dispatches to. Implemented
// in-process by ServiceAPI or by any transport-level caller.
type API interface {
	UpdateRSVP(ctx context.Context, guestID string, isAttending bool) error
	UpdateMenu(ctx context.Context, guestID string, choice *models.MenuChoice) error
	UpdateAllergies(ctx context.Context, guestID string, allergies []models.AllergenType, other string, hasNoAllergies bool) error
	UpdateAlcohol(ctx context.Context, guestID string, prefs []models.AlcoholPreference) error
	UpdateTransfer(ctx context.Context, guestID string, needsTransfer bool) error
	UpdateAccommodation(ctx context.Context, guestID string, hasAccommodation bool) error
	UpdateSecondDay(ctx context.Context, guestID string, wantsSecondDay bool) error
	UpdateSuggestedTracks(ctx context.Context, guestID string, tracks []string) error
	UpdateHouseholdTransfer(ctx context.Context, householdID string, needsTransfer bool) error
	UpdateHouseholdAccommodation(ctx context.Context, householdID string, hasAccommodation bool) error
	UpdateHouseholdSecondDay(ctx context.Context, householdID string, wantsSecondDay bool) error
}

type slot struct {
	target string
	field  Field
}

// Controller applies user changes to the local mirror immediately, dispatches
// the matching API call without blocking, and reverts the mirror if the call
// fails. Each (target, field) slot carries a monotonic version; only the
// outcome of the latest issued request is applied, stale outcomes are dropped.
type Controller struct {
	store *Store
	api   API
	log   zerolog.Logger

	mu       sync.Mutex
	versions map[slot]uint64
	wg       sync.WaitGroup
}

func NewController(store *Store, api API, log zerolog.Logger) *Controller {
	return &Controller{
		store:    store,
		api:      api,
		log:      log,
		versions: make(map[slot]uint64),
	}
}

func (c *Controller) Store() *Store { return c.store }

// WaitIdle blocks until every dispatched request has resolved.
func (c *Controller) WaitIdle() { c.wg.Wait() }

func (c *Controller) dispatch(key slot, call func(context.Context) error, revert func()) {
	c.mu.Lock()
	c.versions[key]++
	version := c.versions[key]
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		err := call(context.Background())

		c.mu.Lock()
		stale := version != c.versions[key]
		c.mu.Unlock()
		if stale {
			return
		}
		if err != nil {
			revert()
			c.log.Error().Err(err).Str("target", key.target).Str("field", string(key.field)).Msg("update failed, reverted")
		}
	}()
}

func (c *Controller) SetRSVP(guestID string, isAttending bool) {
	prev := c.store.attendance(guestID)
	c.store.setAttendance(guestID, &isAttending)
	c.dispatch(slot{guestID, FieldRSVP},
		func(ctx context.Context) error { return c.api.UpdateRSVP(ctx, guestID, isAttending) },
		func() { c.store.setAttendance(guestID, prev) },
	)
}

func (c *Controller) SetMenu(guestID string, choice *models.MenuChoice) {
	var prev *models.MenuChoice
	if q := c.store.Questionnaire(guestID); q.MenuChoice != nil {
		m := *q.MenuChoice
		prev = &m
	}
	c.store.apply(guestID, func(q *QuestionnaireState) { q.MenuChoice = choice })
	c.dispatch(slot{guestID, FieldMenu},
		func(ctx context.Context) error { return c.api.UpdateMenu(ctx, guestID, choice) },
		func() { c.store.apply(guestID, func(q *QuestionnaireState) { q.MenuChoice = prev }) },
	)
}

// allergy mutations share one submit path: the flag/set exclusivity lives
// here on the client, the server stores whatever it is sent.

func (c *Controller) ToggleAllergen(guestID string, allergen models.AllergenType) {
	state := c.store.Questionnaire(guestID)
	found := false
	next := make([]models.AllergenType, 0, len(state.Allergies)+1)
	for _, a := range state.Allergies {
		if a == allergen {
			found = true
			continue
		}
		next = append(next, a)
	}
	if !found {
		next = append(next, allergen)
	}
	// picking an allergen contradicts the "no allergies" flag
	hasNone := state.HasNoAllergies && found
	c.submitAllergies(guestID, next, state.AllergiesOther, hasNone)
}

func (c *Controller) SetNoAllergies(guestID string, hasNoAllergies bool) {
	state := c.store.Questionnaire(guestID)
	allergies := state.Allergies
	other := state.AllergiesOther
	if hasNoAllergies {
		allergies = nil
		other = ""
	}
	c.submitAllergies(guestID, allergies, other, hasNoAllergies)
}

func (c *Controller) SetAllergiesOther(guestID string, other string) {
	state := c.store.Questionnaire(guestID)
	c.submitAllergies(guestID, state.Allergies, other, state.HasNoAllergies)
}

func (c *Controller) submitAllergies(guestID string, allergies []models.AllergenType, other string, hasNoAllergies bool) {
	prev := c.store.Questionnaire(guestID)
	c.store.apply(guestID, func(q *QuestionnaireState) {
		q.Allergies = append([]models.AllergenType(nil), allergies...)
		q.AllergiesOther = other
		q.HasNoAllergies = hasNoAllergies
	})
	c.dispatch(slot{guestID, FieldAllergies},
		func(ctx context.Context) error {
			return c.api.UpdateAllergies(ctx, guestID, allergies, other, hasNoAllergies)
		},
		func() {
			c.store.apply(guestID, func(q *QuestionnaireState) {
				q.Allergies = prev.Allergies
				q.AllergiesOther = prev.AllergiesOther
				q.HasNoAllergies = prev.HasNoAllergies
			})
		},
	)
}

// ToggleAlcohol mirrors the server exclusivity locally: picking "none" clears
// the rest, picking anything else drops "none".
func (c *Controller) ToggleAlcohol(guestID string, pref models.AlcoholPreference) {
	state := c.store.Questionnaire(guestID)
	var next []models.AlcoholPreference
	if pref == models.AlcoholNone {
		selected := len(state.AlcoholPreferences) == 1 && state.AlcoholPreferences[0] == models.AlcoholNone
		if !selected {
			next = []models.AlcoholPreference{models.AlcoholNone}
		}
	} else {
		found := false
		for _, p := range state.AlcoholPreferences {
			if p == pref {
				found = true
				continue
			}
			if p != models.AlcoholNone {
				next = append(next, p)
			}
		}
		if !found {
			next = append(next, pref)
		}
	}

	prev := state.AlcoholPreferences
	c.store.apply(guestID, func(q *QuestionnaireState) { q.AlcoholPreferences = next })
	c.dispatch(slot{guestID, FieldAlcohol},
		func(ctx context.Context) error { return c.api.UpdateAlcohol(ctx, guestID, next) },
		func() { c.store.apply(guestID, func(q *QuestionnaireState) { q.AlcoholPreferences = prev }) },
	)
}

func (c *Controller) setGuestTriState(guestID string, f Field, value bool, call func(context.Context, string, bool) error) {
	prev := c.store.triStateValue(guestID, f)
	c.store.setTriState(guestID, f, &value)
	c.dispatch(slot{guestID, f},
		func(ctx context.Context) error { return call(ctx, guestID, value) },
		func() { c.store.setTriState(guestID, f, prev) },
	)
}

func (c *Controller) SetTransfer(guestID string, v bool) {
	c.setGuestTriState(guestID, FieldTransfer, v, c.api.UpdateTransfer)
}

func (c *Controller) SetAccommodation(guestID string, v bool) {
	c.setGuestTriState(guestID, FieldAccommodation, v, c.api.UpdateAccommodation)
}

func (c *Controller) SetSecondDay(guestID string, v bool) {
	c.setGuestTriState(guestID, FieldSecondDay, v, c.api.UpdateSecondDay)
}

// setHouseholdTriState fans the optimistic write out to the mirrored attending
// guests (the UI restricts bulk actions to them) while the server call targets
// the whole household. Re-selecting the already fully selected state is a
// no-op to avoid redundant writes.
func (c *Controller) setHouseholdTriState(f Field, value bool, call func(context.Context, string, bool) error) {
	agg := c.store.Aggregate(f)
	if (value && agg.Yes) || (!value && agg.No) {
		return
	}

	attending := c.store.attendingGuests()
	prev := make(map[string]*bool, len(attending))
	for _, g := range attending {
		prev[g.ID] = c.store.triStateValue(g.ID, f)
		c.store.setTriState(g.ID, f, &value)
	}

	householdID := c.store.HouseholdID()
	c.dispatch(slot{householdID, f},
		func(ctx context.Context) error { return call(ctx, householdID, value) },
		func() {
			for id, p := range prev {
				c.store.setTriState(id, f, p)
			}
		},
	)
}

func (c *Controller) SetHouseholdTransfer(v bool) {
	c.setHouseholdTriState(FieldTransfer, v, c.api.UpdateHouseholdTransfer)
}

func (c *Controller) SetHouseholdAccommodation(v bool) {
	c.setHouseholdTriState(FieldAccommodation, v, c.api.UpdateHouseholdAccommodation)
}

func (c *Controller) SetHouseholdSecondDay(v bool) {
	c.setHouseholdTriState(FieldSecondDay, v, c.api.UpdateHouseholdSecondDay)
}

// AddTrack trims and deduplicates before submitting. Returns false when the
// entry was dropped (blank, duplicate or list full); the caller still clears
// its input either way.
func (c *Controller) AddTrack(guestID string, raw string) bool {
	track := strings.TrimSpace(raw)
	if track == "" {
		return false
	}
	state := c.store.Questionnaire(guestID)
	if len(state.SuggestedTracks) >= validation.MaxSuggestedTracks {
		return false
	}
	if validation.ContainsTrackFold(state.SuggestedTracks, track) {
		return false
	}
	c.submitTracks(guestID, append(state.SuggestedTracks, track))
	return true
}

func (c *Controller) RemoveTrack(guestID string, index int) {
	state := c.store.Questionnaire(guestID)
	if index < 0 || index >= len(state.SuggestedTracks) {
		return
	}
	next := append([]string(nil), state.SuggestedTracks[:index]...)
	next = append(next, state.SuggestedTracks[index+1:]...)
	c.submitTracks(guestID, next)
}

func (c *Controller) submitTracks(guestID string, tracks []string) {
	prev := c.store.Questionnaire(guestID).SuggestedTracks
	c.store.apply(guestID, func(q *QuestionnaireState) { q.SuggestedTracks = tracks })
	c.dispatch(slot{guestID, FieldTracks},
		func(ctx context.Context) error { return c.api.UpdateSuggestedTracks(ctx, guestID, tracks) },
		func() { c.store.apply(guestID, func(q *QuestionnaireState) { q.SuggestedTracks = prev }) },
	)
}
