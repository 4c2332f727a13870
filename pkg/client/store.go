package client

import (
	"sync"

	"wedding-invite/internal/models"
)

// Field names a mutable preference dimension. Each (target, field) pair owns
// one in-flight request slot in the controller.
type Field string

const (
	FieldRSVP          Field = "rsvp"
	FieldMenu          Field = "menu"
	FieldAllergies     Field = "allergies"
	FieldAlcohol       Field = "alcohol"
	FieldTransfer      Field = "transfer"
	FieldAccommodation Field = "accommodation"
	FieldSecondDay     Field = "second_day"
	FieldTracks        Field = "tracks"
)

type GuestState struct {
	ID                string
	Name              string
	IsHeadOfHousehold bool
	IsAttending       *bool
}

type QuestionnaireState struct {
	MenuChoice         *models.MenuChoice
	Allergies          []models.AllergenType
	AllergiesOther     string
	HasNoAllergies     bool
	AlcoholPreferences []models.AlcoholPreference
	NeedsTransfer      *bool
	HasAccommodation   *bool
	WantsSecondDay     *bool
	SuggestedTracks    []string
}

func (q *QuestionnaireState) triState(f Field) **bool {
	switch f {
	case FieldTransfer:
		return &q.NeedsTransfer
	case FieldAccommodation:
		return &q.HasAccommodation
	case FieldSecondDay:
		return &q.WantsSecondDay
	}
	return nil
}

func (q *QuestionnaireState) clone() *QuestionnaireState {
	cp := *q
	cp.Allergies = append([]models.AllergenType(nil), q.Allergies...)
	cp.AlcoholPreferences = append([]models.AlcoholPreference(nil), q.AlcoholPreferences...)
	cp.SuggestedTracks = append([]string(nil), q.SuggestedTracks...)
	return &cp
}

// Store is the client-side mirror of guest and questionnaire state. The
// controller mutates it optimistically and heals it when a request fails.
type Store struct {
	mu             sync.RWMutex
	householdID    string
	guests         []*GuestState
	questionnaires map[string]*QuestionnaireState
}

func NewStore(householdID string, guests []GuestState) *Store {
	s := &Store{
		householdID:    householdID,
		questionnaires: make(map[string]*QuestionnaireState),
	}
	for i := range guests {
		g := guests[i]
		s.guests = append(s.guests, &g)
	}
	return s
}

func (s *Store) HouseholdID() string { return s.householdID }

// SetQuestionnaire seeds the mirror from server state, typically on page load.
func (s *Store) SetQuestionnaire(guestID string, q QuestionnaireState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questionnaires[guestID] = q.clone()
}

func (s *Store) Guest(guestID string) (GuestState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.guests {
		if g.ID == guestID {
			return *g, true
		}
	}
	return GuestState{}, false
}

func (s *Store) Guests() []GuestState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]GuestState, len(s.guests))
	for i, g := range s.guests {
		out[i] = *g
	}
	return out
}

// Questionnaire returns a copy of the guest's mirrored questionnaire, or zero
// state if no preference has been recorded yet.
func (s *Store) Questionnaire(guestID string) QuestionnaireState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if q, ok := s.questionnaires[guestID]; ok {
		return *q.clone()
	}
	return QuestionnaireState{}
}

// ensure must be called with the write lock held. The mirror creates the
// questionnaire lazily, matching the server's upsert-on-first-write.
func (s *Store) ensure(guestID string) *QuestionnaireState {
	if q, ok := s.questionnaires[guestID]; ok {
		return q
	}
	q := &QuestionnaireState{}
	s.questionnaires[guestID] = q
	return q
}

func (s *Store) attendance(guestID string) *bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.guests {
		if g.ID == guestID {
			return copyBool(g.IsAttending)
		}
	}
	return nil
}

func (s *Store) setAttendance(guestID string, v *bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.guests {
		if g.ID == guestID {
			g.IsAttending = copyBool(v)
			return
		}
	}
}

func (s *Store) triStateValue(guestID string, f Field) *bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questionnaires[guestID]
	if !ok {
		return nil
	}
	return copyBool(*q.triState(f))
}

func (s *Store) setTriState(guestID string, f Field, v *bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.ensure(guestID).triState(f) = copyBool(v)
}

func (s *Store) apply(guestID string, mutate func(*QuestionnaireState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutate(s.ensure(guestID))
}

func (s *Store) attendingGuests() []GuestState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []GuestState
	for _, g := range s.guests {
		if g.IsAttending != nil && *g.IsAttending {
			out = append(out, *g)
		}
	}
	return out
}

// Toggle is the aggregate display state of a household-wide yes/no control.
// Both flags can be false at once when guests disagree or are unset.
type Toggle struct {
	Yes bool
	No  bool
}

// Aggregate computes the bulk-toggle display for transfer, accommodation or
// second-day across attending guests: Yes if any is true, No only if every
// one is explicitly false.
func (s *Store) Aggregate(f Field) Toggle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	anyYes := false
	allNo := true
	seen := false
	for _, g := range s.guests {
		if g.IsAttending == nil || !*g.IsAttending {
			continue
		}
		seen = true
		var v *bool
		if q, ok := s.questionnaires[g.ID]; ok {
			v = *q.triState(f)
		}
		switch {
		case v == nil:
			allNo = false
		case *v:
			anyYes = true
			allNo = false
		}
	}
	if !seen {
		return Toggle{}
	}
	return Toggle{Yes: anyYes, No: !anyYes && allNo}
}

func copyBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	b := *v
	return &b
}
