package validation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"wedding-invite/internal/models"
)

func TestParseReference(t *testing.T) {
	_, err := ParseReference(uuid.NewString())
	assert.NoError(t, err)

	_, err = ParseReference("12345")
	assert.Error(t, err)
}

func TestIsValidMenuChoice(t *testing.T) {
	for _, m := range []models.MenuChoice{models.MenuMeat, models.MenuFish, models.MenuVegetarian, models.MenuKids} {
		choice := m
		assert.True(t, IsValidMenuChoice(&choice), string(m))
	}
	assert.True(t, IsValidMenuChoice(nil), "nil means unanswered")

	bad := models.MenuChoice("steak")
	assert.False(t, IsValidMenuChoice(&bad))
}

func TestNormalizeAlcohol(t *testing.T) {
	tests := []struct {
		name  string
		input []models.AlcoholPreference
		want  []models.AlcoholPreference
	}{
		{
			name:  "none wins over everything",
			input: []models.AlcoholPreference{models.AlcoholWine, models.AlcoholNone, models.AlcoholSpirits},
			want:  []models.AlcoholPreference{models.AlcoholNone},
		},
		{
			name:  "combination without none kept",
			input: []models.AlcoholPreference{models.AlcoholWine, models.AlcoholChampagne},
			want:  []models.AlcoholPreference{models.AlcoholWine, models.AlcoholChampagne},
		},
		{
			name:  "empty stays empty",
			input: nil,
			want:  []models.AlcoholPreference{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAlcohol(tt.input))
		})
	}
}

func TestCleanTracks(t *testing.T) {
	got := CleanTracks([]string{" one ", "", "two", "   ", "three"})
	assert.Equal(t, []string{"one", "two", "three"}, got)

	// truncates to the cap after dropping blanks
	got = CleanTracks([]string{"1", "2", "3", "4", "5", "6"})
	assert.Len(t, got, MaxSuggestedTracks)
}

func TestContainsTrackFold(t *testing.T) {
	tracks := []string{"ABBA — Waterloo"}
	assert.True(t, ContainsTrackFold(tracks, "abba — waterloo"))
	assert.False(t, ContainsTrackFold(tracks, "ABBA — SOS"))
}
