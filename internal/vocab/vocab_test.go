package vocab

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolsNonEmpty(t *testing.T) {
	pools := map[string][]string{
		"NavalRanks":           NavalRanks,
		"NonCommissionedRanks": NonCommissionedRanks,
		"MilitaryUnits":        MilitaryUnits,
		"MessageOpenings":      MessageOpenings,
		"SignalSystems":        SignalSystems,
		"CommunicationTerms":   CommunicationTerms,
		"SubmarineTerms":       SubmarineTerms,
		"NavigationTerms":      NavigationTerms,
		"WeatherTerms":         WeatherTerms,
		"CombatTerms":          CombatTerms,
		"CommandTerms":         CommandTerms,
		"AlertTerms":           AlertTerms,
		"Vessels":              Vessels,
		"ActionVerbs":          ActionVerbs,
		"Positions":            Positions,
		"GridSquares":          GridSquares,
		"TimeExpressions":      TimeExpressions,
		"WindDirections":       WindDirections,
	}

	for name, pool := range pools {
		assert.NotEmpty(t, pool, "pool %s", name)
		for _, entry := range pool {
			assert.NotEmpty(t, entry, "pool %s has a blank entry", name)
		}
	}
}

func TestGridSquaresFollowNavalGridFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z]{2}\d{2}$`)
	for _, grid := range GridSquares {
		assert.Regexp(t, pattern, grid)
	}
}

func TestWindDirectionsAreTransmissible(t *testing.T) {
	// Wind directions go into templates verbatim, so they must already be
	// plain A-Z with no umlauts for the normalizer to keep them whole.
	pattern := regexp.MustCompile(`^[A-Z]+$`)
	for _, dir := range WindDirections {
		assert.Regexp(t, pattern, dir)
	}
}

func TestWeatherPhenomenaAllowsCalmConditions(t *testing.T) {
	// The empty entry stands for "nothing to report" and must stay.
	assert.Contains(t, WeatherPhenomena, "")
}

func TestTemplatesRenderWithoutStrayVerbs(t *testing.T) {
	weather := fmt.Sprintf(WeatherTemplate, "AL", 5, 30, -4, 12, "NORDWEST", 6, 1013, "NEBEL")
	assert.Equal(t,
		"WETTERKURZSIGNAL QUADRAT AL 0530UHR -4GRAD 12KM NORDWEST 6 1013 NEBEL",
		weather)
	assert.NotContains(t, weather, "%!")

	position := fmt.Sprintf(PositionTemplate, "BF", 23, 7, 271, 14)
	assert.Equal(t, "STANDORT QUADRAT BF 2307UHR KURS 271 GESCHWINDIGKEIT 14", position)

	sighting := fmt.Sprintf(SightingTemplate, "ZERSTOERER", 3, "QUADRAT XD", 0, 0, 90, 9)
	assert.Equal(t,
		"FEINDSICHTUNG ZERSTOERER 3 QUADRAT XD 0000UHR KURS 90 GESCHWINDIGKEIT 9",
		sighting)
}
