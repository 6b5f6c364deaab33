package extractor

import (
	"strconv"

	"github.com/adaptabrasil/adapta-metadata/model"
)

// FutureMilestones are projection years that are always future, whatever
// the current year
var FutureMilestones = map[string]bool{"2030": true, "2050": true}

// ClassifyYears splits year tokens into present and future sets, keeping
// source order. The NoYear sentinel and non-numeric tokens are present.
func ClassifyYears(tokens []string, currentYear int) (present, future []string) {
	for _, token := range tokens {
		if token == model.NoYear {
			present = append(present, token)
			continue
		}
		if FutureMilestones[token] {
			future = append(future, token)
			continue
		}
		year, err := strconv.Atoi(token)
		switch {
		case err != nil:
			present = append(present, token)
		case year < currentYear:
			present = append(present, token)
		default:
			future = append(future, token)
		}
	}
	return present, future
}

// RepresentativeYear returns the latest numeric present year, or NoYear
// when no present token is numeric
func RepresentativeYear(present []string) string {
	best, found := 0, false
	for _, token := range present {
		year, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		if !found || year > best {
			best, found = year, true
		}
	}
	if !found {
		return model.NoYear
	}
	return strconv.Itoa(best)
}
