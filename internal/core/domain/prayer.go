package domain

import "errors"

var ErrInvalidPrayer = errors.New("invalid prayer name")

// Prayer identifies one of the five daily prayers. The empty value means
// the record belongs to a plain habit rather than the prayer set.
type Prayer string

const (
	PrayerFajr    Prayer = "fajr"
	PrayerDhuhr   Prayer = "dhuhr"
	PrayerAsr     Prayer = "asr"
	PrayerMaghrib Prayer = "maghrib"
	PrayerIsha    Prayer = "isha"

	PrayerNone Prayer = ""
)

// AllPrayers lists the five prayers in chronological order of the day.
var AllPrayers = []Prayer{PrayerFajr, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha}

// PrayersPerDay is the number of completion slots a fully logged
// prayer day contributes to rate denominators.
const PrayersPerDay = 5

func (p Prayer) Valid() bool {
	switch p {
	case PrayerFajr, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha:
		return true
	}
	return false
}

func ParsePrayer(s string) (Prayer, error) {
	p := Prayer(s)
	if !p.Valid() {
		return PrayerNone, ErrInvalidPrayer
	}
	return p, nil
}
