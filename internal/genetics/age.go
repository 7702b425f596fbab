package genetics

import "time"

// AgeYears returns the whole-years age at now for the given birth date,
// decremented by one when the birthday has not been reached yet in the
// current year. Uses calendar month/day comparison so leap-year birthdays
// behave the same way a wall calendar does. Never returns a negative value.
func AgeYears(birth, now time.Time) int {
	age := now.Year() - birth.Year()

	hadBirthday := now.Month() > birth.Month() ||
		(now.Month() == birth.Month() && now.Day() >= birth.Day())
	if !hadBirthday {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
