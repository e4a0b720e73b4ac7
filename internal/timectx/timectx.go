// Package timectx derives the bilingual date and time facts the assistant
// reasons with: day names in English and Arabic, yesterday/tomorrow, and
// day-part flags. Everything is a pure function of the supplied clock value.
package timectx

import (
	"fmt"
	"time"
)

// DefaultTimezone is the locale every tenant business operates in.
const DefaultTimezone = "Asia/Riyadh"

var arabicDays = map[time.Weekday]string{
	time.Monday:    "الاثنين",
	time.Tuesday:   "الثلاثاء",
	time.Wednesday: "الأربعاء",
	time.Thursday:  "الخميس",
	time.Friday:    "الجمعة",
	time.Saturday:  "السبت",
	time.Sunday:    "الأحد",
}

var arabicMonths = map[time.Month]string{
	time.January:   "يناير",
	time.February:  "فبراير",
	time.March:     "مارس",
	time.April:     "أبريل",
	time.May:       "مايو",
	time.June:      "يونيو",
	time.July:      "يوليو",
	time.August:    "أغسطس",
	time.September: "سبتمبر",
	time.October:   "أكتوبر",
	time.November:  "نوفمبر",
	time.December:  "ديسمبر",
}

// Context is a snapshot of the current, previous and next day, recomputed on
// every request and never cached.
type Context struct {
	Now time.Time

	CurrentDate string
	CurrentTime string

	DayEnglish       string
	DayArabic        string
	YesterdayEnglish string
	YesterdayArabic  string
	TomorrowEnglish  string
	TomorrowArabic   string

	MonthEnglish string
	MonthArabic  string

	FormattedDate       string
	FormattedDateArabic string

	Hour        int
	IsMorning   bool
	IsAfternoon bool
	IsEvening   bool
	IsNight     bool
	IsWeekend   bool
}

// Location resolves the named timezone, falling back to a fixed UTC+3 zone
// when the tz database is unavailable (Saudi Arabia does not observe DST).
func Location(name string) *time.Location {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("AST", 3*60*60)
	}
	return loc
}

// Compute builds the time context for the given instant.
func Compute(now time.Time) Context {
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)
	hour := now.Hour()

	ctx := Context{
		Now:              now,
		CurrentDate:      now.Format("2006-01-02"),
		CurrentTime:      now.Format("3:04 PM"),
		DayEnglish:       now.Weekday().String(),
		DayArabic:        arabicDays[now.Weekday()],
		YesterdayEnglish: yesterday.Weekday().String(),
		YesterdayArabic:  arabicDays[yesterday.Weekday()],
		TomorrowEnglish:  tomorrow.Weekday().String(),
		TomorrowArabic:   arabicDays[tomorrow.Weekday()],
		MonthEnglish:     now.Month().String(),
		MonthArabic:      arabicMonths[now.Month()],
		FormattedDate:    now.Format("Monday, January 2, 2006"),
		Hour:             hour,
		IsMorning:        hour >= 6 && hour < 12,
		IsAfternoon:      hour >= 12 && hour < 17,
		IsEvening:        hour >= 17 && hour < 21,
		IsWeekend:        now.Weekday() == time.Friday || now.Weekday() == time.Saturday,
	}
	ctx.IsNight = !ctx.IsMorning && !ctx.IsAfternoon && !ctx.IsEvening
	ctx.FormattedDateArabic = fmt.Sprintf("%s، %d %s %d", ctx.DayArabic, now.Day(), ctx.MonthArabic, now.Year())
	return ctx
}

// DayPart names the bucket the current hour falls into.
func (c Context) DayPart() string {
	switch {
	case c.IsMorning:
		return "morning"
	case c.IsAfternoon:
		return "afternoon"
	case c.IsEvening:
		return "evening"
	default:
		return "night"
	}
}

// OpenNow is the coarse "typical business hours" judgment used when a tenant
// has no parseable schedule. Mirrors the 8 AM to 10 PM span common in Saudi
// retail.
func (c Context) OpenNow() bool {
	return c.Hour >= 8 && c.Hour <= 22
}
