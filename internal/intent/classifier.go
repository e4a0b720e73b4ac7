// Package intent classifies customer messages into a closed tag set using
// bilingual keyword matching. Priority and confidence live in an ordered rule
// table rather than control flow, so the ranking is data and testable.
package intent

import "strings"

const (
	IntentHoursTomorrow = "hours_tomorrow"
	IntentBooking       = "booking"
	IntentTimeQuery     = "time_query"
	IntentPricing       = "pricing"
	IntentHours         = "hours"
	IntentServices      = "services"
	IntentGeneral       = "general"
	IntentOffTopic      = "off_topic"
)

// Language tags returned by DetectLanguage.
const (
	LangArabic  = "ar"
	LangEnglish = "en"
)

// arabicLetters is the fixed letter set used for language detection. Any one
// of these present anywhere in the message selects the Arabic branch.
const arabicLetters = "أإآابتثجحخدذرزسشصضطظعغفقكلمنهويىةؤئء"

var (
	tomorrowWords = []string{"tomorrow", "غدا", "غداً", "بكرة", "بكره"}

	// openClosedWords is the "hours/open/closed" keyword class shared by the
	// hours_tomorrow conjunction and the plain hours rule.
	openClosedWords = []string{"open", "closed", "close", "hours", "ساعات", "مفتوح", "مغلق", "تفتح", "دوام"}

	bookingWords = []string{"book", "appointment", "schedule", "reserve", "حجز", "موعد", "احجز"}

	pricingWords = []string{"price", "cost", "how much", "pricing", "سعر", "أسعار", "اسعار", "كم", "تكلفة"}

	hoursWords = append([]string{"today", "اليوم"}, openClosedWords...)

	servicesWords = []string{"service", "offer", "provide", "خدمة", "خدمات", "تقدمون"}

	relativeDayWords = []string{"today", "tomorrow", "yesterday", "اليوم", "غدا", "غداً", "بكرة", "أمس", "امس"}

	greetingWords = []string{"hello", "hi", "hey", "good morning", "good evening", "مرحبا", "السلام", "أهلا", "اهلا", "صباح", "مساء"}
)

// Candidate is one matched intent with its listed confidence.
type Candidate struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// Result is the classifier output: the winner plus every rule that matched.
type Result struct {
	Intent     string      `json:"intent"`
	Confidence float64     `json:"confidence"`
	All        []Candidate `json:"all_intents,omitempty"`
}

type rule struct {
	intent     string
	confidence float64
	match      func(msg string) bool
}

// rules is ordered by priority. The winner is the matched rule with the
// highest confidence; on equal confidence the earlier rule wins, which is why
// the hours_tomorrow conjunction and booking sit ahead of time_query.
var rules = []rule{
	{IntentHoursTomorrow, 0.9, func(m string) bool {
		return containsAny(m, tomorrowWords) && containsAny(m, openClosedWords)
	}},
	{IntentBooking, 0.9, func(m string) bool {
		return containsAny(m, bookingWords)
	}},
	{IntentTimeQuery, 0.9, func(m string) bool {
		return containsAny(m, relativeDayWords) && !containsAny(m, openClosedWords)
	}},
	{IntentPricing, 0.8, func(m string) bool {
		return containsAny(m, pricingWords)
	}},
	{IntentHours, 0.8, func(m string) bool {
		return containsAny(m, hoursWords)
	}},
	{IntentServices, 0.7, func(m string) bool {
		return containsAny(m, servicesWords)
	}},
}

// Classify returns the highest-confidence intent for the message, falling back
// to general at 0.5 when nothing matches.
func Classify(message string) Result {
	msg := strings.ToLower(message)

	res := Result{Intent: IntentGeneral, Confidence: 0.5}
	for _, r := range rules {
		if !r.match(msg) {
			continue
		}
		res.All = append(res.All, Candidate{Intent: r.intent, Confidence: r.confidence})
		if r.confidence > res.Confidence {
			res.Intent = r.intent
			res.Confidence = r.confidence
		}
	}
	if len(res.All) == 0 {
		res.All = []Candidate{{Intent: IntentGeneral, Confidence: 0.5}}
	}
	return res
}

// OnTopic reports whether the message touches anything the assistant handles:
// appointments, pricing, services, hours or a plain greeting. Messages outside
// this allowlist are refused before any paid provider call.
func OnTopic(message string) bool {
	msg := strings.ToLower(message)
	for _, words := range [][]string{bookingWords, pricingWords, hoursWords, servicesWords, relativeDayWords, greetingWords} {
		if containsAny(msg, words) {
			return true
		}
	}
	return false
}

// DetectLanguage classifies the message as Arabic when it contains any Arabic
// letter, English otherwise. Mixed messages count as Arabic.
func DetectLanguage(message string) string {
	if strings.ContainsAny(message, arabicLetters) {
		return LangArabic
	}
	return LangEnglish
}

func containsAny(msg string, words []string) bool {
	for _, w := range words {
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}
