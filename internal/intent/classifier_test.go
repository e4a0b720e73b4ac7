package intent

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"booking english", "I want to book an appointment", IntentBooking},
		{"booking arabic", "أريد حجز موعد", IntentBooking},
		{"pricing english", "how much does a cleaning cost", IntentPricing},
		{"pricing arabic", "كم سعر التنظيف؟", IntentPricing},
		{"hours english", "are you open today", IntentHours},
		{"hours arabic", "هل أنتم مفتوحين اليوم؟", IntentHours},
		{"services english", "what services do you offer", IntentServices},
		{"services arabic", "ما هي الخدمات المتوفرة؟", IntentServices},
		{"time query", "what day is it today", IntentTimeQuery},
		{"general greeting", "hello there", IntentGeneral},
		{"empty", "", IntentGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.message)
			if got.Intent != tt.want {
				t.Errorf("Classify(%q).Intent = %q, want %q", tt.message, got.Intent, tt.want)
			}
		})
	}
}

func TestClassifyHoursTomorrowConjunction(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		// Both halves present selects the conjunction regardless of language mix.
		{"are you open tomorrow", IntentHoursTomorrow},
		{"هل تفتحون بكرة؟", IntentHoursTomorrow},
		{"مفتوح غدا؟", IntentHoursTomorrow},
		// Tomorrow alone, without an open/closed word, is a time query.
		{"what will tomorrow be", IntentTimeQuery},
		// Open/closed alone, without a day word, is plain hours.
		{"are you open", IntentHours},
	}
	for _, tt := range tests {
		got := Classify(tt.message)
		if got.Intent != tt.want {
			t.Errorf("Classify(%q).Intent = %q, want %q", tt.message, got.Intent, tt.want)
		}
	}
}

func TestClassifyBookingBeatsTimeQuery(t *testing.T) {
	// Both rules match at 0.9; booking sits earlier in the table and must win.
	got := Classify("I want to book an appointment tomorrow at 5")
	if got.Intent != IntentBooking {
		t.Errorf("Intent = %q, want %q", got.Intent, IntentBooking)
	}
	if got.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", got.Confidence)
	}
	if len(got.All) < 2 {
		t.Errorf("All = %v, want booking and time_query both listed", got.All)
	}
}

func TestClassifyTodayAlone(t *testing.T) {
	// "today" without an open/closed word is a time query, not hours.
	got := Classify("today")
	if got.Intent != IntentTimeQuery {
		t.Errorf("Intent = %q, want %q", got.Intent, IntentTimeQuery)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"hello", LangEnglish},
		{"مرحبا", LangArabic},
		{"hello مرحبا mixed", LangArabic},
		{"", LangEnglish},
		{"12345 !?", LangEnglish},
		{"كم السعر for a haircut", LangArabic},
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.message); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestOnTopic(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"I want to book an appointment", true},
		{"how much is a haircut", true},
		{"are you open on friday", true},
		{"مرحبا", true},
		{"hello", true},
		{"what day is it today", true},
		{"tell me about the weather in paris", false},
		{"who won the football match", false},
		{"اكتب لي قصيدة عن البحر", false},
	}
	for _, tt := range tests {
		if got := OnTopic(tt.message); got != tt.want {
			t.Errorf("OnTopic(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	got := Classify("BOOK AN APPOINTMENT")
	if got.Intent != IntentBooking {
		t.Errorf("Intent = %q, want %q", got.Intent, IntentBooking)
	}
}
