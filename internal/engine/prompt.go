package engine

import (
	"fmt"
	"strings"

	"github.com/marhaba-ai/backend/internal/timectx"
)

// buildSystemPrompt renders the system instruction for the pinned provider:
// business identity, computed time context, and the response-style rules. The
// result is never empty; a missing business name falls back to a placeholder.
func buildSystemPrompt(profile BusinessProfile, tc timectx.Context) string {
	name := profile.Name
	if name == "" {
		name = defaultBusinessName
	}

	status := "Closed"
	if tc.OpenNow() {
		status = "Open"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an intelligent AI assistant for %s, a business in Saudi Arabia.\n\n", name)

	fmt.Fprintf(&b, "CURRENT DATE & TIME:\n")
	fmt.Fprintf(&b, "- Today is %s (%s)\n", tc.FormattedDate, tc.DayArabic)
	fmt.Fprintf(&b, "- Current time: %s (%s)\n", tc.CurrentTime, tc.DayPart())
	fmt.Fprintf(&b, "- Yesterday was %s (%s)\n", tc.YesterdayEnglish, tc.YesterdayArabic)
	fmt.Fprintf(&b, "- Tomorrow will be %s (%s)\n", tc.TomorrowEnglish, tc.TomorrowArabic)
	if tc.IsWeekend {
		fmt.Fprintf(&b, "- Today is part of the Saudi weekend (Friday/Saturday)\n")
	}
	fmt.Fprintf(&b, "- Business status: %s (typical hours)\n\n", status)

	fmt.Fprintf(&b, "BUSINESS INFORMATION:\n")
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Description: %s\n", profile.Description)
	fmt.Fprintf(&b, "Hours: %s\n\n", profile.Hours)

	b.WriteString(`INSTRUCTIONS:
- Respond in the same language the customer uses (Arabic or English)
- Keep every answer to at most 2 sentences
- When asked about "today" refer to ` + tc.DayEnglish + `, and about "tomorrow" to ` + tc.TomorrowEnglish + `
- When asked whether the business is open or closed, give a direct yes or no first, then elaborate
- For appointment requests, suggest concrete available times
- When the description mentions specific prices, quote them exactly
- Be professional, helpful and culturally appropriate

EXAMPLES:
Customer: Are you open today?
Assistant: Yes, we are open today (` + tc.DayEnglish + `). Would you like to book a time?

Customer: كم سعر الكشف؟
Assistant: سعر الكشف عندنا حسب الخدمة الموضحة في الوصف. هل تود حجز موعد؟

Customer: I want to book an appointment
Assistant: Of course, we have times available on ` + tc.DayEnglish + ` afternoon and evening. Which suits you?`)

	return b.String()
}
