package engine

import (
	"fmt"
	"strings"

	"github.com/marhaba-ai/backend/internal/intent"
	"github.com/marhaba-ai/backend/internal/timectx"
)

// descriptionPrefixLen bounds how much free-text description the templates
// quote back to the customer.
const descriptionPrefixLen = 100

// offTopicReply is the fixed refusal used by the pre-provider guard.
func offTopicReply(lang string) string {
	if lang == intent.LangArabic {
		return "عذراً، يمكنني المساعدة فقط في المواعيد والخدمات والأسعار وساعات العمل."
	}
	return "Sorry, I can only help with appointments, services, pricing, and business hours."
}

// FallbackResponse generates a deterministic, template-based reply with no
// external calls. It is a pure function of its arguments: identical inputs
// always yield identical output.
func FallbackResponse(message string, profile BusinessProfile, intentTag string, tc timectx.Context) string {
	name := profile.Name
	if name == "" {
		name = defaultBusinessName
	}
	lang := intent.DetectLanguage(message)
	desc := descriptionPrefix(profile.Description)

	switch intentTag {
	case intent.IntentBooking:
		if lang == intent.LangArabic {
			return fmt.Sprintf("مرحباً بك في %s! يسعدني مساعدتك في حجز موعد. اليوم هو %s ولدينا مواعيد متاحة، ما الوقت المناسب لك؟", name, tc.DayArabic)
		}
		return fmt.Sprintf("Welcome to %s! I can help you book an appointment. Today is %s and we have availability. What time works best for you?", name, tc.DayEnglish)

	case intent.IntentHours, intent.IntentHoursTomorrow:
		dayEN := tc.DayEnglish
		dayAR := tc.DayArabic
		if intentTag == intent.IntentHoursTomorrow {
			dayEN = tc.TomorrowEnglish
			dayAR = tc.TomorrowArabic
		}
		open := descriptionMentionsDay(profile.Description, dayEN)
		if lang == intent.LangArabic {
			if open {
				return fmt.Sprintf("نعم، %s مفتوح يوم %s. %s", name, dayAR, hoursLine(profile, lang))
			}
			return fmt.Sprintf("لا، %s مغلق يوم %s. %s", name, dayAR, hoursLine(profile, lang))
		}
		if open {
			return fmt.Sprintf("Yes, %s is open on %s. %s", name, dayEN, hoursLine(profile, lang))
		}
		return fmt.Sprintf("No, %s is closed on %s. %s", name, dayEN, hoursLine(profile, lang))

	case intent.IntentPricing:
		if desc != "" {
			if lang == intent.LangArabic {
				return fmt.Sprintf("أسعارنا في %s: %s. هل تريد حجز موعد؟", name, desc)
			}
			return fmt.Sprintf("Our pricing at %s: %s. Would you like to book an appointment?", name, desc)
		}
		if lang == intent.LangArabic {
			return fmt.Sprintf("أسعارنا في %s تنافسية جداً. تواصل معنا لمعرفة سعر خدمة معينة.", name)
		}
		return fmt.Sprintf("Our prices at %s are very competitive. Contact us for the price of a specific service.", name)

	case intent.IntentServices:
		if desc != "" {
			if lang == intent.LangArabic {
				return fmt.Sprintf("نقدم في %s: %s. كيف يمكنني مساعدتك؟", name, desc)
			}
			return fmt.Sprintf("At %s we offer: %s. How can I help you?", name, desc)
		}
		if lang == intent.LangArabic {
			return fmt.Sprintf("نقدم في %s خدمات شاملة. كيف يمكنني مساعدتك؟", name)
		}
		return fmt.Sprintf("At %s, we offer a full range of services. How can I help you?", name)

	case intent.IntentTimeQuery:
		if lang == intent.LangArabic {
			return fmt.Sprintf("اليوم هو %s (%s)، وغداً %s (%s).", tc.DayArabic, tc.DayEnglish, tc.TomorrowArabic, tc.TomorrowEnglish)
		}
		return fmt.Sprintf("Today is %s (%s) and tomorrow is %s (%s).", tc.DayEnglish, tc.DayArabic, tc.TomorrowEnglish, tc.TomorrowArabic)

	case intent.IntentOffTopic:
		return offTopicReply(lang)

	default:
		if lang == intent.LangArabic {
			return fmt.Sprintf("مرحباً بك في %s! كيف يمكنني مساعدتك اليوم؟ يمكنني المساعدة في حجز المواعيد والأسعار وساعات العمل.", name)
		}
		return fmt.Sprintf("Welcome to %s! How can I help you today? I can assist with appointments, pricing, and business hours.", name)
	}
}

// descriptionMentionsDay is the crude open/closed judgment: the first three
// letters of the English day name matched against the lowercased description.
// Known weak (a description containing "Monthly" matches "mon"); kept as-is
// for compatibility with the established behavior.
func descriptionMentionsDay(description, dayEnglish string) bool {
	if len(dayEnglish) < 3 {
		return false
	}
	abbrev := strings.ToLower(dayEnglish[:3])
	return strings.Contains(strings.ToLower(description), abbrev)
}

func descriptionPrefix(description string) string {
	runes := []rune(strings.TrimSpace(description))
	if len(runes) > descriptionPrefixLen {
		runes = runes[:descriptionPrefixLen]
	}
	return strings.TrimSpace(string(runes))
}

func hoursLine(profile BusinessProfile, lang string) string {
	if strings.TrimSpace(profile.Hours) != "" {
		if lang == intent.LangArabic {
			return fmt.Sprintf("ساعات العمل: %s", profile.Hours)
		}
		return fmt.Sprintf("Our hours: %s", profile.Hours)
	}
	if lang == intent.LangArabic {
		return "تواصل معنا لمعرفة ساعات العمل."
	}
	return "Contact us for our working hours."
}
