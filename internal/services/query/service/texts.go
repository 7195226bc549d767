package service

import "sahayak/internal/core/langtag"

// Static response templates, keyed by base language. These payloads are
// served on failure paths where the translation capability may itself
// be down, so they never go through Translate
var (
	retryPromptText = map[string]string{
		"en": "I could not hear your question clearly. Please try asking again.",
		"hi": "मैं आपका प्रश्न ठीक से सुन नहीं पाई। कृपया फिर से पूछें।",
	}
	noMatchText = map[string]string{
		"en": "I could not find any welfare schemes matching your question.",
		"hi": "आपके प्रश्न से मेल खाने वाली कोई कल्याण योजना नहीं मिली।",
	}
	timeoutText = map[string]string{
		"en": "This is taking longer than expected. Please try again in a moment.",
		"hi": "इसमें अपेक्षा से अधिक समय लग रहा है। कृपया थोड़ी देर बाद पुनः प्रयास करें।",
	}
	unavailableText = map[string]string{
		"en": "The service is temporarily unavailable. Please try again shortly.",
		"hi": "सेवा अस्थायी रूप से अनुपलब्ध है। कृपया थोड़ी देर बाद पुनः प्रयास करें।",
	}
	guidanceText = map[string]string{
		"en": "You appear to be eligible. You can apply at your nearest Common Service Centre or through the scheme portal.",
		"hi": "आप पात्र प्रतीत होते हैं। आप अपने निकटतम जन सेवा केंद्र या योजना पोर्टल के माध्यम से आवेदन कर सकते हैं।",
	}
)

func localized(m map[string]string, language string) string {
	if s, ok := m[langtag.Base(language)]; ok {
		return s
	}
	return m["en"]
}
