package locale

import "strings"

// Default is used whenever a request carries no language code.
const Default = "en"

// Supported language codes, matching the product's locale tables.
var Supported = []string{"en", "lg", "sw", "run"}

var greetings = map[string]string{
	"en":  "Hello! I'm MindMate, your compassionate mental health companion. How are you feeling today?",
	"lg":  "Mbalamusizza! Nze MindMate, mukwano gwo akufaako mu by'obulamu bw'omwoyo. Otya leero?",
	"sw":  "Habari! Mimi ni MindMate, mwenzako mwenye huruma kwa afya ya akili. Unajisikiaje leo?",
	"run": "Oraire ota! Ndi MindMate, omuhwezi waawe akufaaho aha by'oburungi bw'obwongo. Orire ota erizooba?",
}

var crisisWarnings = map[string]string{
	"en":  "I'm really concerned about what you've shared. Your feelings are valid, but I want to make sure you get the support you need right now. Please consider reaching out to an emergency line - they have trained professionals who can help.",
	"lg":  "Ndi mweraliikirivu nnyo olw'ebyo by'ogambye. Enneewulira yo ntegeerekeka, naye njagala okakasa nti ofuna obuyambi bw'owetaagawo. Funa abakugu mu kuyamba abali mu bizibu.",
	"sw":  "Nina wasiwasi sana kuhusu ulichoshiriki. Hisia zako ni halali, lakini nataka kuhakikisha unapata usaidizi unaohitaji sasa hivi. Tafadhali fikiria kuwasiliana na nambari ya dharura - wana wataalamu waliofunzwa wanaoweza kusaidia.",
	"run": "Ninyeraliikirira munonga ahabw'ebyo ebi wagambire. Okucondooza kwaawe nikwetegyerezibwa, kwonka ninyenda kuhakikisha ngu nobona obuhwezi obu orikwenda hati. Tekereza okusherura abakugu omu kuhwera abari omu bizibu.",
}

var fallbacks = map[string]string{
	"en":  "I'm having a little trouble connecting right now. Please try again in a moment.",
	"lg":  "Wabaddewo ensobi. Gezaako nate.",
	"sw":  "Kosa limetokea. Tafadhali jaribu tena.",
	"run": "Habayemo enshobe. Gezaho bundi.",
}

// EmergencyContacts are surfaced alongside every escalation.
var EmergencyContacts = map[string]string{
	"uganda":        "+256 800 100 200",
	"international": "+1 988 988 988",
}

func lookup(table map[string]string, language string) string {
	code := strings.ToLower(strings.TrimSpace(language))
	if text, ok := table[code]; ok {
		return text
	}
	return table[Default]
}

// Greeting is the synthesized first message of a fresh session.
func Greeting(language string) string { return lookup(greetings, language) }

// CrisisWarning is the local safety message shown when the keyword detector
// fires but the responder did not flag its own reply.
func CrisisWarning(language string) string { return lookup(crisisWarnings, language) }

// Fallback replaces the assistant reply when the responder call fails.
func Fallback(language string) string { return lookup(fallbacks, language) }
