package tools

// DefaultDictionary maps lowercase English phrases and words to lowercase German.
var DefaultDictionary = map[string]string{
	// greetings
	"hello":          "hallo",
	"good morning":   "guten morgen",
	"good afternoon": "guten tag",
	"good evening":   "guten abend",
	"good night":     "gute nacht",
	"goodbye":        "auf wiedersehen",
	"bye":            "tschüss",

	// phrases
	"thank you":       "danke",
	"please":          "bitte",
	"excuse me":       "entschuldigung",
	"sorry":           "es tut mir leid",
	"yes":             "ja",
	"no":              "nein",
	"how are you":     "wie geht es dir",
	"have a nice day": "hab einen schönen tag",
	"see you later":   "bis später",

	// words
	"water":    "wasser",
	"food":     "essen",
	"house":    "haus",
	"car":      "auto",
	"book":     "buch",
	"dog":      "hund",
	"cat":      "katze",
	"friend":   "freund",
	"family":   "familie",
	"love":     "liebe",
	"sunshine": "sonnenschein",
	"moon":     "mond",
	"star":     "stern",
	"flower":   "blume",
	"tree":     "baum",

	// numbers
	"one":   "eins",
	"two":   "zwei",
	"three": "drei",
	"four":  "vier",
	"five":  "fünf",
	"six":   "sechs",
	"seven": "sieben",
	"eight": "acht",
	"nine":  "neun",
	"ten":   "zehn",

	// time
	"today":     "heute",
	"tomorrow":  "morgen",
	"yesterday": "gestern",
	"time":      "zeit",
	"hour":      "stunde",
	"minute":    "minute",

	// colours
	"red":    "rot",
	"blue":   "blau",
	"green":  "grün",
	"yellow": "gelb",
	"black":  "schwarz",
	"white":  "weiß",
}
