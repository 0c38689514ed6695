package wordlist

import "strings"

// fallbackWords is a small built-in dictionary used when the network
// fetch in Provider.fetch fails and no cache exists yet, so the
// generator has something to work with before its first successful
// frequency-file fetch.
var fallbackWords = map[int][]string{
	2: {
		"AM", "AN", "AS", "AT", "AX", "BE", "BY", "DO", "GO", "HA",
		"HE", "HI", "IF", "IN", "IS", "IT", "MA", "ME", "MY", "NO",
		"OF", "OH", "ON", "OR", "OW", "OX", "SO", "TO", "UP", "US", "WE",
	},
	3: {
		"ACE", "ACT", "ADD", "AGE", "AID", "AIM", "AIR", "ALL", "AND", "ANT",
		"ANY", "APE", "ARC", "ARE", "ARK", "ARM", "ART", "ASK", "ATE", "AWE",
		"AXE", "BAD", "BAG", "BAR", "BAT", "BED", "BEE", "BET", "BIG", "BIT",
		"BOW", "BOX", "BOY", "BUD", "BUG", "BUS", "BUT", "BUY", "CAB", "CAN",
		"CAP", "CAR", "CAT", "COB", "COD", "COG", "COP", "COT", "COW", "CRY",
	},
	4: {
		"ABLE", "ACHE", "ACID", "ACRE", "AGED", "ALSO", "AMID", "ANTI", "ARCH",
		"ARMY", "ATOM", "AUTO", "BABY", "BACK", "BAKE", "BALL", "BAND", "BANK",
		"BARK", "BARN", "BASE", "BATH", "BEAR", "BEAT", "BEEN", "BEER", "BELL",
		"BELT", "BEND", "BENT", "BEST", "BETA", "BIKE", "BILL", "BIND", "BIRD",
	},
	5: {
		"ABOUT", "ABOVE", "ACTOR", "ADAPT", "ADMIT", "ADOPT", "ADULT", "AFTER",
		"AGAIN", "AGENT", "AGREE", "AHEAD", "ALARM", "ALBUM", "ALERT", "ALIEN",
		"ALIGN", "ALIKE", "ALIVE", "ALLEY", "ALLOW", "ALONE", "ALONG", "ALPHA",
		"ALTER", "AMONG", "ANGEL", "ANGER", "ANGLE", "ANGRY", "APART", "APPLE",
	},
}

// Fallback returns a Wordlist built from the built-in word set, scored
// uniformly high so fallback words are treated as high-confidence fill.
func Fallback() *Wordlist {
	wl := &Wordlist{ByLength: make(map[int][]Word)}
	for length, words := range fallbackWords {
		for _, w := range words {
			wl.ByLength[length] = append(wl.ByLength[length], Word{
				Text:  strings.ToUpper(w),
				Score: 85,
			})
		}
	}
	return wl
}
