package solver

// Word lists for solver tests: hand-picked common fill words, mostly
// alphabetical runs, plus a short tail per list holding the words of
// one known fill each for the tuesday, wednesday and friday templates,
// so the tests that expect a solution have at least one to find.

var testWords3 = []string{
	"ACE", "ACT", "ADD", "AGE", "AID", "AIM", "AIR", "ALL", "AND", "ANT",
	"ANY", "APE", "ARC", "ARE", "ARK", "ARM", "ART", "ASK", "ATE", "AWE",
	"AXE", "BAD", "BAG", "BAR", "BAT", "BED", "BEE", "BET", "BIG", "BIT",
	"BOW", "BOX", "BOY", "BUD", "BUG", "BUS", "BUT", "BUY", "CAB", "CAN",
	"CAP", "CAR", "CAT", "COB", "COD", "COG", "COP", "COT", "COW", "CRY",
	"CUB", "CUD", "CUP", "CUT", "DAB", "DAD", "DAM", "DAY", "DEN", "DEW",
	"DID", "DIG", "DIM", "DIP", "DOC", "DOE", "DOG", "DOT", "DRY", "DUB",
	"DUD", "DUE", "DUG", "EAR", "EAT", "EEL", "EGG", "ELF", "ELK", "ELM",
	"EMU", "END", "ERA", "EVE", "EWE", "EYE", "FAN", "FAR", "FAT", "FAX",
	"FED", "FEE", "FEW", "FIG", "FIN", "FIR", "FIT", "FIX", "FLY", "FOB",
	"SPA", "WED", "YES",
}

var testWords4 = []string{
	"ABLE", "ACHE", "ACID", "ACRE", "AGED", "ALSO", "AMID", "ANTI", "ARCH",
	"ARMY", "ATOM", "AUTO", "BABY", "BACK", "BAKE", "BALL", "BAND", "BANK",
	"BARK", "BARN", "BASE", "BATH", "BEAR", "BEAT", "BEEN", "BEER", "BELL",
	"BELT", "BEND", "BENT", "BEST", "BETA", "BIKE", "BILL", "BIND", "BIRD",
	"BITE", "BLOW", "BLUE", "BOAT", "BODY", "BOIL", "BOLD", "BOLT", "BOMB",
	"BOND", "BONE", "BOOK", "BOOM", "BOOT", "BORN", "BOSS", "BOTH", "BOWL",
	"BRAG", "BREW", "BUCK", "BULB", "BULK", "BULL", "BUMP", "BURN", "BURY",
	"BUSH", "BUSY", "CAFE", "CAGE", "CAKE", "CALF", "CALL", "CALM", "CAME",
	"CAMP", "CARD", "CARE", "CART", "CASE", "CASH", "CAST", "CAVE", "CELL",
	"CHEF", "CHEW", "CHIP", "CHOP", "CITY", "CLAM", "CLAP", "CLAW", "CLAY",
	"PINE",
}

var testWords5 = []string{
	"ABOUT", "ABOVE", "ACTOR", "ADAPT", "ADMIT", "ADOPT", "ADULT", "AFTER",
	"AGAIN", "AGENT", "AGREE", "AHEAD", "ALARM", "ALBUM", "ALERT", "ALIEN",
	"ALIGN", "ALIKE", "ALIVE", "ALLEY", "ALLOW", "ALONE", "ALONG", "ALPHA",
	"ALTER", "AMONG", "ANGEL", "ANGER", "ANGLE", "ANGRY", "APART", "APPLE",
	"APPLY", "ARENA", "ARGUE", "ARISE", "ARMOR", "AROMA", "ARRAY", "ARROW",
	"ASIDE", "ASSET", "ATLAS", "AUDIO", "AUDIT", "AVOID", "AWAIT", "AWAKE",
	"AWARD", "AWARE", "BADLY", "BAKER", "BASIC", "BASIN", "BASIS", "BATCH",
	"BEACH", "BEARD", "BEAST", "BEGAN", "BEGIN", "BEING", "BELLY", "BELOW",
	"BENCH", "BERRY", "BIBLE", "BLACK", "BLADE", "BLAME", "BLANK", "BLAST",
	"BLAZE", "BLEED", "BLEND", "BLESS", "BLIND", "BLOCK", "BLOOD", "BLOOM",
	"CRATE", "EATEN", "HOTEL", "IRATE", "RATED", "RHINO", "SHORE", "TOTES",
}

// Crossword fill conventionally treats 2-letter answers as a small
// closed set; this one is hand-picked.
var testWords2 = []string{
	"AM", "AN", "AS", "AT", "AX", "BE", "BY", "DO", "GO", "HA",
	"HE", "HI", "IF", "IN", "IS", "IT", "MA", "ME", "MY", "NO",
	"OF", "OH", "ON", "OR", "OW", "OX", "SO", "TO", "UP", "US",
	"WE", "AH", "EM", "EN", "ER", "LA", "TI",
}

func tierWords(lengths ...int) map[int][]string {
	all := map[int][]string{
		2: testWords2,
		3: testWords3,
		4: testWords4,
		5: testWords5,
	}
	out := make(map[int][]string, len(lengths))
	for _, l := range lengths {
		out[l] = all[l]
	}
	return out
}
