package teams

// aliases maps lowercase team names, nicknames, city names, and common
// abbreviations to canonical codes. Multi-word aliases are listed alongside
// their shorter forms; matching is whole-word so "boston red sox" and
// "red sox" both resolve without partial hits inside other words.
var aliases = map[string]string{
	// los angeles angels
	"los angeles angels":            "ana",
	"los angeles angels of anaheim": "ana",
	"anaheim angels":                "ana",
	"angels":                        "ana",
	"cal":                           "ana",
	"laa":                           "ana",
	"ana":                           "ana",

	// arizona diamondbacks
	"arizona diamondbacks": "ari",
	"diamondbacks":         "ari",
	"arizona":              "ari",
	"ari":                  "ari",

	// atlanta braves
	"atlanta braves": "atl",
	"braves":         "atl",
	"atlanta":        "atl",
	"atl":            "atl",

	// baltimore orioles
	"baltimore orioles": "bal",
	"orioles":           "bal",
	"baltimore":         "bal",
	"bal":               "bal",

	// boston red sox
	"boston red sox": "bos",
	"red sox":        "bos",
	"boston":         "bos",
	"bos":            "bos",

	// chicago cubs
	"chicago cubs": "chn",
	"cubs":         "chn",
	"chc":          "chn",
	"chn":          "chn",

	// chicago white sox
	"chicago white sox": "cha",
	"white sox":         "cha",
	"chw":               "cha",
	"cws":               "cha",
	"cha":               "cha",

	// cincinnati reds
	"cincinnati reds": "cin",
	"reds":            "cin",
	"cincinnati":      "cin",
	"cin":             "cin",

	// cleveland indians / guardians
	"cleveland indians":   "cle",
	"cleveland guardians": "cle",
	"indians":             "cle",
	"guardians":           "cle",
	"cleveland":           "cle",
	"cle":                 "cle",

	// colorado rockies
	"colorado rockies": "col",
	"rockies":          "col",
	"colorado":         "col",
	"col":              "col",

	// detroit tigers
	"detroit tigers": "det",
	"tigers":         "det",
	"detroit":        "det",
	"det":            "det",

	// houston astros
	"houston astros": "hou",
	"astros":         "hou",
	"houston":        "hou",
	"hou":            "hou",

	// kansas city royals
	"kansas city royals": "kca",
	"royals":             "kca",
	"kansas city":        "kca",
	"kc":                 "kca",
	"kca":                "kca",

	// los angeles dodgers
	"los angeles dodgers": "lan",
	"dodgers":             "lan",
	"la":                  "lan",
	"lad":                 "lan",
	"lan":                 "lan",

	// miami marlins / florida marlins
	"miami marlins":   "mia",
	"florida marlins": "mia",
	"marlins":         "mia",
	"miami":           "mia",
	"fla":             "mia",
	"flo":             "mia",
	"mia":             "mia",

	// milwaukee brewers
	"milwaukee brewers": "mil",
	"brewers":           "mil",
	"milwaukee":         "mil",
	"mil":               "mil",

	// minnesota twins
	"minnesota twins": "min",
	"twins":           "min",
	"minnesota":       "min",
	"min":             "min",

	// montreal expos
	"montreal expos": "mon",
	"montreal":       "mon",
	"expos":          "mon",
	"mon":            "mon",

	// new york mets
	"new york mets": "nyn",
	"mets":          "nyn",
	"nym":           "nyn",
	"nyn":           "nyn",

	// new york yankees
	"new york yankees": "nya",
	"yankees":          "nya",
	"nyy":              "nya",
	"nya":              "nya",

	// oakland athletics
	"oakland athletics": "oak",
	"athletics":         "oak",
	"oakland":           "oak",
	"oak":               "oak",

	// philadelphia phillies
	"philadelphia phillies": "phi",
	"phillies":              "phi",
	"philadelphia":          "phi",
	"phi":                   "phi",

	// pittsburgh pirates
	"pittsburgh pirates": "pit",
	"pirates":            "pit",
	"pittsburgh":         "pit",
	"pit":                "pit",

	// san diego padres
	"san diego padres": "sdn",
	"padres":           "sdn",
	"san diego":        "sdn",
	"sd":               "sdn",
	"sdn":              "sdn",

	// san francisco giants
	"san francisco giants": "sfn",
	"giants":               "sfn",
	"san francisco":        "sfn",
	"sf":                   "sfn",
	"sfn":                  "sfn",

	// seattle mariners
	"seattle mariners": "sea",
	"mariners":         "sea",
	"seattle":          "sea",
	"sea":              "sea",

	// st. louis cardinals
	"st. louis cardinals": "sln",
	"cardinals":           "sln",
	"st. louis":           "sln",
	"stl":                 "sln",
	"sln":                 "sln",

	// tampa bay rays / devil rays
	"tampa bay rays":       "tba",
	"tampa bay devil rays": "tba",
	"rays":                 "tba",
	"tampa bay":            "tba",
	"tb":                   "tba",
	"tba":                  "tba",

	// texas rangers
	"texas rangers": "tex",
	"rangers":       "tex",
	"texas":         "tex",
	"tex":           "tex",

	// toronto blue jays
	"toronto blue jays": "tor",
	"blue jays":         "tor",
	"toronto":           "tor",
	"tor":               "tor",

	// washington nationals
	"washington nationals": "was",
	"nationals":            "was",
	"washington":           "was",
	"wsh":                  "was",
	"was":                  "was",
}
