package lexicon

// seedTeams covers all thirty franchises with the provider's numeric ids.
var seedTeams = []Team{
	{Name: "Atlanta Hawks", Nickname: "hawks", Abbrev: "ATL", ID: "1610612737"},
	{Name: "Boston Celtics", Nickname: "celtics", Abbrev: "BOS", ID: "1610612738"},
	{Name: "Cleveland Cavaliers", Nickname: "cavaliers", Abbrev: "CLE", ID: "1610612739"},
	{Name: "New Orleans Pelicans", Nickname: "pelicans", Abbrev: "NOP", ID: "1610612740"},
	{Name: "Chicago Bulls", Nickname: "bulls", Abbrev: "CHI", ID: "1610612741"},
	{Name: "Dallas Mavericks", Nickname: "mavericks", Abbrev: "DAL", ID: "1610612742"},
	{Name: "Denver Nuggets", Nickname: "nuggets", Abbrev: "DEN", ID: "1610612743"},
	{Name: "Golden State Warriors", Nickname: "warriors", Abbrev: "GSW", ID: "1610612744"},
	{Name: "Houston Rockets", Nickname: "rockets", Abbrev: "HOU", ID: "1610612745"},
	{Name: "Los Angeles Clippers", Nickname: "clippers", Abbrev: "LAC", ID: "1610612746"},
	{Name: "Los Angeles Lakers", Nickname: "lakers", Abbrev: "LAL", ID: "1610612747"},
	{Name: "Miami Heat", Nickname: "heat", Abbrev: "MIA", ID: "1610612748"},
	{Name: "Milwaukee Bucks", Nickname: "bucks", Abbrev: "MIL", ID: "1610612749"},
	{Name: "Minnesota Timberwolves", Nickname: "timberwolves", Abbrev: "MIN", ID: "1610612750"},
	{Name: "Brooklyn Nets", Nickname: "nets", Abbrev: "BKN", ID: "1610612751"},
	{Name: "New York Knicks", Nickname: "knicks", Abbrev: "NYK", ID: "1610612752"},
	{Name: "Orlando Magic", Nickname: "magic", Abbrev: "ORL", ID: "1610612753"},
	{Name: "Indiana Pacers", Nickname: "pacers", Abbrev: "IND", ID: "1610612754"},
	{Name: "Philadelphia 76ers", Nickname: "sixers", Abbrev: "PHI", ID: "1610612755"},
	{Name: "Phoenix Suns", Nickname: "suns", Abbrev: "PHX", ID: "1610612756"},
	{Name: "Portland Trail Blazers", Nickname: "blazers", Abbrev: "POR", ID: "1610612757"},
	{Name: "Sacramento Kings", Nickname: "kings", Abbrev: "SAC", ID: "1610612758"},
	{Name: "San Antonio Spurs", Nickname: "spurs", Abbrev: "SAS", ID: "1610612759"},
	{Name: "Oklahoma City Thunder", Nickname: "thunder", Abbrev: "OKC", ID: "1610612760"},
	{Name: "Toronto Raptors", Nickname: "raptors", Abbrev: "TOR", ID: "1610612761"},
	{Name: "Utah Jazz", Nickname: "jazz", Abbrev: "UTA", ID: "1610612762"},
	{Name: "Memphis Grizzlies", Nickname: "grizzlies", Abbrev: "MEM", ID: "1610612763"},
	{Name: "Washington Wizards", Nickname: "wizards", Abbrev: "WAS", ID: "1610612764"},
	{Name: "Detroit Pistons", Nickname: "pistons", Abbrev: "DET", ID: "1610612765"},
	{Name: "Charlotte Hornets", Nickname: "hornets", Abbrev: "CHA", ID: "1610612766"},
}
