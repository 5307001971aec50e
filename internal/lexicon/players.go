package lexicon

// seedPlayers is the shipped player table. IDs are the provider's numeric
// player ids; Rank reflects search popularity.
var seedPlayers = []Player{
	{Name: "LeBron James", ID: "2544", Rank: 1, Aliases: []string{"lebron", "bron", "king james", "the king"}},
	{Name: "Stephen Curry", ID: "201939", Rank: 2, Aliases: []string{"steph", "curry", "chef curry"}},
	{Name: "Giannis Antetokounmpo", ID: "203507", Rank: 3, Aliases: []string{"giannis", "greek freak"}},
	{Name: "Kevin Durant", ID: "201142", Rank: 4, Aliases: []string{"kd", "durant", "slim reaper"}},
	{Name: "Nikola Jokic", ID: "203999", Rank: 5, Aliases: []string{"jokic", "joker"}},
	{Name: "Luka Doncic", ID: "1629029", Rank: 6, Aliases: []string{"luka", "doncic"}},
	{Name: "Jayson Tatum", ID: "1628369", Rank: 7, Aliases: []string{"tatum"}},
	{Name: "Joel Embiid", ID: "203954", Rank: 8, Aliases: []string{"embiid", "the process"}},
	{Name: "Shai Gilgeous-Alexander", ID: "1628983", Rank: 9, Aliases: []string{"shai", "sga"}},
	{Name: "Victor Wembanyama", ID: "1641705", Rank: 10, Aliases: []string{"wemby", "wembanyama"}},
	{Name: "Anthony Edwards", ID: "1630162", Rank: 11, Aliases: []string{"ant", "antman"}},
	{Name: "Ja Morant", ID: "1629630", Rank: 12, Aliases: []string{"morant"}},
	{Name: "Kyrie Irving", ID: "202681", Rank: 13, Aliases: []string{"kyrie", "uncle drew"}},
	{Name: "James Harden", ID: "201935", Rank: 14, Aliases: []string{"harden", "the beard"}},
	{Name: "Damian Lillard", ID: "203081", Rank: 15, Aliases: []string{"dame", "lillard", "dame time"}},
	{Name: "Devin Booker", ID: "1626164", Rank: 16, Aliases: []string{"booker", "book"}},
	{Name: "Anthony Davis", ID: "203076", Rank: 17, Aliases: []string{"ad", "the brow"}},
	{Name: "Jimmy Butler", ID: "202710", Rank: 18, Aliases: []string{"butler", "jimmy buckets"}},
	{Name: "Kawhi Leonard", ID: "202695", Rank: 19, Aliases: []string{"kawhi", "the claw"}},
	{Name: "Russell Westbrook", ID: "201566", Rank: 20, Aliases: []string{"russ", "westbrook", "brodie"}},
	{Name: "Paul George", ID: "202331", Rank: 21, Aliases: []string{"pg", "pg13"}},
	{Name: "Klay Thompson", ID: "202691", Rank: 22, Aliases: []string{"klay"}},
	{Name: "Draymond Green", ID: "203110", Rank: 23, Aliases: []string{"draymond"}},
	{Name: "Zion Williamson", ID: "1629627", Rank: 24, Aliases: []string{"zion"}},
	{Name: "Trae Young", ID: "1629027", Rank: 25, Aliases: []string{"trae", "ice trae"}},
	{Name: "Donovan Mitchell", ID: "1628378", Rank: 26, Aliases: []string{"spida"}},
	{Name: "De'Aaron Fox", ID: "1628368", Rank: 27, Aliases: []string{"fox", "swipa"}},
	{Name: "Domantas Sabonis", ID: "1627734", Rank: 28, Aliases: []string{"sabonis"}},
	{Name: "Karl-Anthony Towns", ID: "1626157", Rank: 29, Aliases: []string{"kat", "towns"}},
	{Name: "Rudy Gobert", ID: "203497", Rank: 30, Aliases: []string{"gobert", "stifle tower"}},
	{Name: "Bam Adebayo", ID: "1628389", Rank: 31, Aliases: []string{"bam"}},
	{Name: "Jalen Brunson", ID: "1628973", Rank: 32, Aliases: []string{"brunson"}},
	{Name: "Tyrese Haliburton", ID: "1630169", Rank: 33, Aliases: []string{"haliburton", "hali"}},
	{Name: "Paolo Banchero", ID: "1631094", Rank: 34, Aliases: []string{"paolo"}},
	{Name: "Chris Paul", ID: "101108", Rank: 35, Aliases: []string{"cp3", "point god"}},
	{Name: "Kobe Bryant", ID: "977", Rank: 36, Aliases: []string{"kobe", "black mamba", "mamba"}},
	{Name: "Michael Jordan", ID: "893", Rank: 37, Aliases: []string{"mj", "jordan", "air jordan"}},
	{Name: "Shaquille O'Neal", ID: "406", Rank: 38, Aliases: []string{"shaq", "diesel"}},
	{Name: "Tim Duncan", ID: "1495", Rank: 39, Aliases: []string{"duncan", "big fundamental"}},
	{Name: "Dwyane Wade", ID: "2548", Rank: 40, Aliases: []string{"wade", "flash", "d-wade"}},
	{Name: "Dirk Nowitzki", ID: "1717", Rank: 41, Aliases: []string{"dirk"}},
	{Name: "Allen Iverson", ID: "947", Rank: 42, Aliases: []string{"iverson", "the answer", "ai"}},
	{Name: "Kevin Garnett", ID: "708", Rank: 43, Aliases: []string{"kg", "garnett", "big ticket"}},
	{Name: "Vince Carter", ID: "1713", Rank: 44, Aliases: []string{"vince", "vinsanity", "half man half amazing"}},
	{Name: "Carmelo Anthony", ID: "2546", Rank: 45, Aliases: []string{"melo"}},
	{Name: "Derrick Rose", ID: "201565", Rank: 46, Aliases: []string{"drose"}},
	{Name: "Blake Griffin", ID: "201933", Rank: 47, Aliases: []string{"blake"}},
	{Name: "DeMar DeRozan", ID: "201942", Rank: 48, Aliases: []string{"derozan", "deebo"}},
	{Name: "Bradley Beal", ID: "203078", Rank: 49, Aliases: []string{"beal"}},
	{Name: "Zach LaVine", ID: "203897", Rank: 50, Aliases: []string{"lavine"}},
}
