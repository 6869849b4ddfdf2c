package lexicon

// defaultDrugs lists the psychiatric medications the extractor scans for.
// Order matters: extracted mentions are reported in this order.
var defaultDrugs = []string{
	"sertraline", "fluoxetine", "mirtazapine", "lamotrigine", "atomoxetine",
	"alprazolam", "aripiprazole", "trazodone", "gabapentin", "prazosin",
	"donepezil", "bupropion", "quetiapine", "lithium", "divalproex",
	"clonazepam", "duloxetine", "ziprasidone", "buspirone",
}

// defaultRules is the ordered correction table of mis-transcriptions observed
// in dictation transcripts, plus brand names mapped to their generics and
// dosage-unit spellings folded to "mg". Order matters; see Lexicon.Rules.
var defaultRules = []Rule{
	{From: "surgery line", To: "sertraline"},
	{From: "sertralene", To: "sertraline"},
	{From: "surtraline", To: "sertraline"},
	{From: "certralean", To: "sertraline"},
	{From: "sertralin", To: "sertraline"},
	{From: "zertraline", To: "sertraline"},

	{From: "fluoxitine", To: "fluoxetine"},
	{From: "fluoxetene", To: "fluoxetine"},
	{From: "fluoxetin", To: "fluoxetine"},
	{From: "prozak", To: "fluoxetine"},
	{From: "fluoxeteen", To: "fluoxetine"},

	{From: "metasopene", To: "mirtazapine"},
	{From: "tumour tazepine", To: "mirtazapine"},
	{From: "mirtazapin", To: "mirtazapine"},

	{From: "area pippula", To: "aripiprazole"},
	{From: "arypiprazol", To: "aripiprazole"},
	{From: "aripiprazol", To: "aripiprazole"},
	{From: "abilify", To: "aripiprazole"},
	{From: "abilifi", To: "aripiprazole"},

	{From: "at-emoxeteen", To: "atomoxetine"},
	{From: "atomoxetin", To: "atomoxetine"},

	{From: "l-prasilum", To: "alprazolam"},
	{From: "alprazolim", To: "alprazolam"},

	{From: "trasodone", To: "trazodone"},

	{From: "prazes in", To: "prazosin"},
	{From: "prasas in", To: "prazosin"},

	{From: "nepazel", To: "donepezil"},
	{From: "denepazol", To: "donepezil"},

	{From: "bupropian", To: "bupropion"},
	{From: "bipropion", To: "bupropion"},
	{From: "bupropin", To: "bupropion"},
	{From: "wellbutrin", To: "bupropion"},

	{From: "quesia peen", To: "quetiapine"},
	{From: "quisiopine", To: "quetiapine"},
	{From: "quetiapin", To: "quetiapine"},
	{From: "seroquel", To: "quetiapine"},

	{From: "devil proxodium", To: "divalproex"},
	{From: "divalprog", To: "divalproex"},
	{From: "depakote", To: "divalproex"},

	{From: "clonazepen", To: "clonazepam"},

	{From: "duoxeteen", To: "duloxetine"},
	{From: "duloxetin", To: "duloxetine"},
	{From: "cymbalta", To: "duloxetine"},

	{From: "limotrigine", To: "lamotrigine"},
	{From: "lamotrigin", To: "lamotrigine"},
	{From: "lamictal", To: "lamotrigine"},

	// Dosage unit spellings.
	{From: "mgs", To: "mg"},
	{From: "mg's", To: "mg"},
	{From: "milligrams", To: "mg"},
	{From: "milligram", To: "mg"},
}
