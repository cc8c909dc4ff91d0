package simplify

import (
	"regexp"
	"strings"
)

type substitution struct {
	re   *regexp.Regexp
	with string
}

// plainWords maps complex words to simpler ones. Order matters: earlier
// replacements run first.
var plainWords = compileWordMap([][2]string{
	{"utilize", "use"},
	{"approximately", "about"},
	{"assistance", "help"},
	{"commence", "start"},
	{"demonstrate", "show"},
	{"numerous", "many"},
	{"require", "need"},
	{"terminate", "end"},
	{"additional", "more"},
	{"facilitate", "help"},
	{"implement", "start"},
	{"objective", "goal"},
	{"participate", "join"},
	{"purchase", "buy"},
	{"remainder", "rest"},
	{"sufficient", "enough"},
	{"terminology", "words"},
	{"utilization", "use"},
	{"verify", "check"},
	{"acquire", "get"},
	{"conclude", "end"},
	{"construct", "build"},
	{"determine", "find"},
	{"establish", "set up"},
	{"indicate", "show"},
	{"observe", "see"},
	{"obtain", "get"},
	{"possess", "have"},
	{"prioritize", "rank"},
	{"reside", "live"},
	{"select", "choose"},
	{"transmit", "send"},
	{"undertake", "do"},
})

var fillerPhrases = compilePhrases([]string{
	"it is important to note that",
	"it should be noted that",
	"in order to",
	"due to the fact that",
	"with regard to",
	"with respect to",
	"in the process of",
	"at this point in time",
	"for the purpose of",
	"in the event that",
})

var (
	relativeClauseRes = []*regexp.Regexp{
		regexp.MustCompile(`, which [^,]+,`),
		regexp.MustCompile(`, that [^,]+,`),
	}
	abilityPhrases = []string{"is able to", "has the ability to", "is capable of"}

	passiveSingularRe = regexp.MustCompile(`(\w+) is (\w+)ed by`)
	passivePluralRe   = regexp.MustCompile(`(\w+) are (\w+)ed by`)
)

func compileWordMap(pairs [][2]string) []substitution {
	out := make([]substitution, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, substitution{
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p[0]) + `\b`),
			with: p[1],
		})
	}
	return out
}

func compilePhrases(phrases []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(phrases))
	for _, p := range phrases {
		out = append(out, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(p)))
	}
	return out
}

// Rewrite simplifies one sentence: plain-word substitution, then the
// level's structural rewrite, then filler removal. Whitespace left behind
// by removals is not collapsed.
func Rewrite(sentence string, level Level) string {
	s := replacePlainWords(sentence)
	switch level.Key {
	case Heavy.Key:
		s = rewriteHeavy(s)
	case Medium.Key:
		s = rewriteMedium(s)
	}
	s = removeFillers(s)
	return strings.TrimSpace(s)
}

func replacePlainWords(s string) string {
	for _, sub := range plainWords {
		s = sub.re.ReplaceAllLiteralString(s, sub.with)
	}
	return s
}

// rewriteHeavy drops ", which ...," / ", that ...," clauses and shortens
// ability phrases to "can". Matching is case-sensitive.
func rewriteHeavy(s string) string {
	for _, re := range relativeClauseRes {
		s = re.ReplaceAllLiteralString(s, "")
	}
	for _, p := range abilityPhrases {
		s = strings.ReplaceAll(s, p, "can")
	}
	return s
}

// rewriteMedium is a crude passive-to-active rewrite: "X is Ved by"
// becomes "V Xs" and "X are Ved by" becomes "V X". It misfires on plenty of
// sentences and is kept that way on purpose.
func rewriteMedium(s string) string {
	s = passiveSingularRe.ReplaceAllString(s, "${2} ${1}s")
	s = passivePluralRe.ReplaceAllString(s, "${2} ${1}")
	return s
}

func removeFillers(s string) string {
	for _, re := range fillerPhrases {
		s = re.ReplaceAllLiteralString(s, "")
	}
	return s
}
