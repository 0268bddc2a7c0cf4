// Package numwords converts non-negative integers to words in the
// languages an invoice document can select (en, pl). It backs the
// "amount in words" line of the payment totals section.
package numwords

import (
	"fmt"
	"strings"
)

// Convert spells out n in the given language ("en" or "pl"). Negative
// values and unsupported languages are rejected; amounts above 999
// billion exceed every document limit and are rejected as well.
func Convert(n int64, language string) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("numwords: negative amount %d", n)
	}
	if n > 999_999_999_999 {
		return "", fmt.Errorf("numwords: amount %d out of range", n)
	}
	switch language {
	case "en":
		return english(n), nil
	case "pl":
		return polish(n), nil
	default:
		return "", fmt.Errorf("numwords: unsupported language %q", language)
	}
}

// ── English ───────────────────────────────────────────────────────────

var enOnes = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen",
}

var enTens = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
	"eighty", "ninety",
}

var enScales = []string{"", "thousand", "million", "billion"}

func english(n int64) string {
	if n == 0 {
		return "zero"
	}
	var groups []string
	for scale := len(enScales) - 1; scale >= 0; scale-- {
		div := pow1000(scale)
		chunk := n / div
		n %= div
		if chunk == 0 {
			continue
		}
		part := englishChunk(chunk)
		if enScales[scale] != "" {
			part += " " + enScales[scale]
		}
		groups = append(groups, part)
	}
	return strings.Join(groups, " ")
}

func englishChunk(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, enOnes[n/100]+" hundred")
		n %= 100
	}
	switch {
	case n == 0:
	case n < 20:
		parts = append(parts, enOnes[n])
	default:
		tens := enTens[n/10]
		if n%10 != 0 {
			tens += "-" + enOnes[n%10]
		}
		parts = append(parts, tens)
	}
	return strings.Join(parts, " ")
}

// ── Polish ────────────────────────────────────────────────────────────

var plOnes = []string{
	"zero", "jeden", "dwa", "trzy", "cztery", "pięć", "sześć", "siedem",
	"osiem", "dziewięć", "dziesięć", "jedenaście", "dwanaście",
	"trzynaście", "czternaście", "piętnaście", "szesnaście",
	"siedemnaście", "osiemnaście", "dziewiętnaście",
}

var plTens = []string{
	"", "", "dwadzieścia", "trzydzieści", "czterdzieści", "pięćdziesiąt",
	"sześćdziesiąt", "siedemdziesiąt", "osiemdziesiąt", "dziewięćdziesiąt",
}

var plHundreds = []string{
	"", "sto", "dwieście", "trzysta", "czterysta", "pięćset", "sześćset",
	"siedemset", "osiemset", "dziewięćset",
}

// Scale nouns with the three Polish plural forms: singular (1), paucal
// (2-4 except 12-14) and genitive plural (the rest).
var plScales = [][3]string{
	{},
	{"tysiąc", "tysiące", "tysięcy"},
	{"milion", "miliony", "milionów"},
	{"miliard", "miliardy", "miliardów"},
}

func polish(n int64) string {
	if n == 0 {
		return "zero"
	}
	var groups []string
	for scale := len(plScales) - 1; scale >= 0; scale-- {
		div := pow1000(scale)
		chunk := n / div
		n %= div
		if chunk == 0 {
			continue
		}
		if scale == 0 {
			groups = append(groups, polishChunk(chunk))
			continue
		}
		noun := plScales[scale][plForm(chunk)]
		if chunk == 1 {
			// "tysiąc", never "jeden tysiąc"
			groups = append(groups, noun)
		} else {
			groups = append(groups, polishChunk(chunk)+" "+noun)
		}
	}
	return strings.Join(groups, " ")
}

func polishChunk(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, plHundreds[n/100])
		n %= 100
	}
	switch {
	case n == 0:
	case n < 20:
		parts = append(parts, plOnes[n])
	default:
		tens := plTens[n/10]
		if n%10 != 0 {
			tens += " " + plOnes[n%10]
		}
		parts = append(parts, tens)
	}
	return strings.Join(parts, " ")
}

// plForm picks the plural form index for a scale chunk.
func plForm(n int64) int {
	if n == 1 {
		return 0
	}
	last := n % 10
	lastTwo := n % 100
	if last >= 2 && last <= 4 && (lastTwo < 12 || lastTwo > 14) {
		return 1
	}
	return 2
}

func pow1000(scale int) int64 {
	out := int64(1)
	for i := 0; i < scale; i++ {
		out *= 1000
	}
	return out
}
