// Package parser extracts transaction suggestions from free text.
//
// The rules parser is a best-effort, regex-based extractor used when no
// language model is configured (or as a fallback when the model call fails).
// Its output is a suggestion only: the caller must confirm it before a
// transaction is created.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
)

var (
	buyRe      = regexp.MustCompile(`(?i)\b(bought|buy|buying|purchased?|acquired|added)\b`)
	sellRe     = regexp.MustCompile(`(?i)\b(sold|sell|selling|dumped|liquidated)\b`)
	transferRe = regexp.MustCompile(`(?i)\b(transfer(?:red)?|moved|sent|withdrew|withdrawn|deposited)\b`)

	amountSymbolRe = regexp.MustCompile(`(?i)\b([0-9]+(?:\.[0-9]+)?)\s*([A-Za-z]{2,10})\b`)
	priceAtRe      = regexp.MustCompile(`(?i)(?:@|\bat\b|\beach at\b)\s*\$?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
	priceDollarRe  = regexp.MustCompile(`\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
)

// words that look like a ticker in "<number> <word>" but never are
var symbolStopwords = map[string]bool{
	"at": true, "for": true, "to": true, "from": true, "of": true, "on": true,
	"in": true, "the": true, "and": true, "usd": true, "dollars": true,
	"each": true, "per": true, "coins": true, "units": true, "am": true, "pm": true,
}

// RulesParser is a stateless regex-based transaction extractor.
type RulesParser struct{}

// NewRulesParser creates a new RulesParser.
func NewRulesParser() *RulesParser { return &RulesParser{} }

// Parse extracts a transaction guess from free text. Missing fields come
// back zero-valued; the type defaults to buy when no verb matches.
func (p *RulesParser) Parse(text string) model.TransactionSuggestion {
	text = normalize(text)

	amount, symbol := guessAmountSymbol(text)

	return model.TransactionSuggestion{
		Type:   guessType(text),
		Symbol: symbol,
		Amount: amount,
		Price:  guessPrice(text),
		Note:   truncate(text, 140),
	}
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
}

func guessType(text string) string {
	switch {
	case sellRe.MatchString(text):
		return model.TransactionTypeSell
	case transferRe.MatchString(text):
		return model.TransactionTypeTransfer
	case buyRe.MatchString(text):
		return model.TransactionTypeBuy
	}
	return model.TransactionTypeBuy
}

func guessAmountSymbol(text string) (float64, string) {
	for _, m := range amountSymbolRe.FindAllStringSubmatch(text, -1) {
		word := strings.ToLower(m[2])
		if symbolStopwords[word] {
			continue
		}
		amount, err := parseNumber(m[1])
		if err != nil || amount <= 0 {
			continue
		}
		return amount, strings.ToUpper(m[2])
	}
	return 0, ""
}

func guessPrice(text string) float64 {
	if m := priceAtRe.FindStringSubmatch(text); len(m) >= 2 {
		if v, err := parseNumber(m[1]); err == nil {
			return v
		}
	}
	if m := priceDollarRe.FindStringSubmatch(text); len(m) >= 2 {
		if v, err := parseNumber(m[1]); err == nil {
			return v
		}
	}
	return 0
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
