// Package bahttext spells decimal amounts as Thai baht text, following the
// reading conventions used on Thai financial documents.
package bahttext

import (
	"strings"

	"github.com/shopspring/decimal"
)

var digitWords = []string{"ศูนย์", "หนึ่ง", "สอง", "สาม", "สี่", "ห้า", "หก", "เจ็ด", "แปด", "เก้า"}

// Unit words by position within a 6-digit group, right to left.
var unitWords = []string{"", "สิบ", "ร้อย", "พัน", "หมื่น", "แสน"}

const (
	wordMillion = "ล้าน"
	wordBaht    = "บาท"
	wordSatang  = "สตางค์"
	wordExact   = "ถ้วน"
	wordYi      = "ยี่"
	wordEd      = "เอ็ด"
	wordZero    = "ศูนย์"
)

// Convert spells a non-negative amount in words, baht and satang. The amount
// is rounded to whole satang first. A whole amount gets the exact suffix; an
// amount below one baht yields only the satang clause. Negative input is
// treated as zero.
func Convert(amount decimal.Decimal) string {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	amount = amount.Round(2)

	baht := amount.Truncate(0)
	satang := amount.Sub(baht).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	bahtDigits := baht.String()
	if bahtDigits == "0" && satang == 0 {
		return wordZero + wordBaht + wordExact
	}

	var b strings.Builder
	if bahtDigits != "0" {
		b.WriteString(readNumber(bahtDigits))
		b.WriteString(wordBaht)
	}

	if satang == 0 {
		b.WriteString(wordExact)
		return b.String()
	}

	b.WriteString(readNumber(decimal.NewFromInt(satang).String()))
	b.WriteString(wordSatang)
	return b.String()
}

// readNumber reads a string of decimal digits in Thai, chunked at the
// million boundary every 6 digits.
func readNumber(digits string) string {
	var groups []string
	for len(digits) > 6 {
		groups = append([]string{digits[len(digits)-6:]}, groups...)
		digits = digits[:len(digits)-6]
	}
	groups = append([]string{digits}, groups...)

	var b strings.Builder
	for i, group := range groups {
		b.WriteString(readGroup(group, i > 0))
		if i < len(groups)-1 {
			b.WriteString(wordMillion)
		}
	}
	return b.String()
}

// readGroup reads up to 6 digits against the positional unit words. The tens
// digit 1 is silent and 2 reads as a special word; the units digit 1 reads as
// a special word whenever the number carries more than that single digit,
// counting digits in higher million-groups.
func readGroup(group string, hasHigher bool) string {
	useEd := hasHigher || len(strings.TrimLeft(group, "0")) > 1

	var b strings.Builder
	n := len(group)
	for i, r := range group {
		d := int(r - '0')
		if d == 0 {
			continue
		}
		pos := n - i - 1
		switch {
		case pos == 1 && d == 1:
			// silent digit word
		case pos == 1 && d == 2:
			b.WriteString(wordYi)
		case pos == 0 && d == 1 && useEd:
			b.WriteString(wordEd)
			continue
		default:
			b.WriteString(digitWords[d])
		}
		b.WriteString(unitWords[pos])
	}
	return b.String()
}
