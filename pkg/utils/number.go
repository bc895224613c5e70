package utils

import (
	"math"
	"strconv"
	"strings"
)

const (
	// separador de milhares usado pelo fr-FR (espaço fino inseparável)
	thousandsSeparator = "\u202f"
	// espaço inseparável antes do símbolo da moeda
	currencySpacer = "\u00a0"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// FormatCurrency formata um valor em euros no padrão fr-FR, sem casas decimais.
// Ex.: 9000 -> "9 000 €"
func FormatCurrency(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}

	rounded := math.Round(value)
	if rounded == 0 {
		rounded = 0
	}

	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}

	return sign + groupThousands(strconv.FormatFloat(rounded, 'f', 0, 64), thousandsSeparator) + currencySpacer + "€"
}

// FormatPercent formata uma porcentagem com até duas casas e vírgula decimal
func FormatPercent(value float64) string {
	formatted := strconv.FormatFloat(RoundWithTwoDecimalPlace(value), 'f', -1, 64)
	return strings.Replace(formatted, ".", ",", 1) + currencySpacer + "%"
}

func groupThousands(digits string, separator string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(separator)
		}
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}
