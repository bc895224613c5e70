package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToNum converte um valor de formulário ou planilha para um número não negativo.
// A primeira vírgula é tratada como separador decimal. Valores não finitos,
// negativos ou não numéricos viram 0.
func ToNum(v any) float64 {
	n, ok := parseNumber(v)
	if !ok || n < 0 {
		return 0
	}
	return n
}

// ToPct converte um valor para porcentagem, limitada ao intervalo [0, 100]
func ToPct(v any) float64 {
	n, ok := parseNumber(v)
	if !ok {
		return 0
	}
	return math.Min(100, math.Max(0, n))
}

func parseNumber(v any) (float64, bool) {
	var n float64

	switch x := v.(type) {
	case nil:
		return 0, true
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int32:
		n = float64(x)
	case int64:
		n = float64(x)
	case uint:
		n = float64(x)
	case uint32:
		n = float64(x)
	case uint64:
		n = float64(x)
	case bool:
		return 0, false
	case string:
		return parseNumericText(x)
	case fmt.Stringer:
		return parseNumericText(x.String())
	default:
		return parseNumericText(fmt.Sprint(x))
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	if n == 0 {
		// evita -0
		return 0, true
	}
	return n, true
}

func parseNumericText(text string) (float64, bool) {
	text = strings.TrimSpace(strings.Replace(text, ",", ".", 1))
	if text == "" {
		return 0, true
	}

	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	if n == 0 {
		return 0, true
	}
	return n, true
}

// ToText converte um valor cru em texto
func ToText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// ToList aceita uma lista JSON ou a forma achatada "a | b" e devolve
// os itens não vazios
func ToList(v any) []string {
	out := make([]string, 0)

	switch x := v.(type) {
	case nil:
	case []string:
		for _, item := range x {
			out = appendItem(out, item)
		}
	case []any:
		for _, item := range x {
			out = appendItem(out, ToText(item))
		}
	default:
		for _, item := range strings.Split(ToText(x), "|") {
			out = appendItem(out, item)
		}
	}

	return out
}

func appendItem(list []string, item string) []string {
	item = strings.TrimSpace(item)
	if item == "" {
		return list
	}
	return append(list, item)
}

// JoinList achata uma lista no formato usado pelo CSV e pela planilha
func JoinList(items []string) string {
	return strings.Join(items, ListSeparator)
}
