package domain

import (
	"fmt"
	"strings"
)

type fieldKind int

const (
	textField fieldKind = iota
	numberField
	percentField
	listField
)

type fieldSpec struct {
	name    string
	kind    fieldKind
	aliases []string
}

// campos canônicos na ordem de precedência das chaves alternativas
var recordFields = []fieldSpec{
	{name: "id", kind: textField, aliases: []string{"id", "ID", "_id"}},
	{name: "schema_version", kind: numberField, aliases: []string{"schema_version", "schemaVersion"}},
	{name: "rep", kind: textField, aliases: []string{"rep", "commercial", "representative"}},
	{name: "week", kind: textField, aliases: []string{"week", "semaine"}},
	{name: "calls", kind: numberField, aliases: []string{"calls", "nb_appels"}},
	{name: "new_contacts", kind: numberField, aliases: []string{"new_contacts", "newContacts", "nouveaux_contacts"}},
	{name: "emails", kind: numberField, aliases: []string{"emails", "emails_sent", "nb_emails"}},
	{name: "meetings", kind: numberField, aliases: []string{"meetings", "meetings_booked", "rdv"}},
	{name: "leads", kind: numberField, aliases: []string{"leads"}},
	{name: "opportunities_value", kind: numberField, aliases: []string{"opportunities_value", "opportunities"}},
	{name: "revenue_eur", kind: numberField, aliases: []string{"revenue_eur", "revenue", "ca"}},
	{name: "gross_margin_pct", kind: percentField, aliases: []string{"gross_margin_pct", "grossMarginPct", "marge"}},
	{name: "prospects", kind: listField, aliases: []string{"prospects", "prospects_flat"}},
	{name: "quotes", kind: listField, aliases: []string{"quotes", "quotes_flat"}},
	{name: "notes", kind: textField, aliases: []string{"notes", "commentaires"}},
	{name: "created_at", kind: textField, aliases: []string{"created_at", "createdAt"}},
}

// chaves que só aparecem no formato antigo, em francês
var legacyKeys = []string{"commercial", "semaine", "nb_appels", "nouveaux_contacts", "nb_emails", "rdv", "ca", "marge", "commentaires"}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]string {
	index := make(map[string]string)
	for _, field := range recordFields {
		for _, alias := range field.aliases {
			index[strings.ToLower(alias)] = field.name
		}
	}
	return index
}

// CanonicalField devolve o nome canônico de uma coluna ou chave, sem
// diferenciar maiúsculas. ok é falso para colunas desconhecidas.
func CanonicalField(key string) (string, bool) {
	name, ok := aliasIndex[strings.ToLower(strings.TrimSpace(key))]
	return name, ok
}

// DetectSchemaVersion identifica a versão do formato de um registro cru
func DetectSchemaVersion(raw RawRecord) int {
	if v, ok := raw["schema_version"]; ok && v != nil {
		if version := int(ToNum(v)); version > 0 {
			return version
		}
	}
	for _, key := range legacyKeys {
		if present(raw[key]) {
			return LegacySchemaVersion
		}
	}
	return CurrentSchemaVersion
}

// Canonicalize resolve as chaves alternativas para os nomes canônicos.
// Chaves desconhecidas são preservadas. Para texto e listas vale o primeiro
// valor não vazio, para números o primeiro valor não nulo. Um número nulo
// mantém a chave com valor nil.
func Canonicalize(raw RawRecord) RawRecord {
	out := make(RawRecord, len(raw))
	consumed := make(map[string]bool)

	for _, field := range recordFields {
		for _, alias := range field.aliases {
			v, ok := raw[alias]
			if !ok {
				continue
			}
			consumed[alias] = true
			if current, done := out[field.name]; done && current != nil {
				continue
			}
			if field.kind == numberField || field.kind == percentField {
				// null presente continua presente e sobrepõe o local como 0
				out[field.name] = v
				continue
			}
			if present(v) {
				out[field.name] = v
			}
		}
	}

	for key, v := range raw {
		if !consumed[key] {
			out[key] = v
		}
	}

	return out
}

// Normalize transforma um registro cru em WeeklyRecord. Nunca falha:
// números ausentes ou inválidos viram 0, textos ausentes viram "".
// Registros no formato antigo são promovidos para a versão atual.
func Normalize(raw RawRecord) WeeklyRecord {
	c := Canonicalize(raw)

	rep := strings.TrimSpace(ToText(c["rep"]))
	if rep == "" {
		rep = UnknownRep
	}

	return WeeklyRecord{
		ID:            strings.TrimSpace(ToText(c["id"])),
		SchemaVersion: CurrentSchemaVersion,
		Rep:           rep,
		Week:          strings.TrimSpace(ToText(c["week"])),
		Counters: Counters{
			Calls:              ToNum(c["calls"]),
			NewContacts:        ToNum(c["new_contacts"]),
			Emails:             ToNum(c["emails"]),
			Meetings:           ToNum(c["meetings"]),
			Leads:              ToNum(c["leads"]),
			OpportunitiesValue: ToNum(c["opportunities_value"]),
			RevenueEUR:         ToNum(c["revenue_eur"]),
		},
		GrossMarginPct: ToPct(c["gross_margin_pct"]),
		Prospects:      ToList(c["prospects"]),
		Quotes:         ToList(c["quotes"]),
		Notes:          ToText(c["notes"]),
		CreatedAt:      strings.TrimSpace(ToText(c["created_at"])),
	}
}

// NormalizeAll normaliza uma lista de registros crus. Registros sem id
// recebem "<prefix><posição>".
func NormalizeAll(raws []RawRecord, idPrefix string) []WeeklyRecord {
	out := make([]WeeklyRecord, 0, len(raws))
	for i, raw := range raws {
		record := Normalize(raw)
		if record.ID == "" {
			record.ID = fmt.Sprintf("%s%d", idPrefix, i)
		}
		out = append(out, record)
	}
	return out
}

func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(x) != ""
	case []any:
		return len(x) > 0
	case []string:
		return len(x) > 0
	default:
		return true
	}
}
