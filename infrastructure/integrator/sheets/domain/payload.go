package domain

// RecordPayload é o registro achatado enviado à planilha. As listas vão
// como array e também unidas por " | " para colunas de texto.
type RecordPayload struct {
	ID                 string   `json:"id"`
	SchemaVersion      int      `json:"schema_version"`
	Rep                string   `json:"rep"`
	Week               string   `json:"week"`
	Calls              float64  `json:"calls"`
	NewContacts        float64  `json:"new_contacts"`
	Emails             float64  `json:"emails"`
	Meetings           float64  `json:"meetings"`
	Leads              float64  `json:"leads"`
	OpportunitiesValue float64  `json:"opportunities_value"`
	RevenueEUR         float64  `json:"revenue_eur"`
	GrossMarginPct     float64  `json:"gross_margin_pct"`
	Notes              string   `json:"notes"`
	Prospects          []string `json:"prospects"`
	Quotes             []string `json:"quotes"`
	ProspectsFlat      string   `json:"prospects_flat"`
	QuotesFlat         string   `json:"quotes_flat"`
	CreatedAt          string   `json:"created_at"`
}

// Protocolo "keyed": operação e chave na query string

type KeyedAddRequest struct {
	Op string `json:"op"`
	RecordPayload
}

type KeyedDeleteRequest struct {
	Op string `json:"op"`
	ID string `json:"id"`
}

type KeyedResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Protocolo "token": token e ação no corpo

type TokenAppendRequest struct {
	Token  string        `json:"token"`
	Action string        `json:"action"`
	Record RecordPayload `json:"record"`
}

type TokenDeleteRequest struct {
	Token  string `json:"token"`
	Action string `json:"action"`
	ID     string `json:"id"`
}

type TokenResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
