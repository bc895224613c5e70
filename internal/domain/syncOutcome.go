package domain

import "time"

type SyncStatus string

const (
	SyncSucceeded     SyncStatus = "succeeded"
	SyncFailedIgnored SyncStatus = "failed_ignored"
	SyncSkipped       SyncStatus = "skipped"
)

type SyncOperation string

const (
	SyncList   SyncOperation = "list"
	SyncAppend SyncOperation = "append"
	SyncDelete SyncOperation = "delete"
)

type SyncTarget string

const (
	TargetRemote SyncTarget = "remote"
	TargetEvents SyncTarget = "events"
)

// SyncOutcome registra o resultado de uma tarefa de sincronização em segundo
// plano. Falhas nunca são repetidas nem devolvidas ao usuário.
type SyncOutcome struct {
	Target    SyncTarget    `json:"target"`
	Operation SyncOperation `json:"operation"`
	RecordID  string        `json:"record_id,omitempty"`
	Status    SyncStatus    `json:"status"`
	Err       string        `json:"error,omitempty"`
	At        time.Time     `json:"at"`
}

// LoadSummary resume uma carga com mesclagem da planilha remota
type LoadSummary struct {
	Local        int       `json:"local"`
	Remote       int       `json:"remote"`
	Total        int       `json:"total"`
	Seeded       int       `json:"seeded"`
	RemoteFailed bool      `json:"remote_failed"`
	RemoteError  string    `json:"remote_error,omitempty"`
	LoadedAt     time.Time `json:"loaded_at"`
}
