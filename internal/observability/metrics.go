package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vfg2006/sales-kpi-api/internal/domain"
)

const namespace = "sales_kpi"

var (
	recordsSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "records",
		Name:      "submitted_total",
		Help:      "Registros semanais enviados pelo formulário.",
	})

	recordsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "records",
		Name:      "deleted_total",
		Help:      "Registros semanais removidos.",
	})

	recordsImported = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "records",
		Name:      "imported_total",
		Help:      "Registros semanais importados de CSV ou XLSX.",
	})

	recordsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "records",
		Name:      "in_memory",
		Help:      "Quantidade de registros no snapshot em memória.",
	})

	syncOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "outcomes_total",
		Help:      "Resultados das tarefas de sincronização em segundo plano.",
	}, []string{"target", "operation", "status"})

	lastRemoteLoad = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "last_remote_load_timestamp_seconds",
		Help:      "Momento da última mesclagem bem-sucedida com a planilha remota.",
	})

	httpRequests = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duração das requisições HTTP.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status"})
)

func init() {
	prometheus.MustRegister(
		recordsSubmitted,
		recordsDeleted,
		recordsImported,
		recordsLoaded,
		syncOutcomes,
		lastRemoteLoad,
		httpRequests,
	)
}

func RecordSubmitted() {
	recordsSubmitted.Inc()
}

func RecordDeleted() {
	recordsDeleted.Inc()
}

func RecordsImported(n int) {
	recordsImported.Add(float64(n))
}

// SetRecordsInMemory atualiza o tamanho do snapshot
func SetRecordsInMemory(n int) {
	recordsLoaded.Set(float64(n))
}

// RecordSyncOutcome contabiliza o resultado de uma tarefa em segundo plano
func RecordSyncOutcome(outcome domain.SyncOutcome) {
	syncOutcomes.WithLabelValues(string(outcome.Target), string(outcome.Operation), string(outcome.Status)).Inc()
	if outcome.Target == domain.TargetRemote && outcome.Operation == domain.SyncList && outcome.Status == domain.SyncSucceeded {
		lastRemoteLoad.Set(float64(outcome.At.Unix()))
	}
}

// ObserveHTTPRequest registra a duração de uma requisição
func ObserveHTTPRequest(method string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, strconv.Itoa(status)).Observe(duration.Seconds())
}
