package sheetsclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	sheetsdomain "github.com/vfg2006/sales-kpi-api/infrastructure/integrator/sheets/domain"
	"github.com/vfg2006/sales-kpi-api/internal/config"
	"github.com/vfg2006/sales-kpi-api/internal/domain"
)

//go:generate mockgen -source=client.go -destination=../mocks/client.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrInvalidPayload indica que a planilha respondeu algo que não é a lista esperada
	ErrInvalidPayload = errors.New("resposta inválida da planilha remota")
	// ErrRemoteRejected indica ok:false na resposta da planilha
	ErrRemoteRejected = errors.New("operação recusada pela planilha remota")
)

// tamanho máximo lido de uma resposta da planilha
const maxResponseSize = 16 << 20

type Client interface {
	ListRecords(ctx context.Context) ([]domain.RawRecord, error)
	AppendRecord(ctx context.Context, record sheetsdomain.RecordPayload) error
	DeleteRecord(ctx context.Context, id string) error
}

type SheetsClient struct {
	httpClient *http.Client
	config     config.Remote
}

// NewClient cria o cliente HTTP da planilha com o protocolo configurado
func NewClient(cfg *config.Config) Client {
	return &SheetsClient{
		httpClient: &http.Client{
			Timeout: cfg.Remote.Timeout,
		},
		config: cfg.Remote,
	}
}

func (c *SheetsClient) keyed() bool {
	return c.config.Protocol != config.ProtocolToken
}

// endpoint monta a URL com os parâmetros de query informados
func (c *SheetsClient) endpoint(params map[string]string) (string, error) {
	endpoint, err := url.Parse(c.config.URL)
	if err != nil {
		return "", errors.Wrap(err, "erro ao analisar a URL da planilha")
	}

	query := endpoint.Query()
	for key, value := range params {
		query.Set(key, value)
	}
	endpoint.RawQuery = query.Encode()

	return endpoint.String(), nil
}

// do executa a requisição e devolve o corpo quando o status é 2xx
func (c *SheetsClient) do(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao serializar o corpo da requisição")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Errorf("requisição falhou com status: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta")
	}

	return data, nil
}

// rejected transforma a mensagem de erro remota em ErrRemoteRejected
func rejected(message string) error {
	if message == "" {
		return ErrRemoteRejected
	}
	return errors.Wrap(ErrRemoteRejected, message)
}
