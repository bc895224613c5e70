package sheetsclient

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	sheetsdomain "github.com/vfg2006/sales-kpi-api/infrastructure/integrator/sheets/domain"
	"github.com/vfg2006/sales-kpi-api/internal/domain"
)

const (
	opList   = "list"
	opAdd    = "add"
	opDelete = "delete"

	actionAppend = "append"
	actionDelete = "delete"
)

type keyedListResponse struct {
	OK    bool                `json:"ok"`
	Data  jsoniter.RawMessage `json:"data"`
	Error string              `json:"error,omitempty"`
}

// ListRecords busca todas as linhas da planilha
func (c *SheetsClient) ListRecords(ctx context.Context) ([]domain.RawRecord, error) {
	params := map[string]string{"token": c.config.Token}
	if c.keyed() {
		params = map[string]string{"op": opList, "k": c.config.Key}
	}

	endpoint, err := c.endpoint(params)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	data := jsoniter.RawMessage(body)
	if c.keyed() {
		var response keyedListResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, errors.Wrap(ErrInvalidPayload, err.Error())
		}
		if !response.OK {
			return nil, rejected(response.Error)
		}
		data = response.Data
	}

	var records []domain.RawRecord
	if err := json.Unmarshal(data, &records); err != nil || records == nil {
		return nil, ErrInvalidPayload
	}

	return records, nil
}

// AppendRecord envia um novo registro para a planilha
func (c *SheetsClient) AppendRecord(ctx context.Context, record sheetsdomain.RecordPayload) error {
	if c.keyed() {
		endpoint, err := c.endpoint(map[string]string{"op": opAdd, "k": c.config.Key})
		if err != nil {
			return err
		}
		return c.postKeyed(ctx, endpoint, sheetsdomain.KeyedAddRequest{Op: opAdd, RecordPayload: record})
	}

	return c.postToken(ctx, sheetsdomain.TokenAppendRequest{
		Token:  c.config.Token,
		Action: actionAppend,
		Record: record,
	})
}

// DeleteRecord remove a linha com o id informado
func (c *SheetsClient) DeleteRecord(ctx context.Context, id string) error {
	if c.keyed() {
		endpoint, err := c.endpoint(map[string]string{"op": opDelete, "k": c.config.Key})
		if err != nil {
			return err
		}
		return c.postKeyed(ctx, endpoint, sheetsdomain.KeyedDeleteRequest{Op: opDelete, ID: id})
	}

	return c.postToken(ctx, sheetsdomain.TokenDeleteRequest{
		Token:  c.config.Token,
		Action: actionDelete,
		ID:     id,
	})
}

func (c *SheetsClient) postKeyed(ctx context.Context, endpoint string, payload any) error {
	body, err := c.do(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return err
	}

	var response sheetsdomain.KeyedResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return errors.Wrap(ErrInvalidPayload, err.Error())
	}
	if !response.OK {
		return rejected(response.Error)
	}

	return nil
}

func (c *SheetsClient) postToken(ctx context.Context, payload any) error {
	endpoint, err := c.endpoint(nil)
	if err != nil {
		return err
	}

	body, err := c.do(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return err
	}

	var response sheetsdomain.TokenResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return errors.Wrap(ErrInvalidPayload, err.Error())
	}
	if !response.OK {
		return rejected(response.Error)
	}

	return nil
}
