package sheets

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	sheetsdomain "github.com/vfg2006/sales-kpi-api/infrastructure/integrator/sheets/domain"
	"github.com/vfg2006/sales-kpi-api/infrastructure/integrator/sheets/mocks"
	"github.com/vfg2006/sales-kpi-api/internal/config"
	"github.com/vfg2006/sales-kpi-api/internal/domain"
)

func TestSheetsService_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	service := New(&config.Config{}, client)

	assert.False(t, service.Enabled())

	_, err := service.ListRecords(context.Background())
	assert.ErrorIs(t, err, ErrDisabled)
	assert.ErrorIs(t, service.AppendRecord(context.Background(), domain.WeeklyRecord{}), ErrDisabled)
	assert.ErrorIs(t, service.DeleteRecord(context.Background(), "x"), ErrDisabled)
}

func TestSheetsService_AppendRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	service := New(&config.Config{Remote: config.Remote{URL: "https://sheets.example.com/exec"}}, client)

	record := domain.SampleRecords()[0]
	record.Prospects = []string{"Acme", "Globex"}

	client.EXPECT().
		AppendRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload sheetsdomain.RecordPayload) error {
			assert.Equal(t, record.ID, payload.ID)
			assert.Equal(t, "Acme | Globex", payload.ProspectsFlat)
			assert.Equal(t, "", payload.QuotesFlat)
			assert.Equal(t, []string{}, payload.Quotes)
			assert.Equal(t, 13000.0, payload.RevenueEUR)
			return nil
		})

	require.NoError(t, service.AppendRecord(context.Background(), record))
}

func TestSheetsService_WrapsClientErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	service := New(&config.Config{Remote: config.Remote{URL: "https://sheets.example.com/exec"}}, client)

	client.EXPECT().ListRecords(gomock.Any()).Return(nil, errors.New("timeout"))
	client.EXPECT().DeleteRecord(gomock.Any(), "abc").Return(errors.New("recusado"))

	_, err := service.ListRecords(context.Background())
	assert.ErrorContains(t, err, "timeout")

	err = service.DeleteRecord(context.Background(), "abc")
	assert.ErrorContains(t, err, "abc")
}
