package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/boutique/internal/config"
	"github.com/mamadbah2/boutique/internal/domain/models"
	"github.com/mamadbah2/boutique/internal/repository/records"
	"github.com/mamadbah2/boutique/internal/service/pnl"
)

type fakeSheets struct {
	rows [][]interface{}
	err  error
}

func (f *fakeSheets) AppendRows(_ context.Context, _ string, rows [][]interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeSheets) ReadRange(_ context.Context, _ string) ([][]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.rows) == 0 {
		return nil, nil
	}
	return f.rows[:1], nil
}

type fakeMessenger struct {
	sent []models.OutboundMessageRequest
}

func (f *fakeMessenger) SendOutbound(_ context.Context, req models.OutboundMessageRequest) error {
	f.sent = append(f.sent, req)
	return nil
}

type failingReporter struct{}

func (failingReporter) SaveSnapshot(context.Context, models.Date, models.Date) (models.PNLSnapshot, models.PNLReport, error) {
	return models.PNLSnapshot{}, models.PNLReport{}, errors.New("store down")
}

func testConfig() config.Config {
	return config.Config{
		Reporting: config.ReportingConfig{CronSchedule: "0 20 * * 5", Timezone: "Asia/Karachi"},
		WhatsApp:  config.WhatsAppConfig{ReportTo: "923001234567"},
	}
}

func seedOrder(t *testing.T, store records.Store, date models.Date, selling string) {
	t.Helper()
	order := models.Order{
		StockArticle: models.StockSnapshot{ID: "none", ProductName: "Bangles"},
		Customer:     models.CustomerSnapshot{FirstName: "Iqra", SecondName: "Butt"},
		SellingPrice: models.Numeric(selling),
		Quantity:     "1",
		Date:         date,
		Time:         "12:00",
	}
	_, err := store.Create(context.Background(), records.CollectionOrders, order.Attributes())
	require.NoError(t, err)
}

func counterValue(t *testing.T, reg *prometheus.Registry, result string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "boutique_pnl_snapshot_runs_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "result" && label.GetValue() == result {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestRunOnce_TrailingWeekInTimezone(t *testing.T) {
	store := records.NewMemoryStore()
	// 2024-03-08 20:00 in Karachi is 15:00 UTC.
	seedOrder(t, store, models.NewDate(2024, time.March, 1), "100")
	seedOrder(t, store, models.NewDate(2024, time.March, 2), "200")
	seedOrder(t, store, models.NewDate(2024, time.March, 8), "300")
	seedOrder(t, store, models.NewDate(2024, time.March, 9), "400")

	sheetsRepo := &fakeSheets{}
	messenger := &fakeMessenger{}
	reg := prometheus.NewRegistry()

	s, err := NewScheduler(testConfig(), pnl.NewService(store, nil), sheetsRepo, messenger, reg, nil)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, time.March, 8, 15, 0, 0, 0, time.UTC) }

	require.NoError(t, s.RunOnce(context.Background()))

	docs, err := store.List(context.Background(), records.CollectionPNLSnapshots)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "2024-03-02", docs[0].Attributes.String("start"))
	assert.Equal(t, "2024-03-08", docs[0].Attributes.String("end"))
	assert.Equal(t, "2", docs[0].Attributes.String("orders"))
	assert.Equal(t, "500", docs[0].Attributes.String("totalProfit"))

	require.Len(t, sheetsRepo.rows, 2)
	assert.Equal(t, sheetHeader, sheetsRepo.rows[0])
	assert.Equal(t, "2024-03-02", sheetsRepo.rows[1][0])

	require.Len(t, messenger.sent, 1)
	assert.Equal(t, "923001234567", messenger.sent[0].To)
	assert.Contains(t, messenger.sent[0].Message, "(2024-03-02 to 2024-03-08)")

	assert.Equal(t, 1.0, counterValue(t, reg, "success"))

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Len(t, sheetsRepo.rows, 3)
}

func TestRunOnce_OptionalExports(t *testing.T) {
	store := records.NewMemoryStore()
	s, err := NewScheduler(testConfig(), pnl.NewService(store, nil), nil, nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.RunOnce(context.Background()))

	docs, err := store.List(context.Background(), records.CollectionPNLSnapshots)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestRunOnce_SheetFailureDoesNotFailRun(t *testing.T) {
	store := records.NewMemoryStore()
	messenger := &fakeMessenger{}
	s, err := NewScheduler(testConfig(), pnl.NewService(store, nil), &fakeSheets{err: errors.New("quota")}, messenger, nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Len(t, messenger.sent, 1)
}

func TestRunOnce_ReporterFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	messenger := &fakeMessenger{}
	s, err := NewScheduler(testConfig(), failingReporter{}, nil, messenger, reg, nil)
	require.NoError(t, err)

	assert.Error(t, s.RunOnce(context.Background()))
	assert.Empty(t, messenger.sent)
	assert.Equal(t, 1.0, counterValue(t, reg, "error"))
}

func TestNewScheduler_BadTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.Timezone = "Mars/Olympus"

	_, err := NewScheduler(cfg, failingReporter{}, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestNewScheduler_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewScheduler(testConfig(), failingReporter{}, nil, nil, reg, nil)
	require.NoError(t, err)
	_, err = NewScheduler(testConfig(), failingReporter{}, nil, nil, reg, nil)
	assert.NoError(t, err)
}

func TestNewScheduler_MetricNameTakenByOtherType(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: snapshotRunsMetric,
		Help: "Weekly PNL snapshot runs by result.",
	}, []string{"result"}))

	var err error
	require.NotPanics(t, func() {
		_, err = NewScheduler(testConfig(), failingReporter{}, nil, nil, reg, nil)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), snapshotRunsMetric)
}

func TestStart_InvalidSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.CronSchedule = "every friday"

	s, err := NewScheduler(cfg, failingReporter{}, nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}
