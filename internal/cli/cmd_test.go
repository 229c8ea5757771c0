package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/shiftclock/internal/app"
	"github.com/alexanderramin/shiftclock/internal/config"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/importer"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/alexanderramin/shiftclock/internal/service"
	"github.com/alexanderramin/shiftclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

type appOption func(*config.Config)

func withWebhook(locale, kind, url string) appOption {
	return func(c *config.Config) {
		if c.Webhooks[locale] == nil {
			c.Webhooks[locale] = map[string]string{}
		}
		c.Webhooks[locale][kind] = url
	}
}

// testApp wires a full App backed by a seeded in-memory DB.
func testApp(t *testing.T, opts ...appOption) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.BcryptCost = 4
	cfg.Webhook.RetryDelayMs = 1
	for _, o := range opts {
		o(&cfg)
	}

	logger := testutil.DiscardLogger()
	svc, err := app.New(testutil.NewTestDB(t), cfg, logger)
	require.NoError(t, err)
	_, err = svc.Seed.Seed(context.Background())
	require.NoError(t, err)

	return &App{Services: svc, Config: cfg, Logger: logger}
}

// executeCmd runs a cobra command and captures stdout/stderr with ANSI
// styling removed.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansiPattern.ReplaceAllString(buf.String(), ""), err
}

func TestClockCmd_FullShift(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "clock", "in", "--user", "empleado1", "--at", "2024-03-01T09:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "entrada")
	assert.Contains(t, out, "🍦 Yummy Ice Cream", "single allowed locale is the default")

	_, err = executeCmd(t, app, "clock", "pause", "-u", "empleado1", "--at", "2024-03-01T11:00:00Z")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "clock", "resume", "-u", "2", "--at", "2024-03-01T11:20:00Z")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "clock", "out", "-u", "empleado1", "-l", "yummy", "--at", "2024-03-01T13:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "Turno cerrado")
	assert.Contains(t, out, "00:20:00")
	assert.Contains(t, out, "03:40:00")

	out, err = executeCmd(t, app, "shift", "list", "--user", "empleado1")
	require.NoError(t, err)
	assert.Contains(t, out, "1 turno, 03:40:00 trabajadas")

	out, err = executeCmd(t, app, "log", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "salida")
	assert.Contains(t, out, "pausa")
}

func TestClockCmd_Errors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "clock", "pause", "--user", "empleado1")
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))

	_, err = executeCmd(t, app, "clock", "in", "--user", "empleado1", "--locale", "uwu")
	assert.True(t, errors.Is(err, service.ErrLocaleNotAllowed))

	_, err = executeCmd(t, app, "clock", "in", "--user", "jefe")
	assert.ErrorContains(t, err, "--locale is required")

	_, err = executeCmd(t, app, "clock", "in", "--user", "empleado1", "--locale", "mall")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "clock", "in", "--user", "nobody")
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	_, err = executeCmd(t, app, "clock", "in", "--user", "empleado1", "--at", "yesterday")
	assert.Error(t, err)
}

func TestClockCmd_Status(t *testing.T) {
	app := testApp(t)
	app.Now = func() time.Time { return time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC) }

	out, err := executeCmd(t, app, "clock", "status", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Nobody is clocked in.")

	_, err = executeCmd(t, app, "clock", "in", "-u", "empleado2", "--at", "2024-03-01T09:00:00Z")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "clock", "status", "-u", "empleado2")
	require.NoError(t, err)
	assert.Contains(t, out, "TRABAJANDO")
	assert.Contains(t, out, "01:30:00")

	out, err = executeCmd(t, app, "clock", "status", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "empleado2")

	_, err = executeCmd(t, app, "clock", "status")
	assert.Error(t, err, "needs --user or --all")
}

func TestShiftCmd_ClearAndRemove(t *testing.T) {
	app := testApp(t)
	for _, args := range [][]string{
		{"clock", "in", "-u", "empleado1", "--at", "2024-03-01T09:00:00Z"},
		{"clock", "out", "-u", "empleado1", "--at", "2024-03-01T10:00:00Z"},
		{"clock", "in", "-u", "empleado2", "--at", "2024-03-01T09:00:00Z"},
		{"clock", "out", "-u", "empleado2", "--at", "2024-03-01T10:00:00Z"},
	} {
		_, err := executeCmd(t, app, args...)
		require.NoError(t, err)
	}

	_, err := executeCmd(t, app, "shift", "clear", "--user", "empleado1")
	assert.ErrorContains(t, err, "--user and --locale are required")

	out, err := executeCmd(t, app, "shift", "clear", "--user", "empleado1", "--locale", "yummy")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1 shift")

	shifts, err := app.Shifts.List(context.Background(), domain.ShiftFilter{})
	require.NoError(t, err)
	require.Len(t, shifts, 1)

	out, err = executeCmd(t, app, "shift", "remove", shifts[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed shift")

	_, err = executeCmd(t, app, "shift", "remove", shifts[0].ID)
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	out, err = executeCmd(t, app, "shift", "clear", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 0 shifts")

	out, err = executeCmd(t, app, "shift", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No shifts found.")
}

func TestShiftCmd_Export(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "clock", "in", "-u", "empleado1", "--at", "2024-03-01T09:00:00Z")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "clock", "out", "-u", "empleado1", "--at", "2024-03-01T17:00:00Z")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "turnos.xlsx")
	out, err := executeCmd(t, app, "shift", "export", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 shift")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Turnos")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "empleado1", rows[1][0])
}

func TestSaleCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "sale", "ring", "-u", "empleado1", "-i", "y1=2", "-i", "y7")
	require.NoError(t, err)
	assert.Contains(t, out, "x2")
	assert.Contains(t, out, "$3.900")

	_, err = executeCmd(t, app, "sale", "ring", "-u", "empleado1")
	assert.True(t, errors.Is(err, domain.ErrEmptyCart))

	_, err = executeCmd(t, app, "sale", "ring", "-u", "empleado1", "-i", "y1=0")
	assert.ErrorContains(t, err, "invalid quantity")

	_, err = executeCmd(t, app, "sale", "ring", "-u", "empleado1", "-i", "u1")
	assert.True(t, errors.Is(err, domain.ErrUnknownProduct))

	out, err = executeCmd(t, app, "sale", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1 venta, total $3.900")
}

func TestProductCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "product", "list", "--locale", "uwu")
	require.NoError(t, err)
	assert.Contains(t, out, "☕ UwU Café")
	assert.NotContains(t, out, "Yummy")

	require.NoError(t, app.Catalog.Replace(context.Background(), domain.LocaleUwu, nil))
	out, err = executeCmd(t, app, "product", "reset", "--locale", "uwu")
	require.NoError(t, err)
	assert.Contains(t, out, "Restored 13 products")

	_, err = executeCmd(t, app, "product", "reset")
	assert.Error(t, err)
}

func TestProductCmd_Import(t *testing.T) {
	app := testApp(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "uwu.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locale: uwu\nproducts:\n  - {id: u-latte, name: Latte, price: 2500}\n"), 0o644))

	out, err := executeCmd(t, app, "product", "import", path, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "dry run")
	products, err := app.Catalog.List(context.Background(), domain.LocaleUwu)
	require.NoError(t, err)
	assert.Len(t, products, 13)

	out, err = executeCmd(t, app, "product", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 product")
	products, err = app.Catalog.List(context.Background(), domain.LocaleUwu)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Latte", products[0].Name)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"locale":"uwu","products":[{"id":"x","name":"x"}]}`), 0o644))
	_, err = executeCmd(t, app, "product", "import", bad)
	assert.ErrorIs(t, err, importer.ErrInvalidCatalog)
}

func TestUserCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "user", "add", "--username", "empleado3", "--locale", "yummy,uwu", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved user empleado3")

	out, err = executeCmd(t, app, "user", "login", "--username", "empleado3", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome empleado3 (worker)")

	_, err = executeCmd(t, app, "user", "login", "--username", "empleado3", "--password", "wrong")
	assert.True(t, errors.Is(err, service.ErrInvalidCredentials))

	out, err = executeCmd(t, app, "user", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "empleado3")
	assert.Contains(t, out, "yummy, uwu")

	out, err = executeCmd(t, app, "user", "remove", "empleado3")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed user empleado3")

	_, err = executeCmd(t, app, "user", "add", "--username", "x", "--role", "owner", "--password", "1")
	assert.True(t, errors.Is(err, domain.ErrInvalidUser))
}

func TestUserCmd_PasswordPrompt(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "user", "add", "--username", "nopw")
	assert.ErrorIs(t, err, errNoTerminal)

	var asked string
	app.IsInteractive = func() bool { return true }
	app.ReadPassword = func(title string) (string, error) {
		asked = title
		return "prompted", nil
	}
	_, err = executeCmd(t, app, "user", "add", "--username", "viaprompt")
	require.NoError(t, err)
	assert.Contains(t, asked, "viaprompt")

	_, err = executeCmd(t, app, "user", "login", "--username", "viaprompt")
	require.NoError(t, err)
}

func TestUserCmd_UpdateKeepsPassword(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "user", "add", "--id", "2", "--username", "empleado1", "--locale", "yummy", "--locale", "uwu")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "user", "login", "--username", "empleado1", "--password", service.DefaultPassword)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "clock", "in", "-u", "empleado1", "-l", "uwu")
	require.NoError(t, err)
}

func TestNotifyCmd_FlushDelivers(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	app := testApp(t, withWebhook("yummy", "time_log", srv.URL))

	_, err := executeCmd(t, app, "clock", "in", "-u", "empleado1")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "notify", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "pending")

	out, err = executeCmd(t, app, "notify", "flush")
	require.NoError(t, err)
	assert.Contains(t, out, "sent 1")
	assert.Equal(t, int32(1), hits.Load())

	out, err = executeCmd(t, app, "notify", "list", "--status", "sent")
	require.NoError(t, err)
	assert.Contains(t, out, "time_log")

	out, err = executeCmd(t, app, "notify", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No pending notifications.")

	_, err = executeCmd(t, app, "notify", "list", "--status", "lost")
	assert.Error(t, err)
}

func TestServe_StopsOnCancel(t *testing.T) {
	app := testApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	err := serve(ctx, app, "127.0.0.1:0")
	assert.NoError(t, err)
}

func TestParseItem(t *testing.T) {
	line, err := parseItem("y3=4")
	require.NoError(t, err)
	assert.Equal(t, service.CheckoutLine{ProductID: "y3", Quantity: 4}, line)

	line, err = parseItem(" u2 ")
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)

	for _, bad := range []string{"", "=2", "y1=", "y1=-1", "y1=two"} {
		_, err := parseItem(bad)
		assert.Error(t, err, bad)
	}
}
