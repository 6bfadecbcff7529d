package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/alexanderramin/execview/internal/facade"
	"github.com/alexanderramin/execview/internal/generation"
	"github.com/alexanderramin/execview/internal/service"
	"github.com/alexanderramin/execview/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// testApp wires a full App over an in-memory store with no simulated
// latency. failureRate controls injected update failures.
func testApp(t *testing.T, failureRate float64) *App {
	t.Helper()
	st := testutil.NewTestStore(t)
	remote := facade.New(st, facade.Config{FailureRate: failureRate},
		facade.WithSleeper(facade.NoSleep),
		facade.WithRand(rand.New(rand.NewSource(1))),
	)
	clock := testutil.FixedClock(testutil.FixedNow)
	synth := generation.NewSynthesizer(generation.NewSeededRNG(11), clock)

	return &App{
		Dashboard:   service.NewDashboardService(st, remote, synth, clock),
		Preferences: service.NewPreferenceService(st.Preferences(), remote),
		Now:         clock,
	}
}

// executeCmd runs a cobra command and captures stdout/stderr with ANSI
// codes removed.
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

func TestInitCmd_SeedsOnce(t *testing.T) {
	app := testApp(t, 0)

	out, err := executeCmd(t, app, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Dataset seeded.")

	out, err = executeCmd(t, app, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Dataset already present.")
}

func TestShowCmd(t *testing.T) {
	app := testApp(t, 0)

	out, err := executeCmd(t, app, "show", "financial")
	require.NoError(t, err)
	assert.Contains(t, out, "FINANCIAL (MONTHLY)")
	assert.Contains(t, out, "REVENUE")
	assert.Contains(t, out, "2025-06-15")
	assert.NotContains(t, out, "CHANGE")

	out, err = executeCmd(t, app, "show", "sales", "--period", "weekly", "--show-metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "SALES (WEEKLY)")
	assert.Contains(t, out, "Closed Deals")
	assert.Contains(t, out, "CHANGE")
	assert.NotContains(t, out, "Revenue")
}

func TestShowCmd_Errors(t *testing.T) {
	app := testApp(t, 0)

	_, err := executeCmd(t, app, "show", "payroll")
	require.Error(t, err)
	assert.Contains(t, Message(err), "unknown domain")

	_, err = executeCmd(t, app, "show", "summary")
	require.Error(t, err)
	assert.Contains(t, Message(err), "unknown domain")

	_, err = executeCmd(t, app, "show")
	require.Error(t, err)
	assert.Contains(t, Message(err), "--help")

	_, err = executeCmd(t, app, "show", "financial", "--period", "hourly")
	require.Error(t, err)
	assert.Contains(t, Message(err), "hourly")
}

func TestSummaryCmd(t *testing.T) {
	app := testApp(t, 0)
	out, err := executeCmd(t, app, "summary", "--period", "quarterly")
	require.NoError(t, err)
	assert.Contains(t, out, "EXECUTIVE SUMMARY (QUARTERLY)")
	assert.Contains(t, out, "Revenue")
	assert.Contains(t, out, "Retention")
	assert.Contains(t, out, "HEADCOUNT BY DEPARTMENT")
	assert.Contains(t, out, "Unread notifications: 4")
}

func TestNotificationsCmd_ListAndRead(t *testing.T) {
	app := testApp(t, 0)

	out, err := executeCmd(t, app, "notifications", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NOTIFICATIONS (4 UNREAD)")
	assert.Contains(t, out, "notif-1")
	assert.Contains(t, out, "notif-2")

	out, err = executeCmd(t, app, "notifications", "list", "--unread")
	require.NoError(t, err)
	assert.Contains(t, out, "notif-1")
	assert.NotContains(t, out, "notif-2")

	out, err = executeCmd(t, app, "notifications", "read", "notif-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Marked notif-1 as read.")

	out, err = executeCmd(t, app, "notif", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NOTIFICATIONS (3 UNREAD)")
}

func TestNotificationsReadCmd_Errors(t *testing.T) {
	app := testApp(t, 0)
	_, err := executeCmd(t, app, "notifications", "read", "notif-999")
	require.Error(t, err)
	assert.Contains(t, Message(err), `no notification with id "notif-999"`)

	failing := testApp(t, 1)
	_, err = executeCmd(t, failing, "notifications", "read", "notif-1")
	require.ErrorIs(t, err, facade.ErrSimulatedTransientFailure)
	assert.Contains(t, Message(err), "temporarily unavailable")
}

func TestResetCmd(t *testing.T) {
	app := testApp(t, 0)
	_, err := executeCmd(t, app, "notifications", "read", "notif-1")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "reset")
	require.Error(t, err)
	assert.Contains(t, Message(err), "--yes")

	out, err := executeCmd(t, app, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Dashboard data regenerated.")

	out, err = executeCmd(t, app, "notifications", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NOTIFICATIONS (4 UNREAD)")
}

// staleAfterReset stores the reset but cannot load it back.
type staleAfterReset struct {
	service.DashboardService
}

func (staleAfterReset) ResetDataset(context.Context) error {
	return fmt.Errorf("%w: %w", service.ErrReloadAfterReset, errors.New("timeout"))
}

func TestResetCmd_ReloadFailureStillReportsReset(t *testing.T) {
	app := testApp(t, 0)
	app.Dashboard = staleAfterReset{DashboardService: app.Dashboard}

	out, err := executeCmd(t, app, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Dashboard data regenerated.")
	assert.Contains(t, out, "Refresh to see it.")
	assert.NotContains(t, out, "Something went wrong")
}

func TestResetCmd_InteractiveConfirm(t *testing.T) {
	app := testApp(t, 0)
	app.IsInteractive = func() bool { return true }

	var asked string
	app.Confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}
	out, err := executeCmd(t, app, "reset")
	require.NoError(t, err)
	assert.NotEmpty(t, asked)
	assert.Contains(t, out, "Reset cancelled.")

	app.Confirm = func(string) (bool, error) { return true, nil }
	out, err = executeCmd(t, app, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Dashboard data regenerated.")
}

func TestExportCmd_CSVToStdout(t *testing.T) {
	app := testApp(t, 0)
	out, err := executeCmd(t, app, "export", "financial")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 13)
	assert.True(t, strings.HasPrefix(lines[0], "id,date,revenue"))
}

func TestExportCmd_XLSXToFile(t *testing.T) {
	app := testApp(t, 0)
	path := filepath.Join(t.TempDir(), "sales.xlsx")

	out, err := executeCmd(t, app, "export", "sales", "--format", "xlsx", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote sales to")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("sales")
	require.NoError(t, err)
	assert.Len(t, rows, 13)
	assert.Contains(t, rows[0], "regionData.northAmerica")
}

func TestExportCmd_Errors(t *testing.T) {
	app := testApp(t, 0)
	_, err := executeCmd(t, app, "export", "financial", "--format", "pdf")
	assert.ErrorIs(t, err, service.ErrUnknownFormat)

	_, err = executeCmd(t, app, "export", "payroll")
	assert.ErrorIs(t, err, service.ErrUnknownSection)
}

func TestThemeCmd(t *testing.T) {
	app := testApp(t, 0)

	out, err := executeCmd(t, app, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", strings.TrimSpace(out))

	out, err = executeCmd(t, app, "theme", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme set to dark.")

	out, err = executeCmd(t, app, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", strings.TrimSpace(out))

	_, err = executeCmd(t, app, "theme", "sepia")
	require.Error(t, err)
	assert.Contains(t, Message(err), "unknown theme")
}

func TestLoginWhoAmILogout(t *testing.T) {
	app := testApp(t, 0)

	out, err := executeCmd(t, app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")

	out, err = executeCmd(t, app, "login", "manager@execview.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Mark Manager (manager).")

	out, err = executeCmd(t, app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Mark Manager <manager@execview.com>")

	_, err = executeCmd(t, app, "login", "ghost@execview.com")
	require.ErrorIs(t, err, service.ErrUnknownUser)

	out, err = executeCmd(t, app, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	out, err = executeCmd(t, app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")
}

func TestDashboardCmd_NeedsTerminal(t *testing.T) {
	app := testApp(t, 0)
	_, err := executeCmd(t, app, "dashboard")
	require.Error(t, err)
	assert.Contains(t, Message(err), "interactive terminal")
}
