package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"pediacenter/internal/bookings/handler"
	"pediacenter/internal/bootstrap"
	"pediacenter/internal/identity"
	"pediacenter/internal/intake"
	"pediacenter/pkg/client"
	"pediacenter/pkg/clock"
	"pediacenter/pkg/config"
	"pediacenter/pkg/logger"
	"pediacenter/pkg/model"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func newServices(t *testing.T) *bootstrap.Services {
	t.Helper()
	cfg := &config.Config{
		StoreBackend:    config.StoreMemory,
		CatalogBackend:  config.CatalogStatic,
		LockBackend:     config.LockLocal,
		LockTTL:         time.Second,
		LockWaitTimeout: time.Second,
		Log:             logger.Discard(),
		Client:          client.NewClient(),
	}
	s, err := bootstrap.Build(context.Background(), cfg, nil, bootstrap.Options{Clock: clock.Fixed{T: today}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func run(t *testing.T, b Backend, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmdWithBackend(b)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func backends(t *testing.T) map[string]Backend {
	local := newServices(t)

	remote := newServices(t)
	router := httprouter.New()
	handler.NewBookingHandler(remote.Bookings, remote.Slots, remote.Validator, logger.Discard()).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return map[string]Backend{
		"local":  NewLocalBackend(local),
		"remote": NewRemoteBackend(client.NewHttpClient(srv.URL)),
	}
}

func TestCLI_BookingLifecycle(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			out, err := run(t, b, "slots", "--visit-type", "sick_visit")
			require.NoError(t, err)
			var slots handler.SlotsResponse
			require.NoError(t, json.Unmarshal([]byte(out), &slots))
			require.NotEmpty(t, slots.Slots)
			first := slots.Slots[0]

			out, err = run(t, b, "book", "--slot", first.Start, "--provider", first.Provider, "--child", "Ana Lee")
			require.NoError(t, err)
			var booking model.Booking
			require.NoError(t, json.Unmarshal([]byte(out), &booking))
			assert.Equal(t, model.StatusBooked, booking.Status)
			assert.NotEmpty(t, booking.ConfirmationID)

			out, err = run(t, b, "list", "--child", "ana")
			require.NoError(t, err)
			var listed handler.BookingsResponse
			require.NoError(t, json.Unmarshal([]byte(out), &listed))
			assert.Len(t, listed.Bookings, 1)

			next := slots.Slots[1]
			out, err = run(t, b, "reschedule", "--child", "Ana Lee", "--slot", next.Start, "--provider", next.Provider)
			require.NoError(t, err)
			var moved model.RescheduleResult
			require.NoError(t, json.Unmarshal([]byte(out), &moved))
			assert.Equal(t, model.RescheduleStatusRescheduled, moved.Status)
			assert.Equal(t, booking.ConfirmationID, moved.OldConfirmationID)

			out, err = run(t, b, "cancel", "--id", moved.NewConfirmationID)
			require.NoError(t, err)
			var cancelled model.CancelResult
			require.NoError(t, json.Unmarshal([]byte(out), &cancelled))
			assert.Equal(t, model.CancelStatusCancelled, cancelled.Status)
		})
	}
}

func TestCLI_ValidationErrors(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, b, "slots", "--visit-type", "")
			assert.Error(t, err)

			_, err = run(t, b, "book", "--slot", "tomorrow", "--provider", "Dr. Smith", "--child", "Ana")
			assert.Error(t, err)
		})
	}
}

func TestCLI_RequiredFlags(t *testing.T) {
	_, err := run(t, NewLocalBackend(newServices(t)), "book", "--slot", "2025-06-03T09:00")
	assert.Error(t, err)
}

func TestCLI_CheckIdentity(t *testing.T) {
	out, err := run(t, nil, "check-identity", "--first-name", "Ana", "--dob", " ")
	require.NoError(t, err)

	var res identity.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.OK)
	assert.Equal(t, []string{"last_name", "date_of_birth"}, res.Missing)
}

func TestCLI_Extract(t *testing.T) {
	out, err := run(t, nil, "extract", "my", "3", "year", "old", "has", "a", "fever,", "morning", "please")
	require.NoError(t, err)

	var d intake.Details
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, 3, d.ChildAgeYears)
	assert.Equal(t, model.VisitTypeSick, d.VisitType)
	assert.Equal(t, model.TimeOfDayMorning, d.PreferredTimes)
}

func TestCLI_Version(t *testing.T) {
	out, err := run(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pediactl dev")
}
