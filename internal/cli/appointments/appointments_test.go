package appointments

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/chairside/internal/cli/clitest"
	"github.com/julianstephens/chairside/internal/constants"
	"github.com/julianstephens/chairside/internal/errors"
	"github.com/julianstephens/chairside/internal/models"
)

var (
	patient = models.User{ID: "p1", Username: "pat", Roles: models.NewRoles(constants.RolePatient)}
	dentist = models.User{ID: "d1", Username: "doc", Roles: models.NewRoles(constants.RoleDentist)}
	admin   = models.User{ID: "a1", Username: "root", Roles: models.NewRoles(constants.RoleAdmin)}

	schedules = []models.Schedule{
		{ID: "s1", DentistID: "d1", Day: "Friday", TimeSlot: "9:00AM - 10:00AM"},
		{ID: "s2", DentistID: "d1", Day: "Monday", TimeSlot: "1:00PM - 2:00PM"},
	}
)

func withSchedules(env *clitest.Env) {
	env.Backend.Handle("GET", "/schedules", func(w http.ResponseWriter, r *http.Request) {
		clitest.WriteJSON(w, http.StatusOK, schedules)
	})
}

// captureBookings records every POST /appointments body
func captureBookings(env *clitest.Env) *[]models.AppointmentRequest {
	var got []models.AppointmentRequest
	env.Backend.Handle("POST", "/appointments", func(w http.ResponseWriter, r *http.Request) {
		var req models.AppointmentRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		got = append(got, req)
		clitest.WriteJSON(w, http.StatusCreated, models.Appointment{ID: "new-1", Date: req.Date})
	})
	return &got
}

func TestBookWithFlags(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, patient)
	withSchedules(env)
	got := captureBookings(env)

	cmd := &BookCmd{Dentist: "d1", Schedule: "s1", Date: "2026-10-16", Message: "  molar  "}
	require.NoError(t, cmd.Run(env.Ctx))

	require.Len(t, *got, 1)
	req := (*got)[0]
	assert.Equal(t, "p1", req.PatientID)
	assert.Equal(t, "s1", req.ScheduleID)
	assert.Equal(t, "2026-10-16", req.Date)
	assert.Equal(t, "molar", req.Message)
	assert.Equal(t, constants.StatusPending, req.Status)
	assert.Contains(t, env.Out.String(), "✓ Booked 2026-10-16 (Friday 9:00AM - 10:00AM) [ID: new-1]")
}

func TestBookWrongWeekdaySendsNothing(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, patient)
	withSchedules(env)
	got := captureBookings(env)

	// 2026-10-15 is a Thursday, s1 is Fridays
	cmd := &BookCmd{Dentist: "d1", Schedule: "s1", Date: "2026-10-15"}
	err := cmd.Run(env.Ctx)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Empty(t, *got)
}

func TestBookTomorrow(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, patient)
	withSchedules(env)
	got := captureBookings(env)

	// "tomorrow" is Thursday, which no schedule allows
	err := (&BookCmd{Dentist: "d1", Schedule: "s1", Date: "tomorrow"}).Run(env.Ctx)
	require.Error(t, err)
	assert.Empty(t, *got)
}

func TestBookStaleScheduleIsUnconstrained(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, patient)
	withSchedules(env)
	got := captureBookings(env)

	err := (&BookCmd{Dentist: "d1", Schedule: "gone", Date: "2026-10-15"}).Run(env.Ctx)
	require.NoError(t, err)
	require.Len(t, *got, 1)
	assert.Contains(t, env.Out.String(), "⚠ Schedule gone is not listed")
}

func TestBookForPatientNeedsAdmin(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, patient)

	err := (&BookCmd{Dentist: "d1", Schedule: "s1", Date: "2026-10-16", Patient: "p2"}).Run(env.Ctx)
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
	assert.Equal(t, 0, env.Backend.Hits("GET", "/schedules"))
}

func TestBookAsAdminForPatient(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, admin)
	withSchedules(env)
	got := captureBookings(env)

	require.NoError(t, (&BookCmd{Dentist: "d1", Schedule: "s2", Date: "2026-10-19", Patient: "p2"}).Run(env.Ctx))
	require.Len(t, *got, 1)
	assert.Equal(t, "p2", (*got)[0].PatientID)
}

func TestBookNotLoggedIn(t *testing.T) {
	env := clitest.New(t)

	err := (&BookCmd{Dentist: "d1", Schedule: "s1", Date: "2026-10-16"}).Run(env.Ctx)
	assert.ErrorIs(t, err, errors.ErrUnauthenticated)
	assert.Equal(t, 0, env.Backend.Hits("GET", "/auth/verify"))
}

func TestDeleteRequiresAdmin(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, dentist)

	err := (&AppointmentDeleteCmd{ID: "x1"}).Run(env.Ctx)
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
	assert.Equal(t, 0, env.Backend.Hits("DELETE", "/appointments/x1"))
}

func TestDeleteAsAdmin(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, admin)
	env.Backend.Handle("DELETE", "/appointments/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, (&AppointmentDeleteCmd{ID: "x1"}).Run(env.Ctx))
	assert.Equal(t, 1, env.Backend.Hits("DELETE", "/appointments/x1"))
	assert.Contains(t, env.Out.String(), "✓ Deleted appointment x1")
}

func TestListUsesPatientEndpoint(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, patient)
	env.Backend.Handle("GET", "/patients/{id}/appointments", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "p1", r.PathValue("id"))
		clitest.WriteJSON(w, http.StatusOK, []models.Appointment{
			{ID: "x1", Date: "2026-10-16", TimeSlot: "9:00AM - 10:00AM", Status: constants.StatusPending, DentistName: "Dr. Ada Lee", IsEmergency: true},
			{ID: "x2", Date: "2026-10-19", Status: constants.StatusCancelled},
		})
	})

	require.NoError(t, (&AppointmentListCmd{Status: "pending", ShowIDs: true}).Run(env.Ctx))
	out := env.Out.String()
	assert.Contains(t, out, "2026-10-16 9:00AM - 10:00AM (ID: x1) - pending [EMERGENCY]")
	assert.Contains(t, out, "Dr. Ada Lee")
	assert.NotContains(t, out, "x2")
}

func TestPatientMayOnlyCancel(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, patient)

	err := (&AppointmentUpdateCmd{ID: "x1", Status: "confirmed"}).Run(env.Ctx)
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
}

func TestUpdateNothingToChange(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, dentist)

	err := (&AppointmentUpdateCmd{ID: "x1"}).Run(env.Ctx)
	assert.True(t, errors.IsValidation(err))
}

func TestUpdateDateChecksSchedule(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, dentist)
	withSchedules(env)
	env.Backend.Handle("GET", "/dentists/{id}/appointments", func(w http.ResponseWriter, r *http.Request) {
		clitest.WriteJSON(w, http.StatusOK, []models.Appointment{
			{ID: "x1", DentistID: "d1", ScheduleID: "s1", Date: "2026-10-16", Status: constants.StatusPending},
		})
	})
	var puts int
	env.Backend.Handle("PUT", "/appointments/{id}", func(w http.ResponseWriter, r *http.Request) {
		puts++
		var req models.AppointmentRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "x1", req.AppointmentID)
		assert.Equal(t, "2026-10-23", req.Date)
		clitest.WriteJSON(w, http.StatusOK, models.Appointment{ID: "x1"})
	})

	// Monday does not match s1
	err := (&AppointmentUpdateCmd{ID: "x1", Date: "2026-10-19"}).Run(env.Ctx)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, 0, puts)

	require.NoError(t, (&AppointmentUpdateCmd{ID: "x1", Date: "2026-10-23"}).Run(env.Ctx))
	assert.Equal(t, 1, puts)
}

func TestRejectedTokenClearsSession(t *testing.T) {
	env := clitest.New(t)
	env.Login(t, patient)
	env.Backend.Handle("GET", "/schedules", func(w http.ResponseWriter, r *http.Request) {
		clitest.WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
	})

	err := (&BookCmd{Dentist: "d1", Schedule: "s1", Date: "2026-10-16"}).Run(env.Ctx)
	assert.ErrorIs(t, err, errors.ErrUnauthenticated)
	_, serr := env.Ctx.Sessions.Get(env.Ctx.Ctx())
	assert.Error(t, serr)
}
