package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/chairside/internal/constants"
)

type Appointment struct {
	ID              string                      `json:"appointmentID"`
	PatientID       string                      `json:"patientID"`
	DentistID       string                      `json:"dentistID"`
	ScheduleID      string                      `json:"scheduleID"`
	Status          constants.AppointmentStatus `json:"status"`
	IsEmergency     bool                        `json:"isEmergency"`
	IsFamilyBooking bool                        `json:"isFamilyBooking"`
	Message         string                      `json:"message,omitempty"`
	Date            string                      `json:"date"` // YYYY-MM-DD, must fall on the schedule's weekday
	PatientName     string                      `json:"patientName,omitempty"`
	DentistName     string                      `json:"dentistName,omitempty"`
	Day             string                      `json:"day,omitempty"`
	TimeSlot        string                      `json:"timeSlot,omitempty"`
	CreatedAt       *time.Time                  `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time                  `json:"updatedAt,omitempty"`
}

// AppointmentRequest is the POST/PUT body for an appointment
type AppointmentRequest struct {
	AppointmentID   string                      `json:"appointmentID,omitempty"`
	PatientID       string                      `json:"patientID,omitempty"`
	DentistID       string                      `json:"dentistID,omitempty"`
	ScheduleID      string                      `json:"scheduleID"`
	Date            string                      `json:"date"`
	IsEmergency     bool                        `json:"isEmergency"`
	IsFamilyBooking bool                        `json:"isFamilyBooking"`
	Message         string                      `json:"message"`
	Status          constants.AppointmentStatus `json:"status,omitempty"`
}

var validStatuses = map[constants.AppointmentStatus]bool{
	constants.StatusPending:   true,
	constants.StatusConfirmed: true,
	constants.StatusApproved:  true,
	constants.StatusCancelled: true,
	constants.StatusRejected:  true,
	constants.StatusCompleted: true,
}

// ParseStatus validates a status string
func ParseStatus(s string) (constants.AppointmentStatus, error) {
	status := constants.AppointmentStatus(s)
	if !validStatuses[status] {
		return "", fmt.Errorf("invalid status %q (expected pending|confirmed|approved|cancelled|rejected|completed)", s)
	}
	return status, nil
}

// ToRequest copies an appointment into an update body
func (a Appointment) ToRequest() AppointmentRequest {
	return AppointmentRequest{
		AppointmentID:   a.ID,
		PatientID:       a.PatientID,
		DentistID:       a.DentistID,
		ScheduleID:      a.ScheduleID,
		Date:            a.Date,
		IsEmergency:     a.IsEmergency,
		IsFamilyBooking: a.IsFamilyBooking,
		Message:         a.Message,
		Status:          a.Status,
	}
}
