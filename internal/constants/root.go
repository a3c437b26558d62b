package constants

import "time"

// Role is a permission-group label assigned to a user
type Role = string

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppName            = "chairside"
	DefaultKeyringUser = "session"
	DefaultConfigPath  = "~/.config/chairside/chairside.db"
	DefaultAPIURL      = "http://localhost:8080/api"
	Version            = "v0.3.0"

	// DateFormat is the wire and display format for appointment dates (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// SlotExample is shown whenever a time slot fails validation
	SlotExample = "9:00AM - 10:00AM"

	// Local storage keys
	SessionKey     = "session"
	UserDetailsKey = "userDetails"

	// Session backends
	SessionBackendLocal   = "local"
	SessionBackendKeyring = "keyring"

	// HTTP defaults
	DefaultTimeout     = 15 * time.Second
	DefaultRateLimit   = 10
	DefaultLogLimit    = 50
	DefaultDateCount   = 4
	RequestIDHeader    = "X-Request-ID"
	VerifyStatusOK     = "ok"
	BearerPrefix       = "Bearer "
	ContentTypeJSON    = "application/json"

	// Roles
	RoleAdmin   Role = "ROLE_ADMIN"
	RoleDentist Role = "ROLE_DENTIST"
	RolePatient Role = "ROLE_PATIENT"

	// Appointment statuses
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusApproved  AppointmentStatus = "approved"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusRejected  AppointmentStatus = "rejected"
	StatusCompleted AppointmentStatus = "completed"
)

// Weekdays holds the canonical English weekday names indexed by time.Weekday
var Weekdays = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}
