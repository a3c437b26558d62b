package models

import "time"

// DentalService is a treatment a dentist offers
type DentalService struct {
	ID          string  `json:"serviceID"`
	DentistID   string  `json:"dentistID,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

// Dentist is the public profile used when booking
type Dentist struct {
	ID             string `json:"dentistID"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Specialization string `json:"specialization,omitempty"`
}

func (d Dentist) DisplayName() string {
	return "Dr. " + d.FirstName + " " + d.LastName
}

// ActivityLog is an append-only audit record written by the backend
type ActivityLog struct {
	ID         string    `json:"logID"`
	UserID     string    `json:"userID"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	Action     string    `json:"action"`
	TargetData string    `json:"targetData"`
	Timestamp  time.Time `json:"timestamp"`
}

// DashboardStats holds admin dashboard counters
type DashboardStats struct {
	TotalPatients     int `json:"totalPatients"`
	TotalDentists     int `json:"totalDentists"`
	TotalAppointments int `json:"totalAppointments"`
	Pending           int `json:"pending"`
	Confirmed         int `json:"confirmed"`
	Cancelled         int `json:"cancelled"`
	Completed         int `json:"completed"`
	Emergency         int `json:"emergency"`
}
