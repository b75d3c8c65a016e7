// Package contract holds the JSON shapes exchanged with the salon backend
// and their conversion into domain values.
package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/chairside/internal/domain"
)

// FlexID decodes an identifier that the backend may send as a JSON number
// or a JSON string.
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = FlexID(n.String())
	return nil
}

func (id FlexID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// AppointmentDTO mirrors the backend's serialized appointment.
type AppointmentDTO struct {
	ID        FlexID `json:"id"`
	Date      string `json:"date"`
	User      string `json:"user,omitempty"`
	Status    string `json:"status,omitempty"`
	UserID    FlexID `json:"user_id,omitempty"`
	StylistID FlexID `json:"stylist_id,omitempty"`
}

// ToDomain converts the DTO. Dates without a zone are read in loc.
func (d AppointmentDTO) ToDomain(loc *time.Location) (domain.Appointment, error) {
	if d.ID == "" {
		return domain.Appointment{}, fmt.Errorf("appointment without id")
	}
	date, err := domain.ParseAppointmentDate(d.Date, loc)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("appointment %s: %w", d.ID, err)
	}
	return domain.Appointment{
		ID:        domain.AppointmentID(d.ID),
		Date:      date,
		User:      d.User,
		Status:    domain.AppointmentStatus(d.Status),
		UserID:    string(d.UserID),
		StylistID: string(d.StylistID),
	}, nil
}

// AppointmentListResponse is the body of the pending and done endpoints.
// The backend has shipped both an enveloped object and a bare array, so
// both decode.
type AppointmentListResponse struct {
	Msg          string           `json:"msg,omitempty"`
	Appointments []AppointmentDTO `json:"appointments"`
}

func (r *AppointmentListResponse) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []AppointmentDTO
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*r = AppointmentListResponse{Appointments: list}
		return nil
	}
	type plain AppointmentListResponse
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*r = AppointmentListResponse(p)
	return nil
}

// ToDomain converts every appointment, preserving server order.
func (r AppointmentListResponse) ToDomain(loc *time.Location) ([]domain.Appointment, error) {
	out := make([]domain.Appointment, 0, len(r.Appointments))
	for _, dto := range r.Appointments {
		a, err := dto.ToDomain(loc)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// StatusUpdateRequest is the body of PUT /stylist/appointments/{id}.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// StatusUpdateResponse carries the updated appointment under the "role" key,
// which is what the backend emits.
type StatusUpdateResponse struct {
	Msg         string          `json:"msg"`
	Appointment *AppointmentDTO `json:"role,omitempty"`
}
