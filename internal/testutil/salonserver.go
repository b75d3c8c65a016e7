package testutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexanderramin/chairside/internal/contract"
	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/alexanderramin/chairside/internal/salon"
)

// backendDateLayout is the date format the salon backend emits.
const backendDateLayout = "2006-01-02 15:04"

// NewSalonServer serves the salon backend's stylist endpoints from fake.
// The server is closed when the test ends.
func NewSalonServer(t *testing.T, fake *FakeSalon) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /stylist/pending_appoitments", func(w http.ResponseWriter, r *http.Request) {
		appts, err := fake.PendingAppointments(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, appointmentDTOs(appts))
	})
	mux.HandleFunc("GET /stylist/done_appoitments", func(w http.ResponseWriter, r *http.Request) {
		appts, err := fake.DoneAppointments(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, appointmentDTOs(appts))
	})
	mux.HandleFunc("GET /stylist/appoitment_detail/{id}", func(w http.ResponseWriter, r *http.Request) {
		items, err := fake.AppointmentItems(r.Context(), domain.AppointmentID(r.PathValue("id")))
		if err != nil {
			writeError(w, err)
			return
		}
		resp := contract.AppointmentDetailResponse{Msg: "ok", Items: make([]contract.WorkItemDTO, 0, len(items))}
		for _, it := range items {
			resp.Items = append(resp.Items, contract.WorkItemDTO{
				ID:          contract.FlexID(it.ID),
				Description: it.Description,
				Duration:    it.Duration,
				Cost:        it.Cost,
			})
		}
		writeJSON(w, resp)
	})
	mux.HandleFunc("GET /stylist/info", func(w http.ResponseWriter, r *http.Request) {
		s, err := fake.StylistInfo(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, contract.StylistInfoResponse{Msg: "ok", Info: contract.StylistDTOFromDomain(*s)})
	})
	mux.HandleFunc("PUT /stylist/update_info", func(w http.ResponseWriter, r *http.Request) {
		var req contract.ProfileUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, &salon.ServerError{Status: http.StatusBadRequest, Body: err.Error()})
			return
		}
		s, err := fake.UpdateProfile(r.Context(), req.ToDomain())
		if err != nil {
			writeError(w, err)
			return
		}
		dto := contract.StylistDTOFromDomain(*s)
		writeJSON(w, contract.ProfileUpdateResponse{Msg: "updated", User: &dto})
	})
	mux.HandleFunc("PUT /stylist/appointments/{id}", func(w http.ResponseWriter, r *http.Request) {
		var req contract.StatusUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, &salon.ServerError{Status: http.StatusBadRequest, Body: err.Error()})
			return
		}
		a, err := fake.UpdateAppointmentStatus(r.Context(), domain.AppointmentID(r.PathValue("id")), domain.AppointmentStatus(req.Status))
		if err != nil {
			writeError(w, err)
			return
		}
		dto := appointmentDTO(*a)
		writeJSON(w, contract.StatusUpdateResponse{Msg: "updated", Appointment: &dto})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func appointmentDTO(a domain.Appointment) contract.AppointmentDTO {
	return contract.AppointmentDTO{
		ID:        contract.FlexID(a.ID),
		Date:      a.Date.Format(backendDateLayout),
		User:      a.User,
		Status:    string(a.Status),
		UserID:    contract.FlexID(a.UserID),
		StylistID: contract.FlexID(a.StylistID),
	}
}

func appointmentDTOs(appts []domain.Appointment) []contract.AppointmentDTO {
	out := make([]contract.AppointmentDTO, 0, len(appts))
	for _, a := range appts {
		out = append(out, appointmentDTO(a))
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var se *salon.ServerError
	if errors.As(err, &se) {
		status = se.Status
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"msg": err.Error()})
}
