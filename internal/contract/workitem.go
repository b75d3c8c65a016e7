package contract

import "github.com/alexanderramin/chairside/internal/domain"

// WorkItemDTO is a work type attached to an appointment.
type WorkItemDTO struct {
	ID          FlexID  `json:"id,omitempty"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Cost        float64 `json:"cost"`
}

func (d WorkItemDTO) ToDomain() domain.WorkItem {
	return domain.WorkItem{
		ID:          string(d.ID),
		Description: d.Description,
		Duration:    d.Duration,
		Cost:        d.Cost,
	}
}

// AppointmentDetailResponse is the body of GET /stylist/appoitment_detail/{id}.
type AppointmentDetailResponse struct {
	Msg   string        `json:"msg,omitempty"`
	Items []WorkItemDTO `json:"items"`
}

// ToDomain converts the items in server order. A missing items field yields
// an empty, non-nil slice.
func (r AppointmentDetailResponse) ToDomain() []domain.WorkItem {
	out := make([]domain.WorkItem, 0, len(r.Items))
	for _, dto := range r.Items {
		out = append(out, dto.ToDomain())
	}
	return out
}
