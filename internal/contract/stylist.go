package contract

import "github.com/alexanderramin/chairside/internal/domain"

// StylistDTO uses the backend's Spanish field names.
type StylistDTO struct {
	ID      FlexID `json:"id"`
	Email   string `json:"email"`
	Nombre  string `json:"nombre"`
	Phone   string `json:"telefono"`
	Role    string `json:"role"`
	Picture string `json:"picture,omitempty"`
}

func (d StylistDTO) ToDomain() *domain.Stylist {
	return &domain.Stylist{
		ID:      string(d.ID),
		Email:   d.Email,
		Name:    d.Nombre,
		Phone:   d.Phone,
		Role:    domain.StylistRole(d.Role),
		Picture: d.Picture,
	}
}

// StylistInfoResponse is the body of GET /stylist/info.
type StylistInfoResponse struct {
	Msg  string     `json:"msg,omitempty"`
	Info StylistDTO `json:"items"`
}

func StylistDTOFromDomain(s domain.Stylist) StylistDTO {
	return StylistDTO{
		ID:      FlexID(s.ID),
		Email:   s.Email,
		Nombre:  s.Name,
		Phone:   s.Phone,
		Role:    string(s.Role),
		Picture: s.Picture,
	}
}

// ProfileUpdateRequest is the body of PUT /stylist/update_info. Omitted
// fields are left unchanged.
type ProfileUpdateRequest struct {
	Email   string  `json:"email"`
	Nombre  *string `json:"nombre,omitempty"`
	Phone   *string `json:"telefono,omitempty"`
	Picture *string `json:"picture,omitempty"`
}

func NewProfileUpdateRequest(u domain.ProfileUpdate) ProfileUpdateRequest {
	return ProfileUpdateRequest{Email: u.Email, Nombre: u.Name, Phone: u.Phone, Picture: u.Picture}
}

func (r ProfileUpdateRequest) ToDomain() domain.ProfileUpdate {
	return domain.ProfileUpdate{Email: r.Email, Name: r.Nombre, Phone: r.Phone, Picture: r.Picture}
}

// ProfileUpdateResponse is the body returned by PUT /stylist/update_info.
type ProfileUpdateResponse struct {
	Msg  string      `json:"msg,omitempty"`
	User *StylistDTO `json:"user,omitempty"`
}
