package models

type Profile struct {
	ID        string `json:"id" db:"id"`
	Email     string `json:"email" db:"email"`
	Password  string `json:"-" db:"password"` // Never return password in JSON
	FullName  string `json:"full_name" db:"full_name"`
	Role      string `json:"role" db:"role"` // admin, worker, driver, recycling_manager
	Area      string `json:"area" db:"area"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
	UpdatedAt int64  `json:"updated_at" db:"updated_at"`
}

type ProfileResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	Area      string `json:"area"`
	CreatedAt int64  `json:"created_at"`
}

func (p *Profile) ToProfileResponse() ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		Role:      p.Role,
		Area:      p.Area,
		CreatedAt: p.CreatedAt,
	}
}
