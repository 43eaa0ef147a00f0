package model

import "time"

type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CompanySummary struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	LogoURL *string `json:"logo_url,omitempty"`
}

type CompanyMember struct {
	UserID    int64 `json:"user_id"`
	CompanyID int64 `json:"company_id"`
	Role      Role  `json:"role"`
}
