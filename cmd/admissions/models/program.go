package models

// Program is a capacity-limited admission target identified by a short code.
// Programs come from static configuration, never from imported data.
type Program struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}
