package dto

// ReferenceResponse mirrors the reference snapshot plus the live user list.
type ReferenceResponse struct {
	SectorResponsible map[string]string `json:"sectorResponsible"`
	Equipment         []string          `json:"equipment"`
	Responsibles      []string          `json:"responsaveis,omitempty"`
	Users             []string          `json:"users"`
}
