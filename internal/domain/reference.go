package domain

// UserSector pairs a user with the sector they belong to. Display-only data
// produced by the converter.
type UserSector struct {
	User   string `json:"user"`
	Sector string `json:"sector"`
}

// ReferenceData is the read-only organizational snapshot consulted during
// ticket validation. Loaded once at process start.
type ReferenceData struct {
	SectorResponsible map[string]string `json:"sectorResponsible"`
	Equipment         []string          `json:"equipment"`
	Responsibles      []string          `json:"responsaveis,omitempty"`
	UserSectors       []UserSector      `json:"userSectors,omitempty"`
}
