package dto

type SetStatusRequest struct {
	Status string `json:"status"`
}

type PublishRequest struct {
	Published bool `json:"published"`
}

// EditReportRequest carries a partial update; nil fields are left
// untouched. Details replaces the stored document wholesale after
// cleaning.
type EditReportRequest struct {
	AnimalType   *string        `json:"animal_type,omitempty"`
	AnimalName   *string        `json:"animal_name,omitempty"`
	ContactName  *string        `json:"contact_name,omitempty"`
	ContactPhone *string        `json:"contact_phone,omitempty"`
	ContactEmail *string        `json:"contact_email,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
}
