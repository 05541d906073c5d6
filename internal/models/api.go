package models

type SessionResponse struct {
	ID        string      `json:"id"`
	State     string      `json:"state"`
	Step      int         `json:"step"`
	Draft     UserProfile `json:"draft"`
	Error     *string     `json:"error,omitempty"`
	HasResult bool        `json:"has_result"`
	ExpiresAt string      `json:"expires_at"`
}

type ProfileUpdateRequest struct {
	Degree        *string `json:"degree,omitempty"`
	Branch        *string `json:"branch,omitempty"`
	Year          *string `json:"year,omitempty"`
	Availability  *string `json:"availability,omitempty"`
	Proficiency   *string `json:"proficiency,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Timeline      *string `json:"timeline,omitempty" validate:"omitempty,oneof='3 Months' '6 Months' '1 Year'"`
	LearningStyle *string `json:"learningStyle,omitempty" validate:"omitempty,oneof=Videos Projects Reading Mixed"`
}

type ListItemRequest struct {
	Value string `json:"value"`
}

type SubmitResponse struct {
	ID    string `json:"id"`
	State string `json:"state"`
}
