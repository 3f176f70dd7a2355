package models

type BlacklistEntry struct {
	ID          string `json:"id,omitempty"`
	SubjectName string `json:"subjectName"`
	IDNumber    string `json:"idNumber,omitempty"`
	Reason      string `json:"reason"`
	AddedBy     string `json:"addedBy"`
	AddedByName string `json:"addedByName"`
	CreatedAt   string `json:"createdAt,omitempty"`
}
