package model

// DirectoryMatch is the contact-person result of a CRM lookup.
// Date is YYYY-MM-DD when the CRM timestamp was an epoch millisecond value,
// otherwise the raw property value ("" when absent).
type DirectoryMatch struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
}

// OrgMatch is the company result of a CRM lookup. LastActivity is the best
// available date property of the winning entry, or NoDateFound.
type OrgMatch struct {
	Name         string `json:"name"`
	LastActivity string `json:"last_activity"`
}
