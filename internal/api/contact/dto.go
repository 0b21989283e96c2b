package contact

type SubmitRequest struct {
	FullName      string  `json:"fullName" binding:"required,max=100"`
	Email         string  `json:"email" binding:"omitempty,email,max=255"`
	Phone         string  `json:"phone" binding:"max=20"`
	Subject       string  `json:"subject" binding:"max=200"`
	Message       string  `json:"message" binding:"required,max=2000"`
	PropertyID    *uint   `json:"propertyId"`
	PreferredLang *string `json:"preferredLang"`
}
