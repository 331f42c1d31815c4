package models

// MessageModel is a contact-form submission shown in the admin inbox.
type MessageModel struct {
	Base
	Name    string `json:"name"    gorm:"not null"`
	Email   string `json:"email"   gorm:"not null"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Body    string `json:"body"    gorm:"type:text;not null"`
	Read    bool   `json:"read"    gorm:"default:false;index"`
	IP      string `json:"ip"`
}

func (MessageModel) TableName() string { return "messages" }
