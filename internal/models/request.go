package models

// ProfileRequest is the owner-editable part of a profile.
type ProfileRequest struct {
	DisplayName     string       `json:"display_name" validate:"required,min=2,max=100"`
	Bio             string       `json:"bio" validate:"max=2000"`
	State           string       `json:"state" validate:"required,us-state"`
	City            string       `json:"city" validate:"required,max=100"`
	PriceMin        *int         `json:"price_min" validate:"omitempty,min=0"`
	PriceMax        *int         `json:"price_max" validate:"omitempty,min=0"`
	Instagram       string       `json:"instagram" validate:"max=100"`
	Facebook        string       `json:"facebook" validate:"max=200"`
	TikTok          string       `json:"tiktok" validate:"max=100"`
	YouTube         string       `json:"youtube" validate:"max=200"`
	Website         string       `json:"website" validate:"omitempty,url"`
	WillingToTravel bool         `json:"willing_to_travel"`
	VirtualEvents   bool         `json:"virtual_events"`
	OutdoorEvents   bool         `json:"outdoor_events"`
	FamilyFriendly  bool         `json:"family_friendly"`
	PhotoOps        bool         `json:"photo_ops"`
	FacePainting    bool         `json:"face_painting"`
	TravelRadius    TravelRadius `json:"travel_radius" validate:"omitempty,travel-radius"`
	ContactEmail    string       `json:"contact_email" validate:"required,email"`
	Categories      []Category   `json:"categories" validate:"dive,category"`
}

// InquiryRequest is a visitor's message to a single profile.
type InquiryRequest struct {
	Name          string      `json:"name" validate:"required,max=100"`
	Email         string      `json:"email" validate:"required,email"`
	Phone         string      `json:"phone" validate:"required,us-phone"`
	City          string      `json:"city" validate:"required,max=100"`
	State         string      `json:"state" validate:"required,us-state"`
	ZipCode       string      `json:"zip_code" validate:"required,us-zip"`
	Message       string      `json:"message" validate:"required,max=500"`
	EventTypes    []EventType `json:"event_types" validate:"min=1,dive,event-type"`
	CaptchaToken  string      `json:"captcha_token" validate:"required"`
	CaptchaAnswer *int        `json:"captcha_answer" validate:"required"`
}

// FreeListingApplication is the multi-section application form.
type FreeListingApplication struct {
	FullName        string       `json:"full_name" form:"fullName" validate:"required,max=100"`
	Email           string       `json:"email" form:"email" validate:"required,email"`
	Phone           string       `json:"phone" form:"phone" validate:"required,us-phone"`
	City            string       `json:"city" form:"city" validate:"required,max=100"`
	State           string       `json:"state" form:"state" validate:"required,us-state"`
	Instagram       string       `json:"instagram" form:"instagram" validate:"max=100"`
	Facebook        string       `json:"facebook" form:"facebook" validate:"max=200"`
	TikTok          string       `json:"tiktok" form:"tiktok" validate:"max=100"`
	Website         string       `json:"website" form:"website" validate:"omitempty,url"`
	YearsExperience int          `json:"years_experience" form:"yearsExperience" validate:"min=0,max=80"`
	Characters      string       `json:"characters" form:"characters" validate:"required,max=1000"`
	Bio             string       `json:"bio" form:"bio" validate:"required,max=2000"`
	WillingToTravel bool         `json:"willing_to_travel" form:"willingToTravel"`
	TravelRadius    TravelRadius `json:"travel_radius" form:"travelRadius" validate:"omitempty,travel-radius"`
	AdditionalInfo  string       `json:"additional_info" form:"additionalInfo" validate:"max=2000"`
}

// ContactRelayRequest is the JSON body of the contact email relay.
type ContactRelayRequest struct {
	SenderName     string `json:"senderName" validate:"required"`
	SenderEmail    string `json:"senderEmail" validate:"required,relay-email"`
	Message        string `json:"message" validate:"required"`
	RecipientEmail string `json:"recipientEmail" validate:"required,relay-email"`
	ProfileID      string `json:"profileId" validate:"required,uuid"`
}

type ReorderRequest struct {
	From *int `json:"from" validate:"required,min=0"`
	To   *int `json:"to" validate:"required,min=0"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CheckoutRequest struct {
	PriceID    string `json:"price_id" validate:"required"`
	Mode       string `json:"mode" validate:"required,oneof=payment subscription"`
	SuccessURL string `json:"success_url" validate:"required,url"`
	CancelURL  string `json:"cancel_url" validate:"required,url"`
}

// PaymentEvent is the signed body posted by the payment webhook.
type PaymentEvent struct {
	ProfileID     string        `json:"profile_id" validate:"required,uuid"`
	PaymentStatus PaymentStatus `json:"payment_status" validate:"required,payment-status"`
	ExpiresAt     *string       `json:"expires_at"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
