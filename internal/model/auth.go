package model

type RegisterRequest struct {
	Name             string  `json:"name" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	Password         string  `json:"password" binding:"required"`
	Role             string  `json:"role" binding:"required,oneof=patient nurse admin"`
	Phone            *string `json:"phone"`
	Aadhaar          *string `json:"aadhaar"`
	DOB              *Date   `json:"dob"`
	Gender           *string `json:"gender"`
	Address          *string `json:"address"`
	AdmitID          *string `json:"admit_id"`
	TrnaID           *string `json:"trna_id"`
	HospitalLocation *string `json:"hospital_location"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type LoginResponse struct {
	User  LoginUser `json:"user"`
	Token string    `json:"token"`
}

type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type SendOTPResponse struct {
	Message string `json:"message"`
	// OTP is only set when the server runs with OTP echo enabled.
	OTP string `json:"otp,omitempty"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=4,numeric"`
}
