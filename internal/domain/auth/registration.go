package auth

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Registration is the sign-up payload collected over RegistrationSteps steps.
type Registration struct {
	FirstName                    string `json:"firstName" form:"firstName" validate:"required"`
	LastName                     string `json:"lastName" form:"lastName" validate:"required"`
	Email                        string `json:"email" form:"email" validate:"required,email"`
	Phone                        string `json:"phone" form:"phone" validate:"required"`
	DateOfBirth                  string `json:"dateOfBirth" form:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Gender                       string `json:"gender" form:"gender" validate:"omitempty,oneof=male female"`
	Nationality                  string `json:"nationality" form:"nationality" validate:"required"`
	AddressLine1                 string `json:"addressLine1" form:"addressLine1" validate:"required"`
	AddressLine2                 string `json:"addressLine2" form:"addressLine2"`
	City                         string `json:"city" form:"city" validate:"required"`
	State                        string `json:"state" form:"state" validate:"required"`
	PostalCode                   string `json:"postalCode" form:"postalCode" validate:"required"`
	HireDate                     string `json:"hireDate" form:"hireDate" validate:"required,datetime=2006-01-02"`
	PositionName                 string `json:"positionName" form:"positionName"`
	EmergencyContactName         string `json:"emergencyContactName" form:"emergencyContactName"`
	EmergencyContactPhone        string `json:"emergencyContactPhone" form:"emergencyContactPhone"`
	EmergencyContactRelationship string `json:"emergencyContactRelationship" form:"emergencyContactRelationship"`
	Password                     string `json:"password" form:"password" validate:"required,min=8"`
	ConfirmPassword              string `json:"confirmPassword" form:"confirmPassword" validate:"required,eqfield=Password"`
}

const RegistrationSteps = 5

var RegistrationStepTitles = [RegistrationSteps]string{
	"Personal Information",
	"Additional Details",
	"Address Information",
	"Employment Details",
	"Security Setup",
}

type stepRule struct {
	fields  []string
	message string
}

var stepRules = [RegistrationSteps][]stepRule{
	{
		{fields: []string{"FirstName", "LastName", "Phone"}, message: "Please fill in all required personal information fields."},
		{fields: []string{"Email"}, message: "Please enter a valid email address."},
	},
	{
		{fields: []string{"DateOfBirth", "Nationality", "Gender"}, message: "Please fill in date of birth and nationality."},
	},
	{
		{fields: []string{"AddressLine1", "City", "State", "PostalCode"}, message: "Please fill in all required address fields."},
	},
	{
		{fields: []string{"HireDate"}, message: "Please select a hire date."},
	},
	{
		{fields: []string{"Password"}, message: "Please enter and confirm your password."},
		{fields: []string{"ConfirmPassword"}, message: "Passwords do not match."},
	},
}

var validate = validator.New()

// ValidateStep checks the fields owned by step (1-based) and returns a
// user-facing message, or "" when the step is complete.
func (r Registration) ValidateStep(step int, now time.Time) string {
	if step < 1 || step > RegistrationSteps {
		return "Unknown registration step."
	}
	if step == 1 && (r.FirstName == "" || r.LastName == "" || r.Email == "" || r.Phone == "") {
		return stepRules[0][0].message
	}
	if step == 5 {
		if r.Password == "" || r.ConfirmPassword == "" {
			return stepRules[4][0].message
		}
		if len(r.Password) < 8 {
			return "Password must be at least 8 characters long."
		}
	}
	for _, rule := range stepRules[step-1] {
		if err := validate.StructPartial(r, rule.fields...); err != nil {
			return rule.message
		}
	}
	if step == 2 {
		born, err := time.Parse("2006-01-02", r.DateOfBirth)
		if err == nil && now.Year()-born.Year() < 18 {
			return "You must be at least 18 years old to register."
		}
	}
	return ""
}

// Validate runs every step in order and returns the first failure.
func (r Registration) Validate(now time.Time) string {
	for step := 1; step <= RegistrationSteps; step++ {
		if msg := r.ValidateStep(step, now); msg != "" {
			return msg
		}
	}
	return ""
}
