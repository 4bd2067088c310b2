package authhandler

import (
	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/views"
)

// registerSections lays out the wizard. Passwords are never echoed back.
func registerSections(reg auth.Registration) []views.RegisterSection {
	text := func(name, label, value string, required bool) views.FieldView {
		return views.FieldView{Name: name, Label: label, Kind: "text", InputType: "text", Value: value, Required: required}
	}
	typed := func(inputType string, f views.FieldView) views.FieldView {
		f.InputType = inputType
		return f
	}
	gender := views.FieldView{Name: "gender", Label: "Gender", Kind: "select", Placeholder: "Select gender"}
	for _, o := range []views.OptionView{{Value: "male", Label: "Male"}, {Value: "female", Label: "Female"}} {
		o.Selected = o.Value == reg.Gender
		gender.Options = append(gender.Options, o)
	}

	fields := [auth.RegistrationSteps][]views.FieldView{
		{
			text("firstName", "First Name", reg.FirstName, true),
			text("lastName", "Last Name", reg.LastName, true),
			typed("email", text("email", "Email", reg.Email, true)),
			typed("tel", text("phone", "Phone", reg.Phone, true)),
		},
		{
			typed("date", text("dateOfBirth", "Date of Birth", reg.DateOfBirth, true)),
			gender,
			text("nationality", "Nationality", reg.Nationality, true),
		},
		{
			text("addressLine1", "Address Line 1", reg.AddressLine1, true),
			text("addressLine2", "Address Line 2", reg.AddressLine2, false),
			text("city", "City", reg.City, true),
			text("state", "State", reg.State, true),
			text("postalCode", "Postal Code", reg.PostalCode, true),
		},
		{
			typed("date", text("hireDate", "Hire Date", reg.HireDate, true)),
			text("positionName", "Position", reg.PositionName, false),
			text("emergencyContactName", "Emergency Contact Name", reg.EmergencyContactName, false),
			typed("tel", text("emergencyContactPhone", "Emergency Contact Phone", reg.EmergencyContactPhone, false)),
			text("emergencyContactRelationship", "Relationship", reg.EmergencyContactRelationship, false),
		},
		{
			typed("password", text("password", "Password", "", true)),
			typed("password", text("confirmPassword", "Confirm Password", "", true)),
		},
	}

	out := make([]views.RegisterSection, 0, auth.RegistrationSteps)
	for i, title := range auth.RegistrationStepTitles {
		out = append(out, views.RegisterSection{Step: i + 1, Title: title, Fields: fields[i]})
	}
	return out
}
