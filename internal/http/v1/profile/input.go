package profile

// ProfileCreateInput for POST /profile
type ProfileCreateInput struct {
	Body struct {
		FirstName string `json:"firstName" minLength:"1" maxLength:"100" required:"true" doc:"First name"    example:"John"`
		LastName  string `json:"lastName"  minLength:"1" maxLength:"100" required:"true" doc:"Last name"     example:"Doe"`
		Email     string `json:"email"     maxLength:"254"               required:"true" doc:"Email address" example:"john@example.com"`
	}
}

// ProfileGetInput has no parameters; the caller comes from the bearer token.
type ProfileGetInput struct{}

// ProfileUpdateInput is a sparse update: omitted fields stay as stored.
type ProfileUpdateInput struct {
	Body struct {
		FirstName *string `json:"firstName,omitempty" maxLength:"100" doc:"First name"    example:"John"`
		LastName  *string `json:"lastName,omitempty"  maxLength:"100" doc:"Last name"     example:"Doe"`
		Email     *string `json:"email,omitempty"     maxLength:"254" doc:"Email address" example:"john@example.com"`
	}
}

// ProfileDeleteInput and ProfileStreamInput carry nothing beyond the caller's identity.
type (
	ProfileDeleteInput struct{}
	ProfileStreamInput struct{}
)
