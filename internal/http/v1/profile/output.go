package profile

// ProfileCreatedOutput is the 201 response of POST /profile; Location points at the caller's profile.
type ProfileCreatedOutput struct {
	Location string `header:"Location" doc:"URL of the created profile"`
	Body     Profile
}

// ProfileOutput carries the caller's profile for GET and PATCH.
type ProfileOutput struct {
	Body Profile
}
