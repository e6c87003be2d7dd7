package domain

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Integrations records which notification channels a user opted into.
// Mail is always on; no update path may disable it.
type Integrations struct {
	WhatsApp  bool `json:"whatsapp"`
	Message   bool `json:"message"`
	VoiceCall bool `json:"voiceCall"`
	Mail      bool `json:"mail"`
	Calendar  bool `json:"calendar"`
}

type GoogleTokens struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	Expiry       string `json:"expiry,omitempty"`
}

type User struct {
	ID           int           `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	Password     string        `json:"password,omitempty"`
	Role         string        `json:"role"`
	PhoneNumber  string        `json:"phoneNumber,omitempty"`
	Integrations Integrations  `json:"integrations"`
	GoogleTokens *GoogleTokens `json:"googleTokens,omitempty"`
}

// Sanitized returns a copy safe for API responses: no password hash and
// no OAuth tokens.
func (u User) Sanitized() User {
	u.Password = ""
	u.GoogleTokens = nil
	return u
}
