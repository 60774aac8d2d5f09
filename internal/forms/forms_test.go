package forms

import "testing"

func TestNewsletterValidate(t *testing.T) {
	tests := map[string]string{
		"user@example.com":        "",
		"  User@Example.COM  ":    "",
		"":                        CodeMissingEmail,
		"   ":                     CodeInvalidEmail,
		"not-an-email":            CodeInvalidEmail,
		"user@example":            CodeInvalidEmail,
		"user name@example.com":   CodeInvalidEmail,
		"user@@example.com":       CodeInvalidEmail,
		"first.last@sub.mail.org": "",
	}
	for input, want := range tests {
		err := Newsletter{Email: input}.Validate()
		if want == "" {
			if err != nil {
				t.Errorf("Validate(%q) = %v, want nil", input, err)
			}
			continue
		}
		ve, ok := AsValidation(err)
		if !ok || ve.Code != want {
			t.Errorf("Validate(%q) = %v, want code %s", input, err, want)
		}
	}
}

func TestNewsletterNormalize(t *testing.T) {
	if got := (Newsletter{Email: "  Rider@Example.COM "}).Normalize().Email; got != "rider@example.com" {
		t.Fatalf("Normalize() = %q", got)
	}
}

func validContact() Contact {
	return Contact{
		Name:        "Sam Rider",
		Email:       "sam@example.com",
		InquiryType: "partnership",
		Subject:     "Review request",
		Message:     "Would you review our cargo bike?",
	}
}

func TestContactValidate(t *testing.T) {
	tests := map[string]struct {
		edit    func(*Contact)
		code    string
		message string
	}{
		"valid":           {edit: func(*Contact) {}},
		"missing name":    {edit: func(c *Contact) { c.Name = " " }, code: CodeMissingFields, message: "All fields are required"},
		"missing subject": {edit: func(c *Contact) { c.Subject = "" }, code: CodeMissingFields, message: "All fields are required"},
		"missing message": {edit: func(c *Contact) { c.Message = "\n" }, code: CodeMissingFields, message: "All fields are required"},
		"missing email":   {edit: func(c *Contact) { c.Email = "" }, code: CodeMissingFields, message: "All fields are required"},
		"bad email":       {edit: func(c *Contact) { c.Email = "sam@" }, code: CodeInvalidEmail, message: "Invalid email address"},
	}
	for name, tt := range tests {
		c := validContact()
		tt.edit(&c)
		err := c.Normalize().Validate()
		if tt.code == "" {
			if err != nil {
				t.Errorf("%s: Validate() = %v, want nil", name, err)
			}
			continue
		}
		ve, ok := AsValidation(err)
		if !ok || ve.Code != tt.code || ve.Error() != tt.message {
			t.Errorf("%s: Validate() = %v, want %s %q", name, err, tt.code, tt.message)
		}
	}
}
