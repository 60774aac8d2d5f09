package app

import (
	"net/http"
	"net/url"

	"ebikereviewlab/internal/forms"
	"ebikereviewlab/internal/seo"
)

const (
	contactSuccessMessage = "Your message has been sent successfully!"
	contactFailureMessage = "We could not deliver your message. Please try again later."
)

// submitResponse is the JSON contract of the contact endpoint.
type submitResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type newsletterView struct {
	Title       string
	Description string
	Success     bool
	Status      string
	Message     string
}

func (s *Server) handleNewsletterPage(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	view := newsletterView{Title: newsletterTitle, Description: newsletterDescription}
	query := r.URL.Query()
	switch {
	case query.Get("success") != "":
		view.Success = true
		view.Status = "success"
	case query.Get("error") != "":
		view.Status = query.Get("error")
	}
	view.Message = newsletterMessages[view.Status]

	subscribe := seo.Schema{
		"@context":    "https://schema.org",
		"@type":       "SubscribeAction",
		"name":        "Join the " + newsletterTitle,
		"description": "Weekly email briefing with electric bike performance data, price alerts, and field-tested buying advice.",
		"target": seo.Schema{
			"@type":          "EntryPoint",
			"urlTemplate":    s.seo.AbsoluteURL("/newsletter"),
			"actionPlatform": []string{"https://schema.org/DesktopWebPlatform"},
		},
		"publisher": seo.Schema{
			"@type": "Organization",
			"name":  s.seo.Site().Name,
		},
	}
	meta := s.seo.Page(seo.PageOptions{Title: newsletterTitle, Description: newsletterDescription, Path: "/newsletter"})
	s.render(w, r, http.StatusOK, "newsletter.gohtml", view, meta, subscribe)
}

// handleNewsletterSubscribe always answers with a 303 back to the newsletter
// page; the query says how the submission went.
func (s *Server) handleNewsletterSubscribe(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	status := url.Values{}
	err := s.forms.Subscribe(r.Context(), forms.Newsletter{Email: r.PostFormValue("email")})
	if err == nil {
		status.Set("success", "1")
	} else if ve, ok := forms.AsValidation(err); ok {
		status.Set("error", ve.Code)
	} else {
		status.Set("error", "unavailable")
	}
	http.Redirect(w, r, "/newsletter?"+status.Encode(), http.StatusSeeOther)
}

type contactView struct {
	Title        string
	Description  string
	Email        string
	InquiryTypes []inquiryType
}

func (s *Server) handleContactPage(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	view := contactView{
		Title:        contactTitle,
		Description:  contactDescription,
		Email:        s.seo.Site().ContactEmail,
		InquiryTypes: inquiryTypes,
	}
	meta := s.seo.Page(seo.PageOptions{Title: contactTitle, Description: contactDescription, Path: "/contact"})
	s.render(w, r, http.StatusOK, "contact.gohtml", view, meta, s.seo.ContactPageSchema())
}

// handleContactSubmit validates the form and answers with JSON. Delivery
// failures are reported as success unless the surface policy is configured.
func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	submission := forms.Contact{
		Name:        r.PostFormValue("name"),
		Email:       r.PostFormValue("email"),
		InquiryType: r.PostFormValue("inquiryType"),
		Subject:     r.PostFormValue("subject"),
		Message:     r.PostFormValue("message"),
	}

	err := s.forms.Contact(r.Context(), submission)
	if err == nil {
		writeJSON(w, http.StatusOK, submitResponse{Success: true, Message: contactSuccessMessage})
		return
	}
	if ve, ok := forms.AsValidation(err); ok {
		writeJSON(w, http.StatusBadRequest, submitResponse{Error: ve.Message})
		return
	}
	writeJSON(w, http.StatusBadGateway, submitResponse{Error: contactFailureMessage})
}
