package app

import "ebikereviewlab/internal/seo"

// staticPage is an editorial page that is not part of the article catalog.
type staticPage struct {
	Path        string
	Title       string
	Heading     string
	Description string
	Effective   string
	Lead        []string
	Sections    []staticSection
	// SchemaType is the schema.org type for policy pages; empty for others.
	SchemaType string
	SchemaName string
}

type staticSection struct {
	Heading    string
	Paragraphs []string
	Bullets    []string
}

var aboutPage = staticPage{
	Path:        "/about",
	Title:       "About EBikeReviewLab",
	Heading:     "Welcome to our website!",
	Description: "Learn how EBikeReviewLab tests e-bikes, evaluates affiliate products, and helps riders make confident buying decisions.",
	Lead: []string{
		"EBikeReviewLab is a dedicated blog that helps you find the best electric bikes for your specific requirement. We've been in the e-bike industry for many years but have a specific focus on electric bikes.",
	},
	Sections: []staticSection{
		{
			Heading: "How we test",
			Paragraphs: []string{
				"Every bike in a roundup is ridden on the same commuting loop, a hill repeat and a loaded cargo run before we publish numbers.",
			},
			Bullets: []string{
				"Range measured from full charge to cutoff at a steady assist level.",
				"Hill climbing timed on a fixed gradient with a 90 kg rider.",
				"Brakes, fit and folding mechanisms checked by two testers.",
			},
		},
		{
			Heading: "How we make money",
			Paragraphs: []string{
				"Some links on the site are affiliate links. Retailers pay us a commission when you buy through them, which never changes the price you pay or the ranking a product receives.",
			},
		},
	},
}

var privacyPage = staticPage{
	Path:        "/privacy",
	Title:       "Privacy Policy",
	Heading:     "Privacy Policy",
	Description: "Understand how EBikeReviewLab collects, uses, and safeguards your information when you read our guides or subscribe to updates.",
	Effective:   "Effective as of January 1, 2025",
	Lead: []string{
		"This policy explains how EBikeReviewLab collects and uses personal data. By browsing our site or subscribing to our newsletter, you agree to the practices outlined below.",
	},
	Sections: []staticSection{
		{Heading: "Information We Collect", Bullets: []string{
			"Email addresses you provide when subscribing to the Insider Brief or contacting us.",
			"Anonymous analytics data such as page views, device type, and referring URLs.",
			"Affiliate link clicks tracked through partner platforms so we can understand product performance.",
		}},
		{Heading: "How We Use Your Information", Bullets: []string{
			"Send newsletters and updates you opt in to receive.",
			"Analyze site performance to improve our testing coverage and reader experience.",
			"Measure the effectiveness of affiliate partnerships without sharing individual user identities.",
		}},
		{Heading: "Sharing & Disclosure", Bullets: []string{
			"We do not sell your personal data.",
			"Aggregated analytics may be shared with partners, but it never includes personal identifiers.",
			"If required by law, we may disclose information to comply with legal processes.",
		}},
		{Heading: "Your Choices", Bullets: []string{
			"Unsubscribe from emails at any time using the link included in each newsletter.",
			"Adjust cookie settings in your browser to limit analytics tracking.",
			"Contact us to request updates or deletion of personal information we store.",
		}},
	},
	SchemaType: "PrivacyPolicy",
	SchemaName: "EBikeReviewLab Privacy Policy",
}

var termsPage = staticPage{
	Path:        "/terms",
	Title:       "Terms & Conditions",
	Heading:     "Terms & Conditions",
	Description: "Review the terms that govern your use of EBikeReviewLab, our affiliate content, and any communications we send.",
	Effective:   "Effective as of January 1, 2025",
	Sections: []staticSection{
		{Heading: "Acceptance of Terms", Paragraphs: []string{
			"By accessing EBikeReviewLab you agree to these Terms & Conditions and consent to our Privacy Policy. If you disagree with any part, please discontinue use of the site.",
		}},
		{Heading: "Affiliate Relationships", Paragraphs: []string{
			"Some links on EBikeReviewLab are affiliate links. When you purchase through them we may earn a commission at no additional cost to you. These commissions help fund product testing and editorial coverage.",
		}},
		{Heading: "Content Accuracy", Paragraphs: []string{
			"We strive for accuracy, but product availability, pricing, and specifications can change without notice. Always confirm details with the retailer before purchasing.",
		}},
		{Heading: "Use of Resources", Paragraphs: []string{
			"You may share excerpts from our articles with attribution and a link back to EBikeReviewLab. Republishing complete guides or reviews without written consent is prohibited.",
		}},
		{Heading: "Limitation of Liability", Paragraphs: []string{
			"EBikeReviewLab is not liable for direct or indirect damages arising from the use of information on this site. E-bike selection and usage remain your responsibility.",
		}},
		{Heading: "Updates", Paragraphs: []string{
			"We may update these terms periodically. Continued use of the site after changes take effect constitutes acceptance of the revised terms.",
		}},
	},
	SchemaType: "TermsOfService",
	SchemaName: "EBikeReviewLab Terms & Conditions",
}

const (
	newsletterTitle       = "EBikeReviewLab Insider Brief"
	newsletterDescription = "Subscribe to the EBikeReviewLab Insider Brief for weekly electric bike testing notes, launch alerts, and field data."
	contactTitle          = "Contact EBikeReviewLab"
	contactDescription    = "Get in touch with the EBikeReviewLab team for partnership inquiries, editorial questions, or support."
)

// newsletterMessages are keyed by the status carried in the redirect query.
var newsletterMessages = map[string]string{
	"success":       "You are on the list! Check your inbox (and spam folder) for a confirmation email within a few minutes.",
	"invalid-email": "That email address does not look valid. Please double-check and try again.",
	"missing-email": "Please provide an email address before submitting the form.",
	"unavailable":   "We could not add you to the list right now. Please try again later.",
}

type inquiryType struct {
	Value string
	Label string
}

var inquiryTypes = []inquiryType{
	{"general", "General Inquiry"},
	{"partnership", "Partnership Request"},
	{"editorial", "Editorial Question"},
	{"support", "Support"},
	{"feedback", "Feedback"},
	{"other", "Other"},
}

func (p staticPage) options() seo.PageOptions {
	return seo.PageOptions{
		Title:       p.Title,
		Description: p.Description,
		Path:        p.Path,
	}
}
