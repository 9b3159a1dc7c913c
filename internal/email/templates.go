package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"performer-directory-backend/internal/models"
)

type field struct {
	Label string
	Value string
}

type section struct {
	Title  string
	Fields []field
}

var htmlLayout = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html><body style="font-family: Arial, sans-serif; color: #222;">
<h2>{{.Title}}</h2>
{{range .Sections}}<h3>{{.Title}}</h3>
<table cellpadding="4">{{range .Fields}}
<tr><td><strong>{{.Label}}</strong></td><td style="white-space: pre-wrap;">{{.Value}}</td></tr>{{end}}
</table>
{{end}}</body></html>`))

type document struct {
	Title    string
	Sections []section
}

func render(doc document) (string, string, error) {
	var text strings.Builder
	text.WriteString(doc.Title + "\n")
	for _, s := range doc.Sections {
		text.WriteString("\n" + s.Title + "\n")
		for _, f := range s.Fields {
			fmt.Fprintf(&text, "%s: %s\n", f.Label, f.Value)
		}
	}

	var html bytes.Buffer
	if err := htmlLayout.Execute(&html, doc); err != nil {
		return "", "", fmt.Errorf("failed to render email: %w", err)
	}
	return text.String(), html.String(), nil
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// ContactNotification is sent to a performer when a visitor writes to them.
func ContactNotification(from string, req *models.ContactRelayRequest) (*Message, error) {
	text, html, err := render(document{
		Title: "New message from your directory listing",
		Sections: []section{{
			Title: "Message",
			Fields: []field{
				{"Name", req.SenderName},
				{"Email", req.SenderEmail},
				{"Message", req.Message},
			},
		}},
	})
	if err != nil {
		return nil, err
	}
	return &Message{
		From:    from,
		To:      []string{req.RecipientEmail},
		ReplyTo: req.SenderEmail,
		Subject: "New inquiry from " + req.SenderName,
		Text:    text,
		HTML:    html,
	}, nil
}

// FreeListingNotification tells the admin inbox about a new application.
func FreeListingNotification(from, to string, app *models.FreeListingApplication) (*Message, error) {
	radius := string(app.TravelRadius)
	text, html, err := render(document{
		Title: "New free listing application",
		Sections: []section{
			{Title: "Contact", Fields: []field{
				{"Full name", app.FullName},
				{"Email", app.Email},
				{"Phone", app.Phone},
			}},
			{Title: "Location", Fields: []field{
				{"City", app.City},
				{"State", app.State},
			}},
			{Title: "Social media", Fields: []field{
				{"Instagram", orNone(app.Instagram)},
				{"Facebook", orNone(app.Facebook)},
				{"TikTok", orNone(app.TikTok)},
				{"Website", orNone(app.Website)},
			}},
			{Title: "Experience", Fields: []field{
				{"Years of experience", fmt.Sprintf("%d", app.YearsExperience)},
				{"Characters", app.Characters},
				{"Bio", app.Bio},
			}},
			{Title: "Travel", Fields: []field{
				{"Willing to travel", yesNo(app.WillingToTravel)},
				{"Travel radius", orNone(radius)},
			}},
			{Title: "Additional information", Fields: []field{
				{"Notes", orNone(app.AdditionalInfo)},
			}},
		},
	})
	if err != nil {
		return nil, err
	}
	return &Message{
		From:    from,
		To:      []string{to},
		ReplyTo: app.Email,
		Subject: "Free listing application: " + app.FullName,
		Text:    text,
		HTML:    html,
	}, nil
}
