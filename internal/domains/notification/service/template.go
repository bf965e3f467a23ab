package service

import (
	"bytes"
	"fmt"
	"lankaride/internal/domains/notification/model"
	"text/template"
)

type mailTemplate struct {
	subject *template.Template
	body    *template.Template
}

func mustTemplate(eventType, subject, body string) mailTemplate {
	return mailTemplate{
		subject: template.Must(template.New(eventType + ".subject").Option("missingkey=zero").Parse(subject)),
		body:    template.Must(template.New(eventType + ".body").Option("missingkey=zero").Parse(body)),
	}
}

var templates = map[string]mailTemplate{
	model.TypeEmailVerification: mustTemplate(model.TypeEmailVerification,
		"Verify your LankaRide email",
		`Hi {{.RecipientName}},

Welcome to LankaRide. Confirm your email address by opening the link below:

{{index .Data "link"}}

If you did not create an account you can ignore this message.`),
	model.TypePasswordReset: mustTemplate(model.TypePasswordReset,
		"Reset your LankaRide password",
		`Hi {{.RecipientName}},

We received a request to reset your password. Open the link below to choose a new one:

{{index .Data "link"}}

The link expires soon. If you did not ask for a reset, no action is needed.`),
	model.TypeDriverStatus: mustTemplate(model.TypeDriverStatus,
		"Your driver profile was {{index .Data \"status\"}}",
		`Hi {{.RecipientName}},

Your driver profile has been {{index .Data "status"}}.
{{with index .Data "reason"}}
Reason: {{.}}
{{end}}`),
	model.TypeVehicleStatus: mustTemplate(model.TypeVehicleStatus,
		"Your vehicle {{index .Data \"vehicle\"}} was {{index .Data \"status\"}}",
		`Hi {{.RecipientName}},

Your vehicle {{index .Data "vehicle"}} has been {{index .Data "status"}}.
{{with index .Data "reason"}}
Reason: {{.}}
{{end}}`),
	model.TypeBookingRequested: mustTemplate(model.TypeBookingRequested,
		"New booking request for {{index .Data \"vehicle\"}}",
		`Hi {{.RecipientName}},

You have a new booking request for {{index .Data "vehicle"}} from {{index .Data "start_date"}} to {{index .Data "end_date"}}.
Total: LKR {{index .Data "total"}}

Booking reference: {{index .Data "booking_id"}}`),
	model.TypeBookingConfirmed: mustTemplate(model.TypeBookingConfirmed,
		"Your booking is confirmed",
		`Hi {{.RecipientName}},

Your booking of {{index .Data "vehicle"}} from {{index .Data "start_date"}} to {{index .Data "end_date"}} is confirmed.
Total: LKR {{index .Data "total"}}

Booking reference: {{index .Data "booking_id"}}`),
	model.TypeBookingRejected: mustTemplate(model.TypeBookingRejected,
		"Your booking request was declined",
		`Hi {{.RecipientName}},

Unfortunately the driver declined your booking of {{index .Data "vehicle"}} from {{index .Data "start_date"}} to {{index .Data "end_date"}}.
{{with index .Data "reason"}}
Reason: {{.}}
{{end}}
Booking reference: {{index .Data "booking_id"}}`),
	model.TypeBookingCancelled: mustTemplate(model.TypeBookingCancelled,
		"Booking cancelled",
		`Hi {{.RecipientName}},

The booking of {{index .Data "vehicle"}} from {{index .Data "start_date"}} to {{index .Data "end_date"}} was cancelled.
{{with index .Data "reason"}}
Reason: {{.}}
{{end}}
Booking reference: {{index .Data "booking_id"}}`),
	model.TypeSupportTicket: mustTemplate(model.TypeSupportTicket,
		"[Support] {{index .Data \"subject\"}}",
		`New support ticket from {{index .Data "from"}}

{{index .Data "message"}}`),
}

// render returns the subject and body for an event. ok is false for unknown types.
func render(event model.Event) (subject, body string, ok bool, err error) {
	tmpl, ok := templates[event.Type]
	if !ok {
		return "", "", false, nil
	}

	var buf bytes.Buffer

	if err = tmpl.subject.Execute(&buf, event); err != nil {
		return "", "", true, fmt.Errorf("failed to render subject: %w", err)
	}

	subject = buf.String()
	buf.Reset()

	if err = tmpl.body.Execute(&buf, event); err != nil {
		return "", "", true, fmt.Errorf("failed to render body: %w", err)
	}

	return subject, buf.String(), true, nil
}
