package notifications

import (
	"bytes"
	"html/template"

	"casehub-backend/internal/inquiries"
)

const inquiryNotificationTemplate = `<!DOCTYPE html>
<html>
<body>
  <h3>New inquiry</h3>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Company:</strong> {{.Company}}</p>
  <p><strong>Topic:</strong> {{.Topic}}</p>
  <p><strong>Budget:</strong> {{.Budget}}</p>
  <p><strong>ID:</strong> {{.ID}}</p>
  <p><strong>Message:</strong><br/>{{.Message}}</p>
</body>
</html>`

const inquiryConfirmationTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>Hi {{.Name}},</p>
  <p>Thanks for reaching out. We received your {{.Topic}} inquiry and will
  get back to you shortly.</p>
  <p><strong>Reference ID: {{.ID}}</strong></p>
  <p>Your message:</p>
  <p>{{.Message}}</p>
</body>
</html>`

var (
	inquiryNotificationTmpl = template.Must(template.New("inquiry_notification").Parse(inquiryNotificationTemplate))
	inquiryConfirmationTmpl = template.Must(template.New("inquiry_confirmation").Parse(inquiryConfirmationTemplate))
)

func buildInquiryNotificationHTML(inquiry inquiries.Inquiry) (string, error) {
	var buf bytes.Buffer
	if err := inquiryNotificationTmpl.Execute(&buf, inquiry); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildInquiryConfirmationHTML(inquiry inquiries.Inquiry) (string, error) {
	var buf bytes.Buffer
	if err := inquiryConfirmationTmpl.Execute(&buf, inquiry); err != nil {
		return "", err
	}
	return buf.String(), nil
}
