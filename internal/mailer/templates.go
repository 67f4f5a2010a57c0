package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

const (
	welcomeSubject   = "Thank you for Subscribing to Our Newsletter"
	otpSubject       = "Password Reset OTP"
	emergencySubject = "Emergency appointment booked"
)

var templates = template.Must(template.New("mail").Parse(`
{{define "welcome"}}<div style="font-family: Arial, sans-serif; text-align: center;">
  <h2>Thank You for Subscribing!</h2>
  <p>Dear Subscriber,</p>
  <p>We are thrilled to have you with us. Stay tuned for our latest updates and offers!</p>
  <a href="{{.SiteURL}}" style="display: inline-block; padding: 10px 20px; margin-top: 20px; color: white; background-color: #007BFF; text-decoration: none; border-radius: 5px;">Explore More</a>
  <p style="margin-top: 30px;">Best Regards,<br>Med-space</p>
</div>{{end}}

{{define "otp"}}<div style="font-family: Arial, sans-serif;">
  <p>Your OTP is: <strong>{{.OTP}}</strong>. It expires in {{.Minutes}} minutes.</p>
  <p>If you did not request a password reset you can ignore this email.</p>
</div>{{end}}

{{define "emergency"}}<div style="font-family: Arial, sans-serif;">
  <h2>Emergency appointment confirmed</h2>
  <p>Dear {{.Name}},</p>
  <p>Your emergency appointment is booked on {{.Date}}.</p>
  <p>Reason: {{.Reason}}</p>
  {{if .NewAccount}}<p>An account was created for you with this email address. Use "Forgot password" to choose a password before signing in.</p>{{end}}
  <p style="margin-top: 30px;">Best Regards,<br>Med-space</p>
</div>{{end}}

{{define "broadcast"}}<div style="font-family: Arial, sans-serif;">
  <h2>{{.Subject}}</h2>
  <p>{{.Message}}</p>
  <p style="margin-top: 30px;">Best Regards,<br>Med-space Team</p>
</div>{{end}}
`))

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %v", name, err)
	}
	return buf.String(), nil
}

func WelcomeMessage(to, siteURL string) (Message, error) {
	html, err := render("welcome", struct{ SiteURL string }{siteURL})
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindWelcome, To: to, Subject: welcomeSubject, HTML: html}, nil
}

func OTPMessage(to, otp string, ttl time.Duration) (Message, error) {
	html, err := render("otp", struct {
		OTP     string
		Minutes int
	}{otp, int(ttl.Minutes())})
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindOTP, To: to, Subject: otpSubject, HTML: html}, nil
}

func EmergencyMessage(to, name string, date time.Time, reason string, newAccount bool) (Message, error) {
	html, err := render("emergency", struct {
		Name       string
		Date       string
		Reason     string
		NewAccount bool
	}{name, date.UTC().Format("Mon, 02 Jan 2006 15:04 MST"), reason, newAccount})
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindEmergency, To: to, Subject: emergencySubject, HTML: html}, nil
}

// BroadcastMessage escapes subject and body so admin input cannot inject markup.
func BroadcastMessage(to, subject, body string) (Message, error) {
	html, err := render("broadcast", struct {
		Subject string
		Message string
	}{subject, body})
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindBroadcast, To: to, Subject: subject, HTML: html}, nil
}
