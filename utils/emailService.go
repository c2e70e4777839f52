package utils

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"lms/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Learning Portal <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all portal emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3A57; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3A57; line-height: 1.6; }
			.content h2 { color: #1B3A57; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #5B8DB8; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNING PORTAL</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; %d Learning Portal. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent, time.Now().Year())
}

// --- Triggers ---

// 1. Welcome mail when HR creates an account
func SendWelcomeEmail(email, name, tempPassword string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your learning portal account has been created.</p>
		<div class="info-box">
			<strong>Login:</strong> %s<br>
			<strong>Temporary password:</strong> %s
		</div>
		<p>Please sign in and change your password.</p>
	`, name, email, tempPassword)

	SendEmail([]string{email}, "Welcome to the Learning Portal", getEmailTemplate("Account Created", body))
}

// 2. Certificate issued after a passing assessment
func SendCertificateEmail(email, name, learningTitle, certificateNumber string, score float64) {
	body := fmt.Sprintf(`
		<p>Congratulations %s!</p>
		<p>You passed the assessment for <strong>%s</strong> with a score of %.1f%%.</p>
		<div class="info-box">
			<strong>Certificate number:</strong> %s
		</div>
		<p>Your certificate is available in the portal.</p>
	`, name, learningTitle, score, certificateNumber)

	SendEmail([]string{email}, "Your certificate is ready", getEmailTemplate("Certificate Issued", body))
}

// 3. New learning assignment
func SendAssignmentEmail(email, name, learningTitle string, dueDate time.Time) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You have been assigned the learning module <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Due date:</strong> %s
		</div>
	`, name, learningTitle, dueDate.Format("02 Jan 2006"))

	SendEmail([]string{email}, "New learning assignment", getEmailTemplate("New Assignment", body))
}
