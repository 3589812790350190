package utils

import (
	"fmt"
	"lms/config"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an HTML email through Sendgrid. A missing API key
// downgrades to a log line so local environments work without one.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig == nil || config.AppConfig.SendgridApiKey == "" {
		log.Printf("[EMAIL] Skipped (no API key): to=%s subject=%q", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("LearnSphere", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)
	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)

	response, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] Error sending to %s: %v", toEmail, err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("[EMAIL] Sendgrid rejected mail to %s: %d %s", toEmail, response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}

// SendEnrollmentEmail confirms a new enrollment
func SendEnrollmentEmail(toEmail, toName, courseTitle string) error {
	body := getEmailTemplate("Enrollment Confirmed",
		fmt.Sprintf("<h2>Hi %s,</h2><p>You are now enrolled in <b>%s</b>. Happy learning!</p>", toName, courseTitle))
	return SendEmail(toEmail, toName, "Enrollment confirmed: "+courseTitle, body)
}

// SendCourseCompletedEmail congratulates a learner on finishing a course
func SendCourseCompletedEmail(toEmail, toName, courseTitle string) error {
	body := getEmailTemplate("Course Completed",
		fmt.Sprintf("<h2>Congratulations %s!</h2><p>You completed <b>%s</b>.</p>", toName, courseTitle))
	return SendEmail(toEmail, toName, "Course completed: "+courseTitle, body)
}

// SendAttemptGradedEmail notifies a learner that an attempt was graded
func SendAttemptGradedEmail(toEmail, toName, assessmentTitle string, score float64, passed bool) error {
	verdict := "you did not reach the passing score this time"
	if passed {
		verdict = "you passed"
	}
	body := getEmailTemplate("Assessment Graded",
		fmt.Sprintf("<h2>Hi %s,</h2><p>Your attempt at <b>%s</b> was graded: <b>%.2f%%</b>, %s.</p>",
			toName, assessmentTitle, score, verdict))
	return SendEmail(toEmail, toName, "Assessment graded: "+assessmentTitle, body)
}

// HTML wrapper shared by all notification emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3B6F; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3B6F; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">%s</div>
			<div class="footer">LearnSphere &middot; This is an automated message, please do not reply.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}
