package services

import (
	"fmt"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/mansionmuse/backend/internal/config"
	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/utils"
)

const notificationEmailHTML = `
<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; background: #f4f4f7; padding: 24px;">
    <div style="max-width: 560px; margin: auto; background: #ffffff; border-radius: 8px; padding: 32px;">
      <h2 style="color: #1a1a2e; margin-top: 0;">%s</h2>
      <p style="color: #444; line-height: 1.6;">%s</p>
      %s
      <hr style="border: none; border-top: 1px solid #eee; margin: 24px 0;">
      <p style="color: #999; font-size: 12px;">&copy; %d MansionMuse. This is an automated message.</p>
    </div>
  </body>
</html>`

// mailSender is the delivery seam, satisfied by *sendgrid.Client.
type mailSender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// EmailService sends transactional mail through SendGrid. Send methods log
// and swallow delivery errors; callers treat mail as best effort.
type EmailService struct {
	cfg    *config.Config
	client mailSender
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		cfg:    cfg,
		client: sendgrid.NewSendClient(cfg.SendgridAPIKey),
	}
}

func (s *EmailService) send(toName, toEmail, subject, plain, htmlBody string) {
	if toEmail == "" {
		return
	}
	from := mail.NewEmail(s.cfg.OrganizationName, s.cfg.LDFlag_SendgridFromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plain, htmlBody)

	if s.cfg.LDFlag_SendgridSandboxMode {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		message.MailSettings = ms
	}

	if _, err := s.client.Send(message); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to send %q email to %s via SendGrid", subject, toEmail)
	}
}

func (s *EmailService) SendOwnerWelcome(owner *models.Owner) {
	subject := s.cfg.OrganizationName + " - Welcome Aboard"
	plain := fmt.Sprintf("Hi %s, your %s account is ready. Sign in with %s to set up your first property.",
		owner.Name, s.cfg.OrganizationName, owner.Email)
	html := fmt.Sprintf(notificationEmailHTML,
		"Welcome to "+s.cfg.OrganizationName,
		fmt.Sprintf("Hi %s, your account is ready. Sign in with <b>%s</b> to set up your first property.", owner.Name, owner.Email),
		"",
		time.Now().Year())
	go s.send(owner.Name, owner.Email, subject, plain, html)
}

func (s *EmailService) SendTenantWelcome(tenant *models.Tenant, pgName string) {
	subject := s.cfg.OrganizationName + " - Your Stay Is Confirmed"
	plain := fmt.Sprintf("Hi %s, your stay at %s is confirmed starting %s. Monthly rent: %.2f.",
		tenant.Name, pgName, tenant.JoiningDate.Format("02 Jan 2006"), tenant.RentAmount)
	detail := fmt.Sprintf(`<p style="color:#444">Move-in date: <b>%s</b><br>Monthly rent: <b>%.2f</b><br>Security deposit: <b>%.2f</b></p>`,
		tenant.JoiningDate.Format("02 Jan 2006"), tenant.RentAmount, tenant.SecurityDeposit)
	html := fmt.Sprintf(notificationEmailHTML,
		"Your stay is confirmed",
		fmt.Sprintf("Hi %s, your stay at <b>%s</b> is confirmed.", tenant.Name, pgName),
		detail,
		time.Now().Year())
	go s.send(tenant.Name, tenant.Email, subject, plain, html)
}

func (s *EmailService) SendRentPaymentConfirmation(tenant *models.Tenant, payment *models.Payment) {
	subject := s.cfg.OrganizationName + " - Payment Received"
	plain := fmt.Sprintf("Hi %s, we received your %s payment of %.2f.",
		tenant.Name, payment.Category, payment.Amount)
	detail := fmt.Sprintf(`<p style="color:#444">Category: <b>%s</b><br>Amount: <b>%.2f</b><br>Period: <b>%s</b></p>`,
		payment.Category, payment.Amount, payment.BillingPeriod.Format("January 2006"))
	html := fmt.Sprintf(notificationEmailHTML,
		"Payment received",
		fmt.Sprintf("Hi %s, thanks for your payment.", tenant.Name),
		detail,
		time.Now().Year())
	go s.send(tenant.Name, tenant.Email, subject, plain, html)
}

func (s *EmailService) SendSalaryCredit(staff *models.Staff, expense *models.Expense) {
	subject := s.cfg.OrganizationName + " - Salary Processed"
	plain := fmt.Sprintf("Hi %s, your salary of %.2f for %s has been processed.",
		staff.Name, expense.Amount, expense.BillingPeriod.Format("January 2006"))
	html := fmt.Sprintf(notificationEmailHTML,
		"Salary processed",
		fmt.Sprintf("Hi %s, your salary of <b>%.2f</b> for <b>%s</b> has been processed.",
			staff.Name, expense.Amount, expense.BillingPeriod.Format("January 2006")),
		"",
		time.Now().Year())
	go s.send(staff.Name, staff.Email, subject, plain, html)
}

func (s *EmailService) SendTenantDeparture(tenant *models.Tenant, pgName string) {
	subject := s.cfg.OrganizationName + " - Checkout Confirmed"
	plain := fmt.Sprintf("Hi %s, your checkout from %s is confirmed. We hope you enjoyed your stay.",
		tenant.Name, pgName)
	html := fmt.Sprintf(notificationEmailHTML,
		"Checkout confirmed",
		fmt.Sprintf("Hi %s, your checkout from <b>%s</b> is confirmed. We hope you enjoyed your stay.", tenant.Name, pgName),
		"",
		time.Now().Year())
	go s.send(tenant.Name, tenant.Email, subject, plain, html)
}

func (s *EmailService) SendMenuUpdated(tenant *models.Tenant, pgName string, weekStart time.Time) {
	subject := s.cfg.OrganizationName + " - This Week's Menu Is Up"
	plain := fmt.Sprintf("Hi %s, the meal menu at %s for the week of %s has been updated.",
		tenant.Name, pgName, weekStart.Format("02 Jan 2006"))
	html := fmt.Sprintf(notificationEmailHTML,
		"This week's menu is up",
		fmt.Sprintf("Hi %s, the meal menu at <b>%s</b> for the week of <b>%s</b> has been updated.",
			tenant.Name, pgName, weekStart.Format("02 Jan 2006")),
		"",
		time.Now().Year())
	go s.send(tenant.Name, tenant.Email, subject, plain, html)
}

func (s *EmailService) SendPlanActivated(owner *models.Owner, planName string) {
	subject := s.cfg.OrganizationName + " - Plan Activated"
	plain := fmt.Sprintf("Hi %s, your %s plan is now active.", owner.Name, planName)
	html := fmt.Sprintf(notificationEmailHTML,
		"Plan activated",
		fmt.Sprintf("Hi %s, your <b>%s</b> plan is now active.", owner.Name, planName),
		"",
		time.Now().Year())
	go s.send(owner.Name, owner.Email, subject, plain, html)
}
