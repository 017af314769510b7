// Package email, uygulama genelinde email gönderimi için soyutlama katmanı sağlar.
//
// EmailSender interface'i ile gönderim detayları soyutlanır; şu anki
// implementasyon Resend API kullanır. Farklı bir sağlayıcıya geçmek için
// yeni bir implementasyon yazıp constructor'da değiştirmek yeterli.
//
// Dışarıya iki şey sunulur:
// 1. EmailSender interface — service'ler buna bağımlı olur
// 2. NewResendSender constructor — main.go'da wire-up için
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
// Her gönderim alıcı başına bağımsız başarısız olabilir — caller bunu
// izole etmekle yükümlüdür (bkz. notify service).
type EmailSender interface {
	// SendUnreadNotification, alıcıya okunmamış mesajı olduğunu bildiren
	// email gönderir. İçerik sign-in linki taşır; mesaj metni taşımaz.
	SendUnreadNotification(ctx context.Context, toEmail string) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string // Gönderici adresi (ör: noreply@connective.app)
	appURL    string // Uygulamanın public URL'i — sign-in linkinde kullanılır
}

// NewResendSender, Resend API client'ı ile yeni bir EmailSender oluşturur.
//
// apiKey: Resend dashboard'dan alınan API key (re_xxxxxxxx formatında).
// fromEmail: Resend'de doğrulanmış domain altında bir gönderici adresi.
// appURL: sign-in linklerinde kullanılan public URL.
func NewResendSender(apiKey, fromEmail, appURL string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		appURL:    appURL,
	}
}

// SendUnreadNotification, okunmamış mesaj bildirimi gönderir.
//
// Mesaj içeriği bilinçli olarak jeneriktir: kaç mesaj olduğu veya kimden
// geldiği yazılmaz — alıcı sign-in olup konuşmadan okur. Bu sayede aynı
// süpürmede birden fazla bayat mesajı olan alıcıya tek email yeter.
func (s *resendSender) SendUnreadNotification(ctx context.Context, toEmail string) error {
	signInLink := fmt.Sprintf("%s/auth/signin", s.appURL)

	text := fmt.Sprintf(`Hello There,

You have an unread message from an affiliate partner on Connective.
Please sign in (%s) and respond to them.

Thanks

Team Connective`, signInLink)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f1f5f9;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#f1f5f9;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#0f172a;font-size:24px;margin:0 0 8px 0;">Connective</h1>
              <h2 style="color:#0f172a;font-size:18px;margin:0 0 24px 0;">You have an unread message</h2>
              <p style="color:#475569;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                An affiliate partner sent you a message on Connective. Sign in below to read and respond.
              </p>
              <table cellpadding="0" cellspacing="0" style="margin:0 0 24px 0;">
                <tr>
                  <td style="background-color:#2563eb;border-radius:6px;padding:12px 32px;">
                    <a href="%s" style="color:#ffffff;text-decoration:none;font-size:15px;font-weight:600;">
                      Sign In
                    </a>
                  </td>
                </tr>
              </table>
              <p style="color:#64748b;font-size:13px;line-height:1.6;margin:0;word-break:break-all;">
                If the button doesn't work, copy and paste this link:<br>
                <a href="%s" style="color:#2563eb;">%s</a>
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, signInLink, signInLink, signInLink)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Connective <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: "Affiliate partner sent you a message",
		Html:    html,
		Text:    text,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send unread notification email: %w", err)
	}

	return nil
}
