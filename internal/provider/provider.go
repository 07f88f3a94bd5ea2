package provider

import "context"

// Mail is a single-recipient HTML message.
type Mail struct {
	To       string
	Subject  string
	HTMLBody string
}

// Mailer is the outbound email delivery port.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// SMS is a single-recipient text message. From may be empty when the
// gateway carries its own sender number.
type SMS struct {
	From string
	To   string
	Body string
}

// SMSGateway is the outbound SMS delivery port. It returns the
// provider-assigned message id.
type SMSGateway interface {
	Send(ctx context.Context, sms SMS) (string, error)
}
