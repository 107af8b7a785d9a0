package email

import "context"

// SendWelcomeEmail greets a newly registered listener.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, username string) error {
	data := map[string]string{
		"Username": username,
		"SiteURL":  c.siteURL,
	}

	return c.SendEmail(
		ctx,
		to,
		"Добро пожаловать в Kringe-Music!",
		TemplateWelcome,
		data,
	)
}
