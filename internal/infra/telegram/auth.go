package telegram

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

// Login runs the interactive authentication flow and persists the session
// through the configured storage. It is a one-time operation; afterwards the
// relay starts unattended.
func (c *Client) Login(ctx context.Context, phone string) error {
	flow := auth.NewFlow(termAuth{phone: phone}, auth.SendCodeOptions{})

	return c.client.Run(ctx, func(ctx context.Context) error {
		if err := c.client.Auth().IfNecessary(ctx, flow); err != nil {
			return fmt.Errorf("auth: %w", err)
		}

		self, err := c.client.Self(ctx)
		if err != nil {
			return fmt.Errorf("fetch self: %w", err)
		}
		c.log.Info().Int64("user_id", self.ID).Str("username", self.Username).Msg("login complete, session saved")
		return nil
	})
}

// termAuth prompts for the login code and optional 2FA password on the
// terminal.
type termAuth struct {
	phone string
}

func (a termAuth) Phone(ctx context.Context) (string, error) {
	return a.phone, nil
}

func (a termAuth) Code(ctx context.Context, _ *tg.AuthSentCode) (string, error) {
	return prompt("Login code: ")
}

func (a termAuth) Password(ctx context.Context) (string, error) {
	return prompt("2FA password: ")
}

func (a termAuth) SignUp(ctx context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, errors.New("sign up not supported, use an existing account")
}

func (a termAuth) AcceptTermsOfService(ctx context.Context, tos tg.HelpTermsOfService) error {
	return errors.New("sign up not supported, use an existing account")
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
