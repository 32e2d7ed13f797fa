package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskboard/internal/client/gateway"
	"github.com/dmitrijs2005/taskboard/internal/client/models"
	"github.com/dmitrijs2005/taskboard/internal/common"
)

// password reads a password without echo on a terminal, or as a plain line
// when input is piped.
func (a *App) password() (string, error) {
	if !a.interactive {
		return GetSimpleText(a.reader, "Enter password", a.out)
	}
	pw, err := GetPassword(a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// fail prints msg with the error detail. Authentication-expired errors are
// skipped: the expiry notice has already been shown.
func (a *App) fail(msg string, err error) error {
	if !errors.Is(err, gateway.ErrAuthExpired) {
		fmt.Fprintf(a.out, "%s: %s\n", msg, gateway.Message(err))
	}
	return err
}

func (a *App) Register(ctx context.Context) error {
	var req models.SignupRequest
	var err error

	if req.Name, err = GetSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if req.Email, err = GetSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if req.Password, err = a.password(); err != nil {
		return err
	}
	if req.Country, err = GetSimpleText(a.reader, "Enter country", a.out); err != nil {
		return err
	}

	u, err := a.session.Register(ctx, req)
	if err != nil {
		fmt.Fprintln(a.out, gateway.Message(err))
		return err
	}
	a.setView(ViewMain)
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	return nil
}

// Login prompts for credentials. A wrong password comes back as a 401,
// which the gateway also reports as an expiry; on the login view that
// report is ignored and only the server message is shown.
func (a *App) Login(ctx context.Context) error {
	var req models.LoginRequest
	var err error

	if req.Email, err = GetSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if req.Password, err = a.password(); err != nil {
		return err
	}

	u, err := a.session.Login(ctx, req)
	if err != nil {
		fmt.Fprintln(a.out, gateway.Message(err))
		return err
	}
	a.setView(ViewMain)
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	return nil
}

// Logout leaves the main view before calling the server, so a 401 from an
// already expired session does not also print the expiry notice.
func (a *App) Logout(ctx context.Context) error {
	a.setView(ViewLogin)
	err := a.session.Logout(ctx)
	if err != nil {
		return a.fail("Logout failed", err)
	}
	fmt.Fprintln(a.out, "Logged out successfully")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	u, err := a.users.Profile(ctx)
	if err != nil {
		return a.fail("Failed to fetch profile", err)
	}
	a.session.UpdateUser(u)
	printUser(a.out, u)
	return nil
}

func (a *App) EditProfile(ctx context.Context) error {
	cur := a.session.Current()
	if cur == nil {
		return nil
	}

	var upd models.UserUpdate
	var err error
	if upd.Name, err = GetOptionalText(a.reader, "Name", cur.Name, a.out); err != nil {
		return err
	}
	if upd.Country, err = GetOptionalText(a.reader, "Country", cur.Country, a.out); err != nil {
		return err
	}
	if upd.Name == nil && upd.Country == nil {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	u, err := a.users.UpdateProfile(ctx, upd)
	if err != nil {
		return a.fail("Failed to update profile", err)
	}
	a.session.UpdateUser(u)
	fmt.Fprintln(a.out, "Profile updated successfully")
	return nil
}
