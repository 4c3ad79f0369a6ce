package cli

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/client/models"
)

// Register prompts for name, email and password and creates the account.
// On success the new session is active and the (empty) task list loaded.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	u, err := a.session.Register(ctx, name, email, string(password))
	if err != nil {
		a.println("Registration failed:", describe(err))
		return err
	}

	a.println("Welcome,", u.Name)
	return a.Reload(ctx)
}

// Login prompts for credentials. A failed attempt leaves the session as it was.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	u, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		a.println("Login failed:", describe(err))
		return err
	}

	a.println("Welcome,", u.Name)
	return a.Reload(ctx)
}

// Logout forgets the session and all tasks without contacting the server.
func (a *App) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)
	a.listed = nil
	a.println("Logged out")
	return err
}

// Profile updates name, email or password; an empty answer keeps the
// current value.
func (a *App) Profile(ctx context.Context) error {
	var update models.ProfileUpdate

	name, err := getSimpleText(a.reader, "New name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if name != "" {
		update.Name = &name
	}

	email, err := getSimpleText(a.reader, "New email (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if email != "" {
		update.Email = &email
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	if len(password) > 0 {
		pw := string(password)
		update.Password = &pw
	}

	if update == (models.ProfileUpdate{}) {
		a.println("Nothing to update")
		return nil
	}

	u, err := a.session.UpdateProfile(ctx, update)
	if err != nil {
		a.println("Profile update failed:", describe(err))
		return err
	}

	a.printf("Profile updated: %s <%s>\n", u.Name, u.Email)
	return nil
}
