package app

import (
	"context"
	"errors"

	"taskflow/internal/domain"
	"taskflow/internal/logfields"
	"taskflow/internal/util/memzero"
	"taskflow/internal/validate"
)

// App runs the form-level flows on top of a Wire.
type App struct {
	*Wire
}

// New returns an App over w.
func New(w *Wire) *App { return &App{Wire: w} }

// Login validates the form and runs the login transition. After a successful
// login the task list is loaded; a failed load is logged and the session stays
// authenticated. Form problems come back as validate.FieldErrors.
func (a *App) Login(ctx context.Context, username string, password []byte) (domain.Outcome, error) {
	creds := domain.Credentials{Username: domain.Username(username), Password: password}
	if err := validate.Login(creds); err != nil {
		memzero.Zero(password)
		return domain.Outcome{}, err
	}
	out, err := a.Session.Login(ctx, creds)
	if err != nil || out.Kind != domain.OutcomeAuthenticated {
		return out, err
	}
	_, _, err = a.Tasks.Refresh(ctx)
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		// Logged out again before the list was requested.
	case err != nil:
		a.Logger.Warn("Task refresh after login failed", logfields.Username(username), logfields.Error(err))
	}
	return out, nil
}

// Register validates the form and runs the register transition.
func (a *App) Register(ctx context.Context, username string, password, confirmation []byte) (domain.Outcome, error) {
	creds := domain.RegisterCredentials{
		Username:     domain.Username(username),
		Password:     password,
		Confirmation: confirmation,
	}
	if err := validate.Register(creds); err != nil {
		memzero.Zero(password, confirmation)
		return domain.Outcome{}, err
	}
	return a.Session.Register(ctx, creds)
}

// RefreshTasks reloads the signed-in user's tasks.
func (a *App) RefreshTasks(ctx context.Context) ([]domain.Task, error) {
	items, ok, err := a.Tasks.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A logout landed while the fetch was in flight.
		return nil, domain.ErrNotAuthenticated
	}
	return items, nil
}

// Logout ends the session and clears dependent state.
func (a *App) Logout(ctx context.Context) (bool, error) { return a.Reset.Logout(ctx) }

// LeaveForm clears any error shown on the form being left.
func (a *App) LeaveForm(ctx context.Context) error { return a.Session.ClearError(ctx) }

// ToggleMode flips the display mode.
func (a *App) ToggleMode(ctx context.Context) (domain.Mode, error) { return a.Preference.Toggle(ctx) }
