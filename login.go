package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/dsmtools/syno-photos-util/internal/conf"
	"github.com/dsmtools/syno-photos-util/internal/syno"
)

// Default DSM ports when the address omits one.
const (
	defaultHTTPPort  = "5000"
	defaultHTTPSPort = "5001"
)

var (
	flagLoginUser     string
	flagLoginPassword string
	flagLoginRemember bool
)

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [dsm-url]",
		Short: "Sign in to Synology DSM",
		Long: `Sign in to Synology DSM.

Required before other commands can be used. Writes the session id to the
$HOME/` + conf.FileName + ` file. Port numbers can be omitted when using the
standard ones (5000 and 5001).`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLogin,
	}

	cmd.Flags().StringVarP(&flagLoginUser, "user", "u", "", "DSM user account name")
	cmd.Flags().StringVarP(&flagLoginPassword, "password", "p", "", "DSM user account password")
	cmd.Flags().BoolVar(&flagLoginRemember, "remember", false,
		"remember this device to omit OTP verification on future runs")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	prompt := newPrompter()

	rawURL := ""
	if len(args) > 0 {
		rawURL = args[0]
	}

	dsmURL, err := resolveDSMURL(rawURL, a, prompt)
	if err != nil {
		return err
	}

	account := flagLoginUser
	if account == "" {
		if account, err = prompt.ReadRequired("DSM user"); err != nil {
			return err
		}
	}

	password := flagLoginPassword
	if password == "" {
		if password, err = prompt.ReadPassword("DSM password"); err != nil {
			return err
		}
	}

	client := syno.NewClient(dsmURL, "", a.httpClient(), a.logger)

	creds := syno.Credentials{
		Account:  account,
		Password: password,
		DeviceID: a.conf.DeviceID(dsmURL),
	}

	login, err := loginWithOTPRetry(cmd.Context(), client, creds, flagLoginRemember, prompt)
	if err != nil {
		return err
	}

	a.conf.Session = &conf.Session{URL: dsmURL, SID: login.SID}

	if flagLoginRemember {
		a.conf.SetDeviceID(login.DID)
	}

	if err := a.conf.Save(a.confPath); err != nil {
		return err
	}

	fmt.Printf("signed in to %s\n", dsmURL)

	return nil
}

// resolveDSMURL picks the server address from the argument, the persisted
// session, the defaults file, or an interactive prompt, in that order, then
// normalizes it.
func resolveDSMURL(raw string, a *app, prompt *prompter) (string, error) {
	if raw == "" && a.conf.SignedIn() {
		raw = a.conf.Session.URL
	}

	if raw == "" {
		raw = a.settings.URL
	}

	if raw == "" {
		var err error
		if raw, err = prompt.ReadRequired("DSM address"); err != nil {
			return "", err
		}
	}

	normalized, err := normalizeDSMURL(raw)
	if err != nil {
		return "", err
	}

	if normalized != raw {
		a.logger.Info("using DSM address", "url", normalized)
	}

	return normalized, nil
}

// normalizeDSMURL validates the scheme and defaults the port to 5000/5001
// when none is given and the path is the bare root. A non-root path means a
// reverse proxy prefix, where the implicit 80/443 must be left alone.
func normalizeDSMURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid DSM address '%s': %w", raw, err)
	}

	switch u.Scheme {
	case "http", "https":
	default:
		return "", fmt.Errorf("invalid URL scheme '%s' (use http or https)", u.Scheme)
	}

	if u.Host == "" {
		return "", fmt.Errorf("invalid DSM address '%s': missing host", raw)
	}

	behindReverseProxy := u.Path != "" && u.Path != "/"
	if u.Port() == "" && !behindReverseProxy {
		port := defaultHTTPPort
		if u.Scheme == "https" {
			port = defaultHTTPSPort
		}

		u.Host = u.Hostname() + ":" + port
	}

	if u.Path == "/" {
		u.Path = ""
	}

	return u.String(), nil
}

// loginWithOTPRetry performs the authentication exchange. When the server
// demands a one-time password, the user is prompted and the login retried
// exactly once with the OTP attached; a blank OTP is rejected before any
// second network call. Every other failure surfaces verbatim.
func loginWithOTPRetry(
	ctx context.Context,
	client *syno.Client,
	creds syno.Credentials,
	remember bool,
	prompt *prompter,
) (syno.LoginData, error) {
	login, err := client.Login(ctx, creds, remember)
	if err == nil {
		return login, nil
	}

	if !errors.Is(err, syno.ErrOTPRequired) && !errors.Is(err, syno.ErrOTPEnforced) {
		return syno.LoginData{}, err
	}

	otp, promptErr := prompt.ReadLine("OTP code")
	if promptErr != nil {
		return syno.LoginData{}, promptErr
	}

	if otp == "" {
		return syno.LoginData{}, fmt.Errorf("missing OTP code")
	}

	creds.OTPCode = otp

	return client.Login(ctx, creds, remember)
}
