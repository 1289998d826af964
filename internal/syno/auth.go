package syno

import (
	"context"
	"net/url"
)

// deviceName identifies this client in the DSM trusted-device list when the
// user asks to remember the device.
const deviceName = "syno-photos-util"

// Credentials are the inputs of one login attempt. OTPCode and DeviceID are
// optional; DeviceID lets a remembered device skip OTP verification.
type Credentials struct {
	Account  string
	Password string
	OTPCode  string
	DeviceID string
}

// Login performs the SYNO.API.Auth exchange and returns the session id plus,
// when rememberDevice was requested, a device id to persist. An account with
// two-factor authentication enabled fails with ErrOTPRequired (or
// ErrOTPEnforced) until an OTP code is supplied.
func (c *Client) Login(ctx context.Context, creds Credentials, rememberDevice bool) (LoginData, error) {
	form := url.Values{}
	form.Set("account", creds.Account)
	form.Set("passwd", creds.Password)
	form.Set("format", "sid")

	if rememberDevice {
		form.Set("enable_device_token", "yes")
		form.Set("device_name", deviceName)
	} else {
		form.Set("enable_device_token", "no")
	}

	if creds.OTPCode != "" {
		form.Set("otp_code", creds.OTPCode)
	}

	if creds.DeviceID != "" {
		form.Set("device_id", creds.DeviceID)
	}

	var data LoginData
	if err := c.post(ctx, apiAuth, "login", 6, form, &data); err != nil {
		return LoginData{}, err
	}

	return data, nil
}
