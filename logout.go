package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagLogoutForget bool

func newLogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out of DSM",
		Long: `Sign out of DSM.

Removes the session id from the session file. With --forget, also removes
all remembered device ids, enforcing OTP verification on future logins.`,
		Args: cobra.NoArgs,
		RunE: runLogout,
	}

	cmd.Flags().BoolVar(&flagLogoutForget, "forget", false, "also forget all remembered devices")

	return cmd
}

func runLogout(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	a.conf.Session = nil

	if flagLogoutForget {
		a.conf.DeviceIDs = map[string]string{}
	}

	if err := a.conf.Save(a.confPath); err != nil {
		return err
	}

	fmt.Println("signed out")

	return nil
}
