package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check DSM sign-in status",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if a.conf.SignedIn() {
		fmt.Printf("signed in to %s\n", a.conf.Session.URL)
	} else {
		fmt.Println("signed out, use the 'login' command to sign-in to DSM")
	}

	return nil
}
