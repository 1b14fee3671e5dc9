package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gitlab.com/epixlabs/contact-relay/internal/form"
)

var (
	relayURL string
	name     string
	email    string
	phone    string
	company  string
	message  string
)

// rootCmd submits one contact form through a running relay.
var rootCmd = &cobra.Command{
	Use:   "client",
	Short: "Submit a contact message through the relay",
	Long: `Fill the contact form with the given values and submit it to the relay endpoint.

Name, email and message are required. Missing values are reported per field and nothing
is sent.`,
	Example: `  client --name Jane --email jane@x.com --message "Need a website"
  client --url http://localhost:8080/api/contact --name Jane --email jane@x.com --company Acme --message Hi`,
	SilenceUsage: true,
	RunE:         runSubmit,
}

func init() {
	rootCmd.Flags().StringVar(&relayURL, "url", "http://localhost:8080"+form.DefaultPath, "relay endpoint")
	rootCmd.Flags().StringVar(&name, "name", "", "your name")
	rootCmd.Flags().StringVar(&email, "email", "", "your email address")
	rootCmd.Flags().StringVar(&phone, "phone", "", "your phone number (optional)")
	rootCmd.Flags().StringVar(&company, "company", "", "your company (optional)")
	rootCmd.Flags().StringVar(&message, "message", "", "a short description of your project")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	alert := form.NotifierFunc(func(msg string) {
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
	})
	f := form.New(form.NewHTTPRelay(relayURL), alert)
	f.Set(form.Name, name)
	f.Set(form.Email, email)
	f.Set(form.Phone, phone)
	f.Set(form.Company, company)
	f.Set(form.Message, message)

	err := f.Submit(context.Background())
	if errors.Is(err, form.ErrInvalid) {
		errs := f.Errors()
		fields := make([]string, 0, len(errs))
		for field := range errs {
			fields = append(fields, string(field))
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, errs[form.Field(field)])
		}
		return err
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Message sent.")
	return nil
}

// Usage example on the command line:
// > go run main.go --name Jane --email jane@x.com --message "Need a website"
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
