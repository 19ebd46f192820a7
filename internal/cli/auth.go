package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/waabox/clubinho/internal/apierror"
)

var (
	loginEmail    string
	loginPassword string
	loginGoogle   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.API.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Sessão encerrada.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer printToasts(app.Bus, cmd.ErrOrStderr())()
		user, err := app.API.Me(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", user.Name, user.Email, user.Role)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account e-mail")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (read from stdin when empty)")
	loginCmd.Flags().StringVar(&loginGoogle, "google-token", "", "sign in with a Google ID token instead")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if loginGoogle != "" {
		user, err := app.API.GoogleLogin(ctx, loginGoogle)
		if err != nil {
			return loginError(err)
		}
		fmt.Fprintf(out, "Bem-vindo, %s.\n", user.Name)
		return nil
	}

	if loginEmail == "" {
		return errors.New("--email is required")
	}
	password := loginPassword
	if password == "" {
		fmt.Fprint(cmd.ErrOrStderr(), "Senha: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	user, err := app.API.Login(ctx, loginEmail, password)
	if err != nil {
		return loginError(err)
	}
	fmt.Fprintf(out, "Bem-vindo, %s.\n", user.Name)
	return nil
}

// loginError shows the backend's message; login calls skip the global toast.
func loginError(err error) error {
	if ce, ok := apierror.Classify(err); ok {
		return errors.New(ce.Message)
	}
	return err
}
