package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(signupCmd)
	RootCmd.AddCommand(loginCmd)
	RootCmd.AddCommand(logoutCmd)
	RootCmd.AddCommand(whoamiCmd)
}

var signupCmd = &cobra.Command{
	Use:   "signup <username> <email> <password>",
	Short: "Register a new account and log in",
	Args:  cobra.ExactArgs(3),
	Run:   signup,
}

func signup(cmd *cobra.Command, args []string) {
	c, err := newClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}

	sess, err := c.Signup(cmd.Context(), args[0], args[1], args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Signup failed:", err)
		return
	}

	fmt.Printf("Signed up and logged in as %s\n", sess.User.Username)
}

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Log in, replacing any existing session",
	Args:  cobra.ExactArgs(2),
	Run:   login,
}

func login(cmd *cobra.Command, args []string) {
	c, err := newClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}

	sess, err := c.Login(cmd.Context(), args[0], args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Login failed:", err)
		return
	}

	fmt.Printf("Logged in as %s\n", sess.User.Username)
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Args:  cobra.NoArgs,
	Run:   logout,
}

func logout(cmd *cobra.Command, args []string) {
	c, err := newClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}

	if err := c.Logout(); err != nil {
		fmt.Fprintln(os.Stderr, "Logout failed:", err)
		return
	}

	fmt.Println("Logged out")
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently logged in user",
	Args:  cobra.NoArgs,
	Run:   whoami,
}

func whoami(cmd *cobra.Command, args []string) {
	c, err := newClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}

	sess := c.Session()
	if !sess.LoggedIn() {
		fmt.Println("Not logged in")
		return
	}

	fmt.Printf("%s <%s>\n", sess.User.Username, sess.User.Email)
}
