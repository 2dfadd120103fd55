package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"inkwell/pkg/client"

	"github.com/spf13/cobra"
)

var (
	listLimit  int
	listOffset int
)

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 10, "max posts to fetch")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "posts to skip")

	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(createCmd)
	RootCmd.AddCommand(editCmd)
	RootCmd.AddCommand(deleteCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts, newest first",
	Args:  cobra.NoArgs,
	Run:   list,
}

func list(cmd *cobra.Command, args []string) {
	c, err := newClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}

	posts, err := c.ListPosts(cmd.Context(), listLimit, listOffset)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}

	if len(posts) == 0 {
		fmt.Println("No posts")
		return
	}

	for _, p := range posts {
		fmt.Printf("#%d  %s  by %s  (%s)\n", p.ID, p.Title, p.Author.Username,
			p.CreatedAt.Format("2006-01-02 15:04"))
	}
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single post",
	Args:  cobra.ExactArgs(1),
	Run:   show,
}

func show(cmd *cobra.Command, args []string) {
	id, err := parseID(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}

	c, err := newClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}

	post, err := c.GetPost(cmd.Context(), id)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}

	fmt.Printf("#%d  %s\nby %s on %s\n\n%s\n", post.ID, post.Title,
		post.Author.Username, post.CreatedAt.Format("2006-01-02 15:04"), post.Content)
}

var createCmd = &cobra.Command{
	Use:   "create <title> <content>",
	Short: "Create a post as the logged in user",
	Args:  cobra.ExactArgs(2),
	Run:   create,
}

func create(cmd *cobra.Command, args []string) {
	c, err := newClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}

	post, err := c.CreatePost(cmd.Context(), args[0], args[1])
	if err != nil {
		reportAuthError(err)
		return
	}

	fmt.Printf("Created post #%d\n", post.ID)
}

var editCmd = &cobra.Command{
	Use:   "edit <id> <title> <content>",
	Short: "Replace the title and content of your post",
	Args:  cobra.ExactArgs(3),
	Run:   edit,
}

func edit(cmd *cobra.Command, args []string) {
	id, err := parseID(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}

	c, err := newClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}

	post, err := c.UpdatePost(cmd.Context(), id, args[1], args[2])
	if err != nil {
		reportAuthError(err)
		return
	}

	fmt.Printf("Updated post #%d\n", post.ID)
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete your post",
	Args:  cobra.ExactArgs(1),
	Run:   del,
}

func del(cmd *cobra.Command, args []string) {
	id, err := parseID(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}

	c, err := newClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}

	if err := c.DeletePost(cmd.Context(), id); err != nil {
		reportAuthError(err)
		return
	}

	fmt.Printf("Deleted post #%d\n", id)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q", raw)
	}
	return uint(id), nil
}

func reportAuthError(err error) {
	if errors.Is(err, client.ErrNotAuthenticated) {
		fmt.Fprintln(os.Stderr, "Not logged in. Run 'blog login' first.")
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}
