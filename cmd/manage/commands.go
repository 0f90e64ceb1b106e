package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"
	"github.com/vaughan-dsouza/yatube/internal/models"
	"github.com/vaughan-dsouza/yatube/internal/store"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxTitleLen       = 200
	maxSlugLen        = 55
	maxDescriptionLen = 400
	minPasswordLen    = 6
)

type opener func() (*store.Store, func(), error)

func newRootCmd(open opener, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "manage",
		Short:         "Administer yatube users, groups and posts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.AddCommand(
		newUserCmd(open),
		newGroupCmd(open),
		newPostCmd(open),
	)
	return root
}

// withStore opens the store for the duration of a command.
func withStore(open opener, fn func(cmd *cobra.Command, s *store.Store, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, closeFn, err := open()
		if err != nil {
			return err
		}
		defer closeFn()
		return fn(cmd, s, args)
	}
}

// ---------------------- USERS ----------------------

func newUserCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Manage users"}

	var password string
	create := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(open, func(cmd *cobra.Command, s *store.Store, args []string) error {
			if len(password) < minPasswordLen {
				return fmt.Errorf("password must be at least %d characters", minPasswordLen)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			u, err := s.Users.Create(cmd.Context(), args[0], string(hash))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (id %d)\n", u.Username, u.ID)
			return nil
		}),
	}
	create.Flags().StringVar(&password, "password", "", "password for the new user")
	_ = create.MarkFlagRequired("password")

	del := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user and all of their posts",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(open, func(cmd *cobra.Command, s *store.Store, args []string) error {
			if err := s.Users.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %s\n", args[0])
			return nil
		}),
	}

	cmd.AddCommand(create, del)
	return cmd
}

// ---------------------- GROUPS ----------------------

// newGroup checks lengths and derives the slug from the title when empty.
func newGroup(title, groupSlug, description string) (models.Group, error) {
	if title == "" {
		return models.Group{}, errors.New("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return models.Group{}, fmt.Errorf("title must be at most %d characters", maxTitleLen)
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return models.Group{}, fmt.Errorf("description must be at most %d characters", maxDescriptionLen)
	}

	if groupSlug == "" {
		groupSlug = slug.Make(title)
	}
	if !slug.IsSlug(groupSlug) {
		return models.Group{}, fmt.Errorf("%q is not a valid slug", groupSlug)
	}
	if len(groupSlug) > maxSlugLen {
		return models.Group{}, fmt.Errorf("slug must be at most %d characters", maxSlugLen)
	}

	return models.Group{Title: title, Slug: groupSlug, Description: description}, nil
}

func newGroupCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{Use: "group", Short: "Manage groups"}

	var groupSlug, description string
	create := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(open, func(cmd *cobra.Command, s *store.Store, args []string) error {
			g, err := newGroup(args[0], groupSlug, description)
			if err != nil {
				return err
			}
			g, err = s.Groups.Create(cmd.Context(), g)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created group %s (/group/%s/)\n", g.Title, g.Slug)
			return nil
		}),
	}
	create.Flags().StringVar(&groupSlug, "slug", "", "URL slug (derived from the title when empty)")
	create.Flags().StringVar(&description, "description", "", "group description")

	list := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE: withStore(open, func(cmd *cobra.Command, s *store.Store, _ []string) error {
			groups, err := s.Groups.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSLUG\tTITLE")
			for _, g := range groups {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", g.ID, g.Slug, g.Title)
			}
			return tw.Flush()
		}),
	}

	del := &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a group; its posts are kept without a group",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(open, func(cmd *cobra.Command, s *store.Store, args []string) error {
			if err := s.Groups.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted group %s\n", args[0])
			return nil
		}),
	}

	cmd.AddCommand(create, list, del)
	return cmd
}

// ---------------------- POSTS ----------------------

func newPostCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{Use: "post", Short: "Inspect posts"}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: withStore(open, func(cmd *cobra.Command, s *store.Store, _ []string) error {
			var (
				found []models.Post
				err   error
			)
			if search != "" {
				found, err = s.Posts.Search(cmd.Context(), search)
			} else {
				var res store.FeedResult
				res, err = s.Feed(cmd.Context(), store.AllPosts())
				found = res.Posts
			}
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTEXT\tPUB DATE\tAUTHOR\tGROUP")
			for _, p := range found {
				group := "-empty-"
				if p.Group != nil {
					group = p.Group.String()
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
					p.ID, p, p.PubDate.Format("2006-01-02 15:04"), p.Author.Username, group)
			}
			return tw.Flush()
		}),
	}
	list.Flags().StringVar(&search, "search", "", "only posts whose text contains this")

	cmd.AddCommand(list)
	return cmd
}
