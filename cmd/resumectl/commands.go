package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"resumecraft/internal/editor"
	"resumecraft/internal/editor/httpgateway"
	"resumecraft/internal/shared/telemetry"
	"resumecraft/resume/model"
)

const defaultAPI = "http://localhost:8080"

type cli struct {
	statePath string
	token     string
	api       string
	verbose   bool

	out io.Writer
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Edit resumes locally and sync them with the resumes API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			c.out = cmd.OutOrStdout()
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&c.statePath, "state", "resume.json", "Path to the working document")
	flags.StringVar(&c.token, "token", os.Getenv("RESUMECTL_TOKEN"), "Bearer token (env RESUMECTL_TOKEN)")
	flags.StringVar(&c.api, "api", envOr("RESUMECTL_API", defaultAPI), "API base URL (env RESUMECTL_API)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Log store diagnostics to stderr")

	root.AddCommand(
		c.sendOTPCmd(),
		c.registerCmd(),
		c.loginCmd(),
		c.newCmd(),
		c.importCmd(),
		c.saveCmd(),
		c.loadCmd(),
		c.listCmd(),
		c.deleteCmd(),
		c.showCmd(),
	)
	return root
}

func (c *cli) sendOTPCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "send-otp",
		Short: "Email a registration code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := httpgateway.NewClient(c.api, nil)
			if err != nil {
				return err
			}
			if err := client.SendOTP(cmd.Context(), email); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "code sent to %s\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) registerCmd() *cobra.Command {
	var name, email, otp, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account with an emailed code and print a token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := httpgateway.NewClient(c.api, nil)
			if err != nil {
				return err
			}
			if password == "" {
				password = os.Getenv("RESUMECTL_PASSWORD")
			}
			token, err := client.Register(cmd.Context(), name, email, otp, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, token)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&otp, "otp", "", "Code from the registration email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (env RESUMECTL_PASSWORD)")
	for _, f := range []string{"name", "email", "otp"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a token for RESUMECTL_TOKEN",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := httpgateway.NewClient(c.api, nil)
			if err != nil {
				return err
			}
			if password == "" {
				password = os.Getenv("RESUMECTL_PASSWORD")
			}
			token, err := client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (env RESUMECTL_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) newCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a fresh, unsaved document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := c.store()
			if err != nil {
				return err
			}
			store.Reset()
			return c.persist(store)
		},
	}
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Merge a partial resume JSON into the working document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var patch model.ResumePatch
			if err := json.Unmarshal(raw, &patch); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			if patch.Template != nil {
				tmpl, err := model.ParseTemplate(string(*patch.Template))
				if err != nil {
					return fmt.Errorf("%w (known: %s)", err, knownTemplates())
				}
				patch.Template = &tmpl
			}
			store, err := c.store()
			if err != nil {
				return err
			}
			if err := store.Replace(patch); err != nil {
				return err
			}
			return c.persist(store)
		},
	}
}

func (c *cli) saveCmd() *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create or update the working document on the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := c.store()
			if err != nil {
				return err
			}
			doc, err := store.Save(cmd.Context(), c.token, title)
			if err != nil {
				return describe(err)
			}
			if err := c.persist(store); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "saved %s (%s)\n", doc.ID, doc.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Name to save under")
	return cmd
}

func (c *cli) loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <id>",
		Short: "Replace the working document with a saved resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.store()
			if err != nil {
				return err
			}
			doc, err := store.Load(cmd.Context(), c.token, args[0])
			if err != nil {
				return describe(err)
			}
			if err := c.persist(store); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "loaded %s (%s)\n", doc.ID, doc.Title)
			return nil
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved resumes, most recently updated first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := c.store()
			if err != nil {
				return err
			}
			list, err := store.ListSaved(cmd.Context(), c.token)
			if err != nil {
				return describe(err)
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tATS\tUPDATED")
			for _, s := range list {
				score := "-"
				if s.ATSScore != nil {
					score = fmt.Sprintf("%g", *s.ATSScore)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Name, score, s.UpdatedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	}
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved resume on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.store()
			if err != nil {
				return err
			}
			if err := store.DeleteSaved(cmd.Context(), c.token, args[0]); err != nil {
				return describe(err)
			}
			fmt.Fprintf(c.out, "deleted %s\n", args[0])
			if store.Document().ID == args[0] {
				fmt.Fprintln(c.out, "note: the working document still refers to the deleted resume")
			}
			return nil
		},
	}
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the working document as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := readState(c.statePath)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(c.out)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}
}

func (c *cli) store() (*editor.Store, error) {
	doc, err := readState(c.statePath)
	if err != nil {
		return nil, err
	}
	client, err := httpgateway.NewClient(c.api, nil)
	if err != nil {
		return nil, err
	}
	logger := zerolog.Nop()
	if c.verbose {
		telemetry.Configure(zerolog.ConsoleWriter{Out: os.Stderr}, "debug")
		logger = telemetry.Logger()
	}
	return editor.New(client, editor.WithDocument(doc), editor.WithLogger(logger)), nil
}

func (c *cli) persist(store *editor.Store) error {
	return writeState(c.statePath, store.Document())
}

func describe(err error) error {
	switch {
	case errors.Is(err, editor.ErrUnauthorized):
		return fmt.Errorf("%w (run `resumectl login` and set RESUMECTL_TOKEN)", err)
	case errors.Is(err, editor.ErrNotFound):
		return fmt.Errorf("%w (it may have been deleted or belong to another account)", err)
	default:
		return err
	}
}

func knownTemplates() string {
	names := make([]string, 0, len(model.Templates()))
	for _, t := range model.Templates() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
