package main

import (
	"context"
	"fmt"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/MixinNetwork/mixin/logger"
	"github.com/MixinNetwork/musesong/config"
	"github.com/MixinNetwork/musesong/nft"
	"github.com/MixinNetwork/musesong/store"
	"github.com/spf13/cobra"
)

type RootOptions struct {
	DataDir    string
	ConfigPath string
	User       string
}

type session struct {
	module *nft.Module
	caller nft.Address
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "musesong",
		Short:         "Mint and play one MuseSong per listener",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.DataDir, "dir", "d", "", "database directory path, overrides the configuration")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "~/.mixin/musesong/config.toml", "configuration file path")
	cmd.PersistentFlags().StringVarP(&opts.User, "user", "u", "", "mixin user id of the caller, defaults to the app client id")

	cmd.AddCommand(newBootstrapCommand(opts))
	cmd.AddCommand(newCreateCommand(opts))
	cmd.AddCommand(newCounterCommand(opts, "feed", "Raise the points of the caller song"))
	cmd.AddCommand(newCounterCommand(opts, "play", "Lower the points of the caller song"))
	cmd.AddCommand(newGetCommand(opts))
	cmd.AddCommand(newExistsCommand(opts))
	cmd.AddCommand(newAddressCommand(opts))
	cmd.AddCommand(newEventsCommand(opts))
	return cmd
}

func newBootstrapCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the application identity and the collection, run once at installation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), opts, func(s *session) error {
				err := s.module.Bootstrap(cmd.Context(), s.caller)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "identity %s\ncollection %s\n", s.module.IdentityAddress(), s.module.CollectionAddress())
				return nil
			})
		},
	}
}

type createOptions struct {
	Identifier string
	Title      string
	Prompt     string
	ImageURL   string
	AudioURL   string
	Tags       string
}

func newCreateCommand(opts *RootOptions) *cobra.Command {
	co := &createOptions{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Mint the song of the caller",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), opts, func(s *session) error {
				err := s.module.Create(cmd.Context(), s.caller, co.Identifier, co.Title, co.Prompt, co.ImageURL, co.AudioURL, co.Tags)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s.module.RecordAddress(s.caller))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&co.Identifier, "identifier", "", "song identifier")
	cmd.Flags().StringVar(&co.Title, "title", "", "song title, at most 40 characters")
	cmd.Flags().StringVar(&co.Prompt, "prompt", "", "prompt the song was composed from")
	cmd.Flags().StringVar(&co.ImageURL, "image", "", "cover image url")
	cmd.Flags().StringVar(&co.AudioURL, "audio", "", "audio url")
	cmd.Flags().StringVar(&co.Tags, "tags", "", "song tags")
	return cmd
}

func newCounterCommand(opts *RootOptions, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <amount>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount %s", args[0])
			}
			return withSession(cmd.Context(), opts, func(s *session) error {
				update := s.module.Feed
				if use == "play" {
					update = s.module.Play
				}
				err := update(cmd.Context(), s.caller, amount)
				if err != nil {
					return err
				}
				song, err := s.module.Get(cmd.Context(), s.caller)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "points %d\n", song.Points)
				return nil
			})
		},
	}
}

func newGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get [address]",
		Short: "Show the caller song, or the song stored at address",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), opts, func(s *session) error {
				var song *nft.Song
				var err error
				if len(args) == 1 {
					addr, perr := nft.AddressFromString(args[0])
					if perr != nil {
						return perr
					}
					song, err = s.module.GetByAddress(cmd.Context(), addr)
				} else {
					song, err = s.module.Get(cmd.Context(), s.caller)
				}
				if err != nil {
					return err
				}
				printSong(cmd, song)
				return nil
			})
		},
	}
}

func newExistsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exists",
		Short: "Report whether the caller holds a song",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), opts, func(s *session) error {
				ok, err := s.module.Exists(cmd.Context(), s.caller)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ok)
				return nil
			})
		},
	}
}

func newAddressCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the song address of the caller and the collection address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), opts, func(s *session) error {
				fmt.Fprintf(cmd.OutOrStdout(), "song %s\ncollection %s\n", s.module.RecordAddress(s.caller), s.module.CollectionAddress())
				return nil
			})
		},
	}
}

func newEventsCommand(opts *RootOptions) *cobra.Command {
	var limit int
	var offset int64
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List song creation events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), opts, func(s *session) error {
				var ts time.Time
				if offset > 0 {
					ts = time.Unix(0, offset)
				}
				evts, err := s.module.Events(cmd.Context(), ts, limit)
				if err != nil {
					return err
				}
				for _, e := range evts {
					fmt.Fprintf(cmd.OutOrStdout(), "%d %s %s %s %q %s\n", e.CreatedAt.UnixNano(), e.TraceId, e.Name, e.Identifier, e.Title, e.AudioURL)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of events")
	cmd.Flags().Int64Var(&offset, "offset", 0, "list events created at or after this unix nano timestamp")
	return cmd
}

func printSong(cmd *cobra.Command, song *nft.Song) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "address %s\n", song.Address)
	fmt.Fprintf(w, "identifier %s\n", song.Identifier)
	fmt.Fprintf(w, "title %s\n", song.Title)
	fmt.Fprintf(w, "prompt %s\n", song.Prompt)
	fmt.Fprintf(w, "image %s\n", song.ImageURL)
	fmt.Fprintf(w, "audio %s\n", song.AudioURL)
	fmt.Fprintf(w, "tags %s\n", song.Tags)
	fmt.Fprintf(w, "points %d\n", song.Points)
}

func withSession(ctx context.Context, opts *RootOptions, fn func(*session) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	conf, err := config.Setup(expandHome(opts.ConfigPath))
	if err != nil {
		return err
	}
	logger.SetLevel(*conf.Log.Level)

	dir := conf.Store.Dir
	if opts.DataDir != "" {
		dir = opts.DataDir
	}
	db, err := store.OpenBadger(ctx, expandHome(dir))
	if err != nil {
		return err
	}
	defer db.Close()

	publisher, err := nft.AccountAddress(conf.App.ClientId)
	if err != nil {
		return err
	}
	userId := opts.User
	if userId == "" {
		userId = conf.App.ClientId
	}
	caller, err := nft.AccountAddress(userId)
	if err != nil {
		return err
	}
	module, err := nft.NewModule(db, publisher)
	if err != nil {
		return err
	}
	return fn(&session{module: module, caller: caller})
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	usr, err := user.Current()
	if err != nil {
		return path
	}
	return filepath.Join(usr.HomeDir, path[2:])
}
