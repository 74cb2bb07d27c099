package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/CrestNiraj12/rdt/domain"
	"github.com/CrestNiraj12/rdt/infra/auth"
	"github.com/CrestNiraj12/rdt/infra/config"
	"github.com/CrestNiraj12/rdt/infra/logging"
	"github.com/CrestNiraj12/rdt/infra/media"
	"github.com/CrestNiraj12/rdt/infra/nlp"
	"github.com/CrestNiraj12/rdt/infra/reddit"
	"github.com/CrestNiraj12/rdt/tui"
	"github.com/CrestNiraj12/rdt/tui/feed"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type globalFlags struct {
	configPath string
	logLevel   string
	logFile    string
}

// services is everything a command needs, built once per invocation.
type services struct {
	cfg      config.Config
	reddit   *reddit.Service
	router   *nlp.Router
	fetcher  *media.Fetcher
	closeLog func()
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// setup loads config and builds the service graph. logOut receives log lines
// when no log file is configured; nil keeps the logger silent.
func setup(flags globalFlags, logOut io.Writer) (*services, error) {
	// 1. Load config from file and environment; flags win.
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFile != "" {
		cfg.Log.File = flags.logFile
	}

	// 2. Logging.
	logger, closeLog, err := logging.New(cfg.Log.Level, cfg.Log.File, logOut)
	if err != nil {
		return nil, err
	}
	log.Logger = logger

	// 3. Build infrastructure.
	tokens := auth.ChainTokenProvider{
		auth.StaticTokenProvider(cfg.Reddit.AccessToken),
		auth.NewFileTokenProvider(cfg.Reddit.TokenFile),
	}
	client := reddit.NewClient(tokens, reddit.Options{
		UserAgent:         cfg.Reddit.UserAgent,
		Timeout:           cfg.Reddit.Timeout,
		RequestsPerMinute: cfg.Reddit.RequestsPerMinute,
	})

	// 4. Query interpretation; the AI layer is optional.
	var completer nlp.Completer
	if cfg.AI.Enabled() {
		completer = nlp.NewMessagesCompleter(cfg.AI.Endpoint, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout)
	}

	log.Debug().
		Str("user_agent", cfg.Reddit.UserAgent).
		Bool("ai", cfg.AI.Enabled()).
		Msg("services ready")

	return &services{
		cfg:      cfg,
		reddit:   reddit.NewService(client),
		router:   nlp.NewRouter(completer),
		fetcher:  media.NewFetcher(cfg.Reddit.UserAgent, 0),
		closeLog: closeLog,
	}, nil
}

func settingsFrom(cfg config.Config) feed.Settings {
	return feed.Settings{
		HomeFeed:     cfg.TUI.HomeFeed,
		HomeSort:     cfg.TUI.HomeSort,
		HomeTime:     cfg.TUI.HomeTime,
		HomeLimit:    cfg.TUI.HomeLimit,
		CommentSort:  cfg.TUI.CommentSort,
		CommentLimit: cfg.TUI.CommentLimit,
		Images:       cfg.TUI.Images,
	}
}

func newRootCommand(stdout io.Writer) *cli.Command {
	var flags globalFlags
	v, c, d := resolvedRuntimeVersionInfo(version, commit, date)

	withServices := func(logOut io.Writer, fn func(ctx context.Context, cmd *cli.Command, s *services) error) cli.ActionFunc {
		return func(ctx context.Context, cmd *cli.Command) error {
			s, err := setup(flags, logOut)
			if err != nil {
				return err
			}
			defer s.closeLog()
			return fn(ctx, cmd, s)
		}
	}

	return &cli.Command{
		Name:    "rdt",
		Usage:   "Browse and search Reddit from the terminal",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config file",
				Sources:     cli.EnvVars("RDT_CONFIG"),
				Destination: &flags.configPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (trace, debug, info, warn, error)",
				Destination: &flags.logLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "write logs to this file",
				Destination: &flags.logFile,
			},
		},
		Action: withServices(nil, func(_ context.Context, _ *cli.Command, s *services) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("the interactive browser needs a terminal; use a subcommand for scripted output")
			}
			return tui.Run(tui.Deps{
				Feed:        s.reddit,
				Media:       s.fetcher,
				Interpreter: s.router,
				Settings:    settingsFrom(s.cfg),
			})
		}),
		Commands: []*cli.Command{
			searchCommand(stdout, withServices),
			postsCommand(stdout, withServices),
			postCommand(stdout, withServices),
			commentsCommand(stdout, withServices),
			subredditCommand(stdout, withServices),
			userCommand(stdout, withServices),
		},
	}
}

type actionWrapper func(logOut io.Writer, fn func(ctx context.Context, cmd *cli.Command, s *services) error) cli.ActionFunc

func searchCommand(stdout io.Writer, wrap actionWrapper) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search posts; plain language is interpreted unless --subreddit is given",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subreddit", Aliases: []string{"r"}, Usage: "restrict to a subreddit and skip interpretation"},
			&cli.StringFlag{Name: "sort", Value: domain.DefaultSearchSort, Usage: "relevance, hot, top, new, comments"},
			&cli.StringFlag{Name: "time", Value: domain.DefaultSearchTime, Usage: "hour, day, week, month, year, all"},
			&cli.IntFlag{Name: "limit", Value: domain.DefaultSearchLimit, Usage: "maximum results"},
		},
		Action: wrap(os.Stderr, func(ctx context.Context, cmd *cli.Command, s *services) error {
			text := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
			if text == "" {
				return domain.ErrEmptyQuery
			}

			var params domain.SearchParams
			if sub := cmd.String("subreddit"); sub != "" {
				params = domain.SearchParams{
					Query:      text,
					Subreddit:  sub,
					Sort:       cmd.String("sort"),
					Time:       cmd.String("time"),
					Limit:      cmd.Int("limit"),
					SearchType: "posts",
				}
			} else {
				interpreted, err := s.router.Interpret(ctx, text)
				if err != nil {
					return err
				}
				params = interpreted
				if cmd.IsSet("sort") {
					params.Sort = cmd.String("sort")
				}
				if cmd.IsSet("time") {
					params.Time = cmd.String("time")
				}
				if cmd.IsSet("limit") {
					params.Limit = cmd.Int("limit")
				}
				log.Debug().Stringer("method", params.Method).Str("query", params.Query).Msg("query interpreted")
			}

			results, err := s.reddit.Search(ctx, params)
			if err != nil {
				return err
			}
			return writeJSON(stdout, results)
		}),
	}
}

func postsCommand(stdout io.Writer, wrap actionWrapper) *cli.Command {
	return &cli.Command{
		Name:      "posts",
		Usage:     "List posts of a subreddit",
		ArgsUsage: "<subreddit>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "sort", Value: "hot", Usage: "hot, new, top, rising"},
			&cli.StringFlag{Name: "time", Value: "day", Usage: "time window for top"},
			&cli.IntFlag{Name: "limit", Value: 25, Usage: "maximum posts"},
		},
		Action: wrap(os.Stderr, func(ctx context.Context, cmd *cli.Command, s *services) error {
			sub := strings.TrimPrefix(strings.TrimSpace(cmd.Args().First()), "r/")
			if sub == "" {
				return errors.New("a subreddit name is required")
			}
			posts, err := s.reddit.FetchFeed(ctx, sub, cmd.String("sort"), cmd.String("time"), cmd.Int("limit"))
			if err != nil {
				return err
			}
			return writeJSON(stdout, posts)
		}),
	}
}

func subredditCommand(stdout io.Writer, wrap actionWrapper) *cli.Command {
	return &cli.Command{
		Name:  "subreddit",
		Usage: "Subreddit details and listings",
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "Show subreddit details",
				ArgsUsage: "<name>",
				Action: wrap(os.Stderr, func(ctx context.Context, cmd *cli.Command, s *services) error {
					name := strings.TrimPrefix(strings.TrimSpace(cmd.Args().First()), "r/")
					if name == "" {
						return errors.New("a subreddit name is required")
					}
					sub, err := s.reddit.FetchSubreddit(ctx, name)
					if err != nil {
						return err
					}
					return writeJSON(stdout, sub)
				}),
			},
			postsCommand(stdout, wrap),
		},
	}
}

func userCommand(stdout io.Writer, wrap actionWrapper) *cli.Command {
	usernameArg := func(cmd *cli.Command) (string, error) {
		name := strings.TrimPrefix(strings.TrimSpace(cmd.Args().First()), "u/")
		if name == "" {
			return "", errors.New("a username is required")
		}
		return name, nil
	}

	return &cli.Command{
		Name:  "user",
		Usage: "User details and submissions",
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "Show karma and account age",
				ArgsUsage: "<username>",
				Action: wrap(os.Stderr, func(ctx context.Context, cmd *cli.Command, s *services) error {
					name, err := usernameArg(cmd)
					if err != nil {
						return err
					}
					user, err := s.reddit.FetchUser(ctx, name)
					if err != nil {
						return err
					}
					return writeJSON(stdout, user)
				}),
			},
			{
				Name:      "posts",
				Usage:     "List posts a user submitted",
				ArgsUsage: "<username>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "sort", Value: "new", Usage: "hot, new, top, controversial"},
					&cli.IntFlag{Name: "limit", Value: 25, Usage: "maximum posts"},
				},
				Action: wrap(os.Stderr, func(ctx context.Context, cmd *cli.Command, s *services) error {
					name, err := usernameArg(cmd)
					if err != nil {
						return err
					}
					posts, err := s.reddit.FetchUserPosts(ctx, name, cmd.String("sort"), cmd.Int("limit"))
					if err != nil {
						return err
					}
					return writeJSON(stdout, posts)
				}),
			},
		},
	}
}

func postCommand(stdout io.Writer, wrap actionWrapper) *cli.Command {
	return &cli.Command{
		Name:      "post",
		Usage:     "Show one post",
		ArgsUsage: "<id|url>",
		Action: wrap(os.Stderr, func(ctx context.Context, cmd *cli.Command, s *services) error {
			id := reddit.ExtractPostID(cmd.Args().First())
			if id == "" {
				return errors.New("a post id or url is required")
			}
			post, err := s.reddit.FetchPost(ctx, id)
			if err != nil {
				return err
			}
			return writeJSON(stdout, post)
		}),
	}
}

func commentsCommand(stdout io.Writer, wrap actionWrapper) *cli.Command {
	return &cli.Command{
		Name:      "comments",
		Usage:     "Show the comment tree of a post",
		ArgsUsage: "<id|url>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "sort", Value: "best", Usage: "best, top, new, controversial, old, qa"},
			&cli.IntFlag{Name: "limit", Value: 100, Usage: "maximum comments"},
		},
		Action: wrap(os.Stderr, func(ctx context.Context, cmd *cli.Command, s *services) error {
			id := reddit.ExtractPostID(cmd.Args().First())
			if id == "" {
				return errors.New("a post id or url is required")
			}
			roots, err := s.reddit.FetchComments(ctx, id, cmd.String("sort"), cmd.Int("limit"))
			if err != nil {
				return err
			}
			return writeJSON(stdout, roots)
		}),
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// errorType names the error class printed next to the message.
func errorType(err error) string {
	var apiErr *domain.APIError
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return "invalid_query"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, auth.ErrNoToken):
		return "unauthorized"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &apiErr):
		return "api_error"
	default:
		return "error"
	}
}

func writeError(w io.Writer, err error) {
	data, _ := json.Marshal(map[string]string{
		"error": err.Error(),
		"type":  errorType(err),
	})
	_, _ = fmt.Fprintf(w, "%s\n", data)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand(os.Stdout).Run(ctx, os.Args); err != nil {
		writeError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
