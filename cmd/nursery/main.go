package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hrygo/nursery/internal/profile"
	"github.com/hrygo/nursery/internal/version"
	"github.com/hrygo/nursery/server"
	"github.com/hrygo/nursery/server/service/babycare"
	"github.com/hrygo/nursery/store"
	"github.com/hrygo/nursery/store/db"
)

var (
	rootCmd = &cobra.Command{
		Use:           "nursery",
		Short:         "Assistant tools for Baby Buddy: feedings, sleep, diapers, tummy time and timers.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP tool server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			instanceProfile, err := loadProfile()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			storeInstance, err := openStore(instanceProfile)
			if err != nil {
				return err
			}
			s, err := server.NewServer(ctx, instanceProfile, storeInstance)
			if err != nil {
				return errors.Wrap(err, "failed to create server")
			}
			if err := s.Start(ctx); err != nil {
				return errors.Wrap(err, "failed to start server")
			}
			printGreetings(instanceProfile)

			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
			<-c
			s.Shutdown(context.Background())
			return nil
		},
	}

	runCmd = &cobra.Command{
		Use:   "run <tool> [json|-]",
		Short: "Run one tool and print its JSON result",
		Long: "Run one tool. The input is a JSON object given as the second argument, or read from stdin with \"-\".\n" +
			"Destructive tools ask for confirmation unless --yes is given.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			instanceProfile, err := loadProfile()
			if err != nil {
				return err
			}
			storeInstance, err := openStore(instanceProfile)
			if err != nil {
				return err
			}
			defer storeInstance.Close()
			toolset, err := server.NewToolset(instanceProfile, storeInstance, nil)
			if err != nil {
				return err
			}
			tool, ok := toolset.Registry.Get(args[0])
			if !ok {
				return errors.Errorf("unknown tool %q, see `nursery tools`", args[0])
			}

			input := "{}"
			if len(args) == 2 {
				input = args[1]
				if input == "-" {
					raw, err := io.ReadAll(cmd.InOrStdin())
					if err != nil {
						return errors.Wrap(err, "failed to read stdin")
					}
					input = string(raw)
				}
			}
			yes, _ := cmd.Flags().GetBool("yes")
			if yes {
				if input, err = withConfirmed(input); err != nil {
					return err
				}
			}

			result, err := toolset.Executor.Execute(cmd.Context(), tool, input)
			if err != nil {
				if babycare.KindOf(err) == babycare.KindConfirmationRequired {
					return errors.Errorf("%v (re-run with --yes to confirm)", err)
				}
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	toolsCmd = &cobra.Command{
		Use:   "tools",
		Short: "List the available tools",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Listing needs no Baby Buddy connection.
			toolset, err := server.NewToolset(&profile.Profile{Timezone: viper.GetString("timezone")}, nil, nil)
			if err != nil {
				return err
			}
			if asOpenAI, _ := cmd.Flags().GetBool("openai"); asOpenAI {
				return printJSON(cmd.OutOrStdout(), toolset.Registry.OpenAIDefinitions())
			}
			for _, t := range toolset.Registry.List() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", t.Name(), firstSentence(t.Description()))
			}
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetCurrentVersion(viper.GetString("mode")))
		},
	}
)

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("addr", "")
	viper.SetDefault("port", 8081)
	viper.SetDefault("request-timeout", 12*time.Second)
	viper.SetDefault("retry-count", 2)
	viper.SetDefault("rate-limit", 10.0)
	viper.SetDefault("rate-burst", 20)

	flags := rootCmd.PersistentFlags()
	flags.String("mode", "dev", `mode of server, can be "prod" or "dev" or "demo"`)
	flags.String("url", "", "Baby Buddy base URL, e.g. https://baby.example.com")
	flags.String("token", "", "Baby Buddy API token")
	flags.String("timezone", "", "IANA timezone for bare clock times like 14:30 (default: local)")
	flags.Duration("request-timeout", 12*time.Second, "timeout of one Baby Buddy request")
	flags.Int("retry-count", 2, "retries of failed Baby Buddy reads")
	bindFlags(flags, "mode", "url", "token", "timezone", "request-timeout", "retry-count")

	serveFlags := serveCmd.Flags()
	serveFlags.String("addr", "", "address of server")
	serveFlags.Int("port", 8081, "port of server")
	serveFlags.Float64("rate-limit", 10, "tool calls per second allowed per client")
	serveFlags.Int("rate-burst", 20, "burst of tool calls allowed per client")
	bindFlags(serveFlags, "addr", "port", "rate-limit", "rate-burst")

	runCmd.Flags().BoolP("yes", "y", false, "confirm destructive tools such as stop_timer")
	toolsCmd.Flags().Bool("openai", false, "print OpenAI function-calling definitions as JSON")

	viper.SetEnvPrefix("nursery")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(serveCmd, runCmd, toolsCmd, versionCmd)
}

func bindFlags(flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func loadProfile() (*profile.Profile, error) {
	instanceProfile := &profile.Profile{
		Mode:           viper.GetString("mode"),
		Addr:           viper.GetString("addr"),
		Port:           viper.GetInt("port"),
		BaseURL:        viper.GetString("url"),
		APIToken:       viper.GetString("token"),
		Timezone:       viper.GetString("timezone"),
		RequestTimeout: viper.GetDuration("request-timeout"),
		RetryCount:     viper.GetInt("retry-count"),
		RateLimit:      viper.GetFloat64("rate-limit"),
		RateBurst:      viper.GetInt("rate-burst"),
	}
	instanceProfile.FromEnv()
	instanceProfile.Version = version.GetCurrentVersion(instanceProfile.Mode)
	if err := instanceProfile.Validate(); err != nil {
		return nil, err
	}
	setupLogger(instanceProfile)
	return instanceProfile, nil
}

func setupLogger(p *profile.Profile) {
	var handler slog.Handler
	if p.IsDev() {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}

func openStore(p *profile.Profile) (*store.Store, error) {
	dbDriver, err := db.NewDBDriver(p)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return store.New(dbDriver, p), nil
}

// withConfirmed sets confirmed=true on a JSON object input.
func withConfirmed(input string) (string, error) {
	fields := map[string]any{}
	if strings.TrimSpace(input) != "" {
		if err := json.Unmarshal([]byte(input), &fields); err != nil {
			return "", errors.Wrap(err, "tool input must be a JSON object")
		}
	}
	fields["confirmed"] = true
	raw, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func firstSentence(s string) string {
	if i := strings.Index(s, ". "); i >= 0 {
		return s[:i+1]
	}
	return s
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printGreetings(p *profile.Profile) {
	fmt.Printf("Nursery %s started successfully!\n", p.Version)
	fmt.Printf("Baby Buddy: %s\n", p.BaseURL)
	fmt.Printf("Tool API: http://%s:%d/api/v1/tools\n", displayAddr(p.Addr), p.Port)
	fmt.Println("Press Ctrl+C to stop.")
}

func displayAddr(addr string) string {
	if addr == "" {
		return "localhost"
	}
	return addr
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
