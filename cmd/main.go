package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sbilibin2017/gw-session-client/internal/facades"
	"github.com/sbilibin2017/gw-session-client/internal/logger"
	"github.com/sbilibin2017/gw-session-client/internal/models"
	"github.com/sbilibin2017/gw-session-client/internal/session"
	"github.com/sbilibin2017/gw-session-client/internal/views"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the client
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

func main() {
	printBuildInfo()
	configPath := parseFlags()

	baseURL, logLevel, httpTimeoutSecond, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout, baseURL, logLevel, httpTimeoutSecond); err != nil {
		log.Fatalf("client stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting session client version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the auth API location, logging and HTTP configuration.
func parseConfig(path string) (
	baseURL, logLevel string,
	httpTimeoutSecond int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	baseURL = getEnv("AUTH_BASE_URL", "http://localhost:8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")
	if httpTimeoutSecond, err = strconv.Atoi(getEnv("HTTP_TIMEOUT_SECOND", "10")); err != nil {
		return
	}

	return
}

// run initializes the logger, the auth facade and the session controller,
// checks the session and then serves commands from in until quit or EOF.
func run(ctx context.Context,
	in io.Reader, out io.Writer,
	baseURL, logLevel string,
	httpTimeoutSecond int,
) error {
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Fprintln(out, "failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infow("logger initialized", "level", logLevel)

	client, err := facades.NewAuthHTTPFacade(baseURL,
		facades.WithTimeout(time.Duration(httpTimeoutSecond)*time.Second),
	)
	if err != nil {
		return err
	}
	logger.Log.Infow("auth API configured", "base_url", baseURL)

	renderer := views.NewTextRenderer(out)
	controller := session.NewController(client)
	controller.Subscribe(func(v models.View) {
		if err := renderer.Render(v); err != nil {
			logger.Log.Errorw("render failed", "error", err)
		}
	})

	controller.Initialize(ctx)

	return serve(ctx, controller, in, out)
}

// serve reads one command per line and applies it to the controller.
func serve(ctx context.Context, c *session.Controller, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("shutdown signal received")
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if quit := handleCommand(ctx, c, out, line); quit {
				return nil
			}
		}
	}
}

// handleCommand applies a single command line. It reports whether the user asked to quit.
func handleCommand(ctx context.Context, c *session.Controller, out io.Writer, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	var err error
	switch cmd, args := strings.ToLower(fields[0]), fields[1:]; cmd {
	case "login":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: login <username> <password>")
			return false
		}
		c.SetUsername(args[0])
		c.SetPassword(args[1])
		err = c.SubmitLogin(ctx)
	case "user":
		c.SetUsername(strings.Join(args, " "))
	case "password":
		c.SetPassword(strings.Join(args, " "))
	case "submit":
		err = c.SubmitLogin(ctx)
	case "logout":
		err = c.SubmitLogout(ctx)
	case "status":
		v := c.View()
		fmt.Fprintf(out, "state: %s\n", v.State)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(out, "unknown command %q\n", fields[0])
	}

	if err != nil {
		fmt.Fprintln(out, err)
	}
	return false
}
