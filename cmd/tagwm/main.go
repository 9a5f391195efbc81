package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/tagwm/internal/config"
	"github.com/1broseidon/tagwm/internal/ipc"
	"github.com/1broseidon/tagwm/internal/layout"
	"github.com/1broseidon/tagwm/internal/runtimepath"
	"github.com/1broseidon/tagwm/internal/wm"
	"github.com/1broseidon/tagwm/internal/x11"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: tagwm run")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "run takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: tagwm run")
			os.Exit(2)
		}
		runWM()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "clients":
		os.Exit(runClients(os.Args[2:]))
	case "view":
		os.Exit(runView(os.Args[2:]))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "do":
		os.Exit(runDo(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tagwm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Start the window manager (foreground)")
	fmt.Fprintln(w, "  status              Show the current view")
	fmt.Fprintln(w, "  clients             List managed windows")
	fmt.Fprintln(w, "  view <tags...>      Switch to the view showing the given tags")
	fmt.Fprintln(w, "  layout <name>       Change the current view's layout")
	fmt.Fprintln(w, "  do <action>         Run a named action (as if its key were pressed)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'tagwm <command> --help' for command-specific options.")
}

func runWM() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	conn, err := x11.NewConnection(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to display", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := conn.Register(); err != nil {
		logger.Error("failed to register as window manager", "error", err)
		os.Exit(1)
	}

	actions := &wm.ActionSet{DefaultLayout: cfg.DefaultLayout}
	bindings, err := conn.GrabBindings(cfg.Bindings, actions)
	if err != nil {
		logger.Error("failed to grab key bindings", "error", err)
		os.Exit(1)
	}

	manager := wm.NewManager(conn, wm.Options{
		Bindings:      bindings,
		Matcher:       wm.RuleMatcher(cfg.Rules),
		BorderWidth:   cfg.BorderWidth,
		DefaultLayout: cfg.DefaultLayout,
		Logger:        logger,
	})

	if err := manager.AdoptExisting(); err != nil {
		logger.Warn("could not adopt existing windows", "error", err)
	}

	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		logger.Error("failed to resolve IPC socket path", "error", err)
		os.Exit(1)
	}
	server := ipc.NewServer(socketPath, conn, logger)
	if err := server.Start(); err != nil {
		logger.Error("failed to start IPC server", "error", err)
		os.Exit(1)
	}
	defer server.Stop()

	// Termination signals go through the event loop like everything else.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signals
		logger.Info("shutting down", "signal", sig)
		conn.InjectControl(wm.ControlEvent{
			Request: wm.ControlRequest{Action: wm.ControlDo, Name: "quit"},
		})
	}()

	logger.Info("tagwm started", "socket", socketPath)

	if err := manager.Run(); err != nil {
		logger.Error("event loop failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func runStatus(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stdout, "Usage: tagwm status")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Show the current view via IPC.")
		return 0
	}
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("tags:    %s\n", strings.Join(status.Tags, ","))
	fmt.Printf("layout:  %s\n", status.Layout)
	fmt.Printf("mode:    %s\n", status.Mode)
	fmt.Printf("clients: %d\n", status.ClientCount)
	if status.Focused != 0 {
		fmt.Printf("focused: 0x%x\n", status.Focused)
	}
	return 0
}

func runClients(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stdout, "Usage: tagwm clients")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "List managed windows via IPC.")
		return 0
	}
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "clients takes no arguments")
		return 2
	}

	client := ipc.NewClient()
	data, err := client.ListClients()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, c := range data.Clients {
		marker := " "
		if c.Focused {
			marker = "*"
		}
		urgent := ""
		if c.Urgent {
			urgent = " [urgent]"
		}
		fmt.Printf("%s 0x%-8x %-30q tags=%s%s\n",
			marker, c.Window, c.Name, strings.Join(c.Tags, ","), urgent)
	}
	return 0
}

func runView(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: tagwm view <tag> [tag...]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Switch to the view showing the given tags.")
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	client := ipc.NewClient()
	if err := client.View(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runLayout(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		names := layout.Names()
		sort.Strings(names)
		fmt.Fprintln(os.Stderr, "Usage: tagwm layout <name>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintf(os.Stderr, "Change the current view's layout. Layouts: %s\n",
			strings.Join(names, ", "))
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	client := ipc.NewClient()
	if err := client.SetLayout(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runDo(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: tagwm do <action>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run a named action, e.g. focus_next, swap_master, view:web,")
		fmt.Fprintln(os.Stderr, "set_layout:monocle, master_factor:+5.")
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	client := ipc.NewClient()
	if err := client.Do(args[0]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: tagwm config <validate|print>")
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	switch args[0] {
	case "validate":
		path, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if _, err := config.Load(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("%s: OK\n", path)
		return 0
	case "print":
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		os.Stdout.Write(out)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}
