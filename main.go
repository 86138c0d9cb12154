package main

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"betterrest/internal/bedtime"
	"betterrest/internal/config"
	"betterrest/internal/form"
	"betterrest/internal/model"
	"betterrest/internal/web"
)

const appVersion = "0.2.0"

// errNoEstimate is returned after the failure message has already been shown.
var errNoEstimate = errors.New("no estimate")

type options struct {
	wake    string
	sleep   string
	coffee  string
	model   string
	clock   string
	port    int
	envfile string
	debug   bool
}

func main() {
	cmd := newRootCmd(os.Stdout)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errNoEstimate) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "betterrest",
		Short:         "Ideal bedtime calculator (CLI or web)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.envfile)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg, opts)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.Debug {
				logrus.SetLevel(logrus.DebugLevel)
			}

			est := bedtime.NewEstimator(model.NewSource(cfg.ModelPath))
			defaults := cfg.FormDefaults()

			if cfg.HTTP.Port > 0 {
				printListenAddrs(out, cfg.HTTP.Port)
				srv := web.New(web.Options{
					Estimator: est,
					Layout:    cfg.Layout(),
					Defaults:  defaults,
					Version:   appVersion,
				})
				return srv.ListenAndServe(cfg.HTTP.Port)
			}

			req, err := form.Parse(form.Input{Wake: opts.wake, Sleep: opts.sleep, Coffee: opts.coffee}, defaults)
			if err != nil {
				return err
			}
			return runOnce(out, est, req, cfg.Layout())
		},
	}

	cmd.SetOut(out)
	cmd.Version = appVersion
	cmd.SetVersionTemplate("betterrest v{{.Version}}\n")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.Flags().StringVar(&opts.wake, "wake", "", "Desired wake time HH:MM (default 07:00)")
	cmd.Flags().StringVar(&opts.sleep, "sleep", "", "Desired amount of sleep in hours, 4-12 in 0.5 steps (default 8)")
	cmd.Flags().StringVar(&opts.coffee, "coffee", "", "Daily coffee intake in cups, 0-20 (default 1)")

	cmd.Flags().StringVar(&opts.model, "model", "", "Path to a model artifact (empty = built-in model)")
	cmd.Flags().StringVar(&opts.clock, "clock", "", "Clock format: 12h or 24h")
	cmd.Flags().IntVar(&opts.port, "port", 0, "Run web UI on this port (e.g. 8484)")
	cmd.Flags().StringVar(&opts.envfile, "env-file", ".env", "Read in a file of environment variables")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	return cmd
}

// applyFlags lets explicitly set flags override the environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts options) {
	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.ModelPath = opts.model
	}
	if flags.Changed("clock") {
		cfg.Clock = opts.clock
	}
	if flags.Changed("port") {
		cfg.HTTP.Port = opts.port
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
}

// runOnce prints a single estimate. Any prediction failure prints the fixed
// message; the cause goes to the log only.
func runOnce(out io.Writer, est *bedtime.Estimator, req bedtime.Request, layout string) error {
	res, err := est.Estimate(req)
	if err != nil {
		logrus.WithError(err).Warnln("cannot estimate bedtime")
	}
	msg := bedtime.Present(res, err, layout)
	printMessage(out, msg)
	if !msg.OK {
		return errNoEstimate
	}
	return nil
}

func printMessage(out io.Writer, msg bedtime.Message) {
	title := color.New(color.FgGreen, color.Bold)
	if !msg.OK {
		title = color.New(color.FgRed, color.Bold)
	}
	title.Fprintln(out, msg.Title)
	fmt.Fprintln(out, msg.Body)
}

func printListenAddrs(out io.Writer, port int) {
	fmt.Fprintln(out, "Listening on:")
	fmt.Fprintf(out, "  http://127.0.0.1:%d/\n", port)

	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			ip, _, err := net.ParseCIDR(a.String())
			if err != nil || ip == nil || ip.IsLoopback() || ip.To4() == nil {
				continue
			}
			fmt.Fprintf(out, "  http://%s:%d/\n", ip.String(), port)
		}
	}
	fmt.Fprintln(out)
}
