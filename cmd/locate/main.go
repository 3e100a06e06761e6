package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/di"
	"github.com/vividus-framework/vividus-sub002/internal/infrastructure/env"
	"github.com/vividus-framework/vividus-sub002/internal/infrastructure/suite"
)

const maxTextWidth = 60

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(env.NewEnvService(), os.Stdout).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp(envService *env.EnvService, stdout io.Writer) *cli.App {
	defaults := di.DefaultConfig()

	return &cli.App{
		Name:      "locate",
		Usage:     "Resolve declarative element locators against a web page",
		Writer:    stdout,
		ErrWriter: stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "driver",
				Aliases: []string{"d"},
				Usage:   "Browser driver (rod, selenium, playwright, static)",
				Value:   envService.GetWithDefault("BROWSER_DRIVER", defaults.Driver),
			},
			&cli.BoolFlag{
				Name:  "headless",
				Usage: "Run the browser without a window",
				Value: envService.GetBool("BROWSER_HEADLESS", defaults.BrowserHeadless),
			},
			&cli.DurationFlag{
				Name:  "browser-timeout",
				Usage: "Page load timeout",
				Value: envService.GetDuration("BROWSER_TIMEOUT", defaults.BrowserTimeout),
			},
			&cli.StringFlag{
				Name:  "selenium-url",
				Usage: "Remote WebDriver endpoint for the selenium driver",
				Value: envService.Get("SELENIUM_URL"),
			},
			&cli.StringFlag{
				Name:  "control-url",
				Usage: "DevTools endpoint of a running browser for the rod driver",
				Value: envService.Get("ROD_CONTROL_URL"),
			},
			&cli.DurationFlag{
				Name:  "wait",
				Usage: "How long to poll for the first matching element",
				Value: envService.GetDuration("ELEMENT_WAIT_TIMEOUT", defaults.ElementWaitTimeout),
			},
			&cli.DurationFlag{
				Name:  "polling",
				Usage: "Polling interval while waiting for elements",
				Value: envService.GetDuration("ELEMENT_WAIT_POLLING", defaults.ElementWaitPolling),
			},
			&cli.BoolFlag{
				Name:  "link-case-sensitive",
				Usage: "Compare link URLs case-sensitively",
				Value: envService.GetBool("LINK_URL_CASE_SENSITIVE", defaults.LinkCaseSensitive),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: envService.GetWithDefault("LOG_LEVEL", "warn"),
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Also write JSON logs to this file",
				Value: envService.Get("LOG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "find",
				Usage:     "Open a page and print the elements each locator resolves to",
				ArgsUsage: "LOCATOR...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "url",
						Aliases:  []string{"u"},
						Usage:    "Page URL or local HTML file",
						Required: true,
					},
				},
				Action: findAction,
			},
			{
				Name:      "check",
				Usage:     "Resolve every locator of a suite file and compare with expected counts",
				ArgsUsage: "SUITE.yaml",
				Action:    checkAction,
			},
		},
	}
}

func configFrom(c *cli.Context) di.Config {
	return di.Config{
		Driver:             c.String("driver"),
		BrowserHeadless:    c.Bool("headless"),
		BrowserTimeout:     c.Duration("browser-timeout"),
		SeleniumURL:        c.String("selenium-url"),
		RodControlURL:      c.String("control-url"),
		ElementWaitTimeout: c.Duration("wait"),
		ElementWaitPolling: c.Duration("polling"),
		LinkCaseSensitive:  c.Bool("link-case-sensitive"),
		LogLevel:           c.String("log-level"),
		LogFile:            c.String("log-file"),
	}
}

func findAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("at least one locator is required", 2)
	}

	container, err := di.NewContainer(c.Context, configFrom(c))
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.Browser.Navigate(c.Context, c.String("url")); err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}
	doc, err := container.Browser.Document(c.Context)
	if err != nil {
		return err
	}

	out := c.App.Writer
	for _, raw := range c.Args().Slice() {
		locator, err := container.Engine.Parser.Parse(raw)
		if err != nil {
			return err
		}
		found, err := container.Engine.Locator.FindElements(c.Context, doc, locator)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s: %d element(s)\n", locator, len(found))
		for i, el := range found {
			fmt.Fprintf(out, "  [%d] %s\n", i, describe(c.Context, el))
		}
	}
	return nil
}

func checkAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("exactly one suite file is required", 2)
	}

	s, err := suite.Load(c.Args().First())
	if err != nil {
		return err
	}

	container, err := di.NewContainer(c.Context, configFrom(c))
	if err != nil {
		return err
	}
	defer container.Close()

	results, err := container.Checker.Check(c.Context, s)
	if err != nil {
		return err
	}

	out := c.App.Writer
	failed := 0
	for _, r := range results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(out, "%s  %s: found %d, expected %s\n", status, r.Case.Name, r.Found, r.Case.Expectation())
		if r.Err != nil {
			fmt.Fprintf(out, "      %v\n", r.Err)
		}
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d locator(s) failed", failed, len(results)), 1)
	}
	return nil
}

// describe renders an element as <tag id="..."> text, ignoring read errors.
func describe(ctx context.Context, el output.Element) string {
	el = output.Unwrap(el)
	tag, _ := el.TagName(ctx)

	var sb strings.Builder
	sb.WriteString("<" + strings.ToLower(tag))
	if id, ok, _ := el.Attribute(ctx, "id"); ok && id != "" {
		fmt.Fprintf(&sb, " id=%q", id)
	}
	sb.WriteString(">")

	text, _ := el.Text(ctx)
	text = strings.Join(strings.Fields(text), " ")
	if len([]rune(text)) > maxTextWidth {
		text = string([]rune(text)[:maxTextWidth]) + "..."
	}
	if text != "" {
		sb.WriteString(" " + text)
	}
	return sb.String()
}
